package vulnerability

import (
	"context"

	"github.com/Masterminds/semver/v3"
	"go.uber.org/zap"
)

// Advisory is one configured known-vulnerable version range.
type Advisory struct {
	Package    string // exact package name
	Constraint string // semver range, e.g. "< 4.17.21" or ">= 1.0.0, < 1.2.5"
	Summary    string // short human-readable description
}

// AdvisoryOracle answers vulnerability checks from a static advisory
// list. Constraint matching uses real semver semantics; a version or
// constraint that does not parse as semver simply never matches.
type AdvisoryOracle struct {
	byPackage map[string][]compiledAdvisory
	logger    *zap.Logger
}

type compiledAdvisory struct {
	constraint *semver.Constraints
	summary    string
}

// NewAdvisoryOracle compiles the advisory list. Entries with malformed
// constraints are skipped with a warning rather than failing startup.
func NewAdvisoryOracle(advisories []Advisory, logger *zap.Logger) *AdvisoryOracle {
	byPackage := make(map[string][]compiledAdvisory, len(advisories))
	for _, advisory := range advisories {
		constraint, err := semver.NewConstraint(advisory.Constraint)
		if err != nil {
			logger.Warn("Skipping advisory with malformed constraint",
				zap.String("package", advisory.Package),
				zap.String("constraint", advisory.Constraint),
				zap.Error(err))
			continue
		}
		byPackage[advisory.Package] = append(byPackage[advisory.Package], compiledAdvisory{
			constraint: constraint,
			summary:    advisory.Summary,
		})
	}
	return &AdvisoryOracle{byPackage: byPackage, logger: logger}
}

// Check reports whether any advisory for the package covers the version.
func (o *AdvisoryOracle) Check(_ context.Context, packageName string, version string) (bool, error) {
	advisories, ok := o.byPackage[packageName]
	if !ok {
		return false, nil
	}

	parsed, err := semver.NewVersion(version)
	if err != nil {
		// Non-semver versions cannot match a semver range.
		return false, nil
	}

	for _, advisory := range advisories {
		if advisory.constraint.Check(parsed) {
			o.logger.Info("Advisory matched",
				zap.String("package", packageName),
				zap.String("version", version),
				zap.String("summary", advisory.summary))
			return true, nil
		}
	}
	return false, nil
}
