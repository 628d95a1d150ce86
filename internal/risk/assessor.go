package risk

import (
	"context"
	"fmt"
	"time"

	"upgrade-advisor/internal/domain"
	"upgrade-advisor/internal/version"

	"go.uber.org/zap"
)

// Change counts above this threshold are assumed to slow review and CI
// enough to matter.
const changeVolumeThreshold = 5

// Assessor derives a risk verdict from three independent signals applied
// in fixed order: version delta, security findings, change volume. Later
// signals only ever raise severity.
type Assessor struct {
	oracle       domain.VulnerabilityOracle
	checkTimeout time.Duration
	logger       *zap.Logger
	signals      []signal
}

type signal func(ctx context.Context, request *domain.UpgradeRequest, changes []*domain.Change, assessment *domain.RiskAssessment) error

// NewAssessor creates an assessor with the default signal chain. The
// oracle call is bounded by checkTimeout so that an I/O-backed oracle
// cannot stall the whole pipeline; checkTimeout <= 0 means unbounded.
func NewAssessor(oracle domain.VulnerabilityOracle, checkTimeout time.Duration, logger *zap.Logger) *Assessor {
	a := &Assessor{
		oracle:       oracle,
		checkTimeout: checkTimeout,
		logger:       logger,
	}
	// New signals are appended; existing order is load-bearing.
	a.signals = []signal{
		a.versionDeltaSignal,
		a.securitySignal,
		a.changeVolumeSignal,
	}
	return a
}

// Assess runs the signal chain. An error is only possible from a failing
// substituted oracle; the default in-process oracles never fail.
func (a *Assessor) Assess(
	ctx context.Context,
	request *domain.UpgradeRequest,
	changes []*domain.Change,
) (domain.RiskAssessment, error) {
	assessment := domain.RiskAssessment{
		RiskLevel:         domain.RiskLevelLow,
		BreakingChanges:   false,
		SecurityIssues:    []string{},
		PerformanceImpact: domain.PerformanceImpactNone,
	}

	for _, s := range a.signals {
		if err := s(ctx, request, changes, &assessment); err != nil {
			return domain.RiskAssessment{}, err
		}
	}

	a.logger.Debug("Risk assessment completed",
		zap.String("package", request.PackageName),
		zap.String("risk_level", string(assessment.RiskLevel)),
		zap.Bool("breaking_changes", assessment.BreakingChanges),
		zap.Int("security_issues", len(assessment.SecurityIssues)))

	return assessment, nil
}

// versionDeltaSignal flags a major-version increase as High and breaking.
func (a *Assessor) versionDeltaSignal(
	_ context.Context,
	request *domain.UpgradeRequest,
	_ []*domain.Change,
	assessment *domain.RiskAssessment,
) error {
	current, err := version.Parse(request.CurrentVersion)
	if err != nil {
		return domain.NewInternalError(fmt.Sprintf("current version no longer valid: %v", err))
	}
	target, err := version.Parse(request.TargetVersion)
	if err != nil {
		return domain.NewInternalError(fmt.Sprintf("target version no longer valid: %v", err))
	}

	if version.IsMajorJump(current, target) {
		assessment.RiskLevel = assessment.RiskLevel.Max(domain.RiskLevelHigh)
		assessment.BreakingChanges = true
	}
	return nil
}

// securitySignal escalates to Critical on a known vulnerability. A known
// vulnerability dominates severity regardless of version distance.
func (a *Assessor) securitySignal(
	ctx context.Context,
	request *domain.UpgradeRequest,
	_ []*domain.Change,
	assessment *domain.RiskAssessment,
) error {
	if a.checkTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.checkTimeout)
		defer cancel()
	}

	found, err := a.oracle.Check(ctx, request.PackageName, request.TargetVersion)
	if err != nil {
		// An oracle failure is not a negative finding.
		return domain.NewNetworkError(fmt.Sprintf("vulnerability check failed for %s@%s: %v",
			request.PackageName, request.TargetVersion, err))
	}

	if found {
		assessment.SecurityIssues = append(assessment.SecurityIssues,
			"Known security vulnerability detected")
		assessment.RiskLevel = assessment.RiskLevel.Max(domain.RiskLevelCritical)
	}
	return nil
}

// changeVolumeSignal affects only performance impact, never risk level.
func (a *Assessor) changeVolumeSignal(
	_ context.Context,
	_ *domain.UpgradeRequest,
	changes []*domain.Change,
	assessment *domain.RiskAssessment,
) error {
	if len(changes) > changeVolumeThreshold {
		assessment.PerformanceImpact = domain.PerformanceImpactMedium
	}
	return nil
}
