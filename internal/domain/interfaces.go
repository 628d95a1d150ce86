package domain

import "context"

type CompatibilityScorer interface {
	// returns a confidence score in [0.0, 1.0] for the ecosystem; never fails
	Score(ecosystem string) float64
}

type VulnerabilityOracle interface {
	// reports whether package@version is known-vulnerable; implementations
	// backed by remote feeds must honour ctx cancellation
	Check(ctx context.Context, packageName string, version string) (bool, error)
}

type ChangeSynthesizer interface {
	// produces the ordered file mutations implied by the upgrade; ecosystems
	// without a registered rule yield an empty slice
	Synthesize(request *UpgradeRequest) ([]*Change, error)
}

type RiskAssessor interface {
	// combines version delta, vulnerability findings and change volume
	Assess(ctx context.Context, request *UpgradeRequest, changes []*Change) (RiskAssessment, error)
}
