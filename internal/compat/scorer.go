package compat

// Scorer maps an ecosystem identifier to a confidence score for the
// upgrade heuristics applied to it.
type Scorer struct {
	base    float64
	factors map[string]float64
	unknown float64
}

const (
	// Ecosystem-agnostic upgrade heuristics are moderately reliable.
	baseConfidence = 0.8
	// Ecosystems without a synthesis rule get reduced confidence.
	unknownEcosystemFactor = 0.7
)

// ecosystemFactors reflects how well change synthesis and vulnerability
// tooling cover each ecosystem. npm highest; additions go here, nowhere else.
var ecosystemFactors = map[string]float64{
	"npm":   1.0,
	"go":    0.95,
	"cargo": 0.9,
	"pip":   0.85,
}

// NewScorer creates a scorer with the default confidence table.
func NewScorer() *Scorer {
	return &Scorer{
		base:    baseConfidence,
		factors: ecosystemFactors,
		unknown: unknownEcosystemFactor,
	}
}

// Score returns the confidence score for the ecosystem. The result is
// clamped to 1.0: the current constants cannot exceed it, the clamp is
// the documented invariant for future factor changes. Never fails.
func (s *Scorer) Score(ecosystem string) float64 {
	factor, ok := s.factors[ecosystem]
	if !ok {
		factor = s.unknown
	}

	score := s.base * factor
	if score > 1.0 {
		score = 1.0
	}
	return score
}
