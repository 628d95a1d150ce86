package domain

// UpgradeRequest describes a single proposed dependency upgrade.
// Metadata is opaque to the pipeline and carried through untouched.
type UpgradeRequest struct {
	Repository     string         `json:"repository"`      // "group/user-service"
	Ecosystem      string         `json:"ecosystem"`       // "npm", "cargo", "pip", "go"
	PackageName    string         `json:"package_name"`    // "lodash"
	CurrentVersion string         `json:"current_version"` // "1.0.0"
	TargetVersion  string         `json:"target_version"`  // "2.0.0"
	Metadata       map[string]any `json:"metadata"`
}

// UpgradeResponse is the complete verdict for one evaluated upgrade.
type UpgradeResponse struct {
	Success            bool           `json:"success"`
	Message            string         `json:"message"`
	Changes            []*Change      `json:"changes"`
	CompatibilityScore float64        `json:"compatibility_score"` // always in [0.0, 1.0]
	RiskAssessment     RiskAssessment `json:"risk_assessment"`
}

// Change is one proposed file mutation. Content is the full intended
// manifest fragment, not a diff against current repository state.
type Change struct {
	FilePath   string         `json:"file_path"` // "package.json"
	ChangeType ChangeType     `json:"change_type"`
	Content    string         `json:"content"`
	Metadata   map[string]any `json:"metadata"`
}

type ChangeType string

const (
	ChangeTypeAdd    ChangeType = "Add"
	ChangeTypeModify ChangeType = "Modify"
	ChangeTypeDelete ChangeType = "Delete"
)

// RiskAssessment combines the version-delta, security and change-volume
// signals into a single verdict.
type RiskAssessment struct {
	RiskLevel         RiskLevel         `json:"risk_level"`
	BreakingChanges   bool              `json:"breaking_changes"`
	SecurityIssues    []string          `json:"security_issues"`
	PerformanceImpact PerformanceImpact `json:"performance_impact"`
}

// RiskLevel is a totally ordered severity, Critical highest.
type RiskLevel string

const (
	RiskLevelLow      RiskLevel = "Low"
	RiskLevelMedium   RiskLevel = "Medium"
	RiskLevelHigh     RiskLevel = "High"
	RiskLevelCritical RiskLevel = "Critical"
)

func (r RiskLevel) rank() int {
	switch r {
	case RiskLevelLow:
		return 0
	case RiskLevelMedium:
		return 1
	case RiskLevelHigh:
		return 2
	case RiskLevelCritical:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether r is at least as severe as other.
func (r RiskLevel) AtLeast(other RiskLevel) bool {
	return r.rank() >= other.rank()
}

// Max returns the more severe of r and other.
func (r RiskLevel) Max(other RiskLevel) RiskLevel {
	if other.rank() > r.rank() {
		return other
	}
	return r
}

type PerformanceImpact string

const (
	PerformanceImpactNone   PerformanceImpact = "None"
	PerformanceImpactLow    PerformanceImpact = "Low"
	PerformanceImpactMedium PerformanceImpact = "Medium"
	PerformanceImpactHigh   PerformanceImpact = "High"
)
