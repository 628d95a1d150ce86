package domain

// ErrorType classifies pipeline failures. The default ruleset only ever
// raises Validation; the remaining kinds are reserved for substituted
// collaborators (Network for a remote vulnerability oracle, Internal for
// an invariant violation such as a synthesizer bug).
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "Validation"
	ErrorTypeCompatibility ErrorType = "Compatibility"
	ErrorTypeSecurity      ErrorType = "Security"
	ErrorTypePerformance   ErrorType = "Performance"
	ErrorTypeNetwork       ErrorType = "Network"
	ErrorTypeInternal      ErrorType = "Internal"
)

// UpgradeError is the single typed failure the pipeline produces. The
// message is meant to let the caller correct the request without
// inspecting server logs.
type UpgradeError struct {
	Message string    `json:"error"`
	Type    ErrorType `json:"error_type"`
}

func (e *UpgradeError) Error() string {
	return e.Message
}

// NewValidationError builds a Validation error for a malformed request.
func NewValidationError(message string) *UpgradeError {
	return &UpgradeError{Message: message, Type: ErrorTypeValidation}
}

// NewInternalError wraps an invariant violation inside the pipeline.
func NewInternalError(message string) *UpgradeError {
	return &UpgradeError{Message: message, Type: ErrorTypeInternal}
}

// NewNetworkError wraps a collaborator I/O failure.
func NewNetworkError(message string) *UpgradeError {
	return &UpgradeError{Message: message, Type: ErrorTypeNetwork}
}
