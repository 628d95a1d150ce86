package usecases

import (
	"context"
	"errors"
	"fmt"

	"upgrade-advisor/internal/domain"
	"upgrade-advisor/internal/version"

	"go.uber.org/zap"
)

// EvaluateUseCase sequences the upgrade evaluation pipeline: request
// validation, compatibility scoring, change synthesis, risk assessment.
// It is a pure function of its input and configuration; no state is
// shared between invocations.
type EvaluateUseCase struct {
	scorer      domain.CompatibilityScorer
	synthesizer domain.ChangeSynthesizer
	assessor    domain.RiskAssessor
	logger      *zap.Logger
}

// NewEvaluateUseCase creates the pipeline with dependency injection.
func NewEvaluateUseCase(
	scorer domain.CompatibilityScorer,
	synthesizer domain.ChangeSynthesizer,
	assessor domain.RiskAssessor,
	logger *zap.Logger,
) *EvaluateUseCase {
	return &EvaluateUseCase{
		scorer:      scorer,
		synthesizer: synthesizer,
		assessor:    assessor,
		logger:      logger,
	}
}

// Execute evaluates one upgrade request. It fails fast on the first
// validation defect; on failure the returned error is always a
// *domain.UpgradeError.
func (uc *EvaluateUseCase) Execute(ctx context.Context, request *domain.UpgradeRequest) (*domain.UpgradeResponse, error) {
	uc.logger.Info("Evaluating upgrade",
		zap.String("repository", request.Repository),
		zap.String("ecosystem", request.Ecosystem),
		zap.String("package", request.PackageName),
		zap.String("current_version", request.CurrentVersion),
		zap.String("target_version", request.TargetVersion))

	if err := validateRequest(request); err != nil {
		uc.logger.Warn("Request validation failed", zap.Error(err))
		return nil, err
	}

	compatibilityScore := uc.scorer.Score(request.Ecosystem)

	changes, err := uc.synthesizer.Synthesize(request)
	if err != nil {
		uc.logger.Error("Change synthesis failed", zap.Error(err))
		return nil, asUpgradeError(err, domain.ErrorTypeInternal)
	}

	assessment, err := uc.assessor.Assess(ctx, request, changes)
	if err != nil {
		uc.logger.Error("Risk assessment failed", zap.Error(err))
		return nil, asUpgradeError(err, domain.ErrorTypeInternal)
	}

	uc.logger.Info("Upgrade evaluated",
		zap.String("package", request.PackageName),
		zap.Float64("compatibility_score", compatibilityScore),
		zap.Int("changes", len(changes)),
		zap.String("risk_level", string(assessment.RiskLevel)))

	return &domain.UpgradeResponse{
		Success:            true,
		Message:            "Upgrade processed successfully",
		Changes:            changes,
		CompatibilityScore: compatibilityScore,
		RiskAssessment:     assessment,
	}, nil
}

// validateRequest applies the fail-fast checks in fixed order; the first
// failing check wins.
func validateRequest(request *domain.UpgradeRequest) error {
	if request.Repository == "" {
		return domain.NewValidationError("Repository cannot be empty")
	}
	if request.PackageName == "" {
		return domain.NewValidationError("Package name cannot be empty")
	}
	if _, err := version.Parse(request.CurrentVersion); err != nil {
		return domain.NewValidationError(fmt.Sprintf("Invalid current version: %s", request.CurrentVersion))
	}
	if _, err := version.Parse(request.TargetVersion); err != nil {
		return domain.NewValidationError(fmt.Sprintf("Invalid target version: %s", request.TargetVersion))
	}
	return nil
}

// asUpgradeError passes typed collaborator errors through unchanged and
// wraps everything else with the fallback type.
func asUpgradeError(err error, fallback domain.ErrorType) *domain.UpgradeError {
	var upgradeErr *domain.UpgradeError
	if errors.As(err, &upgradeErr) {
		return upgradeErr
	}
	return &domain.UpgradeError{Message: err.Error(), Type: fallback}
}
