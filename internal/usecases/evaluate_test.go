package usecases_test

import (
	"context"
	"errors"
	"testing"

	"upgrade-advisor/internal/compat"
	"upgrade-advisor/internal/domain"
	"upgrade-advisor/internal/risk"
	"upgrade-advisor/internal/synth"
	"upgrade-advisor/internal/usecases"
	"upgrade-advisor/internal/vulnerability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUseCase() *usecases.EvaluateUseCase {
	logger := zap.NewNop()
	return usecases.NewEvaluateUseCase(
		compat.NewScorer(),
		synth.NewSynthesizer(),
		risk.NewAssessor(vulnerability.NewPlaceholder(), 0, logger),
		logger,
	)
}

func newRequest() *domain.UpgradeRequest {
	return &domain.UpgradeRequest{
		Repository:     "test/repo",
		Ecosystem:      "npm",
		PackageName:    "lodash",
		CurrentVersion: "1.0.0",
		TargetVersion:  "2.0.0",
		Metadata:       map[string]any{},
	}
}

func TestEvaluateUseCase_Execute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := newUseCase()

	response, err := uc.Execute(ctx, newRequest())
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, "Upgrade processed successfully", response.Message)
	assert.InDelta(t, 0.8, response.CompatibilityScore, 1e-9)

	require.Len(t, response.Changes, 1)
	assert.Equal(t, "package.json", response.Changes[0].FilePath)
	assert.Equal(t, domain.ChangeTypeModify, response.Changes[0].ChangeType)

	assert.Equal(t, domain.RiskLevelHigh, response.RiskAssessment.RiskLevel)
	assert.True(t, response.RiskAssessment.BreakingChanges)
	assert.Empty(t, response.RiskAssessment.SecurityIssues)
	assert.Equal(t, domain.PerformanceImpactNone, response.RiskAssessment.PerformanceImpact)
}

func TestEvaluateUseCase_ExecuteVulnerablePackage(t *testing.T) {
	t.Parallel()
	uc := newUseCase()

	request := newRequest()
	request.PackageName = "vulnerable-lib"

	response, err := uc.Execute(context.Background(), request)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Equal(t, domain.RiskLevelCritical, response.RiskAssessment.RiskLevel)
	assert.NotEmpty(t, response.RiskAssessment.SecurityIssues)
}

func TestEvaluateUseCase_ExecuteUnknownEcosystem(t *testing.T) {
	t.Parallel()
	uc := newUseCase()

	request := newRequest()
	request.Ecosystem = "nuget"

	response, err := uc.Execute(context.Background(), request)
	require.NoError(t, err)

	assert.True(t, response.Success)
	assert.Empty(t, response.Changes)
	assert.InDelta(t, 0.8*0.7, response.CompatibilityScore, 1e-9)
}

func TestEvaluateUseCase_ExecuteValidation(t *testing.T) {
	t.Parallel()
	uc := newUseCase()

	tests := []struct {
		name        string
		mutate      func(*domain.UpgradeRequest)
		wantMessage string
	}{
		{
			name:        "empty repository",
			mutate:      func(r *domain.UpgradeRequest) { r.Repository = "" },
			wantMessage: "Repository cannot be empty",
		},
		{
			name:        "empty package name",
			mutate:      func(r *domain.UpgradeRequest) { r.PackageName = "" },
			wantMessage: "Package name cannot be empty",
		},
		{
			name:        "invalid current version",
			mutate:      func(r *domain.UpgradeRequest) { r.CurrentVersion = "not_a_version" },
			wantMessage: "Invalid current version: not_a_version",
		},
		{
			name:        "invalid target version",
			mutate:      func(r *domain.UpgradeRequest) { r.TargetVersion = "1" },
			wantMessage: "Invalid target version: 1",
		},
		{
			name: "first failing check wins",
			mutate: func(r *domain.UpgradeRequest) {
				r.Repository = ""
				r.PackageName = ""
				r.CurrentVersion = "bad"
			},
			wantMessage: "Repository cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			request := newRequest()
			tt.mutate(request)

			response, err := uc.Execute(context.Background(), request)
			assert.Nil(t, response)
			require.Error(t, err)

			var upgradeErr *domain.UpgradeError
			require.ErrorAs(t, err, &upgradeErr)
			assert.Equal(t, domain.ErrorTypeValidation, upgradeErr.Type)
			assert.Equal(t, tt.wantMessage, upgradeErr.Message)
		})
	}
}

// failingOracle simulates a substituted oracle with an unreachable backend.
type failingOracle struct{}

func (failingOracle) Check(ctx context.Context, packageName string, version string) (bool, error) {
	return false, errors.New("advisory feed unreachable")
}

func TestEvaluateUseCase_OracleFailureSurfacesAsNetwork(t *testing.T) {
	t.Parallel()
	logger := zap.NewNop()
	uc := usecases.NewEvaluateUseCase(
		compat.NewScorer(),
		synth.NewSynthesizer(),
		risk.NewAssessor(failingOracle{}, 0, logger),
		logger,
	)

	response, err := uc.Execute(context.Background(), newRequest())
	assert.Nil(t, response)
	require.Error(t, err)

	var upgradeErr *domain.UpgradeError
	require.ErrorAs(t, err, &upgradeErr)
	assert.Equal(t, domain.ErrorTypeNetwork, upgradeErr.Type)
}

func TestEvaluateUseCase_MetadataPassesThrough(t *testing.T) {
	t.Parallel()
	uc := newUseCase()

	request := newRequest()
	request.Metadata = map[string]any{
		"pr_number": float64(42),
		"labels":    []any{"dependencies", "automerge"},
		"nested":    map[string]any{"initiator": "scheduler"},
	}

	response, err := uc.Execute(context.Background(), request)
	require.NoError(t, err)
	assert.True(t, response.Success)
	// The pipeline never reads metadata; the request is not mutated.
	assert.Equal(t, float64(42), request.Metadata["pr_number"])
	assert.Len(t, request.Metadata, 3)
}
