package workflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"devonxona/internal/domain"
	"devonxona/internal/workflow"
)

func TestCanTransition_HappyPath(t *testing.T) {
	path := []domain.Stage{
		domain.StageAssignment,
		domain.StageExecution,
		domain.StageDrafting,
		domain.StageFinalReview,
		domain.StageSignature,
		domain.StageDispatch,
		domain.StageArchived,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, workflow.CanTransition(path[i], path[i+1]),
			"expected %s -> %s to be allowed", path[i], path[i+1])
	}
}

func TestCanTransition_RevisionLoop(t *testing.T) {
	assert.True(t, workflow.CanTransition(domain.StageFinalReview, domain.StageRevisionRequested))
	assert.True(t, workflow.CanTransition(domain.StageRevisionRequested, domain.StageFinalReview))

	// The back-edge only returns through review, never skips ahead.
	assert.False(t, workflow.CanTransition(domain.StageRevisionRequested, domain.StageSignature))
	assert.False(t, workflow.CanTransition(domain.StageRevisionRequested, domain.StageDrafting))
}

func TestCanTransition_NoSkippingOrReversing(t *testing.T) {
	assert.False(t, workflow.CanTransition(domain.StageAssignment, domain.StageDrafting))
	assert.False(t, workflow.CanTransition(domain.StageAssignment, domain.StageSignature))
	assert.False(t, workflow.CanTransition(domain.StageExecution, domain.StageAssignment))
	assert.False(t, workflow.CanTransition(domain.StageSignature, domain.StageFinalReview))
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, workflow.IsTerminal(domain.StageArchived))
	assert.False(t, workflow.IsTerminal(domain.StageDispatch))
	assert.False(t, workflow.IsTerminal(domain.Stage("NOPE")))
}

func TestInitialStage(t *testing.T) {
	assert.Equal(t, domain.StageAssignment, workflow.InitialStage(domain.TypeKiruvchi))
	assert.Equal(t, domain.StageDrafting, workflow.InitialStage(domain.TypeChiquvchi))
}

func TestStageLabel(t *testing.T) {
	assert.Equal(t, "Kelishuv", workflow.StageLabel(domain.StageFinalReview))
	assert.Equal(t, "UNKNOWN", workflow.StageLabel(domain.Stage("UNKNOWN")))
}
