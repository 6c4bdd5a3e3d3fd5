// Package workflow holds the correspondence workflow rules: the stage
// transition table, the role-gated permission predicates, and the reviewer
// quorum aggregation. Everything here is pure; persistence and clock live in
// the service layer.
package workflow

import "devonxona/internal/domain"

// stageLabels maps each stage to its fixed display name.
var stageLabels = map[domain.Stage]string{
	domain.StageAssignment:        "Taqsimlash",
	domain.StageExecution:         "Ijro",
	domain.StageDrafting:          "Loyiha tayyorlash",
	domain.StageRevisionRequested: "Qayta ishlashga qaytarilgan",
	domain.StageFinalReview:       "Kelishuv",
	domain.StageSignature:         "Imzolash",
	domain.StageDispatch:          "Jo'natish",
	domain.StageArchived:          "Arxivlangan",
}

// StageLabel returns the display name for a stage, or the raw value if the
// stage is unknown.
func StageLabel(s domain.Stage) string {
	if label, ok := stageLabels[s]; ok {
		return label
	}
	return string(s)
}

// allowedTransitions is the complete edge set of the workflow. Stages advance
// strictly along these edges; REVISION_REQUESTED is the only back-edge target
// and always returns through FINAL_REVIEW on resubmission.
var allowedTransitions = map[domain.Stage][]domain.Stage{
	domain.StageAssignment:        {domain.StageExecution},
	domain.StageExecution:         {domain.StageDrafting},
	domain.StageDrafting:          {domain.StageFinalReview},
	domain.StageRevisionRequested: {domain.StageFinalReview},
	domain.StageFinalReview:       {domain.StageSignature, domain.StageRevisionRequested},
	domain.StageSignature:         {domain.StageDispatch},
	domain.StageDispatch:          {domain.StageArchived},
	domain.StageArchived:          nil,
}

// ValidStage reports whether s is a known workflow stage.
func ValidStage(s domain.Stage) bool {
	_, ok := stageLabels[s]
	return ok
}

// IsTerminal reports whether no further transitions are allowed from s.
func IsTerminal(s domain.Stage) bool {
	return ValidStage(s) && len(allowedTransitions[s]) == 0
}

// CanTransition reports whether the edge from -> to exists in the workflow.
func CanTransition(from, to domain.Stage) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// InitialStage returns the entry stage for a correspondence of the given
// type: incoming documents arrive for assignment, outgoing ones start as a
// draft.
func InitialStage(t domain.CorrespondenceType) domain.Stage {
	if t == domain.TypeKiruvchi {
		return domain.StageAssignment
	}
	return domain.StageDrafting
}
