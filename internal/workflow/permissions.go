package workflow

import "devonxona/internal/domain"

// Action names one user-initiated workflow operation.
type Action string

const (
	ActionAssignExecutor  Action = "assign_executor"
	ActionAssignInternal  Action = "assign_internal"
	ActionStartDrafting   Action = "start_drafting"
	ActionSubmitForReview Action = "submit_for_review"
	ActionApproveReview   Action = "approve_review"
	ActionRejectReview    Action = "reject_review"
	ActionSign            Action = "sign"
	ActionDispatch        Action = "dispatch"
)

// The predicates below are pure functions of (user, correspondence). They are
// the single authority on who may do what; the HTTP layer queries them for UI
// gating and the transition executor re-evaluates them against a fresh
// snapshot before committing.

// CanAssignExecutor reports whether u may assign the main executor.
func CanAssignExecutor(u *domain.User, c *domain.Correspondence) bool {
	return u.Role == domain.RoleBoshqaruv && c.Stage == domain.StageAssignment
}

// CanAssignInternal reports whether u may delegate to a department-internal
// employee. Only the current main executor, acting as a department head,
// may delegate, and only during execution.
func CanAssignInternal(u *domain.User, c *domain.Correspondence) bool {
	return u.Role == domain.RoleTarmoq &&
		c.MainExecutorID != nil && *c.MainExecutorID == u.ID &&
		c.Stage == domain.StageExecution
}

// CanStartDrafting reports whether u may move the document from execution
// into drafting. The main executor or the internal assignee opens the draft.
func CanStartDrafting(u *domain.User, c *domain.Correspondence) bool {
	if c.Stage != domain.StageExecution {
		return false
	}
	if c.MainExecutorID != nil && *c.MainExecutorID == u.ID {
		return true
	}
	return c.InternalAssigneeID != nil && *c.InternalAssigneeID == u.ID
}

// CanSubmitForReview reports whether u may send the draft to the review
// round. The author or the main executor may submit, from DRAFTING or after a
// rejection from REVISION_REQUESTED.
func CanSubmitForReview(u *domain.User, c *domain.Correspondence) bool {
	if c.Stage != domain.StageDrafting && c.Stage != domain.StageRevisionRequested {
		return false
	}
	if u.ID == c.AuthorID {
		return true
	}
	return c.MainExecutorID != nil && *c.MainExecutorID == u.ID
}

// CanReview reports whether u holds a pending reviewer entry in the current
// round. Approve and reject share this predicate.
func CanReview(u *domain.User, c *domain.Correspondence) bool {
	if c.Stage != domain.StageFinalReview {
		return false
	}
	for _, r := range c.Reviewers {
		if r.Round == c.ReviewRound && r.UserID == u.ID && r.Status == domain.ReviewerPending {
			return true
		}
	}
	return false
}

// CanSign reports whether u may sign the document.
func CanSign(u *domain.User, c *domain.Correspondence) bool {
	return u.Role == domain.RoleBoshqaruv && c.Stage == domain.StageSignature
}

// CanDispatch reports whether u may dispatch and archive the document.
func CanDispatch(u *domain.User, c *domain.Correspondence) bool {
	return u.Role == domain.RoleBankApparati && c.Stage == domain.StageDispatch
}

// AllowedActions returns every action u may currently take on c. The UI uses
// this to decide which buttons to show; it is advisory only, the executor
// re-checks on commit.
func AllowedActions(u *domain.User, c *domain.Correspondence) []Action {
	actions := []Action{}
	if CanAssignExecutor(u, c) {
		actions = append(actions, ActionAssignExecutor)
	}
	if CanAssignInternal(u, c) {
		actions = append(actions, ActionAssignInternal)
	}
	if CanStartDrafting(u, c) {
		actions = append(actions, ActionStartDrafting)
	}
	if CanSubmitForReview(u, c) {
		actions = append(actions, ActionSubmitForReview)
	}
	if CanReview(u, c) {
		actions = append(actions, ActionApproveReview, ActionRejectReview)
	}
	if CanSign(u, c) {
		actions = append(actions, ActionSign)
	}
	if CanDispatch(u, c) {
		actions = append(actions, ActionDispatch)
	}
	return actions
}
