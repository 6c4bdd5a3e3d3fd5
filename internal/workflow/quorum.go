package workflow

import "devonxona/internal/domain"

// ReviewOutcome is the aggregate state of a review round.
type ReviewOutcome string

const (
	ReviewPending  ReviewOutcome = "PENDING"
	ReviewApproved ReviewOutcome = "APPROVED"
	ReviewRejected ReviewOutcome = "REJECTED"
)

// QuorumOutcome aggregates the reviewer entries of one round. A single
// rejection resolves the round immediately; approval requires every entry.
// There is no majority voting and no partial-approval state.
func QuorumOutcome(reviewers []domain.Reviewer) ReviewOutcome {
	for _, r := range reviewers {
		if r.Status == domain.ReviewerRejected {
			return ReviewRejected
		}
	}
	for _, r := range reviewers {
		if r.Status != domain.ReviewerApproved {
			return ReviewPending
		}
	}
	return ReviewApproved
}

// CurrentRound filters the reviewer entries belonging to the given round.
func CurrentRound(reviewers []domain.Reviewer, round int) []domain.Reviewer {
	var out []domain.Reviewer
	for _, r := range reviewers {
		if r.Round == round {
			out = append(out, r)
		}
	}
	return out
}
