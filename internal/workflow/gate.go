// internal/workflow/gate.go
package workflow

import "github.com/scanplan/backend/internal/domain"

// The cluster workflow is draft -> review -> approved, with reject
// resetting review/approved back to draft. Publish out of draft is a
// commercial action and only exists in forecast mode; the second publish
// (review -> approved) and reject are finance actions.

// CanEdit reports whether a cluster is editable for the given role, mode
// and status. Finance never edits. Commercial edits everything in
// forecast mode, and only drafts in budget mode. The answer must be
// recomputed per request: it changes whenever role or mode changes.
func CanEdit(role domain.Role, mode domain.Mode, status domain.Status) bool {
	if role != domain.RoleCommercial {
		return false
	}
	if mode == domain.ModeForecast {
		return true
	}
	return status == domain.StatusDraft
}

// Publish computes the status after a publish action, or an
// InvalidTransitionError when the (role, mode, status) combination does
// not allow one.
func Publish(role domain.Role, mode domain.Mode, status domain.Status) (domain.Status, error) {
	switch status {
	case domain.StatusDraft:
		if mode != domain.ModeForecast || role != domain.RoleCommercial {
			return status, &domain.InvalidTransitionError{Action: "publish", From: status, Mode: mode, Role: role}
		}
		return domain.StatusReview, nil
	case domain.StatusReview:
		if role != domain.RoleFinance {
			return status, &domain.InvalidTransitionError{Action: "publish", From: status, Mode: mode, Role: role}
		}
		return domain.StatusApproved, nil
	default:
		return status, &domain.InvalidTransitionError{Action: "publish", From: status, Mode: mode, Role: role}
	}
}

// Reject computes the status after a reject action. Only finance rejects,
// and only out of review or approved; the reset applies to the whole
// cluster at once.
func Reject(role domain.Role, mode domain.Mode, status domain.Status) (domain.Status, error) {
	if role != domain.RoleFinance || (status != domain.StatusReview && status != domain.StatusApproved) {
		return status, &domain.InvalidTransitionError{Action: "reject", From: status, Mode: mode, Role: role}
	}
	return domain.StatusDraft, nil
}
