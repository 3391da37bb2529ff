// Package lifecycle owns the report status state machine.
package lifecycle

import (
	"errors"

	"ireporter-backend/internal/models"
)

var ErrInvalidTransition = errors.New("invalid status transition")

// adminTransitions lists every status an admin may move a report to,
// keyed by current status. Draft is absent: a draft must be submitted by
// its owner before an admin acts on it. Resolved and rejected are terminal.
var adminTransitions = map[models.ReportStatus][]models.ReportStatus{
	models.StatusSubmitted: {
		models.StatusUnderInvestigation,
		models.StatusResolved,
		models.StatusRejected,
	},
	models.StatusUnderInvestigation: {
		models.StatusResolved,
		models.StatusRejected,
	},
}

// CanAdminTransition reports whether an admin may move a report from one
// status to another.
func CanAdminTransition(from, to models.ReportStatus) bool {
	for _, next := range adminTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CanOwnerTransition reports whether the report owner may move a report
// from one status to another. The only owner-driven transition is
// submitting a draft.
func CanOwnerTransition(from, to models.ReportStatus) bool {
	return from == models.StatusDraft && to == models.StatusSubmitted
}

// IsTerminal reports whether a status permits no further transitions.
func IsTerminal(s models.ReportStatus) bool {
	return s == models.StatusResolved || s == models.StatusRejected
}

// InitialStatus validates the status requested at creation time. Reports
// enter as drafts unless the create request asks for immediate submission.
func InitialStatus(requested models.ReportStatus) (models.ReportStatus, error) {
	switch requested {
	case "":
		return models.StatusDraft, nil
	case models.StatusDraft, models.StatusSubmitted:
		return requested, nil
	default:
		return "", ErrInvalidTransition
	}
}
