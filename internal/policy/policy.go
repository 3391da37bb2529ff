// Package policy is the single authorization decision point for report
// operations. Every rule is a stateless function of (actor, report).
package policy

import (
	"github.com/google/uuid"

	"ireporter-backend/internal/models"
)

// Actor is the authenticated identity performing an operation.
type Actor struct {
	ID   uuid.UUID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanRead allows admins to read any report and owners to read their own.
func CanRead(actor Actor, report *models.Report) bool {
	return actor.IsAdmin() || actor.ID == report.CreatedBy
}

// CanWrite covers update and delete. Admins hold full rights at any status;
// an owner may only write while the report is still a draft. A report that
// has left draft is immutable to its owner so submitted records keep their
// audit integrity.
func CanWrite(actor Actor, report *models.Report) bool {
	if actor.IsAdmin() {
		return true
	}
	return actor.ID == report.CreatedBy && report.Status == models.StatusDraft
}

// CanChangeStatus gates the admin status-change operation. Transition
// legality is the lifecycle package's concern, not this one's.
func CanChangeStatus(actor Actor) bool {
	return actor.IsAdmin()
}
