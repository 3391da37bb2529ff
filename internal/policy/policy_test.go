package policy

import (
	"testing"

	"github.com/google/uuid"

	"ireporter-backend/internal/models"
)

func TestCanRead(t *testing.T) {
	owner := Actor{ID: uuid.New(), Role: models.RoleUser}
	stranger := Actor{ID: uuid.New(), Role: models.RoleUser}
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	report := &models.Report{CreatedBy: owner.ID, Status: models.StatusDraft}

	if !CanRead(owner, report) {
		t.Error("owner must read their own report")
	}
	if CanRead(stranger, report) {
		t.Error("a non-owner must not read someone else's report")
	}
	if !CanRead(admin, report) {
		t.Error("admin must read any report")
	}
}

func TestCanWrite(t *testing.T) {
	owner := Actor{ID: uuid.New(), Role: models.RoleUser}
	stranger := Actor{ID: uuid.New(), Role: models.RoleUser}
	admin := Actor{ID: uuid.New(), Role: models.RoleAdmin}

	draft := &models.Report{CreatedBy: owner.ID, Status: models.StatusDraft}
	submitted := &models.Report{CreatedBy: owner.ID, Status: models.StatusSubmitted}
	resolved := &models.Report{CreatedBy: owner.ID, Status: models.StatusResolved}

	if !CanWrite(owner, draft) {
		t.Error("owner must be able to edit their draft")
	}
	if CanWrite(owner, submitted) {
		t.Error("a report that left draft is immutable to its owner")
	}
	if CanWrite(owner, resolved) {
		t.Error("a resolved report is immutable to its owner")
	}
	if CanWrite(stranger, draft) {
		t.Error("a non-owner must never write")
	}
	for _, r := range []*models.Report{draft, submitted, resolved} {
		if !CanWrite(admin, r) {
			t.Errorf("admin must hold write rights at status %s", r.Status)
		}
	}
}

func TestCanChangeStatus(t *testing.T) {
	if CanChangeStatus(Actor{ID: uuid.New(), Role: models.RoleUser}) {
		t.Error("status changes are admin-only")
	}
	if !CanChangeStatus(Actor{ID: uuid.New(), Role: models.RoleAdmin}) {
		t.Error("admin must be allowed to change status")
	}
}
