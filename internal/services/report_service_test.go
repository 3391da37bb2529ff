package services

import (
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ireporter-backend/internal/dto"
	"ireporter-backend/internal/lifecycle"
	"ireporter-backend/internal/models"
	"ireporter-backend/internal/policy"
)

func seedUser(t *testing.T, db *gorm.DB, role string) policy.Actor {
	t.Helper()
	user := models.User{
		ID:        uuid.New(),
		Firstname: "Test",
		Lastname:  "User",
		Email:     uuid.NewString() + "@example.com",
		Password:  "x",
		Role:      role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return policy.Actor{ID: user.ID, Role: user.Role}
}

func createReportRequest() *dto.CreateReportRequest {
	return &dto.CreateReportRequest{
		Type:     models.TypeRedFlag,
		Title:    "Broken streetlight",
		Comment:  "Contractor paid, light never installed",
		Location: "6.5244,3.3792",
		Images:   []string{"uploads/one.jpg", "uploads/two.jpg"},
		Videos:   []string{"uploads/clip.mp4"},
	}
}

func TestCreateGetRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)

	created, err := svc.Create(owner, createReportRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != models.StatusDraft {
		t.Errorf("default status = %s, want draft", created.Status)
	}
	if created.CreatedBy != owner.ID {
		t.Errorf("createdBy = %s, want actor id %s", created.CreatedBy, owner.ID)
	}

	got, err := svc.Get(owner, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	wantImages := []string{"uploads/one.jpg", "uploads/two.jpg"}
	if !reflect.DeepEqual(got.Images, wantImages) {
		t.Errorf("images did not round-trip: got %v, want %v", got.Images, wantImages)
	}
	if !reflect.DeepEqual(got.Videos, []string{"uploads/clip.mp4"}) {
		t.Errorf("videos did not round-trip: got %v", got.Videos)
	}
}

func TestCreateValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)

	req := createReportRequest()
	req.Type = "gossip"
	if _, err := svc.Create(owner, req); !errors.Is(err, ErrValidation) {
		t.Errorf("unknown type should fail validation, got %v", err)
	}

	req = createReportRequest()
	req.Title = "  "
	if _, err := svc.Create(owner, req); !errors.Is(err, ErrValidation) {
		t.Errorf("blank title should fail validation, got %v", err)
	}

	req = createReportRequest()
	req.Status = models.StatusResolved
	if _, err := svc.Create(owner, req); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("creating directly in a terminal state should fail, got %v", err)
	}
}

func TestCreateImmediateSubmission(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)

	req := createReportRequest()
	req.Status = models.StatusSubmitted
	created, err := svc.Create(owner, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != models.StatusSubmitted {
		t.Errorf("status = %s, want submitted", created.Status)
	}
}

func TestGetAccessControl(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)
	stranger := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)

	created, err := svc.Create(owner, createReportRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(stranger, created.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger get should be forbidden, got %v", err)
	}
	if _, err := svc.Get(admin, created.ID); err != nil {
		t.Errorf("admin get should succeed, got %v", err)
	}
	if _, err := svc.Get(owner, uuid.New()); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("missing id should be not found, got %v", err)
	}
}

func TestListScoping(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)

	if _, err := svc.Create(alice, createReportRequest()); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	bobReq := createReportRequest()
	bobReq.Title = "Blocked drainage on Second Avenue"
	if _, err := svc.Create(bob, bobReq); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	aliceList, err := svc.List(alice, dto.ListReportsQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if aliceList.Total != 1 || len(aliceList.Reports) != 1 {
		t.Fatalf("alice should only see her own report, got %d", aliceList.Total)
	}
	if aliceList.Reports[0].CreatedBy != alice.ID {
		t.Error("alice's list contains someone else's report")
	}

	// Even an explicit owner filter cannot widen a user's scope.
	sneaky, err := svc.List(alice, dto.ListReportsQuery{Owner: bob.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if sneaky.Total != 1 || sneaky.Reports[0].CreatedBy != alice.ID {
		t.Error("owner filter must not override actor scoping for non-admins")
	}

	adminList, err := svc.List(admin, dto.ListReportsQuery{})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if adminList.Total != 2 {
		t.Errorf("admin should see all reports, got %d", adminList.Total)
	}

	search, err := svc.List(admin, dto.ListReportsQuery{Search: "drainage"})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if search.Total != 1 || search.Reports[0].Title != "Blocked drainage on Second Avenue" {
		t.Errorf("search over title should match one report, got %d", search.Total)
	}
}

func TestUpdateOwnerDraftOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)
	stranger := seedUser(t, db, models.RoleUser)

	created, err := svc.Create(owner, createReportRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newTitle := "Broken streetlight on First Street"
	updated, err := svc.Update(owner, created.ID, &dto.UpdateReportRequest{Title: &newTitle})
	if err != nil {
		t.Fatalf("owner draft update failed: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("title = %q, want %q", updated.Title, newTitle)
	}

	if _, err := svc.Update(stranger, created.ID, &dto.UpdateReportRequest{Title: &newTitle}); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger update should be forbidden, got %v", err)
	}

	// Submit, then the owner loses write access.
	submitted := models.StatusSubmitted
	if _, err := svc.Update(owner, created.ID, &dto.UpdateReportRequest{Status: &submitted}); err != nil {
		t.Fatalf("submission failed: %v", err)
	}
	if _, err := svc.Update(owner, created.ID, &dto.UpdateReportRequest{Title: &newTitle}); !errors.Is(err, ErrForbidden) {
		t.Errorf("owner update after submission should be forbidden, got %v", err)
	}
}

func TestUpdateReencodesMedia(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)

	created, err := svc.Create(owner, createReportRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newImages := []string{"uploads/three.jpg"}
	updated, err := svc.Update(owner, created.ID, &dto.UpdateReportRequest{Images: newImages})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !reflect.DeepEqual(updated.Images, newImages) {
		t.Errorf("images = %v, want %v", updated.Images, newImages)
	}
	// Videos untouched.
	if !reflect.DeepEqual(updated.Videos, []string{"uploads/clip.mp4"}) {
		t.Errorf("videos should be unchanged, got %v", updated.Videos)
	}
}

func TestChangeStatusTerminal(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)

	req := createReportRequest()
	req.Status = models.StatusSubmitted
	created, err := svc.Create(owner, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.ChangeStatus(admin, created.ID, models.StatusResolved); err != nil {
		t.Fatalf("submitted -> resolved failed: %v", err)
	}

	for _, target := range []models.ReportStatus{
		models.StatusSubmitted,
		models.StatusUnderInvestigation,
		models.StatusRejected,
		models.StatusDraft,
	} {
		if _, err := svc.ChangeStatus(admin, created.ID, target); !errors.Is(err, lifecycle.ErrInvalidTransition) {
			t.Errorf("resolved -> %s should be invalid, got %v", target, err)
		}
	}

	// The failed attempts must not have touched the stored status.
	var stored models.Report
	if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Status != models.StatusResolved {
		t.Errorf("stored status mutated to %s after rejected transitions", stored.Status)
	}
}

func TestChangeStatusNonAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)

	req := createReportRequest()
	req.Status = models.StatusSubmitted
	created, err := svc.Create(owner, req)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.ChangeStatus(owner, created.ID, models.StatusResolved); !errors.Is(err, ErrForbidden) {
		t.Errorf("non-admin status change should be forbidden, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	owner := seedUser(t, db, models.RoleUser)
	stranger := seedUser(t, db, models.RoleUser)

	created, err := svc.Create(owner, createReportRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(stranger, created.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("stranger delete should be forbidden, got %v", err)
	}
	if err := svc.Delete(owner, created.ID); err != nil {
		t.Fatalf("owner delete of draft failed: %v", err)
	}
	if err := svc.Delete(owner, created.ID); !errors.Is(err, ErrReportNotFound) {
		t.Errorf("second delete should be not found, got %v", err)
	}
}

// TestReportLifecycleScenario walks the full life of a red-flag report:
// draft, failed early admin action, owner edit, submission, investigation,
// resolution, and the audit trail left behind.
func TestReportLifecycleScenario(t *testing.T) {
	db := setupTestDB(t)
	svc := NewReportService(db)
	userA := seedUser(t, db, models.RoleUser)
	userB := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)

	created, err := svc.Create(userA, createReportRequest())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Get(userB, created.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("user B get should be forbidden, got %v", err)
	}
	if _, err := svc.Get(admin, created.ID); err != nil {
		t.Errorf("admin get should succeed, got %v", err)
	}

	// Admin cannot act on a draft.
	if _, err := svc.ChangeStatus(admin, created.ID, models.StatusResolved); !errors.Is(err, lifecycle.ErrInvalidTransition) {
		t.Errorf("resolving a draft should be invalid, got %v", err)
	}

	// Owner edits while draft.
	comment := "Contractor paid twice, light never installed"
	if _, err := svc.Update(userA, created.ID, &dto.UpdateReportRequest{Comment: &comment}); err != nil {
		t.Fatalf("owner draft edit failed: %v", err)
	}

	// Owner submits.
	submitted := models.StatusSubmitted
	if _, err := svc.Update(userA, created.ID, &dto.UpdateReportRequest{Status: &submitted}); err != nil {
		t.Fatalf("submission failed: %v", err)
	}

	// Admin walks it to resolution.
	if _, err := svc.ChangeStatus(admin, created.ID, models.StatusUnderInvestigation); err != nil {
		t.Fatalf("submitted -> under-investigation failed: %v", err)
	}
	final, err := svc.ChangeStatus(admin, created.ID, models.StatusResolved)
	if err != nil {
		t.Fatalf("under-investigation -> resolved failed: %v", err)
	}
	if final.Status != models.StatusResolved {
		t.Errorf("final status = %s, want resolved", final.Status)
	}

	// Terminal: nothing moves anymore.
	for _, target := range []models.ReportStatus{
		models.StatusSubmitted, models.StatusUnderInvestigation, models.StatusRejected,
	} {
		if _, err := svc.ChangeStatus(admin, created.ID, target); !errors.Is(err, lifecycle.ErrInvalidTransition) {
			t.Errorf("resolved -> %s should be invalid, got %v", target, err)
		}
	}

	// The audit trail records every transition in order.
	got, err := svc.Get(admin, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(got.History) != 3 {
		t.Fatalf("history length = %d, want 3", len(got.History))
	}
	wantSteps := []struct {
		from, to models.ReportStatus
	}{
		{models.StatusDraft, models.StatusSubmitted},
		{models.StatusSubmitted, models.StatusUnderInvestigation},
		{models.StatusUnderInvestigation, models.StatusResolved},
	}
	for i, step := range wantSteps {
		if got.History[i].FromStatus != step.from || got.History[i].ToStatus != step.to {
			t.Errorf("history[%d] = %s -> %s, want %s -> %s",
				i, got.History[i].FromStatus, got.History[i].ToStatus, step.from, step.to)
		}
	}
	if got.History[0].ActorID != userA.ID {
		t.Error("submission audit entry should record the owner as actor")
	}
	if got.History[1].ActorID != admin.ID {
		t.Error("admin transition audit entry should record the admin as actor")
	}
}
