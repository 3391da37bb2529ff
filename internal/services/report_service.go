package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ireporter-backend/internal/dto"
	"ireporter-backend/internal/lifecycle"
	"ireporter-backend/internal/models"
	"ireporter-backend/internal/policy"
)

var (
	ErrReportNotFound = errors.New("report not found")
	ErrForbidden      = errors.New("forbidden")
)

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db}
}

// Create persists a new report. CreatedBy is always the acting user; any
// value in the request body is ignored.
func (s *ReportService) Create(actor policy.Actor, req *dto.CreateReportRequest) (*dto.ReportResponse, error) {
	if !models.ValidReportType(req.Type) {
		return nil, fmt.Errorf("%w: type must be red-flag or intervention", ErrValidation)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(req.Comment) == "" {
		return nil, fmt.Errorf("%w: comment is required", ErrValidation)
	}

	status, err := lifecycle.InitialStatus(req.Status)
	if err != nil {
		return nil, err
	}

	report := models.Report{
		ID:        uuid.New(),
		CreatedBy: actor.ID,
		Type:      req.Type,
		Title:     req.Title,
		Comment:   req.Comment,
		Location:  req.Location,
		Images:    models.EncodeMediaList(req.Images),
		Videos:    models.EncodeMediaList(req.Videos),
		Status:    status,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	resp := dto.NewReportResponse(&report)
	return &resp, nil
}

// Get returns a single report with its status history. Non-owners without
// the admin role are refused before any data leaves the service.
func (s *ReportService) Get(actor policy.Actor, id uuid.UUID) (*dto.ReportResponse, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, ErrReportNotFound
	}

	if !policy.CanRead(actor, &report) {
		return nil, ErrForbidden
	}

	var changes []models.StatusChange
	if err := s.db.Where("report_id = ?", id).Order("created_at ASC").Find(&changes).Error; err != nil {
		return nil, fmt.Errorf("failed to load status history: %w", err)
	}

	resp := dto.NewReportResponse(&report)
	for _, ch := range changes {
		resp.History = append(resp.History, dto.StatusChangeResponse{
			ActorID:    ch.ActorID,
			FromStatus: ch.FromStatus,
			ToStatus:   ch.ToStatus,
			CreatedAt:  ch.CreatedAt,
		})
	}
	return &resp, nil
}

// List returns reports newest-first. Non-admin actors are always scoped to
// their own reports regardless of the requested owner filter.
func (s *ReportService) List(actor policy.Actor, q dto.ListReportsQuery) (*dto.ListReportsResponse, error) {
	if !actor.IsAdmin() {
		q.Owner = actor.ID
	}

	query := s.db.Model(&models.Report{})
	if q.Owner != uuid.Nil {
		query = query.Where("created_by = ?", q.Owner)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("title LIKE ? OR comment LIKE ?", like, like)
	}
	if q.From != nil {
		query = query.Where("created_on >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("created_on <= ?", *q.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}

	var reports []models.Report
	if err := query.Order("created_on DESC").Limit(q.Limit).Offset(q.Offset).Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}

	resp := dto.ListReportsResponse{
		Reports: make([]dto.ReportResponse, 0, len(reports)),
		Total:   total,
		Limit:   q.Limit,
		Offset:  q.Offset,
	}
	for i := range reports {
		resp.Reports = append(resp.Reports, dto.NewReportResponse(&reports[i]))
	}
	return &resp, nil
}

// Update applies the allow-listed partial fields. The only status change it
// accepts is the owner submitting a draft; everything else goes through
// ChangeStatus. Authorization and transition checks run before any write.
func (s *ReportService) Update(actor policy.Actor, id uuid.UUID, req *dto.UpdateReportRequest) (*dto.ReportResponse, error) {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, ErrReportNotFound
	}

	if !policy.CanWrite(actor, &report) {
		return nil, ErrForbidden
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		updates["title"] = *req.Title
	}
	if req.Comment != nil {
		updates["comment"] = *req.Comment
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Images != nil {
		updates["images"] = models.EncodeMediaList(req.Images)
	}
	if req.Videos != nil {
		updates["videos"] = models.EncodeMediaList(req.Videos)
	}

	var submitted bool
	if req.Status != nil {
		if !models.ValidReportStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *req.Status)
		}
		if *req.Status != report.Status {
			if !lifecycle.CanOwnerTransition(report.Status, *req.Status) {
				return nil, lifecycle.ErrInvalidTransition
			}
			updates["status"] = *req.Status
			submitted = true
		}
	}

	if len(updates) > 0 {
		err := s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&report).Updates(updates).Error; err != nil {
				return err
			}
			if submitted {
				change := models.StatusChange{
					ID:         uuid.New(),
					ReportID:   report.ID,
					ActorID:    actor.ID,
					FromStatus: models.StatusDraft,
					ToStatus:   *req.Status,
				}
				return tx.Create(&change).Error
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to update report: %w", err)
		}
	}

	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("failed to reload report: %w", err)
	}
	resp := dto.NewReportResponse(&report)
	return &resp, nil
}

// ChangeStatus is the admin-driven lifecycle transition. An illegal target
// status fails before anything is written, and a successful transition
// commits the new status and its audit entry together.
func (s *ReportService) ChangeStatus(actor policy.Actor, id uuid.UUID, newStatus models.ReportStatus) (*dto.ReportResponse, error) {
	if !policy.CanChangeStatus(actor) {
		return nil, ErrForbidden
	}
	if !models.ValidReportStatus(newStatus) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, newStatus)
	}

	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return nil, ErrReportNotFound
	}

	fromStatus := report.Status
	if !lifecycle.CanAdminTransition(fromStatus, newStatus) {
		return nil, lifecycle.ErrInvalidTransition
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&report).Update("status", newStatus).Error; err != nil {
			return err
		}
		change := models.StatusChange{
			ID:         uuid.New(),
			ReportID:   report.ID,
			ActorID:    actor.ID,
			FromStatus: fromStatus,
			ToStatus:   newStatus,
		}
		return tx.Create(&change).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to change status: %w", err)
	}

	report.Status = newStatus
	resp := dto.NewReportResponse(&report)
	return &resp, nil
}

// Delete removes a report and its audit trail.
func (s *ReportService) Delete(actor policy.Actor, id uuid.UUID) error {
	var report models.Report
	if err := s.db.First(&report, "id = ?", id).Error; err != nil {
		return ErrReportNotFound
	}

	if !policy.CanWrite(actor, &report) {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("report_id = ?", id).Delete(&models.StatusChange{}).Error; err != nil {
			return err
		}
		return tx.Delete(&report).Error
	})
}
