package dto

import (
	"time"

	"github.com/google/uuid"

	"ireporter-backend/internal/models"
)

type CreateReportRequest struct {
	Type     models.ReportType   `json:"type"`
	Title    string              `json:"title"`
	Comment  string              `json:"comment"`
	Location string              `json:"location"`
	Images   []string            `json:"images"`
	Videos   []string            `json:"videos"`
	Status   models.ReportStatus `json:"status"`
}

// UpdateReportRequest carries the allow-listed mutable fields. Pointers
// distinguish "absent" from "set to zero value".
type UpdateReportRequest struct {
	Title    *string              `json:"title"`
	Comment  *string              `json:"comment"`
	Location *string              `json:"location"`
	Images   []string             `json:"images"`
	Videos   []string             `json:"videos"`
	Status   *models.ReportStatus `json:"status"`
}

type ChangeStatusRequest struct {
	Status models.ReportStatus `json:"status"`
}

// ListReportsQuery collects the optional list filters.
type ListReportsQuery struct {
	Owner  uuid.UUID
	Search string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

type ReportResponse struct {
	ID        uuid.UUID              `json:"id"`
	CreatedBy uuid.UUID              `json:"createdBy"`
	Type      models.ReportType      `json:"type"`
	Title     string                 `json:"title"`
	Comment   string                 `json:"comment"`
	Location  string                 `json:"location"`
	Images    []string               `json:"images"`
	Videos    []string               `json:"videos"`
	Status    models.ReportStatus    `json:"status"`
	CreatedOn time.Time              `json:"createdOn"`
	UpdatedOn time.Time              `json:"updatedOn"`
	History   []StatusChangeResponse `json:"history,omitempty"`
}

type StatusChangeResponse struct {
	ActorID    uuid.UUID           `json:"actorId"`
	FromStatus models.ReportStatus `json:"fromStatus"`
	ToStatus   models.ReportStatus `json:"toStatus"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// NewReportResponse decodes the stored media encodings so the API shape
// always carries ordered string arrays.
func NewReportResponse(r *models.Report) ReportResponse {
	return ReportResponse{
		ID:        r.ID,
		CreatedBy: r.CreatedBy,
		Type:      r.Type,
		Title:     r.Title,
		Comment:   r.Comment,
		Location:  r.Location,
		Images:    models.DecodeMediaList(r.Images),
		Videos:    models.DecodeMediaList(r.Videos),
		Status:    r.Status,
		CreatedOn: r.CreatedOn,
		UpdatedOn: r.UpdatedOn,
	}
}

type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int64            `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
