package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportType enum
type ReportType string

const (
	TypeRedFlag      ReportType = "red-flag"
	TypeIntervention ReportType = "intervention"
)

// ReportStatus enum. Kept in one place so a spelling change ("under
// investigation" vs "under-investigation") touches a single constant.
type ReportStatus string

const (
	StatusDraft              ReportStatus = "draft"
	StatusSubmitted          ReportStatus = "submitted"
	StatusUnderInvestigation ReportStatus = "under-investigation"
	StatusResolved           ReportStatus = "resolved"
	StatusRejected           ReportStatus = "rejected"
)

func ValidReportType(t ReportType) bool {
	return t == TypeRedFlag || t == TypeIntervention
}

func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusUnderInvestigation, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Report is a citizen-filed red-flag or intervention record.
// Images and Videos are stored as JSON-encoded string arrays in text columns;
// handlers never see the raw encoding (see media.go).
type Report struct {
	ID        uuid.UUID    `gorm:"type:char(36);primaryKey" json:"id"`
	CreatedBy uuid.UUID    `gorm:"type:char(36);not null;index" json:"createdBy"`
	Type      ReportType   `gorm:"size:20;not null" json:"type"`
	Title     string       `gorm:"size:255;not null" json:"title"`
	Comment   string       `gorm:"type:text;not null" json:"comment"`
	Location  string       `gorm:"size:255" json:"location"`
	Images    string       `gorm:"type:text" json:"-"`
	Videos    string       `gorm:"type:text" json:"-"`
	Status    ReportStatus `gorm:"size:30;not null;default:'draft';index" json:"status"`
	CreatedOn time.Time    `gorm:"autoCreateTime" json:"createdOn"`
	UpdatedOn time.Time    `gorm:"autoUpdateTime" json:"updatedOn"`
	Creator   User         `gorm:"foreignKey:CreatedBy" json:"-"`
}
