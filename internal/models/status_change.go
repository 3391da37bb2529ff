package models

import (
	"time"

	"github.com/google/uuid"
)

// StatusChange is one entry in a report's audit trail. Rows are append-only:
// written once when a transition commits, never updated or reordered.
type StatusChange struct {
	ID         uuid.UUID    `gorm:"type:char(36);primaryKey" json:"id"`
	ReportID   uuid.UUID    `gorm:"type:char(36);not null;index" json:"reportId"`
	ActorID    uuid.UUID    `gorm:"type:char(36);not null" json:"actorId"`
	FromStatus ReportStatus `gorm:"size:30;not null" json:"fromStatus"`
	ToStatus   ReportStatus `gorm:"size:30;not null" json:"toStatus"`
	CreatedAt  time.Time    `json:"createdAt"`
	Report     Report       `gorm:"foreignKey:ReportID" json:"-"`
}
