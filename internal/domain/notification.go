package domain

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventID    string    `gorm:"type:varchar(64);not null;uniqueIndex:uq_notifications_event"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user"`
	VacationID uuid.UUID `gorm:"type:uuid;not null"`
	Message    string    `gorm:"type:text;not null"`
	IsRead     bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	ReadAt     *time.Time
}
