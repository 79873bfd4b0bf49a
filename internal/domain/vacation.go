package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VacationType string

const (
	VacationTypeVacation VacationType = "VACATION"
	VacationTypeSick     VacationType = "SICK"
	VacationTypePersonal VacationType = "PERSONAL"
	VacationTypeCompTime VacationType = "COMP_TIME"
	VacationTypeOther    VacationType = "OTHER"
)

func (t VacationType) Valid() bool {
	switch t {
	case VacationTypeVacation, VacationTypeSick, VacationTypePersonal, VacationTypeCompTime, VacationTypeOther:
		return true
	default:
		return false
	}
}

type VacationStatus string

const (
	VacationStatusPending   VacationStatus = "PENDING"
	VacationStatusApproved  VacationStatus = "APPROVED"
	VacationStatusRejected  VacationStatus = "REJECTED"
	VacationStatusCancelled VacationStatus = "CANCELLED"
)

const DateLayout = "2006-01-02"

type Vacation struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_vacations_user_dates"`

	StartDate time.Time      `gorm:"type:date;not null;index:idx_vacations_user_dates"`
	EndDate   time.Time      `gorm:"type:date;not null;index:idx_vacations_user_dates"`
	Type      VacationType   `gorm:"type:varchar(20);not null;default:'VACATION'"`
	Status    VacationStatus `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_vacations_status"`

	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	Notes           *string    `gorm:"type:text"`
	RejectionReason *string    `gorm:"type:text"`

	User *User `gorm:"foreignKey:UserID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// Overlaps treats both ranges as closed intervals, so sharing a single
// boundary day counts as an overlap.
func (v Vacation) Overlaps(other Vacation) bool {
	return !v.StartDate.After(other.EndDate) && !v.EndDate.Before(other.StartDate)
}

// TotalDays counts calendar days in the inclusive range.
func (v Vacation) TotalDays() int {
	return int(v.EndDate.Sub(v.StartDate).Hours()/24) + 1
}
