package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ExternalID  string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_external_id"`
	Email       string     `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	DisplayName string     `gorm:"type:varchar(255);not null"`
	Department  *string    `gorm:"type:varchar(255)"`
	TeamID      *uuid.UUID `gorm:"type:uuid;index:idx_users_team"`
	IsManager   bool       `gorm:"not null;default:false"`

	Team *Team `gorm:"foreignKey:TeamID;references:ID"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// HasTeam reports whether the user currently belongs to a team.
func (u *User) HasTeam() bool {
	return u != nil && u.TeamID != nil
}

// InTeam reports whether the user belongs to the given team.
func (u *User) InTeam(teamID uuid.UUID) bool {
	return u.HasTeam() && *u.TeamID == teamID
}

// Identity is the caller as asserted by the external identity provider.
type Identity struct {
	ExternalID  string
	Email       string
	DisplayName string
}
