package scope

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActiveTeamMembers restricts a vacations query to rows owned by users who
// currently belong to teamID and are not deleted.
func ActiveTeamMembers(teamID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Joins("JOIN users ON users.id = vacations.user_id AND users.deleted_at IS NULL").
			Where("users.team_id = ?", teamID)
	}
}

func StatusIn[S ~string](statuses []S) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(statuses) == 0 {
			return db
		}
		return db.Where("vacations.status IN ?", statuses)
	}
}

// OverlapsWindow keeps vacations that share at least one day with the
// closed window [from, to]. A nil bound is open.
func OverlapsWindow(from, to *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if from != nil {
			db = db.Where("vacations.end_date >= ?", *from)
		}
		if to != nil {
			db = db.Where("vacations.start_date <= ?", *to)
		}
		return db
	}
}
