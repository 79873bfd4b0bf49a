package vacation

import (
	"context"
	"database/sql"
	"time"

	"go-vacation/internal/domain"
	"go-vacation/internal/shared/scope"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TeamQuery struct {
	TeamID   uuid.UUID
	Statuses []domain.VacationStatus
	From     *time.Time
	To       *time.Time
}

//go:generate mockgen -source=vacation_repo.go -destination=mock/vacation_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, v *domain.Vacation) error
	FindByID(ctx context.Context, id string) (*domain.Vacation, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vacation, error)
	FindMine(ctx context.Context, userID uuid.UUID, status string) ([]domain.Vacation, error)
	FindTeam(ctx context.Context, q TeamQuery) ([]domain.Vacation, error)
	Update(ctx context.Context, v *domain.Vacation) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, v *domain.Vacation) error {
	return r.conn(ctx).Omit("User").Create(v).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*domain.Vacation, error) {
	var v domain.Vacation
	err := r.conn(ctx).
		Preload("User").
		First(&v, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindByUser returns every vacation of the user regardless of status; the
// overlap rule does its own status filtering.
func (r *repository) FindByUser(ctx context.Context, userID uuid.UUID) ([]domain.Vacation, error) {
	var out []domain.Vacation
	err := r.conn(ctx).
		Where("user_id = ?", userID).
		Order("start_date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) FindMine(ctx context.Context, userID uuid.UUID, status string) ([]domain.Vacation, error) {
	var out []domain.Vacation

	db := r.conn(ctx).Where("user_id = ?", userID)
	if status != "" {
		db = db.Where("status = ?", status)
	}

	err := db.Order("start_date DESC").Find(&out).Error
	return out, err
}

func (r *repository) FindTeam(ctx context.Context, q TeamQuery) ([]domain.Vacation, error) {
	var out []domain.Vacation
	err := r.conn(ctx).
		Preload("User").
		Scopes(
			scope.ActiveTeamMembers(q.TeamID),
			scope.StatusIn(q.Statuses),
			scope.OverlapsWindow(q.From, q.To),
		).
		Order("vacations.start_date ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) Update(ctx context.Context, v *domain.Vacation) error {
	return r.conn(ctx).Omit("User").Save(v).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&domain.Vacation{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
