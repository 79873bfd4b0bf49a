package team

import (
	"context"
	"database/sql"

	"go-vacation/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=team_repo.go -destination=mock/team_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, t *domain.Team) error
	FindAll(ctx context.Context) ([]domain.Team, error)
	FindByID(ctx context.Context, id string) (*domain.Team, error)
	Update(ctx context.Context, t *domain.Team) error
	Delete(ctx context.Context, id string) error
	FindUser(ctx context.Context, userID string) (*domain.User, error)
	SetUserTeam(ctx context.Context, userID string, teamID *uuid.UUID) error
	ClearMembers(ctx context.Context, teamID string) error
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

func (r *repository) Create(ctx context.Context, t *domain.Team) error {
	return r.conn(ctx).Omit("Members").Create(t).Error
}

func (r *repository) FindAll(ctx context.Context) ([]domain.Team, error) {
	var teams []domain.Team
	err := r.conn(ctx).Order("name ASC").Find(&teams).Error
	return teams, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*domain.Team, error) {
	var t domain.Team
	err := r.conn(ctx).
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_name ASC")
		}).
		First(&t, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *repository) Update(ctx context.Context, t *domain.Team) error {
	return r.conn(ctx).
		Model(&domain.Team{}).
		Where("id = ?", t.ID).
		Updates(map[string]any{
			"name":        t.Name,
			"description": t.Description,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.conn(ctx).Delete(&domain.Team{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindUser(ctx context.Context, userID string) (*domain.User, error) {
	var u domain.User
	if err := r.conn(ctx).First(&u, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SetUserTeam moves the user's single team reference; nil removes it.
func (r *repository) SetUserTeam(ctx context.Context, userID string, teamID *uuid.UUID) error {
	return r.conn(ctx).
		Model(&domain.User{}).
		Where("id = ?", userID).
		Update("team_id", teamID).Error
}

func (r *repository) ClearMembers(ctx context.Context, teamID string) error {
	return r.conn(ctx).
		Model(&domain.User{}).
		Where("team_id = ?", teamID).
		Update("team_id", nil).Error
}
