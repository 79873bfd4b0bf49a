package user

import (
	"context"
	"database/sql"
	"strings"

	"go-vacation/internal/domain"

	"gorm.io/gorm"
)

//go:generate mockgen -source=user_repo.go -destination=mock/user_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, u *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	FindAll(ctx context.Context, filter ListUsersFilter) ([]domain.User, error)
	Update(ctx context.Context, u *domain.User) error
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

// conn runs statements on the bound transaction when there is one.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	db := r.db.WithContext(ctx)
	if r.tx != nil {
		db.Statement.ConnPool = r.tx
	}
	return db
}

func (r *repository) Create(ctx context.Context, u *domain.User) error {
	return r.conn(ctx).Create(u).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var u domain.User
	err := r.conn(ctx).
		Preload("Team").
		First(&u, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	var u domain.User
	err := r.conn(ctx).
		Preload("Team").
		First(&u, "external_id = ?", externalID).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindAll(ctx context.Context, filter ListUsersFilter) ([]domain.User, error) {
	var users []domain.User

	db := r.conn(ctx).Preload("Team")
	if filter.TeamID != "" {
		db = db.Where("team_id = ?", filter.TeamID)
	}
	if filter.ManagersOnly {
		db = db.Where("is_manager = ?", true)
	}
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		like := "%" + q + "%"
		db = db.Where("LOWER(email) LIKE ? OR LOWER(display_name) LIKE ?", like, like)
	}

	err := db.Order("display_name ASC").Find(&users).Error
	return users, err
}

func (r *repository) Update(ctx context.Context, u *domain.User) error {
	return r.conn(ctx).Omit("Team").Save(u).Error
}

func (r *repository) Delete(ctx context.Context, id string) error {
	return r.conn(ctx).Delete(&domain.User{}, "id = ?", id).Error
}
