package user

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-vacation/internal/authz"
	"go-vacation/internal/domain"
	"go-vacation/internal/shared/contextutil"
	usererrors "go-vacation/internal/user/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Options struct {
	// AutoRegister creates a local user the first time an unknown identity
	// is resolved.
	AutoRegister bool
	CacheTTL     time.Duration
}

//go:generate mockgen -source=user_service.go -destination=mock/user_service_mock.go -package=mock
type Service interface {
	Resolve(ctx context.Context, identity domain.Identity) (*domain.User, error)
	Invalidate(externalID string)
	Me(ctx context.Context, actor *domain.User) (UserResponse, error)
	GetAll(ctx context.Context, actor *domain.User, filter ListUsersFilter) ([]UserResponse, error)
	GetByID(ctx context.Context, id string) (UserResponse, error)
	SetManager(ctx context.Context, actor *domain.User, id string, isManager bool) (UserResponse, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	authorizer authz.Authorizer
	chains     *authz.Factory
	cache      *resolvedCache
	opts       Options
	logger     *zap.Logger
}

func NewService(db *sql.DB, repo Repository, authorizer authz.Authorizer, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("user.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("user.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		authorizer: authorizer,
		chains:     authz.NewFactory(),
		cache:      newResolvedCache(opts.CacheTTL),
		opts:       opts,
		logger:     l,
	}
}

func (s *service) Resolve(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if u, ok := s.cache.Get(identity.ExternalID); ok {
		return u, nil
	}

	u, err := s.repo.FindByExternalID(ctx, identity.ExternalID)
	if err == nil {
		s.cache.Set(u)
		return u, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Error("find user by external id failed", zap.String("external_id", identity.ExternalID), zap.Error(err))
		return nil, err
	}

	if !s.opts.AutoRegister {
		return nil, usererrors.ErrUserNotRegistered
	}

	displayName := strings.TrimSpace(identity.DisplayName)
	if displayName == "" {
		displayName = identity.Email
	}
	u = &domain.User{
		ExternalID:  identity.ExternalID,
		Email:       strings.ToLower(strings.TrimSpace(identity.Email)),
		DisplayName: displayName,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		mapped := mapRepositoryError(err)
		if !errors.Is(mapped, usererrors.ErrExternalIDAlreadyExists) {
			log.Warn("auto-register user failed", zap.String("external_id", identity.ExternalID), zap.Error(err))
			return nil, mapped
		}

		// a concurrent request registered the same identity first
		u, err = s.repo.FindByExternalID(ctx, identity.ExternalID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}
	} else {
		log.Info("user auto-registered",
			zap.String("user_id", u.ID.String()),
			zap.String("external_id", u.ExternalID),
		)
	}

	s.cache.Set(u)
	return u, nil
}

func (s *service) Invalidate(externalID string) {
	s.cache.Delete(externalID)
}

func (s *service) Me(ctx context.Context, actor *domain.User) (UserResponse, error) {
	if actor == nil {
		return UserResponse{}, usererrors.ErrUserNotRegistered
	}

	// the actor may come from the resolve cache; read the team name fresh
	u, err := s.repo.FindByID(ctx, actor.ID.String())
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(u), nil
}

func (s *service) GetAll(ctx context.Context, actor *domain.User, filter ListUsersFilter) ([]UserResponse, error) {
	if err := authz.Require(ctx, s.authorizer, s.chains.ManagerOperation(),
		authz.NewManagerContext(actor, authz.OperationManageUsers)); err != nil {
		return nil, err
	}

	users, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, mapToResponse(&users[i]))
	}
	return out, nil
}

func (s *service) GetByID(ctx context.Context, id string) (UserResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(u), nil
}

func (s *service) SetManager(ctx context.Context, actor *domain.User, id string, isManager bool) (UserResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := authz.Require(ctx, s.authorizer, s.chains.ManagerOperation(),
		authz.NewManagerContext(actor, authz.OperationManageUsers)); err != nil {
		return UserResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return UserResponse{}, usererrors.ErrInvalidUserID
	}
	if actor.ID.String() == id {
		return UserResponse{}, usererrors.ErrCannotChangeOwnRole
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return UserResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	u.IsManager = isManager
	if err := qtx.Update(ctx, u); err != nil {
		return UserResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return UserResponse{}, err
	}

	s.cache.Delete(u.ExternalID)
	log.Info("manager flag changed",
		zap.String("target_user_id", id),
		zap.Bool("is_manager", isManager),
	)
	return mapToResponse(u), nil
}

func (s *service) Delete(ctx context.Context, actor *domain.User, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := authz.Require(ctx, s.authorizer, s.chains.ManagerOperation(),
		authz.NewManagerContext(actor, authz.OperationManageUsers)); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return usererrors.ErrInvalidUserID
	}
	if actor.ID.String() == id {
		return usererrors.ErrCannotDeleteSelf
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	u, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.cache.Delete(u.ExternalID)
	log.Info("user deleted", zap.String("target_user_id", id))
	return nil
}

func mapToResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Department:  u.Department,
		IsManager:   u.IsManager,
		Role:        domain.RoleOf(u),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
	if u.TeamID != nil {
		teamID := u.TeamID.String()
		resp.TeamID = &teamID
	}
	if u.Team != nil {
		resp.TeamName = u.Team.Name
	}
	return resp
}
