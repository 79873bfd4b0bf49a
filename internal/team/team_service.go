package team

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-vacation/internal/authz"
	"go-vacation/internal/domain"
	"go-vacation/internal/shared/cachekey"
	"go-vacation/internal/shared/contextutil"
	teamerrors "go-vacation/internal/team/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const listCacheTTL = 30 * time.Minute

// UserCache drops a resolved user so the next request sees its new team.
type UserCache interface {
	Invalidate(externalID string)
}

//go:generate mockgen -source=team_service.go -destination=mock/team_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]TeamResponse, error)
	GetByID(ctx context.Context, id string) (TeamResponse, error)
	Create(ctx context.Context, actor *domain.User, req CreateTeamRequest) (TeamResponse, error)
	Update(ctx context.Context, actor *domain.User, id string, req UpdateTeamRequest) (TeamResponse, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	AddMember(ctx context.Context, actor *domain.User, teamID, userID string) (TeamResponse, error)
	RemoveMember(ctx context.Context, actor *domain.User, teamID, userID string) error
}

type service struct {
	db         *sql.DB
	repo       Repository
	authorizer authz.Authorizer
	chains     *authz.Factory
	users      UserCache
	rdb        *redis.Client
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	authorizer authz.Authorizer,
	users UserCache,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("team.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("team.service")
	}
	return &service{
		db:         db,
		repo:       repo,
		authorizer: authorizer,
		chains:     authz.NewFactory(),
		users:      users,
		rdb:        rdb,
		logger:     l,
	}
}

func (s *service) requireManager(ctx context.Context, actor *domain.User) error {
	return authz.Require(ctx, s.authorizer, s.chains.ManagerOperation(),
		authz.NewManagerContext(actor, authz.OperationManageTeams))
}

func (s *service) GetAll(ctx context.Context) ([]TeamResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if cached, err := s.rdb.Get(ctx, cachekey.TeamList).Result(); err == nil {
		var resp []TeamResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			return resp, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Warn("team list cache read failed", zap.Error(err))
	}

	teams, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TeamResponse, 0, len(teams))
	for i := range teams {
		resp = append(resp, mapToResponse(&teams[i]))
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := s.rdb.Set(ctx, cachekey.TeamList, data, listCacheTTL).Err(); err != nil {
			log.Warn("team list cache write failed", zap.Error(err))
		}
	}

	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (TeamResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}

	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapTeamError(err)
	}
	return mapToResponse(t), nil
}

func (s *service) Create(ctx context.Context, actor *domain.User, req CreateTeamRequest) (TeamResponse, error) {
	if err := s.requireManager(ctx, actor); err != nil {
		return TeamResponse{}, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return TeamResponse{}, teamerrors.ErrTeamNameRequired
	}

	t := &domain.Team{Name: name, Description: req.Description}
	if err := s.repo.Create(ctx, t); err != nil {
		return TeamResponse{}, err
	}

	s.evictList(ctx)
	contextutil.GetLogger(ctx, s.logger).Info("team created",
		zap.String("team_id", t.ID.String()),
		zap.String("name", t.Name),
	)
	return mapToResponse(t), nil
}

func (s *service) Update(ctx context.Context, actor *domain.User, id string, req UpdateTeamRequest) (TeamResponse, error) {
	if err := s.requireManager(ctx, actor); err != nil {
		return TeamResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return TeamResponse{}, teamerrors.ErrTeamNameRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TeamResponse{}, mapTeamError(err)
	}

	t.Name = name
	t.Description = req.Description
	if err := qtx.Update(ctx, t); err != nil {
		return TeamResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}

	s.evictList(ctx)
	return mapToResponse(t), nil
}

// Delete detaches every member before removing the team.
func (s *service) Delete(ctx context.Context, actor *domain.User, id string) error {
	if err := s.requireManager(ctx, actor); err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return teamerrors.ErrInvalidTeamID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapTeamError(err)
	}
	if err := qtx.ClearMembers(ctx, id); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, id); err != nil {
		return mapTeamError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	for _, m := range t.Members {
		s.users.Invalidate(m.ExternalID)
	}
	s.evictList(ctx)
	s.evictCalendar(ctx, id)

	contextutil.GetLogger(ctx, s.logger).Info("team deleted",
		zap.String("team_id", id),
		zap.Int("detached_members", len(t.Members)),
	)
	return nil
}

func (s *service) AddMember(ctx context.Context, actor *domain.User, teamID, userID string) (TeamResponse, error) {
	if err := s.requireManager(ctx, actor); err != nil {
		return TeamResponse{}, err
	}
	tid, err := uuid.Parse(teamID)
	if err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidTeamID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return TeamResponse{}, teamerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return TeamResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, teamID); err != nil {
		return TeamResponse{}, mapTeamError(err)
	}
	member, err := qtx.FindUser(ctx, userID)
	if err != nil {
		return TeamResponse{}, mapMemberError(err)
	}
	previous := member.TeamID

	if err := qtx.SetUserTeam(ctx, userID, &tid); err != nil {
		return TeamResponse{}, err
	}

	updated, err := qtx.FindByID(ctx, teamID)
	if err != nil {
		return TeamResponse{}, mapTeamError(err)
	}

	if err := tx.Commit(); err != nil {
		return TeamResponse{}, err
	}

	s.users.Invalidate(member.ExternalID)
	s.evictCalendar(ctx, teamID)
	if previous != nil && *previous != tid {
		s.evictCalendar(ctx, previous.String())
	}

	contextutil.GetLogger(ctx, s.logger).Info("team member added",
		zap.String("team_id", teamID),
		zap.String("member_id", userID),
	)
	return mapToResponse(updated), nil
}

func (s *service) RemoveMember(ctx context.Context, actor *domain.User, teamID, userID string) error {
	if err := s.requireManager(ctx, actor); err != nil {
		return err
	}
	tid, err := uuid.Parse(teamID)
	if err != nil {
		return teamerrors.ErrInvalidTeamID
	}
	if _, err := uuid.Parse(userID); err != nil {
		return teamerrors.ErrInvalidUserID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	member, err := qtx.FindUser(ctx, userID)
	if err != nil {
		return mapMemberError(err)
	}
	if !member.InTeam(tid) {
		return teamerrors.ErrMemberNotInTeam
	}
	if err := qtx.SetUserTeam(ctx, userID, nil); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.users.Invalidate(member.ExternalID)
	s.evictCalendar(ctx, teamID)

	contextutil.GetLogger(ctx, s.logger).Info("team member removed",
		zap.String("team_id", teamID),
		zap.String("member_id", userID),
	)
	return nil
}

func (s *service) evictList(ctx context.Context) {
	if err := s.rdb.Del(ctx, cachekey.TeamList).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("team list cache eviction failed", zap.Error(err))
	}
}

func (s *service) evictCalendar(ctx context.Context, teamID string) {
	if err := s.rdb.Del(ctx, cachekey.TeamCalendar(teamID)).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("team calendar cache eviction failed",
			zap.String("team_id", teamID),
			zap.Error(err),
		)
	}
}

func mapToResponse(t *domain.Team) TeamResponse {
	resp := TeamResponse{
		ID:          t.ID.String(),
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
	if len(t.Members) > 0 {
		resp.Members = make([]TeamMemberResponse, 0, len(t.Members))
		for _, m := range t.Members {
			resp.Members = append(resp.Members, TeamMemberResponse{
				ID:          m.ID.String(),
				Email:       m.Email,
				DisplayName: m.DisplayName,
				IsManager:   m.IsManager,
			})
		}
	}
	return resp
}
