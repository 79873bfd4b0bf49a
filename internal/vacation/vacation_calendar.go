package vacation

import (
	"context"
	"encoding/json"
	"errors"

	"go-vacation/internal/authz"
	"go-vacation/internal/domain"
	"go-vacation/internal/shared/cachekey"
	"go-vacation/internal/shared/contextutil"
	vacationerrors "go-vacation/internal/vacation/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var calendarStatuses = []domain.VacationStatus{
	domain.VacationStatusPending,
	domain.VacationStatusApproved,
}

// TeamCalendar lists pending and approved vacations of the actor's team.
// Results are cached per team and date window; concurrent misses for the
// same window share one database load.
func (s *service) TeamCalendar(ctx context.Context, actor *domain.User, filter CalendarFilter) ([]VacationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := authz.Require(ctx, s.authorizer, s.chains.ViewTeamVacations(),
		authz.NewTeamViewContext(actor, authz.OperationViewTeamVacations)); err != nil {
		return nil, err
	}

	from, err := parseOptionalDate(filter.From)
	if err != nil {
		return nil, err
	}
	to, err := parseOptionalDate(filter.To)
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, vacationerrors.ErrInvalidDateRange
	}

	teamID := *actor.TeamID
	key := cachekey.TeamCalendar(teamID.String())
	field := cachekey.TeamCalendarField(filter.From, filter.To)

	if s.rdb != nil {
		cached, err := s.rdb.HGet(ctx, key, field).Result()
		if err == nil {
			var resp []VacationResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return resp, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			log.Warn("team calendar cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	v, err, _ := s.sf.Do(key+"|"+field, func() (any, error) {
		list, err := s.repo.FindTeam(ctx, TeamQuery{
			TeamID:   teamID,
			Statuses: calendarStatuses,
			From:     from,
			To:       to,
		})
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(list)
		if s.rdb != nil {
			s.storeCalendar(ctx, key, field, resp)
		}
		return resp, nil
	})
	if err != nil {
		log.Error("team calendar load failed", zap.String("team_id", teamID.String()), zap.Error(err))
		return nil, err
	}

	return v.([]VacationResponse), nil
}

func (s *service) storeCalendar(ctx context.Context, key, field string, resp []VacationResponse) {
	log := contextutil.GetLogger(ctx, s.logger)

	data, err := json.Marshal(resp)
	if err != nil {
		log.Error("team calendar marshal failed", zap.Error(err))
		return
	}
	if err := s.rdb.HSet(ctx, key, field, data).Err(); err != nil {
		log.Warn("team calendar cache write failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.rdb.Expire(ctx, key, s.opts.CalendarCacheTTL).Err(); err != nil {
		log.Warn("team calendar cache expire failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) evictCalendar(ctx context.Context, teamID *uuid.UUID) {
	if s.rdb == nil || teamID == nil {
		return
	}
	key := cachekey.TeamCalendar(teamID.String())
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		contextutil.GetLogger(ctx, s.logger).Error("failed to invalidate team calendar cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
