package vacation_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-vacation/internal/authz"
	"go-vacation/internal/domain"
	"go-vacation/internal/events"
	"go-vacation/internal/messaging/kafka"
	kafkaMock "go-vacation/internal/messaging/kafka/mock"
	"go-vacation/internal/metrics"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/cachekey"
	"go-vacation/internal/shared/outcome"
	"go-vacation/internal/vacation"
	vacationerrors "go-vacation/internal/vacation/errors"
	vacationMock "go-vacation/internal/vacation/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	redismock redismock.ClientMock
	repo      *vacationMock.MockRepository
	outbox    *kafkaMock.MockOutboxRepository
	service   vacation.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rdb, redisMock := redismock.NewClientMock()

	repo := vacationMock.NewMockRepository(ctrl)
	repo.EXPECT().WithTx(gomock.Any()).Return(repo).AnyTimes()
	outbox := kafkaMock.NewMockOutboxRepository(ctrl)
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).AnyTimes()

	svc := vacation.NewService(db, repo, outbox, authz.NewAuthorizer(zap.NewNop()), rdb, vacation.Options{}, zap.NewNop())

	return &serviceDeps{
		sqlMock:   sqlMock,
		redismock: redisMock,
		repo:      repo,
		outbox:    outbox,
		service:   svc,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func day(v string) time.Time {
	t, _ := time.Parse(domain.DateLayout, v)
	return t
}

type fixture struct {
	teamA, teamB uuid.UUID
	owner        *domain.User
	teammate     *domain.User
	manager      *domain.User
	otherManager *domain.User
	loner        *domain.User
}

func newFixture() fixture {
	f := fixture{teamA: uuid.New(), teamB: uuid.New()}
	f.owner = &domain.User{ID: uuid.New(), DisplayName: "Owner", TeamID: &f.teamA}
	f.teammate = &domain.User{ID: uuid.New(), TeamID: &f.teamA}
	f.manager = &domain.User{ID: uuid.New(), TeamID: &f.teamA, IsManager: true}
	f.otherManager = &domain.User{ID: uuid.New(), TeamID: &f.teamB, IsManager: true}
	f.loner = &domain.User{ID: uuid.New()}
	return f
}

func (f fixture) pending() *domain.Vacation {
	return &domain.Vacation{
		ID:        uuid.New(),
		UserID:    f.owner.ID,
		User:      f.owner,
		StartDate: day("2026-03-02"),
		EndDate:   day("2026-03-06"),
		Type:      domain.VacationTypeVacation,
		Status:    domain.VacationStatusPending,
	}
}

func codeOf(err error) string {
	return apperror.ToHTTP(err).Code
}

func TestVacationService_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	req := vacation.CreateVacationRequest{StartDate: "2026-03-02", EndDate: "2026-03-06"}

	t.Run("unresolved user", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, nil, req)

		assert.Equal(t, outcome.CodeUserNotFound, codeOf(err))
		assert.Equal(t, 401, apperror.ToHTTP(err).Status)
	})

	t.Run("user without team", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, f.loner, req)

		assert.Equal(t, outcome.CodeTeamMembershipRequired, codeOf(err))
		assert.Equal(t, 400, apperror.ToHTTP(err).Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("edge validation", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(ctx, f.owner, vacation.CreateVacationRequest{StartDate: "03/02/2026", EndDate: "2026-03-06"})
		assert.ErrorIs(t, err, vacationerrors.ErrInvalidDateFormat)

		_, err = deps.service.Create(ctx, f.owner, vacation.CreateVacationRequest{StartDate: "2026-03-07", EndDate: "2026-03-06"})
		assert.ErrorIs(t, err, vacationerrors.ErrInvalidDateRange)

		_, err = deps.service.Create(ctx, f.owner, vacation.CreateVacationRequest{StartDate: "2026-03-02", EndDate: "2026-03-06", Type: "SABBATICAL"})
		assert.ErrorIs(t, err, vacationerrors.ErrInvalidVacationType)
	})

	t.Run("success persists pending and evicts team calendar", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return(nil, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, v *domain.Vacation) error {
				assert.Equal(t, domain.VacationStatusPending, v.Status)
				assert.Equal(t, domain.VacationTypeSick, v.Type)
				assert.Equal(t, f.owner.ID, v.UserID)
				v.ID = uuid.New()
				return nil
			})
		deps.redismock.ExpectDel(cachekey.TeamCalendar(f.teamA.String())).SetVal(1)

		resp, err := deps.service.Create(ctx, f.owner, vacation.CreateVacationRequest{
			StartDate: "2026-03-02", EndDate: "2026-03-06", Type: "sick",
		})

		require.NoError(t, err)
		assert.Equal(t, "PENDING", resp.Status)
		assert.Equal(t, 5, resp.TotalDays)
		assert.Equal(t, "Owner", resp.UserName)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("overlap with approved vacation", func(t *testing.T) {
		deps := setupServiceTest(t)
		metrics.ValidationFailuresTotal.Reset()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return([]domain.Vacation{{
			ID:        uuid.New(),
			UserID:    f.owner.ID,
			StartDate: day("2026-03-06"),
			EndDate:   day("2026-03-10"),
			Status:    domain.VacationStatusApproved,
		}}, nil)

		_, err := deps.service.Create(ctx, f.owner, req)

		assert.Equal(t, outcome.CodeVacationOverlap, codeOf(err))
		assert.Equal(t, 409, apperror.ToHTTP(err).Status)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ValidationFailuresTotal.WithLabelValues(outcome.CodeVacationOverlap)))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("pending vacations do not block", func(t *testing.T) {
		deps := setupServiceTest(t)

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return([]domain.Vacation{{
			ID:        uuid.New(),
			StartDate: day("2026-03-02"),
			EndDate:   day("2026-03-06"),
			Status:    domain.VacationStatusPending,
		}}, nil)
		deps.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(cachekey.TeamCalendar(f.teamA.String())).SetVal(1)

		_, err := deps.service.Create(ctx, f.owner, req)
		assert.NoError(t, err)
	})

	t.Run("lookup failure propagates", func(t *testing.T) {
		deps := setupServiceTest(t)
		boom := errors.New("db down")

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return(nil, boom)

		_, err := deps.service.Create(ctx, f.owner, req)

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 500, apperror.ToHTTP(err).Status)
	})
}

func TestVacationService_Validate(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	req := vacation.CreateVacationRequest{StartDate: "2026-03-02", EndDate: "2026-03-06"}

	t.Run("valid", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return(nil, nil)

		resp, err := deps.service.Validate(ctx, f.owner, req)

		require.NoError(t, err)
		assert.True(t, resp.Valid)
		assert.NotNil(t, resp.Failures)
		assert.Empty(t, resp.Failures)
	})

	t.Run("reports overlap", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return([]domain.Vacation{{
			ID:        uuid.New(),
			StartDate: day("2026-03-01"),
			EndDate:   day("2026-03-02"),
			Status:    domain.VacationStatusApproved,
		}}, nil)

		resp, err := deps.service.Validate(ctx, f.owner, req)

		require.NoError(t, err)
		assert.False(t, resp.Valid)
		require.Len(t, resp.Failures, 1)
		assert.Equal(t, outcome.CodeVacationOverlap, resp.Failures[0].Code)
	})
}

func TestVacationService_GetByID(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	tests := []struct {
		name     string
		actor    *domain.User
		wantCode string
	}{
		{"owner", f.owner, ""},
		{"manager of owner's team", f.manager, ""},
		{"teammate", f.teammate, outcome.CodeOwnershipRequired},
		{"manager of another team", f.otherManager, outcome.CodeOwnershipRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupServiceTest(t)
			v := f.pending()
			deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)

			resp, err := deps.service.GetByID(ctx, tt.actor, v.ID.String())

			if tt.wantCode == "" {
				require.NoError(t, err)
				assert.Equal(t, v.ID.String(), resp.ID)
				return
			}
			assert.Equal(t, tt.wantCode, codeOf(err))
			assert.Equal(t, 403, apperror.ToHTTP(err).Status)
		})
	}

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		id := uuid.NewString()
		deps.repo.EXPECT().FindByID(gomock.Any(), id).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetByID(ctx, f.owner, id)
		assert.ErrorIs(t, err, vacationerrors.ErrVacationNotFound)
	})
}

func TestVacationService_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	req := vacation.UpdateVacationRequest{StartDate: "2026-03-03", EndDate: "2026-03-04", Type: "PERSONAL"}

	t.Run("manager cannot edit", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Update(ctx, f.manager, v.ID.String(), req)

		assert.Equal(t, outcome.CodeOwnershipRequired, codeOf(err))
	})

	t.Run("only pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		v.Status = domain.VacationStatusApproved
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Update(ctx, f.owner, v.ID.String(), req)

		assert.ErrorIs(t, err, vacationerrors.ErrNotPending)
	})

	t.Run("success excludes itself from overlap", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		self := *v
		self.Status = domain.VacationStatusApproved

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return([]domain.Vacation{self}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(cachekey.TeamCalendar(f.teamA.String())).SetVal(1)

		resp, err := deps.service.Update(ctx, f.owner, v.ID.String(), req)

		require.NoError(t, err)
		assert.Equal(t, "2026-03-03", resp.StartDate)
		assert.Equal(t, "PERSONAL", resp.Type)
		assert.Equal(t, 2, resp.TotalDays)
	})
}

func TestVacationService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	t.Run("approved cannot be deleted", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		v.Status = domain.VacationStatusApproved
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)

		err := deps.service.Delete(ctx, f.owner, v.ID.String())

		assert.ErrorIs(t, err, vacationerrors.ErrNotPending)
	})

	t.Run("manager of owner's team withdraws", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().Delete(gomock.Any(), v.ID.String()).Return(nil)
		deps.redismock.ExpectDel(cachekey.TeamCalendar(f.teamA.String())).SetVal(1)

		err := deps.service.Delete(ctx, f.manager, v.ID.String())

		require.NoError(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestVacationService_Approve(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	t.Run("success writes outbox event", func(t *testing.T) {
		deps := setupServiceTest(t)
		metrics.VacationDecisionsTotal.Reset()
		v := f.pending()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return([]domain.Vacation{*v}, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, got *domain.Vacation) error {
				assert.Equal(t, domain.VacationStatusApproved, got.Status)
				require.NotNil(t, got.ApprovedBy)
				assert.Equal(t, f.manager.ID, *got.ApprovedBy)
				return nil
			})
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, e kafka.OutboxEvent) error {
				assert.Equal(t, events.VacationLifecycleTopic, e.Topic)
				assert.Equal(t, events.VacationDecidedType, e.EventType)
				assert.Equal(t, kafka.OutboxStatusPending, e.Status)
				assert.Equal(t, v.ID.String(), e.AggregateID)

				var payload events.VacationDecidedEvent
				require.NoError(t, json.Unmarshal(e.Payload, &payload))
				assert.Equal(t, e.ID, payload.EventID)
				assert.Equal(t, "APPROVED", payload.Status)
				assert.Equal(t, f.owner.ID.String(), payload.UserID)
				assert.Equal(t, f.teamA.String(), payload.TeamID)
				return nil
			})
		deps.redismock.ExpectDel(cachekey.TeamCalendar(f.teamA.String())).SetVal(1)

		resp, err := deps.service.Approve(ctx, f.manager, v.ID.String())

		require.NoError(t, err)
		assert.Equal(t, "APPROVED", resp.Status)
		assert.Equal(t, float64(1), testutil.ToFloat64(metrics.VacationDecisionsTotal.WithLabelValues("APPROVED")))
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	denials := []struct {
		name     string
		actor    *domain.User
		wantCode string
	}{
		{"employee", f.teammate, outcome.CodeManagerRoleRequired},
		{"manager of another team", f.otherManager, outcome.CodeSameTeamRequired},
	}
	for _, tt := range denials {
		t.Run(tt.name, func(t *testing.T) {
			deps := setupServiceTest(t)
			v := f.pending()
			expectTx(t, deps.sqlMock, false)
			deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)

			_, err := deps.service.Approve(ctx, tt.actor, v.ID.String())

			assert.Equal(t, tt.wantCode, codeOf(err))
			assert.Equal(t, 403, apperror.ToHTTP(err).Status)
		})
	}

	t.Run("owner left the team", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		v.User = &domain.User{ID: f.owner.ID}
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Approve(ctx, f.manager, v.ID.String())

		assert.Equal(t, outcome.CodeSameTeamRequired, codeOf(err))
	})

	t.Run("already decided", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		v.Status = domain.VacationStatusRejected
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)

		_, err := deps.service.Approve(ctx, f.manager, v.ID.String())

		assert.ErrorIs(t, err, vacationerrors.ErrInvalidStatusTransition)
	})

	t.Run("overlap re-checked at approval", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().FindByUser(gomock.Any(), f.owner.ID).Return([]domain.Vacation{{
			ID:        uuid.New(),
			StartDate: day("2026-03-05"),
			EndDate:   day("2026-03-05"),
			Status:    domain.VacationStatusApproved,
		}}, nil)

		_, err := deps.service.Approve(ctx, f.manager, v.ID.String())

		assert.Equal(t, outcome.CodeVacationOverlap, codeOf(err))
	})
}

func TestVacationService_Reject(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	t.Run("reason required", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Reject(ctx, f.manager, uuid.NewString(), "  ")
		assert.ErrorIs(t, err, vacationerrors.ErrRejectionReasonRequired)
	})

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()

		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		deps.redismock.ExpectDel(cachekey.TeamCalendar(f.teamA.String())).SetVal(1)

		resp, err := deps.service.Reject(ctx, f.manager, v.ID.String(), "busy quarter")

		require.NoError(t, err)
		assert.Equal(t, "REJECTED", resp.Status)
		require.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "busy quarter", *resp.RejectionReason)
		assert.Nil(t, resp.ApprovedBy)
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()

		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().FindByID(gomock.Any(), v.ID.String()).Return(v, nil)
		deps.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)
		deps.outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("insert failed"))

		_, err := deps.service.Reject(ctx, f.manager, v.ID.String(), "no")

		assert.Error(t, err)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestVacationService_TeamCalendar(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	key := cachekey.TeamCalendar(f.teamA.String())

	t.Run("requires a team", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.TeamCalendar(ctx, f.loner, vacation.CalendarFilter{})
		assert.Equal(t, outcome.CodeTeamMembershipRequired, codeOf(err))
	})

	t.Run("invalid window", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.TeamCalendar(ctx, f.teammate, vacation.CalendarFilter{From: "2026-04-01", To: "2026-03-01"})
		assert.ErrorIs(t, err, vacationerrors.ErrInvalidDateRange)
	})

	t.Run("cache hit", func(t *testing.T) {
		deps := setupServiceTest(t)
		cached, _ := json.Marshal([]vacation.VacationResponse{{ID: "v-1", Status: "APPROVED"}})
		deps.redismock.ExpectHGet(key, "-:-").SetVal(string(cached))

		resp, err := deps.service.TeamCalendar(ctx, f.teammate, vacation.CalendarFilter{})

		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "v-1", resp[0].ID)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})

	t.Run("cache miss loads pending and approved", func(t *testing.T) {
		deps := setupServiceTest(t)
		v := f.pending()
		v.CreatedAt = time.Time{}
		want := []vacation.VacationResponse{{
			ID:        v.ID.String(),
			UserID:    f.owner.ID.String(),
			UserName:  "Owner",
			StartDate: "2026-03-02",
			EndDate:   "2026-03-06",
			TotalDays: 5,
			Type:      "VACATION",
			Status:    "PENDING",
			CreatedAt: "0001-01-01T00:00:00Z",
		}}
		data, _ := json.Marshal(want)

		deps.redismock.ExpectHGet(key, "2026-03-01:-").RedisNil()
		deps.repo.EXPECT().FindTeam(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, q vacation.TeamQuery) ([]domain.Vacation, error) {
				assert.Equal(t, f.teamA, q.TeamID)
				assert.ElementsMatch(t, []domain.VacationStatus{domain.VacationStatusPending, domain.VacationStatusApproved}, q.Statuses)
				require.NotNil(t, q.From)
				assert.Nil(t, q.To)
				return []domain.Vacation{*v}, nil
			})
		deps.redismock.ExpectHSet(key, "2026-03-01:-", data).SetVal(1)
		deps.redismock.ExpectExpire(key, vacation.DefaultCalendarCacheTTL).SetVal(true)

		resp, err := deps.service.TeamCalendar(ctx, f.teammate, vacation.CalendarFilter{From: "2026-03-01"})

		require.NoError(t, err)
		assert.Equal(t, want, resp)
		assert.NoError(t, deps.redismock.ExpectationsWereMet())
	})
}

func TestVacationService_TeamPending(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	t.Run("employee is denied", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.TeamPending(ctx, f.teammate)
		assert.Equal(t, outcome.CodeManagerRoleRequired, codeOf(err))
	})

	t.Run("manager without team", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.TeamPending(ctx, &domain.User{ID: uuid.New(), IsManager: true})
		assert.Equal(t, outcome.CodeTeamMembershipRequired, codeOf(err))
	})

	t.Run("manager sees pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindTeam(gomock.Any(), vacation.TeamQuery{
			TeamID:   f.teamA,
			Statuses: []domain.VacationStatus{domain.VacationStatusPending},
		}).Return([]domain.Vacation{*f.pending()}, nil)

		resp, err := deps.service.TeamPending(ctx, f.manager)

		require.NoError(t, err)
		assert.Len(t, resp, 1)
	})
}

func TestVacationService_Mine(t *testing.T) {
	deps := setupServiceTest(t)
	f := newFixture()

	deps.repo.EXPECT().FindMine(gomock.Any(), f.owner.ID, "APPROVED").Return([]domain.Vacation{}, nil)

	resp, err := deps.service.Mine(context.Background(), f.owner, vacation.ListVacationsFilter{Status: "APPROVED"})

	require.NoError(t, err)
	assert.Empty(t, resp)
}
