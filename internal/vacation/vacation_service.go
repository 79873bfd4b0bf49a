package vacation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-vacation/internal/authz"
	"go-vacation/internal/bootstrap"
	"go-vacation/internal/domain"
	"go-vacation/internal/events"
	"go-vacation/internal/messaging/kafka"
	"go-vacation/internal/metrics"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/validation"
	vacationerrors "go-vacation/internal/vacation/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const DefaultCalendarCacheTTL = 5 * time.Minute

type Options struct {
	CalendarCacheTTL time.Duration
	Audit            bootstrap.AuditLogger
}

//go:generate mockgen -source=vacation_service.go -destination=mock/vacation_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actor *domain.User, req CreateVacationRequest) (VacationResponse, error)
	Validate(ctx context.Context, actor *domain.User, req CreateVacationRequest) (ValidateVacationResponse, error)
	Mine(ctx context.Context, actor *domain.User, filter ListVacationsFilter) ([]VacationResponse, error)
	GetByID(ctx context.Context, actor *domain.User, id string) (VacationResponse, error)
	Update(ctx context.Context, actor *domain.User, id string, req UpdateVacationRequest) (VacationResponse, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
	Approve(ctx context.Context, actor *domain.User, id string) (VacationResponse, error)
	Reject(ctx context.Context, actor *domain.User, id, reason string) (VacationResponse, error)
	TeamCalendar(ctx context.Context, actor *domain.User, filter CalendarFilter) ([]VacationResponse, error)
	TeamPending(ctx context.Context, actor *domain.User) ([]VacationResponse, error)
}

type service struct {
	db         *sql.DB
	repo       Repository
	outbox     kafka.OutboxRepository
	authorizer authz.Authorizer
	chains     *authz.Factory
	rdb        *redis.Client
	sf         *singleflight.Group
	opts       Options
	logger     *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	authorizer authz.Authorizer,
	rdb *redis.Client,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("vacation.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("vacation.service")
	}
	if opts.CalendarCacheTTL <= 0 {
		opts.CalendarCacheTTL = DefaultCalendarCacheTTL
	}
	return &service{
		db:         db,
		repo:       repo,
		outbox:     outbox,
		authorizer: authorizer,
		chains:     authz.NewFactory(),
		rdb:        rdb,
		sf:         &singleflight.Group{},
		opts:       opts,
		logger:     l,
	}
}

func (s *service) Create(ctx context.Context, actor *domain.User, req CreateVacationRequest) (VacationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if err := authz.Require(ctx, s.authorizer, s.chains.CreateVacation(),
		authz.NewCreateVacationContext(actor)); err != nil {
		return VacationResponse{}, err
	}

	v, err := buildVacation(actor.ID, req.StartDate, req.EndDate, req.Type, req.Notes)
	if err != nil {
		return VacationResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create vacation begin tx failed", zap.Error(err))
		return VacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := s.checkRules(ctx, qtx, v, actor); err != nil {
		return VacationResponse{}, err
	}

	if err := qtx.Create(ctx, v); err != nil {
		log.Error("create vacation persist failed", zap.Error(err))
		return VacationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create vacation commit failed", zap.Error(err))
		return VacationResponse{}, err
	}

	s.evictCalendar(ctx, actor.TeamID)
	log.Info("create vacation success",
		zap.String("vacation_id", v.ID.String()),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	v.User = actor
	return mapToResponse(v), nil
}

// Validate runs the same checks as Create without persisting and reports
// every failing rule instead of the first one.
func (s *service) Validate(ctx context.Context, actor *domain.User, req CreateVacationRequest) (ValidateVacationResponse, error) {
	if err := authz.Require(ctx, s.authorizer, s.chains.CreateVacation(),
		authz.NewCreateVacationContext(actor)); err != nil {
		return ValidateVacationResponse{}, err
	}

	v, err := buildVacation(actor.ID, req.StartDate, req.EndDate, req.Type, req.Notes)
	if err != nil {
		return ValidateVacationResponse{}, err
	}

	results, err := validation.NewVacationRuleSet(s.repo).ValidateAll(ctx, v, actor)
	if err != nil {
		return ValidateVacationResponse{}, err
	}

	resp := ValidateVacationResponse{
		Valid:    len(results) == 0,
		Failures: make([]ValidationFailure, 0, len(results)),
	}
	for _, r := range results {
		resp.Failures = append(resp.Failures, ValidationFailure{Code: r.Code(), Reason: r.Reason()})
	}
	return resp, nil
}

func (s *service) Mine(ctx context.Context, actor *domain.User, filter ListVacationsFilter) ([]VacationResponse, error) {
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}

	list, err := s.repo.FindMine(ctx, actor.ID, filter.Status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

func (s *service) GetByID(ctx context.Context, actor *domain.User, id string) (VacationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}

	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}

	if err := authz.Require(ctx, s.authorizer, s.chains.VacationOwnership(),
		authz.NewOwnershipContext(actor, authz.OperationViewVacation, v, ownerTeam(v))); err != nil {
		return VacationResponse{}, err
	}

	return mapToResponse(v), nil
}

// Update is limited to the owner; managers act through Approve and Reject.
func (s *service) Update(ctx context.Context, actor *domain.User, id string, req UpdateVacationRequest) (VacationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update vacation begin tx failed", zap.Error(err))
		return VacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}

	if err := authz.Require(ctx, s.authorizer, s.chains.VacationOwnership(),
		authz.NewOwnerOnlyContext(actor, authz.OperationUpdateVacation, v)); err != nil {
		return VacationResponse{}, err
	}
	if v.Status != domain.VacationStatusPending {
		return VacationResponse{}, vacationerrors.ErrNotPending
	}

	changed, err := buildVacation(v.UserID, req.StartDate, req.EndDate, req.Type, req.Notes)
	if err != nil {
		return VacationResponse{}, err
	}
	v.StartDate = changed.StartDate
	v.EndDate = changed.EndDate
	v.Type = changed.Type
	v.Notes = changed.Notes

	if err := s.checkRules(ctx, qtx, v, actor); err != nil {
		return VacationResponse{}, err
	}

	if err := qtx.Update(ctx, v); err != nil {
		log.Error("update vacation persist failed", zap.String("vacation_id", id), zap.Error(err))
		return VacationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("update vacation commit failed", zap.String("vacation_id", id), zap.Error(err))
		return VacationResponse{}, err
	}

	s.evictCalendar(ctx, ownerTeam(v))
	log.Info("update vacation success", zap.String("vacation_id", id))
	return mapToResponse(v), nil
}

func (s *service) Delete(ctx context.Context, actor *domain.User, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return vacationerrors.ErrInvalidVacationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}

	if err := authz.Require(ctx, s.authorizer, s.chains.VacationOwnership(),
		authz.NewOwnershipContext(actor, authz.OperationDeleteVacation, v, ownerTeam(v))); err != nil {
		return err
	}
	if v.Status != domain.VacationStatusPending {
		return vacationerrors.ErrNotPending
	}

	if err := qtx.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.evictCalendar(ctx, ownerTeam(v))
	log.Info("delete vacation success", zap.String("vacation_id", id))
	return nil
}

func (s *service) Approve(ctx context.Context, actor *domain.User, id string) (VacationResponse, error) {
	return s.decide(ctx, actor, id, domain.VacationStatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, actor *domain.User, id, reason string) (VacationResponse, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return VacationResponse{}, vacationerrors.ErrRejectionReasonRequired
	}
	return s.decide(ctx, actor, id, domain.VacationStatusRejected, &reason)
}

func isAllowedStatusTransition(current, target domain.VacationStatus) bool {
	if current != domain.VacationStatusPending {
		return false
	}
	return target == domain.VacationStatusApproved || target == domain.VacationStatusRejected
}

func (s *service) decide(
	ctx context.Context,
	actor *domain.User,
	id string,
	target domain.VacationStatus,
	reason *string,
) (VacationResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	if _, err := uuid.Parse(id); err != nil {
		return VacationResponse{}, vacationerrors.ErrInvalidVacationID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide vacation begin tx failed", zap.Error(err))
		return VacationResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	v, err := qtx.FindByID(ctx, id)
	if err != nil {
		return VacationResponse{}, mapRepositoryError(err)
	}

	op := authz.OperationApproveVacation
	if target == domain.VacationStatusRejected {
		op = authz.OperationRejectVacation
	}
	if err := authz.Require(ctx, s.authorizer, s.chains.ApproveVacation(),
		authz.NewApprovalContext(actor, op, v, ownerTeam(v))); err != nil {
		return VacationResponse{}, err
	}

	if !isAllowedStatusTransition(v.Status, target) {
		log.Warn("decide vacation invalid transition",
			zap.String("vacation_id", id),
			zap.String("from_status", string(v.Status)),
			zap.String("to_status", string(target)),
		)
		return VacationResponse{}, vacationerrors.ErrInvalidStatusTransition
	}

	// other approvals may have landed since the request was filed
	if target == domain.VacationStatusApproved {
		if err := s.checkRules(ctx, qtx, v, v.User); err != nil {
			return VacationResponse{}, err
		}
	}

	v.Status = target
	switch target {
	case domain.VacationStatusApproved:
		approver := actor.ID
		v.ApprovedBy = &approver
		v.RejectionReason = nil
	case domain.VacationStatusRejected:
		v.ApprovedBy = nil
		v.RejectionReason = reason
	}

	if err := qtx.Update(ctx, v); err != nil {
		log.Error("decide vacation persist failed", zap.String("vacation_id", id), zap.Error(err))
		return VacationResponse{}, err
	}

	if err := s.enqueueDecision(ctx, tx, v, actor, reason); err != nil {
		log.Error("decide vacation outbox persist failed", zap.String("vacation_id", id), zap.Error(err))
		return VacationResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide vacation commit failed", zap.String("vacation_id", id), zap.Error(err))
		return VacationResponse{}, err
	}

	metrics.RecordVacationDecision(string(target))
	s.evictCalendar(ctx, ownerTeam(v))
	if s.opts.Audit != nil {
		s.opts.Audit.Log(ctx, bootstrap.AuditLog{
			Action:  "VACATION_" + string(target),
			Message: "vacation decided",
			Meta: map[string]any{
				"vacation_id": id,
				"owner_id":    v.UserID.String(),
				"decided_by":  actor.ID.String(),
				"request_id":  contextutil.GetRequestID(ctx),
			},
		})
	}

	log.Info("decide vacation success",
		zap.String("vacation_id", id),
		zap.String("status", string(target)),
	)
	return mapToResponse(v), nil
}

func (s *service) enqueueDecision(ctx context.Context, tx *sql.Tx, v *domain.Vacation, actor *domain.User, reason *string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	eventID := uuid.NewString()
	event := events.VacationDecidedEvent{
		EventID:    eventID,
		EventType:  events.VacationDecidedType,
		RequestID:  rid,
		VacationID: v.ID.String(),
		UserID:     v.UserID.String(),
		Status:     string(v.Status),
		DecidedBy:  actor.ID.String(),
		Reason:     reason,
		StartDate:  v.StartDate.Format(domain.DateLayout),
		EndDate:    v.EndDate.Format(domain.DateLayout),
		OccurredAt: time.Now().UTC(),
	}
	if team := ownerTeam(v); team != nil {
		event.TeamID = team.String()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            eventID,
		RequestID:     rid,
		AggregateType: "vacation",
		AggregateID:   v.ID.String(),
		EventType:     events.VacationDecidedType,
		Topic:         events.VacationLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func (s *service) TeamPending(ctx context.Context, actor *domain.User) ([]VacationResponse, error) {
	if err := authz.Require(ctx, s.authorizer, s.chains.ViewTeamPendingVacations(),
		authz.NewTeamViewContext(actor, authz.OperationViewTeamPending)); err != nil {
		return nil, err
	}

	list, err := s.repo.FindTeam(ctx, TeamQuery{
		TeamID:   *actor.TeamID,
		Statuses: []domain.VacationStatus{domain.VacationStatusPending},
	})
	if err != nil {
		return nil, err
	}
	return mapToListResponse(list), nil
}

// checkRules runs the rule set against qtx so the lookup sees the
// transaction's own writes.
func (s *service) checkRules(ctx context.Context, qtx Repository, v *domain.Vacation, owner *domain.User) error {
	result, err := validation.NewVacationRuleSet(qtx).Validate(ctx, v, owner)
	if err != nil {
		return err
	}
	if appErr := apperror.FromOutcome(result); appErr != nil {
		metrics.RecordValidationFailure(result.Code())
		contextutil.GetLogger(ctx, s.logger).Warn("vacation rule failed",
			zap.String("code", result.Code()),
			zap.String("reason", result.Reason()),
		)
		return appErr
	}
	return nil
}

func buildVacation(userID uuid.UUID, start, end, typ string, notes *string) (*domain.Vacation, error) {
	startDate, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	if startDate.After(endDate) {
		return nil, vacationerrors.ErrInvalidDateRange
	}

	vt := domain.VacationTypeVacation
	if typ != "" {
		vt = domain.VacationType(strings.ToUpper(strings.TrimSpace(typ)))
	}
	if !vt.Valid() {
		return nil, vacationerrors.ErrInvalidVacationType
	}

	return &domain.Vacation{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
		Type:      vt,
		Status:    domain.VacationStatusPending,
		Notes:     notes,
	}, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, vacationerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	t, err := parseDate(v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func ownerTeam(v *domain.Vacation) *uuid.UUID {
	if v.User == nil {
		return nil
	}
	return v.User.TeamID
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return vacationerrors.ErrVacationNotFound
	}
	return err
}

func mapToResponse(v *domain.Vacation) VacationResponse {
	resp := VacationResponse{
		ID:              v.ID.String(),
		UserID:          v.UserID.String(),
		StartDate:       v.StartDate.Format(domain.DateLayout),
		EndDate:         v.EndDate.Format(domain.DateLayout),
		TotalDays:       v.TotalDays(),
		Type:            string(v.Type),
		Status:          string(v.Status),
		Notes:           v.Notes,
		RejectionReason: v.RejectionReason,
		CreatedAt:       v.CreatedAt.Format(time.RFC3339),
	}
	if v.User != nil {
		resp.UserName = v.User.DisplayName
	}
	if v.ApprovedBy != nil {
		approver := v.ApprovedBy.String()
		resp.ApprovedBy = &approver
	}
	return resp
}

func mapToListResponse(list []domain.Vacation) []VacationResponse {
	resp := make([]VacationResponse, len(list))
	for i := range list {
		resp[i] = mapToResponse(&list[i])
	}
	return resp
}
