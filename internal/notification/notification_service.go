package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-vacation/internal/authz"
	"go-vacation/internal/domain"
	"go-vacation/internal/events"
	notificationerrors "go-vacation/internal/notification/errors"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/outcome"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	DefaultListLimit = 50

	ChainNotificationOwner    = "notification-owner"
	OperationMarkNotification = "mark_notification_read"
)

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	HandleVacationDecided(ctx context.Context, event events.VacationDecidedEvent) error
	List(ctx context.Context, actor *domain.User, filter ListNotificationsFilter) ([]NotificationResponse, error)
	MarkRead(ctx context.Context, actor *domain.User, id string) (NotificationResponse, error)
}

type service struct {
	repo       Repository
	authorizer authz.Authorizer
	logger     *zap.Logger
}

func NewService(repo Repository, authorizer authz.Authorizer, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, authorizer: authorizer, logger: l}
}

// HandleVacationDecided stores one notification for the vacation owner.
// Repository errors are returned untouched so the consumer can recognise a
// redelivered event by its unique violation.
func (s *service) HandleVacationDecided(ctx context.Context, event events.VacationDecidedEvent) error {
	userID, err := uuid.Parse(event.UserID)
	if err != nil || event.EventID == "" {
		return notificationerrors.ErrInvalidEvent
	}
	vacationID, err := uuid.Parse(event.VacationID)
	if err != nil {
		return notificationerrors.ErrInvalidEvent
	}

	message, ok := decisionMessage(event)
	if !ok {
		return notificationerrors.ErrInvalidEvent
	}

	n := &domain.Notification{
		EventID:    event.EventID,
		UserID:     userID,
		VacationID: vacationID,
		Message:    message,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("notification stored",
		zap.String("event_id", event.EventID),
		zap.String("user_id", event.UserID),
		zap.String("status", event.Status),
	)
	return nil
}

func decisionMessage(event events.VacationDecidedEvent) (string, bool) {
	period := event.StartDate + " to " + event.EndDate
	switch domain.VacationStatus(event.Status) {
	case domain.VacationStatusApproved:
		return fmt.Sprintf("Your vacation from %s was approved.", period), true
	case domain.VacationStatusRejected:
		msg := fmt.Sprintf("Your vacation from %s was rejected.", period)
		if event.Reason != nil && strings.TrimSpace(*event.Reason) != "" {
			msg += " Reason: " + strings.TrimSpace(*event.Reason)
		}
		return msg, true
	default:
		return "", false
	}
}

func (s *service) List(ctx context.Context, actor *domain.User, filter ListNotificationsFilter) ([]NotificationResponse, error) {
	if actor == nil {
		return nil, apperror.ErrUnauthorized
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	list, err := s.repo.FindByUser(ctx, actor.ID, filter.UnreadOnly, limit)
	if err != nil {
		return nil, err
	}

	resp := make([]NotificationResponse, len(list))
	for i := range list {
		resp[i] = mapToResponse(&list[i])
	}
	return resp, nil
}

func (s *service) MarkRead(ctx context.Context, actor *domain.User, id string) (NotificationResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return NotificationResponse{}, notificationerrors.ErrInvalidNotificationID
	}

	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return NotificationResponse{}, notificationerrors.ErrNotificationNotFound
		}
		return NotificationResponse{}, err
	}

	if err := authz.Require(ctx, s.authorizer, ownerChain(), &authz.Context{
		User:      actor,
		Operation: OperationMarkNotification,
		Resource:  n,
	}); err != nil {
		return NotificationResponse{}, err
	}

	if n.IsRead {
		return mapToResponse(n), nil
	}

	now := time.Now().UTC()
	if err := s.repo.MarkRead(ctx, id, now); err != nil {
		return NotificationResponse{}, err
	}
	n.IsRead = true
	n.ReadAt = &now

	return mapToResponse(n), nil
}

func ownerChain() authz.Chain {
	return authz.NewChain(ChainNotificationOwner,
		authz.UserExistsHandler{},
		authz.HandlerFunc("notification-owner", func(_ context.Context, ac *authz.Context) (outcome.Result, error) {
			n, ok := ac.Resource.(*domain.Notification)
			if !ok || n == nil {
				return outcome.Result{}, fmt.Errorf("notification-owner: resource is %T: %w", ac.Resource, authz.ErrMissingCheckInput)
			}
			if n.UserID != ac.User.ID {
				return outcome.Failure("notification belongs to another user", outcome.CodeOwnershipRequired), nil
			}
			return outcome.Success(), nil
		}),
	)
}

func mapToResponse(n *domain.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         n.ID.String(),
		VacationID: n.VacationID.String(),
		Message:    n.Message,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		readAt := n.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &readAt
	}
	return resp
}
