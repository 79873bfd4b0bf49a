package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go-vacation/internal/events"
	"go-vacation/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const notificationEventConstraint = "uq_notifications_event"

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type VacationDecidedHandler interface {
	HandleVacationDecided(ctx context.Context, event events.VacationDecidedEvent) error
}

// ConsumeVacationLifecycle commits a message once its notification is stored,
// already stored, or the message can never be processed. Transient failures
// leave the offset alone so the message is fetched again after a rebalance.
func ConsumeVacationLifecycle(
	ctx context.Context,
	reader MessageReader,
	handler VacationDecidedHandler,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.vacation_lifecycle")
	log.Info("vacation lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("vacation lifecycle consumer stopped")
				return
			}
			log.Error("fetch vacation lifecycle message failed", zap.Error(err))
			sleep(ctx, time.Second)
			continue
		}

		if err := handleMessage(ctx, msg, handler, log); err != nil {
			log.Error("handle vacation lifecycle message failed",
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit vacation lifecycle message failed", zap.Error(err))
		}
	}
}

// handleMessage returns an error only when the message should be retried.
func handleMessage(ctx context.Context, msg kafkago.Message, handler VacationDecidedHandler, log *zap.Logger) error {
	var event events.VacationDecidedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode vacation_decided event failed", zap.Error(err))
		return nil
	}
	if event.EventType != "" && event.EventType != events.VacationDecidedType {
		log.Debug("skipping unrelated vacation lifecycle event", zap.String("event_type", event.EventType))
		return nil
	}

	err := handler.HandleVacationDecided(ctx, event)
	switch {
	case err == nil:
		log.Info("notification created from vacation_decided event",
			zap.String("event_id", event.EventID),
			zap.String("vacation_id", event.VacationID),
			zap.String("request_id", event.RequestID),
		)
		return nil
	case isDuplicateNotification(err):
		log.Warn("notification already exists for event, skipping",
			zap.String("event_id", event.EventID),
			zap.String("vacation_id", event.VacationID),
		)
		return nil
	case isPermanent(err):
		log.Error("dropping unprocessable vacation_decided event",
			zap.String("event_id", event.EventID),
			zap.Error(err),
		)
		return nil
	default:
		return err
	}
}

func isDuplicateNotification(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" && pgErr.ConstraintName == notificationEventConstraint
	}

	errMsg := strings.ToLower(err.Error())
	return (strings.Contains(errMsg, "duplicate key value") || strings.Contains(errMsg, "unique constraint")) &&
		(strings.Contains(errMsg, notificationEventConstraint) || strings.Contains(errMsg, "notifications.event_id"))
}

func isPermanent(err error) bool {
	var appErr *apperror.AppError
	return errors.As(err, &appErr) && appErr.HTTPStatus < 500
}

func sleep(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
