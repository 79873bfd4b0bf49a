package authz

import (
	"context"

	"go-vacation/internal/metrics"
	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/contextutil"
	"go-vacation/internal/shared/outcome"

	"go.uber.org/zap"
)

//go:generate mockgen -source=authz_service.go -destination=mock/authz_service_mock.go -package=mock
type Authorizer interface {
	Authorize(ctx context.Context, chain Chain, ac *Context) (outcome.Result, error)
}

type authorizer struct {
	logger *zap.Logger
}

func NewAuthorizer(logger ...*zap.Logger) Authorizer {
	l := zap.L().Named("authz.authorizer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("authz.authorizer")
	}
	return &authorizer{logger: l}
}

// Authorize runs chain and hands its Result back untouched.
func (a *authorizer) Authorize(ctx context.Context, chain Chain, ac *Context) (outcome.Result, error) {
	log := contextutil.GetLogger(ctx, a.logger)

	fields := []zap.Field{zap.String("chain", chain.Name())}
	if ac != nil {
		fields = append(fields, zap.String("operation", ac.Operation))
		if ac.User != nil {
			fields = append(fields, zap.String("user_id", ac.User.ID.String()))
		}
	}

	result, err := chain.Execute(ctx, ac)
	if err != nil {
		log.Error("authorization chain failed", append(fields, zap.Error(err))...)
		metrics.RecordAuthzDecision(chain.Name(), "error", "")
		return outcome.Result{}, err
	}

	if !result.OK() {
		log.Warn("authorization denied", append(fields,
			zap.String("code", result.Code()),
			zap.String("reason", result.Reason()),
		)...)
		metrics.RecordAuthzDecision(chain.Name(), "denied", result.Code())
		return result, nil
	}

	log.Debug("authorization granted", fields...)
	metrics.RecordAuthzDecision(chain.Name(), "granted", "")
	return result, nil
}

// Require runs chain and converts a denial into an *apperror.AppError that
// carries the failing handler's code and reason.
func Require(ctx context.Context, a Authorizer, chain Chain, ac *Context) error {
	result, err := a.Authorize(ctx, chain, ac)
	if err != nil {
		return err
	}
	if appErr := apperror.FromOutcome(result); appErr != nil {
		return appErr
	}
	return nil
}
