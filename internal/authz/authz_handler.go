package authz

import (
	"context"
	"fmt"

	"go-vacation/internal/domain"
	"go-vacation/internal/shared/outcome"
)

// Handler performs exactly one access check. A denied check is reported
// through the returned Result; the error is reserved for failures that
// prevent a verdict.
type Handler interface {
	Name() string
	Check(ctx context.Context, ac *Context) (outcome.Result, error)
}

type handlerFunc struct {
	name string
	fn   func(ctx context.Context, ac *Context) (outcome.Result, error)
}

// HandlerFunc adapts a plain function to Handler.
func HandlerFunc(name string, fn func(ctx context.Context, ac *Context) (outcome.Result, error)) Handler {
	return handlerFunc{name: name, fn: fn}
}

func (h handlerFunc) Name() string { return h.name }

func (h handlerFunc) Check(ctx context.Context, ac *Context) (outcome.Result, error) {
	return h.fn(ctx, ac)
}

type UserExistsHandler struct{}

func (UserExistsHandler) Name() string { return "user-exists" }

func (UserExistsHandler) Check(_ context.Context, ac *Context) (outcome.Result, error) {
	if ac == nil || ac.User == nil {
		return outcome.Failure("user not found", outcome.CodeUserNotFound), nil
	}
	return outcome.Success(), nil
}

type TeamMembershipHandler struct{}

func (TeamMembershipHandler) Name() string { return "team-membership" }

func (TeamMembershipHandler) Check(_ context.Context, ac *Context) (outcome.Result, error) {
	if !ac.User.HasTeam() {
		return outcome.Failure("user must belong to a team", outcome.CodeTeamMembershipRequired), nil
	}
	return outcome.Success(), nil
}

type ManagerRoleHandler struct{}

func (ManagerRoleHandler) Name() string { return "manager-role" }

func (ManagerRoleHandler) Check(_ context.Context, ac *Context) (outcome.Result, error) {
	if ac.User == nil || !ac.User.IsManager {
		return outcome.Failure("manager role required", outcome.CodeManagerRoleRequired), nil
	}
	return outcome.Success(), nil
}

// VacationOwnershipHandler passes for the vacation owner, and for a manager
// of the owner's team unless OwnerTeam was explicitly skipped.
type VacationOwnershipHandler struct{}

func (VacationOwnershipHandler) Name() string { return "vacation-ownership" }

func (h VacationOwnershipHandler) Check(_ context.Context, ac *Context) (outcome.Result, error) {
	vacation, ok := vacationResource(ac.Resource)
	if !ok {
		return outcome.Result{}, fmt.Errorf("%s: resource is %T, want vacation: %w", h.Name(), ac.Resource, ErrMissingCheckInput)
	}
	if !ac.OwnerTeam.Provided() {
		return outcome.Result{}, fmt.Errorf("%s: owner team scope: %w", h.Name(), ErrMissingCheckInput)
	}

	if ac.User != nil && vacation.UserID == ac.User.ID {
		return outcome.Success(), nil
	}
	if ac.User != nil && ac.User.IsManager && !ac.OwnerTeam.Skipped() && ac.OwnerTeam.matches(ac.User) {
		return outcome.Success(), nil
	}
	return outcome.Failure("only the owner or a manager of the owner's team may access this vacation", outcome.CodeOwnershipRequired), nil
}

// SameTeamHandler passes when the acting user belongs to TargetTeam.
type SameTeamHandler struct{}

func (SameTeamHandler) Name() string { return "same-team" }

func (h SameTeamHandler) Check(_ context.Context, ac *Context) (outcome.Result, error) {
	if !ac.TargetTeam.Provided() {
		return outcome.Result{}, fmt.Errorf("%s: target team scope: %w", h.Name(), ErrMissingCheckInput)
	}
	if ac.TargetTeam.Skipped() {
		return outcome.Success(), nil
	}
	if !ac.TargetTeam.matches(ac.User) {
		return outcome.Failure("target user is not in your team", outcome.CodeSameTeamRequired), nil
	}
	return outcome.Success(), nil
}

func vacationResource(resource any) (*domain.Vacation, bool) {
	switch v := resource.(type) {
	case *domain.Vacation:
		return v, v != nil
	case domain.Vacation:
		return &v, true
	default:
		return nil, false
	}
}
