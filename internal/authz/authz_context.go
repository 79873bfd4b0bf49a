package authz

import (
	"go-vacation/internal/domain"

	"github.com/google/uuid"
)

// TeamScope names the team a handler compares the acting user against.
//
// The zero value means the caller never provided one. Handlers that consume
// a scope treat that as a wiring mistake and return ErrMissingCheckInput;
// callers that really want the comparison skipped must say so with
// SkipTeamCheck.
type TeamScope struct {
	teamID *uuid.UUID
	set    bool
	skip   bool
}

// ForTeam scopes a check to teamID. A nil teamID is a valid scope that never
// matches: nobody shares a team with a user that has none.
func ForTeam(teamID *uuid.UUID) TeamScope {
	return TeamScope{teamID: teamID, set: true}
}

// SkipTeamCheck marks the team comparison as not applicable.
func SkipTeamCheck() TeamScope {
	return TeamScope{skip: true}
}

func (s TeamScope) Provided() bool {
	return s.set || s.skip
}

func (s TeamScope) Skipped() bool {
	return s.skip
}

func (s TeamScope) TeamID() *uuid.UUID {
	return s.teamID
}

func (s TeamScope) matches(u *domain.User) bool {
	return s.teamID != nil && u.InTeam(*s.teamID)
}

// Context is the input of one authorization pass. It is built per request
// and discarded afterwards.
type Context struct {
	User      *domain.User
	Operation string
	Resource  any

	// TargetTeam is read by SameTeamHandler.
	TargetTeam TeamScope

	// OwnerTeam is read by VacationOwnershipHandler for the manager bypass.
	OwnerTeam TeamScope
}

const (
	OperationCreateVacation    = "create-vacation"
	OperationApproveVacation   = "approve-vacation"
	OperationRejectVacation    = "reject-vacation"
	OperationViewVacation      = "view-vacation"
	OperationUpdateVacation    = "update-vacation"
	OperationDeleteVacation    = "delete-vacation"
	OperationViewTeamVacations = "view-team-vacations"
	OperationViewTeamPending   = "view-team-pending-vacations"
	OperationManageTeams       = "manage-teams"
	OperationManageUsers       = "manage-users"
)

func NewCreateVacationContext(actor *domain.User) *Context {
	return &Context{User: actor, Operation: OperationCreateVacation}
}

func NewTeamViewContext(actor *domain.User, operation string) *Context {
	return &Context{User: actor, Operation: operation}
}

func NewManagerContext(actor *domain.User, operation string) *Context {
	return &Context{User: actor, Operation: operation}
}

// NewOwnershipContext lets a manager of ownerTeamID act on the vacation in
// addition to its owner.
func NewOwnershipContext(actor *domain.User, operation string, vacation *domain.Vacation, ownerTeamID *uuid.UUID) *Context {
	return &Context{
		User:      actor,
		Operation: operation,
		Resource:  vacation,
		OwnerTeam: ForTeam(ownerTeamID),
	}
}

// NewOwnerOnlyContext restricts the vacation to its owner.
func NewOwnerOnlyContext(actor *domain.User, operation string, vacation *domain.Vacation) *Context {
	return &Context{
		User:      actor,
		Operation: operation,
		Resource:  vacation,
		OwnerTeam: SkipTeamCheck(),
	}
}

func NewApprovalContext(actor *domain.User, operation string, vacation *domain.Vacation, targetTeamID *uuid.UUID) *Context {
	return &Context{
		User:       actor,
		Operation:  operation,
		Resource:   vacation,
		TargetTeam: ForTeam(targetTeamID),
	}
}
