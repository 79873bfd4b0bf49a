package rbac

import "go-vacation/internal/domain"

const (
	ResourceVacation     = "vacation"
	ResourceTeam         = "team"
	ResourceUser         = "user"
	ResourceNotification = "notification"
)

const (
	ActionRead    = "read"
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionManage  = "manage"
)

// defaultPolicy is the coarse route gate. Fine grained checks (ownership,
// same team) happen in the authorization chains.
var defaultPolicy = [][]string{
	{domain.RoleEmployee, ResourceVacation, ActionRead},
	{domain.RoleEmployee, ResourceVacation, ActionCreate},
	{domain.RoleEmployee, ResourceVacation, ActionUpdate},
	{domain.RoleEmployee, ResourceVacation, ActionDelete},
	{domain.RoleEmployee, ResourceTeam, ActionRead},
	{domain.RoleEmployee, ResourceUser, ActionRead},
	{domain.RoleEmployee, ResourceNotification, ActionRead},
	{domain.RoleEmployee, ResourceNotification, ActionUpdate},

	{domain.RoleManager, ResourceVacation, ActionApprove},
	{domain.RoleManager, ResourceTeam, ActionManage},
	{domain.RoleManager, ResourceUser, ActionManage},
}

var defaultInheritance = [][]string{
	{domain.RoleManager, domain.RoleEmployee},
}
