package outcome

const (
	// Authentication-adjacent
	CodeUserNotFound = "USER_NOT_FOUND"

	// Authorization
	CodeTeamMembershipRequired = "TEAM_MEMBERSHIP_REQUIRED"
	CodeManagerRoleRequired    = "MANAGER_ROLE_REQUIRED"
	CodeOwnershipRequired      = "OWNERSHIP_REQUIRED"
	CodeSameTeamRequired       = "SAME_TEAM_REQUIRED"

	// Business rules
	CodeVacationOverlap = "VACATION_OVERLAP"
)
