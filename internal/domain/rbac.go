package domain

const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
)

// RoleOf maps the manager flag onto the coarse route-level role.
func RoleOf(u *User) string {
	if u != nil && u.IsManager {
		return RoleManager
	}
	return RoleEmployee
}

type EnforceRequest struct {
	Subject  string `json:"subject" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type PermissionResponse struct {
	Role     string `json:"role"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
}
