package user

type ListUsersFilter struct {
	TeamID       string `form:"team_id" binding:"omitempty,uuid"`
	Query        string `form:"q"`
	ManagersOnly bool   `form:"managers_only"`
}

type SetManagerRequest struct {
	IsManager *bool `json:"is_manager" binding:"required"`
}

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	DisplayName string  `json:"display_name"`
	Department  *string `json:"department,omitempty"`
	TeamID      *string `json:"team_id,omitempty"`
	TeamName    string  `json:"team_name,omitempty"`
	IsManager   bool    `json:"is_manager"`
	Role        string  `json:"role"`
	CreatedAt   string  `json:"created_at"`
}
