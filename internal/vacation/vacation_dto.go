package vacation

type CreateVacationRequest struct {
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Type      string  `json:"type"`
	Notes     *string `json:"notes"`
}

type UpdateVacationRequest struct {
	StartDate string  `json:"start_date" binding:"required"`
	EndDate   string  `json:"end_date" binding:"required"`
	Type      string  `json:"type"`
	Notes     *string `json:"notes"`
}

type RejectVacationRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ListVacationsFilter struct {
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
}

type CalendarFilter struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type VacationResponse struct {
	ID              string  `json:"id"`
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	TotalDays       int     `json:"total_days"`
	Type            string  `json:"type"`
	Status          string  `json:"status"`
	ApprovedBy      *string `json:"approved_by,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

type ValidationFailure struct {
	Code   string `json:"code"`
	Reason string `json:"reason"`
}

type ValidateVacationResponse struct {
	Valid    bool                `json:"valid"`
	Failures []ValidationFailure `json:"failures"`
}
