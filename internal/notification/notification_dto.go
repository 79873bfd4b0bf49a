package notification

type ListNotificationsFilter struct {
	UnreadOnly bool `form:"unread"`
	Limit      int  `form:"limit" binding:"omitempty,min=1,max=200"`
}

type NotificationResponse struct {
	ID         string  `json:"id"`
	VacationID string  `json:"vacation_id"`
	Message    string  `json:"message"`
	IsRead     bool    `json:"is_read"`
	CreatedAt  string  `json:"created_at"`
	ReadAt     *string `json:"read_at,omitempty"`
}
