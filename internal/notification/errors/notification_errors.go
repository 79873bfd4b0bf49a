package notificationerrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
	ErrInvalidEvent = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vacation decided event",
		http.StatusBadRequest,
	)
)
