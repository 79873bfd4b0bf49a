package vacationerrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
)

var (
	ErrVacationNotFound = apperror.New(
		apperror.CodeNotFound,
		"vacation not found",
		http.StatusNotFound,
	)
	ErrInvalidVacationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid vacation id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidVacationType = apperror.New(
		apperror.CodeInvalidInput,
		"type must be one of VACATION, SICK, PERSONAL, COMP_TIME, OTHER",
		http.StatusBadRequest,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid vacation status transition",
		http.StatusBadRequest,
	)
	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending vacations can be changed",
		http.StatusBadRequest,
	)
	ErrRejectionReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required when rejecting a vacation",
		http.StatusBadRequest,
	)
)
