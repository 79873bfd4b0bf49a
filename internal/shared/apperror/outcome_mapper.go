package apperror

import (
	"net/http"

	"go-vacation/internal/shared/outcome"
)

var outcomeStatus = map[string]int{
	outcome.CodeUserNotFound:           http.StatusUnauthorized,
	outcome.CodeTeamMembershipRequired: http.StatusBadRequest,
	outcome.CodeManagerRoleRequired:    http.StatusForbidden,
	outcome.CodeOwnershipRequired:      http.StatusForbidden,
	outcome.CodeSameTeamRequired:       http.StatusForbidden,
	outcome.CodeVacationOverlap:        http.StatusConflict,
}

// FromOutcome turns a failed authorization or validation result into an
// AppError carrying the result's own code and reason. Unknown codes are
// treated as forbidden. A successful result maps to nil.
func FromOutcome(r outcome.Result) *AppError {
	if r.OK() {
		return nil
	}

	code := r.Code()
	status, ok := outcomeStatus[code]
	if !ok {
		status = http.StatusForbidden
	}
	if code == "" {
		code = CodeForbidden
	}

	message := r.Reason()
	if message == "" {
		message = ErrForbidden.Message
	}
	return New(code, message, status)
}
