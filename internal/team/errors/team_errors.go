package teamerrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
)

var (
	ErrTeamNotFound = apperror.New(
		apperror.CodeNotFound,
		"Team not found",
		http.StatusNotFound,
	)

	ErrInvalidTeamID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid team ID",
		http.StatusBadRequest,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrTeamNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Team name is required",
		http.StatusBadRequest,
	)

	ErrMemberNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrMemberNotInTeam = apperror.New(
		apperror.CodeInvalidState,
		"User is not a member of this team",
		http.StatusBadRequest,
	)
)
