package usererrors

import (
	"net/http"

	"go-vacation/internal/shared/apperror"
	"go-vacation/internal/shared/outcome"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"User not found",
		http.StatusNotFound,
	)

	ErrUserNotRegistered = apperror.New(
		outcome.CodeUserNotFound,
		"User is not registered",
		http.StatusUnauthorized,
	)

	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same email already exists",
		http.StatusConflict,
	)

	ErrExternalIDAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"User with the same external id already exists",
		http.StatusConflict,
	)

	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid user ID",
		http.StatusBadRequest,
	)

	ErrCannotDeleteSelf = apperror.New(
		apperror.CodeInvalidState,
		"You cannot delete your own account",
		http.StatusBadRequest,
	)

	ErrCannotChangeOwnRole = apperror.New(
		apperror.CodeInvalidState,
		"You cannot change your own manager flag",
		http.StatusBadRequest,
	)
)
