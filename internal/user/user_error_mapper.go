package user

import (
	"errors"
	"strings"

	usererrors "go-vacation/internal/user/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return usererrors.ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_users_email":
			return usererrors.ErrEmailAlreadyExists
		case "uq_users_external_id":
			return usererrors.ErrExternalIDAlreadyExists
		}
	}

	// sqlite and drivers that do not surface a PgError
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unique") || strings.Contains(errMsg, "duplicate key value") {
		switch {
		case strings.Contains(errMsg, "external_id"):
			return usererrors.ErrExternalIDAlreadyExists
		case strings.Contains(errMsg, "email"):
			return usererrors.ErrEmailAlreadyExists
		}
	}

	return err
}
