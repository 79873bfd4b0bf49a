package team

import (
	"errors"

	teamerrors "go-vacation/internal/team/errors"

	"gorm.io/gorm"
)

func mapRepositoryError(err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func mapTeamError(err error) error {
	return mapRepositoryError(err, teamerrors.ErrTeamNotFound)
}

func mapMemberError(err error) error {
	return mapRepositoryError(err, teamerrors.ErrMemberNotFound)
}
