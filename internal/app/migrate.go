package app

import (
	"context"
	"database/sql"

	"go-vacation/internal/domain"
	"go-vacation/internal/messaging/kafka"

	"gorm.io/gorm"
)

func migrate(ctx context.Context, gormDB *gorm.DB, db *sql.DB) error {
	if err := gormDB.WithContext(ctx).AutoMigrate(
		&domain.Team{},
		&domain.User{},
		&domain.Vacation{},
		&domain.Notification{},
	); err != nil {
		return err
	}
	return kafka.EnsureOutboxSchema(ctx, db)
}
