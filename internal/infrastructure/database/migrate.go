package database

import (
	"context"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/faizxmak/latilong/internal/infrastructure/database/entities"
)

// AutoMigrate applies database schema changes.
func AutoMigrate(ctx context.Context, db *gorm.DB, log zerolog.Logger) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&entities.User{},
		&entities.Conversation{},
		&entities.Message{},
		&entities.City{},
		&entities.BudgetRange{},
		&entities.Hotel{},
		&entities.TransportCost{},
	); err != nil {
		return err
	}

	log.Info().Msg("database schema up to date")
	return nil
}
