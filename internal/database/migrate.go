package database

import (
	"fmt"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/models"

	"gorm.io/gorm"
)

// Migrate runs auto-migrations for all persisted models
func Migrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.User{},
		&models.Channel{},
		&models.Message{},
		&models.Reaction{},
		&models.Friend{},
	}

	for _, model := range modelsToMigrate {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}
	return nil
}
