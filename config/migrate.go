package config

import (
	"fmt"
	"log"

	"spiritualgifts/models"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. It is safe to run on every start:
// AutoMigrate only adds missing tables, columns and indexes.
func Migrate(db *gorm.DB) error {
	// Parents before children so foreign keys resolve.
	tables := []interface{}{
		&models.User{},
		&models.Question{},
		&models.GiftDescription{},
		&models.QuizResponse{},
		&models.ResponseDetail{},
	}
	for _, table := range tables {
		if err := db.AutoMigrate(table); err != nil {
			return fmt.Errorf("migrate %T: %w", table, err)
		}
	}
	log.Printf("database schema up to date")
	return nil
}
