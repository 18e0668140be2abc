package database

import (
	"log"

	"cryptodash/internal/models"
)

func AutoMigrate() error {
	err := DB.AutoMigrate(
		&models.HistoryItem{},
		&models.PreferenceRecord{},
	)

	if err != nil {
		log.Printf("Failed to auto-migrate: %v", err)
		return err
	}

	log.Println("Database migration completed successfully")
	return nil
}
