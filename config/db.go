package config

import (
	"log"

	"github.com/picbingo/bingo-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// SetupDatabase connects to the database and runs migrations.
func SetupDatabase(dsn string) *gorm.DB {
	if dsn == "" {
		log.Fatal("[FATAL] DATABASE_URL is required in .env or environment")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to DB: %v", err)
	}

	if err := db.AutoMigrate(
		&models.GameSession{},
		&models.Player{},
		&models.BingoCard{},
		&models.CalledImage{},
		&models.BingoClaim{},
	); err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}

	log.Println("Database migration completed")
	return db
}
