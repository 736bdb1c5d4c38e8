package main

import (
	"log"

	"ai-renamer-be/internal/config"
	"ai-renamer-be/internal/model"
	"ai-renamer-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// gen_random_uuid() is built in from postgres 13, older servers need pgcrypto.
	log.Println("Step 1: Setting up extensions...")
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Step 2: Running AutoMigrate...")
	models := []interface{}{
		&model.User{},
		&model.UserSettings{},
		&model.ApiKey{},
		&model.Prompt{},
		&model.RenameRecord{},
	}
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// Logins look users up by LOWER(email).
	log.Println("Step 3: Creating case-insensitive email index...")
	if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))`).Error; err != nil {
		log.Fatalf("Error: Failed to create email index: %v", err)
	}

	log.Println("Success: Database migration completed.")
}
