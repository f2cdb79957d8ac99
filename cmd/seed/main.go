package main

import (
	"context"
	"fmt"
	"os"

	"github.com/voltstack/commerce-backend/internal/data/db"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

// Seeds the database with a demo catalog and exits. Safe to run repeatedly.
func main() {
	log, err := logger.New(os.Getenv("LOG_MODE"))
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	dbService, err := db.New(log)
	if err != nil {
		log.Fatal("Database init failed", "error", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Fatal("Database migration failed", "error", err)
	}
	if err := db.Seed(context.Background(), dbService.DB(), log); err != nil {
		log.Fatal("Seeding failed", "error", err)
	}
	log.Info("Seeding complete")
}
