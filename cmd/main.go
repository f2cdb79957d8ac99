package main

import (
	"context"
	"fmt"
	"os"

	"github.com/voltstack/commerce-backend/internal/app"
	"github.com/voltstack/commerce-backend/internal/platform/logger"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	application, err := app.New(context.Background(), log)
	if err != nil {
		log.Fatal("Startup failed", "error", err)
	}
	defer application.Close()

	if err := application.Run(); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
