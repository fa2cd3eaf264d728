package main

import (
	"log"

	"github.com/joho/godotenv"

	"invoicegen/cmd"
	"invoicegen/internal/config"
	"invoicegen/internal/logger"
)

func main() {
	// Load environment variables; a missing .env file is not an error
	// for a local tool.
	_ = godotenv.Load()

	cfg := config.Load()
	if err := logger.Setup(cfg.GetLoggerConfig()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cmd.Execute()
}
