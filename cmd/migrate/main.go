package main

import (
	"log"
	"log/slog"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/config"
	"github.com/vybhavgg-ship-it/InstaCordChat/internal/database"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	db, err := database.NewMySQLConnection(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	slog.Info("Migrations completed")
}
