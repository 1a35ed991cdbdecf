package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/vybhavgg-ship-it/InstaCordChat/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQLConnection opens the relational store with retry on initial
// connect, since the database container may still be starting
func NewMySQLConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)

	var db *gorm.DB
	var err error
	const maxRetries = 5
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		slog.Warn("failed to connect to MySQL, retrying",
			"attempt", i+1, "maxRetries", maxRetries, "error", err)
		time.Sleep(retryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL after %d attempts: %w", maxRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	slog.Info("MySQL connection established", "host", cfg.Host, "db", cfg.DBName)
	return db, nil
}
