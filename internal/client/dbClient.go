package client

import (
	"context"
	"fmt"
	"strings"
	"time"
	"video-paywall-demo/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

// InitDB opens the database named by databaseURL and migrates the schema.
// "sqlite://<path>" selects sqlite; anything else is treated as a mysql DSN.
func InitDB(ctx context.Context, databaseURL string) (*gorm.DB, error) {
	db, err := OpenDB(databaseURL)
	if err != nil {
		return nil, err
	}

	if err := Migrate(ctx, db); err != nil {
		return nil, err
	}

	return db, nil
}

func OpenDB(databaseURL string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if path, ok := strings.CutPrefix(databaseURL, sqlitePrefix); ok || databaseURL == "" {
		if path == "" {
			path = "app.db"
		}
		db, err := gorm.Open(sqlite.Open(path), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite %s: %w", path, err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("sqlite handle: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)

		return db, nil
	}

	db, err := gorm.Open(mysql.Open(databaseURL), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("mysql handle: %w", err)
	}

	// Connection pool (important for webhooks)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.Comment{},
		&model.Purchase{},
		&model.Checkout{},
		&model.WebhookEvent{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	return nil
}
