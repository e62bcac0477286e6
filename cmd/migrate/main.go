package main

import (
	"context"
	"log"
	"time"

	"notez-be/internal/config"
	"notez-be/internal/model"
	"notez-be/internal/repository/implementation"
	"notez-be/pkg/database"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch cfg.Database.Driver {
	case "postgres":
		migratePostgres(cfg.Database.Connection)
	case "mongodb":
		migrateMongo(ctx, cfg.Database.Connection, cfg.Database.MongoDatabase)
	default:
		log.Fatalf("Error: nothing to migrate for DB_DRIVER=%q", cfg.Database.Driver)
	}

	log.Println("Migration completed")
}

func migratePostgres(dsn string) {
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	// gen_random_uuid() lives in pgcrypto before PostgreSQL 13
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		log.Printf("Warn: Failed to create pgcrypto extension: %v. Continuing...", err)
	}

	log.Println("Running AutoMigrate for notes...")
	if err := db.AutoMigrate(&model.Note{}); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}
}

func migrateMongo(ctx context.Context, uri, name string) {
	db, err := database.NewMongoDatabase(ctx, uri, name)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}
	defer db.Client().Disconnect(context.Background())

	log.Println("Creating indexes for notes...")
	if err := implementation.EnsureNoteIndexes(ctx, db); err != nil {
		log.Fatalf("Error: Failed to create indexes: %v", err)
	}
}
