package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/taskvault-dev/taskvault/db"
	"github.com/taskvault-dev/taskvault/internal/auth"
	"github.com/taskvault-dev/taskvault/internal/config"
	"github.com/taskvault-dev/taskvault/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()

	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	database, err := db.Connect(cfg.DatabaseURL)

	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Migrate(database); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.New(router.Deps{
		DB:             database,
		Tokens:         auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL),
		AllowedOrigins: cfg.AllowedOrigins,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
