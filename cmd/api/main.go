package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/streamhaven/streamhaven-golang/internal/config"
	"github.com/streamhaven/streamhaven-golang/internal/database"
	"github.com/streamhaven/streamhaven-golang/internal/handlers"
	"github.com/streamhaven/streamhaven-golang/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Configuration ---
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// 2. --- Database Connection ---
	db, err := database.OpenDB(cfg.DSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("Failed to ensure database schema: %v", err)
	}

	// 3. --- Bootstrap Data ---
	if email, password := os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD"); email != "" && password != "" {
		if err := database.EnsureAdmin(db, email, password); err != nil {
			log.Fatalf("Failed to ensure admin account: %v", err)
		}
	}
	if cfg.SeedCatalog {
		if err := database.SeedCatalog(db); err != nil {
			log.Fatalf("Failed to seed catalog: %v", err)
		}
	}

	// --- Application Setup ---
	app := &handlers.Handlers{
		DB:     db,
		Config: cfg,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app)

	// --- Start Server ---
	log.Printf("Starting StreamHaven API server on %s...", cfg.Addr)
	if err := router.Run(cfg.Addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
