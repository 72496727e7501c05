package main

import (
	"log"

	"github.com/runningmate/runningmate-backend-go/internal/api"
	"github.com/runningmate/runningmate-backend-go/internal/config"
	"github.com/runningmate/runningmate-backend-go/internal/database"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(database.Config{Path: cfg.DBPath})
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	router := api.SetupRouter(cfg, db)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
