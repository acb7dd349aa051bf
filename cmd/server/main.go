package main

import (
	"log"

	"inkwell/internal/config"
	"inkwell/internal/db"
	"inkwell/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	cfg := config.Load()

	// Initialize Database
	db.Init(cfg)

	// Initialize Gin
	r := gin.Default()

	router.RegisterRoutes(r, cfg)

	log.Printf("inkwell server starting on %s", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
