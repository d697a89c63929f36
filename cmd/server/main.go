package main

import (
	"context"
	"log"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/server"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or could not be loaded: %v", err)
	}

	cfg := config.LoadConfig()
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	svc := server.NewServices(cfg)
	defer func() {
		if err := svc.Close(); err != nil {
			log.Printf("⚠️ failed to close tender source: %v", err)
		}
	}()

	// warm the tender cache so a bad source shows up at startup
	records := svc.Tenders.LoadTenderData(context.Background())
	log.Printf("📦 %d tender records available", len(records))

	r := server.NewRouter(svc)
	log.Printf("Starting procure-chat-api on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
