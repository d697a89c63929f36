package handler

import (
	"log"
	"net/http"
	"sync"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/server"

	"github.com/gin-gonic/gin"
)

var (
	app  *gin.Engine
	once sync.Once
)

// setupApp builds the engine once per function instance.
// Environment variables come from the platform, so no .env file is read here.
func setupApp() *gin.Engine {
	once.Do(func() {
		cfg := config.LoadConfig()
		gin.SetMode(gin.ReleaseMode)
		app = server.NewRouter(server.NewServices(cfg))
		log.Printf("🟢 [setupApp] router ready (tender source: %s)", cfg.TenderSource)
	})
	return app
}

// Handler is the serverless function entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	setupApp().ServeHTTP(w, r)
}
