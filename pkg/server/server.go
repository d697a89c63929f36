// Package server wires configuration, services and handlers into a gin engine.
// It is shared by cmd/server and the serverless entry in api/.
package server

import (
	"io"
	"log"
	"net/http"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/handlers"
	"procure-chat-api/pkg/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SampleCSVPath is where the sample tender catalogue is served from.
const SampleCSVPath = "/sample_data/aldi_tenders.csv"

// Services holds everything the router needs.
type Services struct {
	Config     *config.Config
	Tenders    *services.TenderDataService
	Series     *services.SeriesGenerator
	Responder  *services.QueryResponder
	Monitoring *services.MonitoringService

	source services.TenderSource
}

// NewServices builds the services from cfg. Misconfiguration is logged and
// degrades to an empty catalogue or a local-only assistant; it never fails.
func NewServices(cfg *config.Config) *Services {
	source, err := services.NewTenderSource(cfg)
	if err != nil {
		log.Printf("❌ [setup] tender source: %v", err)
	}

	prompt, err := config.LoadSystemPrompt(cfg.SystemPromptPath)
	if err != nil {
		log.Printf("⚠️ [setup] system prompt not loaded, using built-in role: %v", err)
	}

	dataset := services.DefaultQueryDataset()
	monitoring := services.NewMonitoringService(cfg.DashboardTimezone)
	remote := services.NewRemoteAssistant(cfg, prompt, dataset)

	return &Services{
		Config:     cfg,
		Tenders:    services.NewTenderDataService(source),
		Series:     services.NewSeriesGenerator(cfg.RandomSeed, nil),
		Responder:  services.NewQueryResponder(remote, services.NewMockResponder(dataset), monitoring),
		Monitoring: monitoring,
		source:     source,
	}
}

// Close releases resources held by the tender source.
func (s *Services) Close() error {
	if closer, ok := s.source.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// NewRouter registers every route on a new gin engine.
func NewRouter(s *Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(s.Monitoring.LoggingMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-API-KEY", services.RequestIDHeader)
	r.Use(cors.New(corsConfig))

	tenderHandler := handlers.NewTenderHandler(s.Tenders, s.Series)
	assistantHandler := handlers.NewAssistantHandler(s.Responder)
	monitoringHandler := handlers.NewMonitoringHandler(s.Monitoring)
	adminHandler := handlers.NewAdminHandler(s.Config.AdminUsername, s.Config.AdminPassword, s.Tenders, s.Responder, s.Monitoring)

	r.GET("/health", adminHandler.HealthCheck)
	if s.Config.TenderSource == "" || s.Config.TenderSource == "file" {
		r.StaticFile(SampleCSVPath, s.Config.TenderDataPath)
	}

	v1 := r.Group("/api/v1")
	v1.Use(AuthMiddleware(s.Config.APIKey))
	{
		tenders := v1.Group("/tenders")
		{
			tenders.GET("", tenderHandler.ListTenders)
			tenders.POST("/analyze-file", tenderHandler.AnalyzeFile)
			tenders.GET("/:id", tenderHandler.GetTender)
			tenders.GET("/:id/price-data", tenderHandler.GetPriceData)
			tenders.GET("/:id/suppliers", tenderHandler.GetSuppliers)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", tenderHandler.ListCategories)
			categories.GET("/:category/products", tenderHandler.GetCategoryProducts)
			categories.GET("/:category/trend", tenderHandler.GetCategoryTrend)
			categories.GET("/:category/seasonality", tenderHandler.GetSeasonality)
			categories.GET("/:category/average-price", tenderHandler.GetAveragePrice)
		}

		products := v1.Group("/products")
		{
			products.GET("", tenderHandler.ListProducts)
			products.GET("/:code/price-history", tenderHandler.GetProductPriceHistory)
		}

		v1.GET("/monitoring/logs", monitoringHandler.GetLogs)

		admin := v1.Group("/admin")
		{
			admin.GET("/health-status", adminHandler.GetHealthStatus)
			admin.POST("/maintenance/start", adminHandler.StartMaintenance)
			admin.POST("/maintenance/stop", adminHandler.StopMaintenance)
		}
	}

	assistant := r.Group("/api/openai")
	assistant.Use(AuthMiddleware(s.Config.APIKey))
	{
		assistant.POST("/chat", assistantHandler.Chat)
		assistant.POST("/store-info", assistantHandler.StoreInfo)
		assistant.POST("/vendor-info", assistantHandler.VendorInfo)
		assistant.POST("/task-info", assistantHandler.TaskInfo)
		assistant.POST("/assistant", assistantHandler.Assistant)
	}

	return r
}

// AuthMiddleware requires X-API-KEY to equal apiKey. An empty apiKey disables the check.
func AuthMiddleware(apiKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if apiKey == "" {
			c.Next()
			return
		}
		if c.GetHeader("X-API-KEY") != apiKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		c.Next()
	}
}
