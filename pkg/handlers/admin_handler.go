package handlers

import (
	"net/http"
	"sync/atomic"

	"procure-chat-api/pkg/models"
	"procure-chat-api/pkg/services"

	"github.com/gin-gonic/gin"
)

// AdminHandler handles maintenance mode and the service status report.
type AdminHandler struct {
	username string
	password string

	// maintenance makes /health answer 503 so load balancers drain the instance
	maintenance atomic.Bool

	tenders    *services.TenderDataService
	responder  *services.QueryResponder
	monitoring *services.MonitoringService
}

// NewAdminHandler creates an AdminHandler. Empty credentials disable the maintenance endpoints.
func NewAdminHandler(username, password string, tenders *services.TenderDataService, responder *services.QueryResponder, monitoring *services.MonitoringService) *AdminHandler {
	return &AdminHandler{
		username:   username,
		password:   password,
		tenders:    tenders,
		responder:  responder,
		monitoring: monitoring,
	}
}

// AdminCredentials is the body of the maintenance endpoints.
type AdminCredentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// StartMaintenance turns maintenance mode on.
func (h *AdminHandler) StartMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	h.maintenance.Store(true)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Maintenance mode started"})
}

// StopMaintenance turns maintenance mode off.
func (h *AdminHandler) StopMaintenance(c *gin.Context) {
	if !h.authorize(c) {
		return
	}
	h.maintenance.Store(false)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Maintenance mode stopped"})
}

// GetHealthStatus reports maintenance mode, catalogue size and assistant fallbacks.
func (h *AdminHandler) GetHealthStatus(c *gin.Context) {
	fallbacks := make(map[string]int)
	for _, endpoint := range []string{
		models.EndpointChat, models.EndpointStoreInfo, models.EndpointVendorInfo,
		models.EndpointTaskInfo, models.EndpointAssistant,
	} {
		fallbacks[endpoint] = h.monitoring.FallbackCount(endpoint)
	}

	respondOK(c, gin.H{
		"isMaintenanceMode": h.maintenance.Load(),
		"tenderRecords":     len(h.tenders.LoadTenderData(c.Request.Context())),
		"assistant":         assistantMode(h.responder.HasRemote()),
		"fallbacks":         fallbacks,
	})
}

// HealthCheck answers external health checkers such as load balancers.
func (h *AdminHandler) HealthCheck(c *gin.Context) {
	if h.maintenance.Load() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "message": "Server is in maintenance mode"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "assistant": assistantMode(h.responder.HasRemote())})
}

func (h *AdminHandler) authorize(c *gin.Context) bool {
	if h.username == "" || h.password == "" {
		respondError(c, http.StatusForbidden, "admin credentials are not configured")
		return false
	}

	var input AdminCredentials
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Username and password are required")
		return false
	}
	if input.Username != h.username || input.Password != h.password {
		respondError(c, http.StatusUnauthorized, "Invalid credentials")
		return false
	}
	return true
}

func assistantMode(remote bool) string {
	if remote {
		return "remote"
	}
	return "local"
}
