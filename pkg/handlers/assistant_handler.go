package handlers

import (
	"context"
	"net/http"
	"time"

	"procure-chat-api/pkg/models"
	"procure-chat-api/pkg/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AssistantHandler exposes the QueryResponder over the /api/openai wire format.
type AssistantHandler struct {
	responder *services.QueryResponder
}

// NewAssistantHandler creates an AssistantHandler.
func NewAssistantHandler(responder *services.QueryResponder) *AssistantHandler {
	return &AssistantHandler{responder: responder}
}

// Chat answers POST /api/openai/chat with body {messages}.
func (h *AssistantHandler) Chat(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	reply(c, h.responder.GetChatResponse(c.Request.Context(), req.Messages))
}

// StoreInfo answers POST /api/openai/store-info.
func (h *AssistantHandler) StoreInfo(c *gin.Context) {
	h.query(c, h.responder.GetStoreInfo)
}

// VendorInfo answers POST /api/openai/vendor-info.
func (h *AssistantHandler) VendorInfo(c *gin.Context) {
	h.query(c, h.responder.GetVendorInfo)
}

// TaskInfo answers POST /api/openai/task-info.
func (h *AssistantHandler) TaskInfo(c *gin.Context) {
	h.query(c, h.responder.GetTaskInfo)
}

// Assistant answers POST /api/openai/assistant.
func (h *AssistantHandler) Assistant(c *gin.Context) {
	h.query(c, h.responder.GetAssistantResponse)
}

func (h *AssistantHandler) query(c *gin.Context, answer func(ctx context.Context, query string) string) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request: "+err.Error())
		return
	}
	reply(c, answer(c.Request.Context(), req.Query))
}

func reply(c *gin.Context, response string) {
	c.JSON(http.StatusOK, models.AssistantResponse{
		Response:  response,
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
