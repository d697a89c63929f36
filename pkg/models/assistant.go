package models

// Chat roles accepted by the assistant.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one role-tagged turn of a conversation. The caller keeps the
// transcript and resends all of it every turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /api/openai/chat
type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required"`
}

// QueryRequest is the body of the single-query assistant endpoints
type QueryRequest struct {
	Query string `json:"query" binding:"required"`
}

// AssistantResponse is the reply of every /api/openai endpoint
type AssistantResponse struct {
	Response  string `json:"response"`
	ID        string `json:"id,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// Assistant endpoint names, relative to /api/openai.
const (
	EndpointChat       = "chat"
	EndpointStoreInfo  = "store-info"
	EndpointVendorInfo = "vendor-info"
	EndpointTaskInfo   = "task-info"
	EndpointAssistant  = "assistant"
)
