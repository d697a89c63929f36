package services

import (
	"context"
	"log"
	"time"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/backend"
	"procure-chat-api/pkg/models"
)

// RemoteAssistant is a backend able to answer assistant requests.
type RemoteAssistant interface {
	Chat(ctx context.Context, messages []models.ChatMessage) (string, error)
	Query(ctx context.Context, endpoint, query string) (string, error)
	Name() string
}

// FallbackRecorder is told every time a remote call is replaced by the local answer.
type FallbackRecorder interface {
	RecordFallback(endpoint string, err error)
}

// QueryResponder prefers the remote assistant and falls back to the local
// mock responder on any failure. None of its methods return an error.
type QueryResponder struct {
	remote   RemoteAssistant
	mock     *MockResponder
	recorder FallbackRecorder
}

// NewQueryResponder creates a responder. remote and recorder may be nil; with
// no remote every answer comes from mock.
func NewQueryResponder(remote RemoteAssistant, mock *MockResponder, recorder FallbackRecorder) *QueryResponder {
	if mock == nil {
		mock = NewDefaultMockResponder()
	}
	return &QueryResponder{remote: remote, mock: mock, recorder: recorder}
}

// Mock exposes the local responder.
func (r *QueryResponder) Mock() *MockResponder {
	return r.mock
}

// HasRemote reports whether a remote assistant is configured.
func (r *QueryResponder) HasRemote() bool {
	return r.remote != nil
}

// withFallback runs call against the remote assistant and returns fallback()
// when there is no remote or the call fails.
func (r *QueryResponder) withFallback(ctx context.Context, endpoint string, call func(ctx context.Context, remote RemoteAssistant) (string, error), fallback func() string) string {
	if r.remote == nil {
		return fallback()
	}

	response, err := call(ctx, r.remote)
	if err == nil {
		return response
	}

	log.Printf("⚠️ [assistant] %s via %s failed, using local responder: %v", endpoint, r.remote.Name(), err)
	if r.recorder != nil {
		r.recorder.RecordFallback(endpoint, err)
	}
	return fallback()
}

// GetChatResponse answers a conversation. The local fallback only looks at the latest user message.
func (r *QueryResponder) GetChatResponse(ctx context.Context, history []models.ChatMessage) string {
	return r.withFallback(ctx, models.EndpointChat,
		func(ctx context.Context, remote RemoteAssistant) (string, error) {
			return remote.Chat(ctx, history)
		},
		func() string { return r.mock.MockChatResponse(history) },
	)
}

// GetStoreInfo answers a store question.
func (r *QueryResponder) GetStoreInfo(ctx context.Context, query string) string {
	return r.query(ctx, models.EndpointStoreInfo, query)
}

// GetVendorInfo answers a vendor question.
func (r *QueryResponder) GetVendorInfo(ctx context.Context, query string) string {
	return r.query(ctx, models.EndpointVendorInfo, query)
}

// GetTaskInfo answers a task question.
func (r *QueryResponder) GetTaskInfo(ctx context.Context, query string) string {
	return r.query(ctx, models.EndpointTaskInfo, query)
}

// GetAssistantResponse answers a general question.
func (r *QueryResponder) GetAssistantResponse(ctx context.Context, query string) string {
	return r.query(ctx, models.EndpointAssistant, query)
}

// query is shared by the single-question endpoints; all of them fall back to the same matcher.
func (r *QueryResponder) query(ctx context.Context, endpoint, query string) string {
	return r.withFallback(ctx, endpoint,
		func(ctx context.Context, remote RemoteAssistant) (string, error) {
			return remote.Query(ctx, endpoint, query)
		},
		func() string { return r.mock.GetMockResponse(query) },
	)
}

// NewRemoteAssistant picks the remote assistant from configuration: an
// explicit backend URL wins over Azure OpenAI. It returns nil when neither is
// configured, which makes every answer local.
func NewRemoteAssistant(cfg *config.Config, prompt *config.SystemPromptConfig, data QueryDataset) RemoteAssistant {
	timeout := time.Duration(cfg.AssistantTimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	switch {
	case cfg.AssistantBackendURL != "":
		log.Printf("🤖 [assistant] using remote backend %s", cfg.AssistantBackendURL)
		return backend.NewClient(cfg.AssistantBackendURL, timeout)
	case cfg.AzureConfigured():
		log.Printf("🤖 [assistant] using Azure OpenAI deployment %s", cfg.AzureOpenAIChatDeploymentName)
		return NewAzureAssistant(cfg.AzureOpenAIEndpoint, cfg.AzureOpenAIAPIKey, cfg.AzureOpenAIAPIVersion,
			cfg.AzureOpenAIChatDeploymentName, timeout, prompt, data)
	default:
		log.Println("ℹ️ [assistant] no remote assistant configured, answering locally")
		return nil
	}
}
