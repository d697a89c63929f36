package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/azure"
	"procure-chat-api/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzureAssistantQuery(t *testing.T) {
	var captured azure.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"The store is 65% done."}}]}`))
	}))
	defer srv.Close()

	prompt, err := config.LoadSystemPrompt("../../configs/system_prompt.yaml")
	require.NoError(t, err)

	a := NewAzureAssistant(srv.URL, "key", "v", "gpt", time.Second, prompt, DefaultQueryDataset())
	resp, err := a.Query(context.Background(), models.EndpointStoreInfo, "How is New York?")
	require.NoError(t, err)
	assert.Equal(t, "The store is 65% done.", resp)

	require.Len(t, captured.Messages, 2)
	system := captured.Messages[0]
	assert.Equal(t, models.RoleSystem, system.Role)
	assert.Contains(t, system.Content, prompt.FocusFor(models.EndpointStoreInfo))
	assert.Contains(t, system.Content, "Downtown Flagship Store")
	assert.Equal(t, azure.ChatMessage{Role: models.RoleUser, Content: "How is New York?"}, captured.Messages[1])
}

func TestAzureAssistantChatKeepsHistory(t *testing.T) {
	var captured azure.ChatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	a := NewAzureAssistant(srv.URL, "key", "v", "gpt", time.Second, nil, DefaultQueryDataset())
	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleAssistant, Content: "hi"},
		{Role: models.RoleUser, Content: "vendors?"},
	}

	resp, err := a.Chat(context.Background(), history)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	require.Len(t, captured.Messages, 4)
	assert.Contains(t, captured.Messages[0].Content, "procurement assistant")
	assert.Equal(t, "vendors?", captured.Messages[3].Content)
}

func TestAzureAssistantSpecialCommandSkipsRemote(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	prompt, err := config.ParseSystemPrompt([]byte(`
system:
  role: "You are a test assistant."
special_commands:
  help:
    trigger: ["/help"]
    response: "Help text."
`))
	require.NoError(t, err)

	a := NewAzureAssistant(srv.URL, "key", "v", "gpt", time.Second, prompt, DefaultQueryDataset())
	resp, err := a.Query(context.Background(), models.EndpointAssistant, "/help")
	require.NoError(t, err)
	assert.Equal(t, "Help text.", resp)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))

	_, err = a.Query(context.Background(), models.EndpointAssistant, "budget?")
	assert.Error(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
