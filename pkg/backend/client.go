package backend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"procure-chat-api/pkg/models"

	"github.com/go-resty/resty/v2"
)

// ErrEmptyResponse is returned when the backend answers 2xx without a response text.
var ErrEmptyResponse = errors.New("assistant backend returned an empty response")

// Client talks to a remote assistant backend exposing /api/openai/*.
type Client struct {
	baseURL string
	http    *resty.Client
}

// NewClient creates a client for baseURL (scheme and host, optional path prefix).
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json"),
	}
}

// Name identifies the backend in logs.
func (c *Client) Name() string {
	return "backend:" + c.baseURL
}

// Chat posts the whole transcript to /api/openai/chat.
func (c *Client) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	return c.post(ctx, models.EndpointChat, models.ChatRequest{Messages: messages})
}

// Query posts a single query to /api/openai/{endpoint}.
func (c *Client) Query(ctx context.Context, endpoint, query string) (string, error) {
	return c.post(ctx, endpoint, models.QueryRequest{Query: query})
}

func (c *Client) post(ctx context.Context, endpoint string, body any) (string, error) {
	var result models.AssistantResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post(c.baseURL + "/api/openai/" + endpoint)
	if err != nil {
		return "", fmt.Errorf("assistant backend %s: %w", endpoint, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("assistant backend %s: status %d: %s", endpoint, resp.StatusCode(), truncate(resp.String(), 200))
	}
	if strings.TrimSpace(result.Response) == "" {
		return "", fmt.Errorf("assistant backend %s: %w", endpoint, ErrEmptyResponse)
	}
	return result.Response, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
