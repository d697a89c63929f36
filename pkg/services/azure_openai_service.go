package services

import (
	"context"
	"strings"
	"time"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/azure"
	"procure-chat-api/pkg/models"

	"gopkg.in/yaml.v3"
)

// AzureAssistant answers assistant requests with an Azure OpenAI chat deployment.
type AzureAssistant struct {
	client *azure.OpenAIClient
	prompt *config.SystemPromptConfig
	data   QueryDataset
}

// NewAzureAssistant creates an assistant. prompt may be nil, in which case a
// one-line role is used as the system message.
func NewAzureAssistant(endpoint, apiKey, apiVersion, deploymentName string, timeout time.Duration, prompt *config.SystemPromptConfig, data QueryDataset) *AzureAssistant {
	return &AzureAssistant{
		client: azure.NewOpenAIClient(endpoint, apiKey, apiVersion, deploymentName, timeout),
		prompt: prompt,
		data:   data,
	}
}

// Name identifies the assistant in logs.
func (a *AzureAssistant) Name() string {
	return "azure-openai"
}

// Chat sends the transcript after a system message describing the assistant and its data.
func (a *AzureAssistant) Chat(ctx context.Context, messages []models.ChatMessage) (string, error) {
	return a.complete(ctx, models.EndpointAssistant, messages)
}

// Query answers one question with the focus configured for endpoint.
func (a *AzureAssistant) Query(ctx context.Context, endpoint, query string) (string, error) {
	return a.complete(ctx, endpoint, []models.ChatMessage{{Role: models.RoleUser, Content: query}})
}

func (a *AzureAssistant) complete(ctx context.Context, endpoint string, messages []models.ChatMessage) (string, error) {
	if a.prompt != nil {
		if last, ok := LatestUserMessage(messages); ok {
			if hit, response := a.prompt.CheckSpecialCommand(last); hit {
				return response, nil
			}
		}
	}

	azureMessages := make([]azure.ChatMessage, 0, len(messages)+1)
	azureMessages = append(azureMessages, azure.ChatMessage{Role: models.RoleSystem, Content: a.systemMessage(endpoint)})
	for _, msg := range messages {
		azureMessages = append(azureMessages, azure.ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return a.client.Complete(ctx, azureMessages, 800, 0.4)
}

func (a *AzureAssistant) systemMessage(endpoint string) string {
	var sb strings.Builder
	if a.prompt != nil {
		sb.WriteString(a.prompt.BuildSystemPrompt())
		if focus := a.prompt.FocusFor(endpoint); focus != "" {
			sb.WriteString("\n## Focus\n")
			sb.WriteString(focus)
			sb.WriteString("\n")
		}
	} else {
		sb.WriteString("You are a procurement assistant for store openings, vendors, tasks and contracts.\n")
	}

	if snapshot, err := yaml.Marshal(a.data); err == nil {
		sb.WriteString("\n## Current data (YAML)\n")
		sb.Write(snapshot)
	}
	return sb.String()
}
