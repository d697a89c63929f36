// Command assistant_probe sends one query through the configured assistant and
// reports whether the remote backend or the local responder answered it.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	config "procure-chat-api/configs"
	"procure-chat-api/pkg/models"
	"procure-chat-api/pkg/services"

	"github.com/joho/godotenv"
)

// fallbackTracker remembers the last fallback reported by the responder.
type fallbackTracker struct {
	err error
}

func (t *fallbackTracker) RecordFallback(_ string, err error) {
	t.err = err
}

func main() {
	endpoint := flag.String("endpoint", models.EndpointChat, "chat, store-info, vendor-info, task-info or assistant")
	query := flag.String("query", "What's the status of the Downtown Flagship Store in New York?", "question to send")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: .env file not loaded: %v", err)
	}
	cfg := config.LoadConfig()

	prompt, err := config.LoadSystemPrompt(cfg.SystemPromptPath)
	if err != nil {
		log.Printf("WARN: system prompt not loaded: %v", err)
	}
	dataset := services.DefaultQueryDataset()
	remote := services.NewRemoteAssistant(cfg, prompt, dataset)
	tracker := &fallbackTracker{}
	responder := services.NewQueryResponder(remote, services.NewMockResponder(dataset), tracker)

	answers := map[string]func(context.Context, string) string{
		models.EndpointChat: func(ctx context.Context, q string) string {
			return responder.GetChatResponse(ctx, []models.ChatMessage{{Role: models.RoleUser, Content: q}})
		},
		models.EndpointStoreInfo:  responder.GetStoreInfo,
		models.EndpointVendorInfo: responder.GetVendorInfo,
		models.EndpointTaskInfo:   responder.GetTaskInfo,
		models.EndpointAssistant:  responder.GetAssistantResponse,
	}
	answer, ok := answers[*endpoint]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown endpoint %q\n", *endpoint)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	start := time.Now()
	response := answer(ctx, *query)
	elapsed := time.Since(start)

	switch {
	case remote == nil:
		log.Printf("INFO: no remote assistant configured, answered locally in %v", elapsed)
	case tracker.err != nil:
		log.Printf("ERROR: %s failed, local fallback answered in %v: %v", remote.Name(), elapsed, tracker.err)
	default:
		log.Printf("SUCCESS: %s answered in %v", remote.Name(), elapsed)
	}

	fmt.Println(response)
}
