package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	Port        string
	Environment string
	APIKey      string

	AdminUsername string
	AdminPassword string

	// TenderSource selects where tender records come from: "file", "http" or "postgres".
	TenderSource      string
	TenderDataPath    string
	TenderDataURL     string
	TenderDatabaseURL string

	AssistantBackendURL     string
	AssistantTimeoutSeconds int

	AzureOpenAIEndpoint           string
	AzureOpenAIAPIKey             string
	AzureOpenAIAPIVersion         string
	AzureOpenAIChatDeploymentName string
	SystemPromptPath              string

	// RandomSeed seeds the synthetic series generator. 0 means seed from wall time.
	RandomSeed        int64
	DashboardTimezone string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		APIKey:      getEnv("API_KEY", ""),

		AdminUsername: getEnv("ADMIN_USERNAME", ""),
		AdminPassword: getEnv("ADMIN_PASSWORD", ""),

		TenderSource:      getEnv("TENDER_SOURCE", "file"),
		TenderDataPath:    getEnv("TENDER_DATA_PATH", "sample_data/aldi_tenders.csv"),
		TenderDataURL:     getEnv("TENDER_DATA_URL", ""),
		TenderDatabaseURL: getEnv("TENDER_DATABASE_URL", ""),

		AssistantBackendURL:     getEnv("ASSISTANT_BACKEND_URL", ""),
		AssistantTimeoutSeconds: getEnvInt("ASSISTANT_TIMEOUT_SECONDS", 30),

		AzureOpenAIEndpoint:           getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureOpenAIAPIKey:             getEnv("AZURE_OPENAI_API_KEY", ""),
		AzureOpenAIAPIVersion:         getEnv("AZURE_OPENAI_API_VERSION", "2024-02-15-preview"),
		AzureOpenAIChatDeploymentName: getEnv("AZURE_OPENAI_CHAT_DEPLOYMENT_NAME", "gpt-4o-mini"),
		SystemPromptPath:              getEnv("SYSTEM_PROMPT_PATH", "configs/system_prompt.yaml"),

		RandomSeed:        int64(getEnvInt("RANDOM_SEED", 0)),
		DashboardTimezone: getEnv("DASHBOARD_TIMEZONE", "UTC"),
	}
}

// AzureConfigured reports whether enough Azure OpenAI settings are present to call it.
func (c *Config) AzureConfigured() bool {
	return c.AzureOpenAIEndpoint != "" && c.AzureOpenAIAPIKey != "" && c.AzureOpenAIChatDeploymentName != ""
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
