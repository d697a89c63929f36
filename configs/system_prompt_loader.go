package config

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// SystemPromptConfig defines the structure of system_prompt.yaml
type SystemPromptConfig struct {
	System struct {
		Role     string `yaml:"role"`
		Version  string `yaml:"version"`
		Language string `yaml:"language"`
	} `yaml:"system"`

	SystemInfo struct {
		Name     string `yaml:"name"`
		FullName string `yaml:"full_name"`
		Purpose  string `yaml:"purpose"`
		Features []struct {
			Name        string `yaml:"name"`
			Description string `yaml:"description"`
			Endpoint    string `yaml:"endpoint,omitempty"`
		} `yaml:"features"`
	} `yaml:"system_info"`

	// Focus holds one extra instruction per assistant endpoint (store-info, vendor-info, ...).
	Focus map[string]string `yaml:"focus"`

	ResponseGuidelines []struct {
		Priority  int    `yaml:"priority"`
		Condition string `yaml:"condition"`
		Action    string `yaml:"action"`
	} `yaml:"response_guidelines"`

	Tone struct {
		Style         string `yaml:"style"`
		Personality   string `yaml:"personality"`
		LanguageLevel string `yaml:"language_level"`
	} `yaml:"tone"`

	Constraints []string `yaml:"constraints"`

	SpecialCommands struct {
		Help struct {
			Trigger  []string `yaml:"trigger"`
			Response string   `yaml:"response"`
		} `yaml:"help"`
	} `yaml:"special_commands"`
}

var (
	promptCacheMu sync.Mutex
	promptCache   = make(map[string]*SystemPromptConfig)
)

// LoadSystemPrompt reads and caches the prompt configuration at path.
func LoadSystemPrompt(path string) (*SystemPromptConfig, error) {
	promptCacheMu.Lock()
	defer promptCacheMu.Unlock()

	if cached, ok := promptCache[path]; ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read system prompt file: %w", err)
	}

	cfg, err := ParseSystemPrompt(data)
	if err != nil {
		return nil, err
	}

	promptCache[path] = cfg
	return cfg, nil
}

// ParseSystemPrompt parses prompt YAML without touching the cache.
func ParseSystemPrompt(data []byte) (*SystemPromptConfig, error) {
	var cfg SystemPromptConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse system prompt YAML: %w", err)
	}
	if cfg.System.Role == "" {
		return nil, fmt.Errorf("system prompt YAML has no system.role")
	}
	return &cfg, nil
}

// BuildSystemPrompt renders the configuration into a single system message.
func (c *SystemPromptConfig) BuildSystemPrompt() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are %s.\n\n", c.System.Role))

	sb.WriteString("## System overview\n")
	sb.WriteString(fmt.Sprintf("- **Name**: %s (%s)\n", c.SystemInfo.Name, c.SystemInfo.FullName))
	sb.WriteString(fmt.Sprintf("- **Purpose**: %s\n", c.SystemInfo.Purpose))
	if len(c.SystemInfo.Features) > 0 {
		sb.WriteString("- **Features**:\n")
		for i, feature := range c.SystemInfo.Features {
			sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, feature.Name, feature.Description))
			if feature.Endpoint != "" {
				sb.WriteString(fmt.Sprintf("     - API: %s\n", feature.Endpoint))
			}
		}
	}
	sb.WriteString("\n")

	if len(c.ResponseGuidelines) > 0 {
		sb.WriteString("## Response guidelines\n")
		for _, guideline := range c.ResponseGuidelines {
			sb.WriteString(fmt.Sprintf("%d. %s -> %s\n", guideline.Priority, guideline.Condition, guideline.Action))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## Tone\n")
	sb.WriteString(fmt.Sprintf("- Style: %s\n", c.Tone.Style))
	sb.WriteString(fmt.Sprintf("- Personality: %s\n", c.Tone.Personality))
	sb.WriteString(fmt.Sprintf("- Language level: %s\n", c.Tone.LanguageLevel))
	sb.WriteString("\n")

	if len(c.Constraints) > 0 {
		sb.WriteString("## Constraints\n")
		for _, constraint := range c.Constraints {
			sb.WriteString(fmt.Sprintf("- %s\n", constraint))
		}
	}

	return sb.String()
}

// FocusFor returns the endpoint-specific instruction, or "" when none is configured.
func (c *SystemPromptConfig) FocusFor(endpoint string) string {
	return c.Focus[endpoint]
}

// CheckSpecialCommand reports whether message triggers a canned command.
func (c *SystemPromptConfig) CheckSpecialCommand(message string) (bool, string) {
	lowerMsg := strings.ToLower(message)

	for _, trigger := range c.SpecialCommands.Help.Trigger {
		if strings.Contains(lowerMsg, strings.ToLower(trigger)) {
			return true, c.SpecialCommands.Help.Response
		}
	}

	return false, ""
}
