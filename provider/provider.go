package provider

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/SaiNageswarS/lab-tutor-gateway/appconfig"
	"github.com/SaiNageswarS/lab-tutor-gateway/tutor"
)

// default models per provider, used when completion_model is empty.
const (
	DefaultOpenAIModel    = "gpt-4"
	DefaultAnthropicModel = "claude-3-5-haiku-20241022"
)

// New builds the completion service selected by completion_provider.
func New(cfg *appconfig.AppConfig) (tutor.CompletionService, error) {
	model := cfg.CompletionModel

	switch strings.ToLower(cfg.CompletionProvider) {
	case "", "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is not set")
		}
		if model == "" {
			model = DefaultOpenAIModel
		}
		timeout := time.Duration(cfg.CompletionTimeoutSeconds) * time.Second
		return NewOpenAIClient(cfg.CompletionBaseURL, apiKey, model, timeout), nil

	case "anthropic":
		if os.Getenv("ANTHROPIC_API_KEY") == "" {
			return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
		}
		if model == "" {
			model = DefaultAnthropicModel
		}
		return NewAnthropicClient(model), nil

	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.CompletionProvider)
	}
}
