package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/model"
)

// Config holds the server configuration, loaded from environment
// variables.
type Config struct {
	Port         string
	Model        string
	MaxSteps     int
	Timeout      time.Duration
	AnthropicKey string
	OpenAIKey    string
	GoogleKey    string
	SearchKey    string
	SearchEngine string
}

// LoadConfig reads configuration from the environment.
//
//	AGUI_PORT         - server port (default: 8080)
//	MODEL             - chat model (default: first configured provider's default)
//	MAX_STEPS         - max loop iterations (default: 10)
//	TIMEOUT           - overall run timeout (default: 2m)
//	ANTHROPIC_API_KEY, OPENAI_API_KEY, GOOGLE_API_KEY
//	SEARCH_API_KEY, SEARCH_ENGINE_ID
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         envOr("AGUI_PORT", "8080"),
		Model:        os.Getenv("MODEL"),
		MaxSteps:     10,
		Timeout:      2 * time.Minute,
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAIKey:    os.Getenv("OPENAI_API_KEY"),
		GoogleKey:    os.Getenv("GOOGLE_API_KEY"),
		SearchKey:    os.Getenv("SEARCH_API_KEY"),
		SearchEngine: os.Getenv("SEARCH_ENGINE_ID"),
	}

	if v := os.Getenv("MAX_STEPS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid MAX_STEPS %q", v)
		}
		cfg.MaxSteps = n
	}

	if v := os.Getenv("TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid TIMEOUT %q: %w", v, err)
		}
		cfg.Timeout = d
	}

	if cfg.Model == "" {
		switch {
		case cfg.AnthropicKey != "":
			cfg.Model = model.ClaudeSonnet45
		case cfg.OpenAIKey != "":
			cfg.Model = model.GPT4o
		case cfg.GoogleKey != "":
			cfg.Model = model.Gemini25Flash
		default:
			return nil, fmt.Errorf("no API keys configured: set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GOOGLE_API_KEY")
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
