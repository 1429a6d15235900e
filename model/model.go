// Package model provides identifiers and pricing for the supported chat
// models. Model identity is a plain string throughout the API; these
// constants name the current models so callers avoid typos, and the
// pricing table lets surfaces estimate the cost of a run.
package model

// Anthropic Claude models.
const (
	ClaudeOpus45   = "claude-opus-4-5"
	ClaudeSonnet45 = "claude-sonnet-4-5"
	ClaudeHaiku45  = "claude-haiku-4-5"
)

// OpenAI models.
const (
	GPT4o     = "gpt-4o"
	GPT4oMini = "gpt-4o-mini"
	GPT5      = "gpt-5"
	GPT5Mini  = "gpt-5-mini"
	O3        = "o3"
	O3Mini    = "o3-mini"
	O4Mini    = "o4-mini"
)

// Google Gemini models.
const (
	Gemini25Pro       = "gemini-2.5-pro"
	Gemini25Flash     = "gemini-2.5-flash"
	Gemini25FlashLite = "gemini-2.5-flash-lite"
)
