package client

import (
	"context"
	"testing"
	"time"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInferProvider(t *testing.T) {
	tests := []struct {
		model    string
		provider ai.Provider
		ok       bool
	}{
		{"claude-sonnet-4-5", ai.ProviderAnthropic, true},
		{"claude-opus-4-1", ai.ProviderAnthropic, true},
		{"gpt-4o", ai.ProviderOpenAI, true},
		{"gpt-5", ai.ProviderOpenAI, true},
		{"o3-mini", ai.ProviderOpenAI, true},
		{"chatgpt-4o-latest", ai.ProviderOpenAI, true},
		{"gemini-2.5-flash", ai.ProviderGoogle, true},
		{"GEMINI-2.5-PRO", ai.ProviderGoogle, true},
		{"llama-3-70b", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			provider, ok := InferProvider(tt.model)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.provider, provider)
		})
	}
}

func TestChatMissingAPIKey(t *testing.T) {
	c := New(Config{DefaultModel: "claude-sonnet-4-5"})

	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")})
	require.Error(t, err)

	var missing *ErrMissingAPIKey
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "anthropic", missing.Provider)
	assert.Equal(t, "claude-sonnet-4-5", missing.Model)
	assert.Contains(t, err.Error(), "claude-sonnet-4-5")
}

func TestChatStreamMissingAPIKey(t *testing.T) {
	c := New(Config{DefaultModel: "gpt-4o"})

	_, err := c.ChatStream(context.Background(), []ai.Message{ai.NewUserMessage("hi")})
	var missing *ErrMissingAPIKey
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "openai", missing.Provider)
}

func TestChatUnroutableModel(t *testing.T) {
	c := New(Config{DefaultModel: "llama-3-70b"})

	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")})
	var unknown *ErrUnknownProvider
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "llama-3-70b", unknown.Model)
}

func TestDefaultProviderRoutesUnknownModels(t *testing.T) {
	// An unrecognized model name routes to the configured default
	// provider, which then fails on the missing key rather than routing.
	c := New(Config{
		DefaultModel:    "my-custom-finetune",
		DefaultProvider: ai.ProviderOpenAI,
	})

	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")})
	var missing *ErrMissingAPIKey
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "openai", missing.Provider)
}

func TestPerRequestModelOverridesDefault(t *testing.T) {
	c := New(Config{
		DefaultModel: "claude-sonnet-4-5",
		APIKeys:      APIKeys{Anthropic: "key"},
	})

	// gpt model routes to openai, where no key is configured.
	_, err := c.Chat(context.Background(), []ai.Message{ai.NewUserMessage("hi")},
		ai.WithModel("gpt-4o"))
	var missing *ErrMissingAPIKey
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "openai", missing.Provider)
}

func TestClientOptionsAccumulate(t *testing.T) {
	c := New(Config{},
		WithDefaultTemperature(0.2),
		WithDefaultMaxTokens(512),
		WithDefaultChatOptions(ai.WithModel("gpt-4o")),
	)

	options := ai.ApplyOptions(c.defaultChatOpts...)
	require.NotNil(t, options.Temperature)
	assert.Equal(t, 0.2, *options.Temperature)
	assert.Equal(t, 512, options.MaxTokens)
	assert.Equal(t, "gpt-4o", options.Model)
}

func TestEmitNonBlocking(t *testing.T) {
	ch := make(chan Event, 1)
	emit(ch, Event{Type: EventRequestStart})
	// Channel is full; the second emit must not block.
	done := make(chan struct{})
	go func() {
		emit(ch, Event{Type: EventRequestComplete})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("emit blocked on a full channel")
	}

	ev := <-ch
	assert.Equal(t, EventRequestStart, ev.Type)
	assert.False(t, ev.Timestamp.IsZero())
}

func TestEmitNilChannel(t *testing.T) {
	assert.NotPanics(t, func() {
		emit(nil, Event{Type: EventRequestStart})
	})
}
