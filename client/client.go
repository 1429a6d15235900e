package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/provider/anthropic"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/provider/google"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/provider/openai"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/retry"
)

// APIKeys holds API keys for different providers.
// Only configure keys for providers you intend to use.
type APIKeys struct {
	Anthropic string
	OpenAI    string
	Google    string
}

// Config holds configuration for creating a unified client.
type Config struct {
	// APIKeys contains authentication keys for each provider.
	APIKeys APIKeys

	// DefaultModel is used when a request does not specify a model.
	DefaultModel string

	// DefaultProvider routes models whose names don't identify a
	// provider. Empty means model names must be recognizable.
	DefaultProvider ai.Provider

	// RetryConfig configures retry behavior for transient errors.
	// If nil, the default configuration (one bounded retry) is used.
	RetryConfig *retry.Config

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ErrMissingAPIKey is returned when a model is used but no API key
// is configured for that model's provider.
type ErrMissingAPIKey struct {
	Provider string
	Model    string
}

func (e *ErrMissingAPIKey) Error() string {
	if e.Model != "" {
		return fmt.Sprintf("no API key configured for %s (required by model %q)", e.Provider, e.Model)
	}
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ErrUnknownProvider is returned when a model name cannot be routed to
// any provider and no default provider is configured.
type ErrUnknownProvider struct {
	Model string
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("cannot determine provider for model %q: set Config.DefaultProvider", e.Model)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultChatOpts = append(c.defaultChatOpts, opts...)
	}
}

// Client is a unified interface over the supported chat backends.
// Provider adapters are lazily initialized when first needed.
type Client struct {
	apiKeys         APIKeys
	defaultModel    string
	defaultProvider ai.Provider
	retryConfig     retry.Config
	events          chan<- Event
	defaultChatOpts []ai.Option

	// Lazy-initialized providers (protected by mutex)
	mu              sync.RWMutex
	anthropicClient *anthropic.Client
	openaiClient    *openai.Client
	googleClient    *google.Client
	googleInitErr   error
}

// New creates a unified client with the given configuration.
// Provider adapters are lazily initialized based on the model used.
func New(cfg Config, opts ...ClientOption) *Client {
	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = *cfg.RetryConfig
	}

	c := &Client{
		apiKeys:         cfg.APIKeys,
		defaultModel:    cfg.DefaultModel,
		defaultProvider: cfg.DefaultProvider,
		retryConfig:     retryConfig,
		events:          cfg.Events,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// InferProvider maps a model name to its provider. Recognized prefixes:
// claude (Anthropic), gpt/o1/o3/o4 (OpenAI), gemini (Google).
func InferProvider(model string) (ai.Provider, bool) {
	name := strings.ToLower(model)
	switch {
	case strings.HasPrefix(name, "claude"):
		return ai.ProviderAnthropic, true
	case strings.HasPrefix(name, "gpt"),
		strings.HasPrefix(name, "o1"),
		strings.HasPrefix(name, "o3"),
		strings.HasPrefix(name, "o4"),
		strings.HasPrefix(name, "chatgpt"):
		return ai.ProviderOpenAI, true
	case strings.HasPrefix(name, "gemini"):
		return ai.ProviderGoogle, true
	default:
		return "", false
	}
}

func (c *Client) getAnthropicClient() (*anthropic.Client, error) {
	c.mu.RLock()
	if c.anthropicClient != nil {
		defer c.mu.RUnlock()
		return c.anthropicClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.anthropicClient != nil {
		return c.anthropicClient, nil
	}

	if c.apiKeys.Anthropic == "" {
		return nil, &ErrMissingAPIKey{Provider: "anthropic"}
	}

	c.anthropicClient = anthropic.New(c.apiKeys.Anthropic)
	return c.anthropicClient, nil
}

func (c *Client) getOpenAIClient() (*openai.Client, error) {
	c.mu.RLock()
	if c.openaiClient != nil {
		defer c.mu.RUnlock()
		return c.openaiClient, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.openaiClient != nil {
		return c.openaiClient, nil
	}

	if c.apiKeys.OpenAI == "" {
		return nil, &ErrMissingAPIKey{Provider: "openai"}
	}

	c.openaiClient = openai.New(c.apiKeys.OpenAI)
	return c.openaiClient, nil
}

func (c *Client) getGoogleClient(ctx context.Context) (*google.Client, error) {
	c.mu.RLock()
	if c.googleClient != nil {
		defer c.mu.RUnlock()
		return c.googleClient, nil
	}
	if c.googleInitErr != nil {
		defer c.mu.RUnlock()
		return nil, c.googleInitErr
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.googleClient != nil {
		return c.googleClient, nil
	}
	if c.googleInitErr != nil {
		return nil, c.googleInitErr
	}

	if c.apiKeys.Google == "" {
		return nil, &ErrMissingAPIKey{Provider: "google"}
	}

	client, err := google.New(ctx, c.apiKeys.Google)
	if err != nil {
		c.googleInitErr = fmt.Errorf("failed to initialize Google client: %w", err)
		return nil, c.googleInitErr
	}

	c.googleClient = client
	return c.googleClient, nil
}

// resolveModel picks the request model, falling back to the configured
// default, and routes it to a provider.
func (c *Client) resolveModel(options *ai.Options) (string, ai.Provider, error) {
	model := options.Model
	if model == "" {
		model = c.defaultModel
	}
	provider, ok := InferProvider(model)
	if !ok {
		provider = c.defaultProvider
	}
	if provider == "" {
		return "", "", &ErrUnknownProvider{Model: model}
	}
	return model, provider, nil
}

// getChatProvider returns the chat adapter for the given provider.
func (c *Client) getChatProvider(ctx context.Context, provider ai.Provider, model string) (ai.ChatProvider, error) {
	switch provider {
	case ai.ProviderAnthropic:
		client, err := c.getAnthropicClient()
		if err != nil {
			return nil, c.tagMissingKey(err, model)
		}
		return client, nil
	case ai.ProviderOpenAI:
		client, err := c.getOpenAIClient()
		if err != nil {
			return nil, c.tagMissingKey(err, model)
		}
		return client, nil
	case ai.ProviderGoogle:
		client, err := c.getGoogleClient(ctx)
		if err != nil {
			return nil, c.tagMissingKey(err, model)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func (c *Client) tagMissingKey(err error, model string) error {
	if missing, ok := err.(*ErrMissingAPIKey); ok {
		return &ErrMissingAPIKey{Provider: missing.Provider, Model: model}
	}
	return err
}

// Chat sends a conversation and returns a complete response.
// The model can be set via WithModel, or the default model is used.
// Transient errors are retried per the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend default options so per-request options override them
	opts = append(c.defaultChatOpts, opts...)
	options := ai.ApplyOptions(opts...)

	model, provider, err := c.resolveModel(options)
	if err != nil {
		return nil, err
	}

	chatProvider, err := c.getChatProvider(ctx, provider, model)
	if err != nil {
		return nil, err
	}

	// Ensure the resolved model reaches the adapter
	if options.Model == "" && model != "" {
		opts = append([]ai.Option{ai.WithModel(model)}, opts...)
	}

	start := time.Now()
	emit(c.events, Event{
		Type:      EventRequestStart,
		Operation: "chat",
		Provider:  provider,
		Model:     model,
	})

	resp, err := retry.Do(ctx, c.retryConfig, func() (*ai.Response, error) {
		return chatProvider.Chat(ctx, messages, opts...)
	})
	if err != nil {
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: "chat",
			Provider:  provider,
			Model:     model,
			Duration:  time.Since(start),
			Error:     err,
		})
		return nil, err
	}

	var usage *ai.Usage
	if resp != nil {
		usage = &resp.Usage
	}
	emit(c.events, Event{
		Type:      EventRequestComplete,
		Operation: "chat",
		Provider:  provider,
		Model:     model,
		Duration:  time.Since(start),
		Usage:     usage,
	})
	return resp, nil
}

// ChatStream sends a conversation and returns a channel of streaming events.
// Transient errors while establishing the stream are retried; once events
// start flowing, failures surface on the channel instead.
func (c *Client) ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan ai.StreamEvent, error) {
	// Prepend default options so per-request options override them
	opts = append(c.defaultChatOpts, opts...)
	options := ai.ApplyOptions(opts...)

	model, provider, err := c.resolveModel(options)
	if err != nil {
		return nil, err
	}

	chatProvider, err := c.getChatProvider(ctx, provider, model)
	if err != nil {
		return nil, err
	}

	// Ensure the resolved model reaches the adapter
	if options.Model == "" && model != "" {
		opts = append([]ai.Option{ai.WithModel(model)}, opts...)
	}

	start := time.Now()
	emit(c.events, Event{
		Type:      EventRequestStart,
		Operation: "chat_stream",
		Provider:  provider,
		Model:     model,
	})

	ch, err := retry.DoStream(ctx, c.retryConfig, func() (<-chan ai.StreamEvent, error) {
		return chatProvider.ChatStream(ctx, messages, opts...)
	})
	if err != nil {
		emit(c.events, Event{
			Type:      EventRequestError,
			Operation: "chat_stream",
			Provider:  provider,
			Model:     model,
			Duration:  time.Since(start),
			Error:     err,
		})
		return nil, err
	}

	emit(c.events, Event{
		Type:      EventRequestComplete,
		Operation: "chat_stream",
		Provider:  provider,
		Model:     model,
		Duration:  time.Since(start),
	})
	return ch, nil
}

var _ ai.ChatProvider = (*Client)(nil)
