package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// SearchToolOption configures the web search tool.
type SearchToolOption func(*searchToolConfig)

type searchToolConfig struct {
	apiKey     string
	engineID   string
	endpoint   string
	client     *http.Client
	maxResults int
	timeout    time.Duration
}

// WithSearchCredentials sets the Google Programmable Search API key
// and engine ID. Without both, the tool runs in fallback mode and
// never attempts a network call.
func WithSearchCredentials(apiKey, engineID string) SearchToolOption {
	return func(c *searchToolConfig) {
		c.apiKey = apiKey
		c.engineID = engineID
	}
}

// WithSearchClient sets a custom HTTP client.
func WithSearchClient(client *http.Client) SearchToolOption {
	return func(c *searchToolConfig) {
		c.client = client
	}
}

// WithSearchEndpoint overrides the search API endpoint. Used in tests.
func WithSearchEndpoint(endpoint string) SearchToolOption {
	return func(c *searchToolConfig) {
		c.endpoint = endpoint
	}
}

// WithSearchMaxResults limits the number of results returned.
// Default is 5. The API caps a single page at 10.
func WithSearchMaxResults(n int) SearchToolOption {
	return func(c *searchToolConfig) {
		c.maxResults = n
	}
}

// WithSearchTimeout sets the request timeout. Default is 15 seconds.
func WithSearchTimeout(d time.Duration) SearchToolOption {
	return func(c *searchToolConfig) {
		c.timeout = d
	}
}

func applySearchOpts(opts []SearchToolOption) *searchToolConfig {
	cfg := &searchToolConfig{
		endpoint:   "https://www.googleapis.com/customsearch/v1",
		maxResults: 5,
		timeout:    15 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxResults > 10 {
		cfg.maxResults = 10
	}
	if cfg.client == nil {
		cfg.client = &http.Client{Timeout: cfg.timeout}
	}
	return cfg
}

func (c *searchToolConfig) configured() bool {
	return c.apiKey != "" && c.engineID != ""
}

// searchArgs defines arguments for the web search tool.
type searchArgs struct {
	Query string `json:"query" desc:"Search query" required:"true"`
}

// searchItem is one result entry in the tool's output payload.
type searchItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// searchOutput is the JSON payload returned to the model. Source is
// "live" for real API results and "fallback" for the deterministic
// substitute set, so the model can tell synthetic data apart.
type searchOutput struct {
	Query   string       `json:"query"`
	Source  string       `json:"source"`
	Results []searchItem `json:"results"`
}

// googleSearchResponse mirrors the fields we read from the
// Programmable Search JSON API response.
type googleSearchResponse struct {
	Items []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"items"`
}

// NewSearchTool creates the web search tool. With credentials it
// queries the Google Programmable Search JSON API; without them, or
// when the API call fails, it returns a deterministic fallback result
// set tagged "fallback".
func NewSearchTool(opts ...SearchToolOption) Registration {
	cfg := applySearchOpts(opts)

	return Func("web_search", "Search the web for current information",
		func(ctx context.Context, args searchArgs) (string, error) {
			if !cfg.configured() {
				return marshalSearchOutput(fallbackResults(args.Query))
			}

			out, err := cfg.search(ctx, args.Query)
			if err != nil {
				// Degrade to the substitute set rather than failing the
				// call; the source tag tells the model what it got.
				return marshalSearchOutput(fallbackResults(args.Query))
			}
			return marshalSearchOutput(out)
		})
}

func (c *searchToolConfig) search(ctx context.Context, query string) (searchOutput, error) {
	q := url.Values{}
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", query)
	q.Set("num", fmt.Sprintf("%d", c.maxResults))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return searchOutput{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return searchOutput{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1024*1024))
	if err != nil {
		return searchOutput{}, err
	}

	if resp.StatusCode != http.StatusOK {
		return searchOutput{}, fmt.Errorf("search API returned %d: %.200s", resp.StatusCode, string(body))
	}

	var parsed googleSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return searchOutput{}, fmt.Errorf("search API response malformed: %w", err)
	}

	out := searchOutput{Query: query, Source: "live"}
	for _, item := range parsed.Items {
		out.Results = append(out.Results, searchItem{
			Title:   item.Title,
			Link:    item.Link,
			Snippet: item.Snippet,
		})
		if len(out.Results) >= c.maxResults {
			break
		}
	}
	return out, nil
}

// fallbackResults returns the fixed substitute result set used when
// search is unconfigured or unreachable.
func fallbackResults(query string) searchOutput {
	return searchOutput{
		Query:  query,
		Source: "fallback",
		Results: []searchItem{
			{
				Title:   "Search unavailable",
				Link:    "",
				Snippet: fmt.Sprintf("No live search backend is configured. This is a synthetic placeholder result for the query %q.", query),
			},
		},
	}
}

func marshalSearchOutput(out searchOutput) (string, error) {
	b, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
