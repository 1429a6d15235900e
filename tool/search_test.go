package tool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execSearch(t *testing.T, reg Registration, query string) searchOutput {
	t.Helper()
	r := NewRegistry().Add(reg)
	result, err := r.Execute(context.Background(), ai.ToolCall{
		ID: "call-1", Name: "web_search", Arguments: `{"query":"` + query + `"}`,
	})
	require.NoError(t, err)
	require.False(t, result.IsError, result.Content)

	var out searchOutput
	require.NoError(t, json.Unmarshal([]byte(result.Content), &out))
	return out
}

func TestSearchTool(t *testing.T) {
	t.Run("unconfigured runs in fallback mode", func(t *testing.T) {
		out := execSearch(t, NewSearchTool(), "golang concurrency")
		assert.Equal(t, "fallback", out.Source)
		assert.Equal(t, "golang concurrency", out.Query)
		require.Len(t, out.Results, 1)
		assert.Contains(t, out.Results[0].Snippet, "golang concurrency")
	})

	t.Run("fallback is deterministic", func(t *testing.T) {
		a := execSearch(t, NewSearchTool(), "same query")
		b := execSearch(t, NewSearchTool(), "same query")
		assert.Equal(t, a, b)
	})

	t.Run("configured queries the API", func(t *testing.T) {
		var gotQuery, gotKey, gotCx string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("q")
			gotKey = r.URL.Query().Get("key")
			gotCx = r.URL.Query().Get("cx")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]string{
					{"title": "Result One", "link": "https://one.example", "snippet": "first"},
					{"title": "Result Two", "link": "https://two.example", "snippet": "second"},
				},
			})
		}))
		defer srv.Close()

		out := execSearch(t, NewSearchTool(
			WithSearchCredentials("test-key", "test-cx"),
			WithSearchEndpoint(srv.URL),
		), "golang")

		assert.Equal(t, "golang", gotQuery)
		assert.Equal(t, "test-key", gotKey)
		assert.Equal(t, "test-cx", gotCx)
		assert.Equal(t, "live", out.Source)
		require.Len(t, out.Results, 2)
		assert.Equal(t, "Result One", out.Results[0].Title)
		assert.Equal(t, "https://two.example", out.Results[1].Link)
	})

	t.Run("API failure degrades to fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "quota exceeded", http.StatusTooManyRequests)
		}))
		defer srv.Close()

		out := execSearch(t, NewSearchTool(
			WithSearchCredentials("test-key", "test-cx"),
			WithSearchEndpoint(srv.URL),
		), "anything")
		assert.Equal(t, "fallback", out.Source)
	})

	t.Run("malformed API response degrades to fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		out := execSearch(t, NewSearchTool(
			WithSearchCredentials("test-key", "test-cx"),
			WithSearchEndpoint(srv.URL),
		), "anything")
		assert.Equal(t, "fallback", out.Source)
	})

	t.Run("max results caps output", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			items := make([]map[string]string, 10)
			for i := range items {
				items[i] = map[string]string{"title": "t", "link": "l", "snippet": "s"}
			}
			_ = json.NewEncoder(w).Encode(map[string]any{"items": items})
		}))
		defer srv.Close()

		out := execSearch(t, NewSearchTool(
			WithSearchCredentials("k", "cx"),
			WithSearchEndpoint(srv.URL),
			WithSearchMaxResults(3),
		), "q")
		assert.Len(t, out.Results, 3)
	})

	t.Run("missing query rejected", func(t *testing.T) {
		r := NewRegistry().Add(NewSearchTool())
		result, err := r.Execute(context.Background(), ai.ToolCall{
			ID: "call-1", Name: "web_search", Arguments: `{}`,
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
	})
}
