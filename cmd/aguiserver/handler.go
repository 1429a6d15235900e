package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	aguievents "github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/agent"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/agui"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/store"
)

// AgentHandler handles AG-UI agent requests over SSE.
type AgentHandler struct {
	agent  *agent.Agent
	config *Config
}

// NewAgentHandler creates a new handler for the given agent.
func NewAgentHandler(a *agent.Agent, cfg *Config) *AgentHandler {
	return &AgentHandler{agent: a, config: cfg}
}

// ServeHTTP handles POST requests to run the agent and stream events via SSE.
func (h *AgentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if r.Method != http.MethodPost {
		slog.Warn("method not allowed", "method", r.Method, "path", r.URL.Path)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var input agui.RunAgentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		slog.Warn("invalid request body", "error", err)
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	log := slog.With(
		"run_id", input.RunID,
		"thread_id", input.ThreadID,
	)

	prepared, err := input.Prepare()
	if err != nil {
		log.Warn("invalid input", "error", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The loop dispatches only server-side tools; frontend tool
	// declarations are accepted but not executed here.
	if len(prepared.ToolNames) > 0 {
		log.Info("ignoring frontend tools", "names", prepared.ToolNames)
	}

	// The transcript must end with the user turn that starts this run.
	last := prepared.Messages[len(prepared.Messages)-1]
	if last.Role != ai.RoleUser || last.Content == "" {
		log.Warn("transcript does not end with a user message")
		http.Error(w, "last message must be a user message", http.StatusBadRequest)
		return
	}
	conv := store.NewConversationFrom(prepared.Messages[:len(prepared.Messages)-1])

	log.Info("request started", "message_count", len(prepared.Messages))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	flusher, ok := w.(http.Flusher)
	if !ok {
		log.Error("streaming not supported")
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	mapper := agui.NewMapper(prepared.ThreadID, prepared.RunID)

	ctx := r.Context()
	events := h.agent.RunStream(ctx, conv, last.Content,
		agent.WithMaxSteps(h.config.MaxSteps),
		agent.WithTimeout(h.config.Timeout),
	)

	var eventCount int
	for ev := range events {
		aguiEvent := mapper.MapEvent(ev)
		if aguiEvent == nil {
			continue
		}
		eventCount++

		if err := writeSSE(w, flusher, aguiEvent); err != nil {
			log.Error("failed to write SSE event", "error", err, "event_type", aguiEvent.Type())
			return
		}
	}

	log.Info("request completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"events_sent", eventCount,
	)
}

// writeSSE writes an AG-UI event in SSE format.
func writeSSE(w http.ResponseWriter, flusher http.Flusher, ev aguievents.Event) error {
	data, err := ev.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type(), string(data)); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	flusher.Flush()
	return nil
}

// corsMiddleware adds CORS headers for cross-origin frontend requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// healthHandler returns a simple health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
