// Command aguiserver exposes the agent loop over the AG-UI protocol
// using Server-Sent Events, so AG-UI compatible frontends (such as
// CopilotKit) can drive it. It uses only the standard library for HTTP.
//
// Configuration is via environment variables; see LoadConfig.
//
// Usage:
//
//	ANTHROPIC_API_KEY=... go run ./cmd/aguiserver
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/agent"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/client"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/tool"
)

func main() {
	godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	c := client.New(client.Config{
		APIKeys: client.APIKeys{
			Anthropic: cfg.AnthropicKey,
			OpenAI:    cfg.OpenAIKey,
			Google:    cfg.GoogleKey,
		},
		DefaultModel: cfg.Model,
	})

	registry := tool.NewRegistry().Add(
		tool.NewSearchTool(tool.WithSearchCredentials(cfg.SearchKey, cfg.SearchEngine)),
		tool.NewCodeTool(),
		tool.NewPipelineTool(),
	)
	log.Printf("Registered %d tools", registry.Len())

	a := agent.New(c, registry)
	handler := NewAgentHandler(a, cfg)

	mux := http.NewServeMux()
	mux.Handle("/api/agent", corsMiddleware(handler))
	mux.HandleFunc("/health", healthHandler)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE needs no write timeout
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("Shutting down...")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Printf("Shutdown error: %v", err)
		}
	}()

	log.Printf("AG-UI server starting on :%s", cfg.Port)
	log.Printf("Model:    %s", cfg.Model)
	log.Printf("Endpoint: POST http://localhost:%s/api/agent", cfg.Port)
	log.Printf("Health:   GET  http://localhost:%s/health", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}

	log.Println("Server stopped")
}
