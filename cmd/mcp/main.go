// Command mcp serves the built-in tools over MCP stdio.
//
// MCP clients (such as desktop AI assistants) can discover and call the
// search, code, and pipeline tools through this server.
//
// Usage:
//
//	go run ./cmd/mcp
//
// Set SEARCH_API_KEY and SEARCH_ENGINE_ID to back the search tool with
// Google Programmable Search; without them it serves fallback results.
package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/mcp"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/tool"
)

func main() {
	godotenv.Load()

	registry := tool.NewRegistry().Add(
		tool.NewSearchTool(tool.WithSearchCredentials(
			os.Getenv("SEARCH_API_KEY"),
			os.Getenv("SEARCH_ENGINE_ID"),
		)),
		tool.NewCodeTool(),
		tool.NewPipelineTool(),
	)

	if err := mcp.ServeStdio(registry,
		mcp.WithName("multitool"),
		mcp.WithVersion("1.0.0"),
	); err != nil {
		log.Fatal(err)
	}
}
