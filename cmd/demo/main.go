// Command demo is an interactive REPL that runs the agent loop against a
// live provider with the built-in tools registered.
//
// Set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GOOGLE_API_KEY (a .env file
// is loaded if present). Optionally set SEARCH_API_KEY and
// SEARCH_ENGINE_ID to back the search tool with Google Programmable
// Search; without them the tool serves fallback results.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/agent"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/client"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/event"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/model"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/store"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/tool"
)

var (
	reader      = bufio.NewReader(os.Stdin)
	activeModel string
)

func main() {
	godotenv.Load()
	ctx := context.Background()

	fmt.Println("multitool agent demo")
	fmt.Println("type a message, or /quit to exit")
	fmt.Println()

	keys := client.APIKeys{
		Anthropic: os.Getenv("ANTHROPIC_API_KEY"),
		OpenAI:    os.Getenv("OPENAI_API_KEY"),
		Google:    os.Getenv("GOOGLE_API_KEY"),
	}

	chatModel := pickModel(keys)
	if chatModel == "" {
		fmt.Fprintln(os.Stderr, "no API keys found: set ANTHROPIC_API_KEY, OPENAI_API_KEY, or GOOGLE_API_KEY")
		os.Exit(1)
	}
	if override := os.Getenv("MODEL"); override != "" {
		chatModel = override
	}
	activeModel = chatModel
	fmt.Printf("model: %s\n\n", chatModel)

	c := client.New(client.Config{
		APIKeys:      keys,
		DefaultModel: chatModel,
	})

	registry := tool.NewRegistry().Add(
		tool.NewSearchTool(tool.WithSearchCredentials(
			os.Getenv("SEARCH_API_KEY"),
			os.Getenv("SEARCH_ENGINE_ID"),
		)),
		tool.NewCodeTool(),
		tool.NewPipelineTool(),
	)
	fmt.Printf("tools: %s\n\n", strings.Join(registry.Names(), ", "))

	a := agent.New(c, registry)
	conv := store.NewConversation()

	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}

		for ev := range a.RunStream(ctx, conv, line) {
			render(ev)
		}
		fmt.Println()
	}
}

// pickModel selects a default model for the first configured provider.
func pickModel(keys client.APIKeys) string {
	switch {
	case keys.Anthropic != "":
		return model.ClaudeSonnet45
	case keys.OpenAI != "":
		return model.GPT4o
	case keys.Google != "":
		return model.Gemini25Flash
	default:
		return ""
	}
}

func render(ev event.Event) {
	switch ev.Type {
	case event.MessageDelta:
		fmt.Print(ev.Delta)
	case event.MessageEnd:
		fmt.Println()
	case event.ToolCallStart:
		if ev.ToolCall != nil {
			fmt.Printf("[tool: %s %s]\n", ev.ToolCall.Name, ev.ToolCall.Arguments)
		}
	case event.ToolCallResult:
		if ev.ToolResult != nil {
			content := ev.ToolResult.Content
			if len(content) > 200 {
				content = content[:200] + "..."
			}
			status := "ok"
			if ev.ToolResult.IsError {
				status = "error"
			}
			fmt.Printf("[result (%s): %s]\n", status, content)
		}
	case event.RunError:
		fmt.Fprintf(os.Stderr, "error: %v\n", ev.Error)
	case event.RunEnd:
		if ev.Message != "" && ev.Message != string(agent.TerminationComplete) {
			fmt.Printf("[run ended: %s]\n", ev.Message)
		}
		if ev.Response != nil {
			printUsage(ev.Response.Usage)
		}
	}
}

func printUsage(u ai.Usage) {
	if u.InputTokens == 0 && u.OutputTokens == 0 {
		return
	}
	if cost, ok := model.EstimateCost(activeModel, u); ok {
		fmt.Printf("[tokens: %d in, %d out, ~$%.4f]\n", u.InputTokens, u.OutputTokens, cost)
		return
	}
	fmt.Printf("[tokens: %d in, %d out]\n", u.InputTokens, u.OutputTokens)
}
