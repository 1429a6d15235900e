package openai

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/openai/openai-go"
	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertMessages(t *testing.T) {
	t.Run("roles map to message unions", func(t *testing.T) {
		result := convertMessages([]ai.Message{
			ai.NewSystemMessage("be brief"),
			ai.NewUserMessage("hi"),
			ai.NewAssistantMessage("hello"),
		})
		require.Len(t, result, 3)
		assert.NotNil(t, result[0].OfSystem)
		assert.NotNil(t, result[1].OfUser)
		assert.NotNil(t, result[2].OfAssistant)
	})

	t.Run("empty messages skipped", func(t *testing.T) {
		result := convertMessages([]ai.Message{
			ai.NewUserMessage(""),
			ai.NewAssistantMessage(""),
		})
		assert.Empty(t, result)
	})

	t.Run("assistant tool calls preserved", func(t *testing.T) {
		args := `{"query":"go generics"}`
		result := convertMessages([]ai.Message{
			{
				Role:    ai.RoleAssistant,
				Content: "let me check",
				ToolCalls: []ai.ToolCall{
					{ID: "call-1", Name: "web_search", Arguments: args},
				},
			},
		})
		require.Len(t, result, 1)
		require.NotNil(t, result[0].OfAssistant)
		calls := result[0].OfAssistant.ToolCalls
		require.Len(t, calls, 1)
		assert.Equal(t, "call-1", calls[0].ID)
		assert.Equal(t, "web_search", calls[0].Function.Name)
		assert.Equal(t, args, calls[0].Function.Arguments)
	})

	t.Run("each tool result becomes its own tool message", func(t *testing.T) {
		result := convertMessages([]ai.Message{
			ai.NewToolResultMessage(
				ai.ToolResult{ToolCallID: "call-1", Content: "ok"},
				ai.ToolResult{ToolCallID: "call-2", Content: "also ok"},
			),
		})
		require.Len(t, result, 2)
		require.NotNil(t, result[0].OfTool)
		assert.Equal(t, "call-1", result[0].OfTool.ToolCallID)
		require.NotNil(t, result[1].OfTool)
		assert.Equal(t, "call-2", result[1].OfTool.ToolCallID)
	})
}

func TestConvertTools(t *testing.T) {
	schema := json.RawMessage(`{
		"type": "object",
		"properties": {"code": {"type": "string"}},
		"required": ["code"]
	}`)

	result := convertTools([]ai.Tool{
		{Name: "run_code", Description: "Run code", Parameters: schema},
	})
	require.Len(t, result, 1)
	assert.Equal(t, "run_code", result[0].Function.Name)
	assert.NotNil(t, result[0].Function.Parameters["properties"])
}

func TestExtractToolCalls(t *testing.T) {
	t.Run("no tool calls", func(t *testing.T) {
		assert.Nil(t, extractToolCalls(openai.ChatCompletionMessage{}))
	})

	t.Run("order and content preserved", func(t *testing.T) {
		msg := openai.ChatCompletionMessage{
			ToolCalls: []openai.ChatCompletionMessageToolCall{
				{ID: "call-a", Function: openai.ChatCompletionMessageToolCallFunction{
					Name: "web_search", Arguments: `{"query":"x"}`,
				}},
				{ID: "call-b", Function: openai.ChatCompletionMessageToolCallFunction{
					Name: "run_code", Arguments: `{"code":"y"}`,
				}},
			},
		}
		calls := extractToolCalls(msg)
		require.Len(t, calls, 2)
		assert.Equal(t, ai.ToolCall{ID: "call-a", Name: "web_search", Arguments: `{"query":"x"}`}, calls[0])
		assert.Equal(t, ai.ToolCall{ID: "call-b", Name: "run_code", Arguments: `{"code":"y"}`}, calls[1])
	})
}

func TestRoundTrip(t *testing.T) {
	// A normalized turn re-serialized for the next request keeps text
	// and argument content byte-for-byte.
	original := openai.ChatCompletionMessage{
		Content: "using tools",
		ToolCalls: []openai.ChatCompletionMessageToolCall{
			{ID: "call-1", Function: openai.ChatCompletionMessageToolCallFunction{
				Name: "text_pipeline", Arguments: `{"operation":"summarize","input":"long text"}`,
			}},
		},
	}

	calls := extractToolCalls(original)
	msg := ai.Message{Role: ai.RoleAssistant, Content: original.Content, ToolCalls: calls}
	out := convertMessages([]ai.Message{msg})

	require.Len(t, out, 1)
	sent := out[0].OfAssistant
	assert.Equal(t, original.Content, sent.Content.OfString.Value)
	require.Len(t, sent.ToolCalls, 1)
	assert.Equal(t, original.ToolCalls[0].ID, sent.ToolCalls[0].ID)
	assert.Equal(t, original.ToolCalls[0].Function.Arguments, sent.ToolCalls[0].Function.Arguments)
}

func TestCategorizeStatusCode(t *testing.T) {
	assert.Equal(t, ai.ErrorTransient, categorizeStatusCode(429))
	assert.Equal(t, ai.ErrorTransient, categorizeStatusCode(500))
	assert.Equal(t, ai.ErrorPermanent, categorizeStatusCode(401))
	assert.Equal(t, ai.ErrorUserInput, categorizeStatusCode(422))
}

func TestWrapError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, wrapError(nil))
	})

	t.Run("plain error passes through uncategorized", func(t *testing.T) {
		plain := errors.New("read tcp: i/o timeout")
		wrapped := wrapError(plain)
		assert.Equal(t, plain, wrapped)
		var ce ai.CategorizedError
		assert.False(t, errors.As(wrapped, &ce))
	})
}
