package store

import (
	"testing"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversation_Append(t *testing.T) {
	t.Run("appends messages in order", func(t *testing.T) {
		c := NewConversation()

		require.NoError(t, c.Append(ai.NewUserMessage("hello")))
		require.NoError(t, c.Append(ai.NewAssistantMessage("hi there")))

		msgs := c.Messages()
		require.Len(t, msgs, 2)
		assert.Equal(t, ai.RoleUser, msgs[0].Role)
		assert.Equal(t, ai.RoleAssistant, msgs[1].Role)
	})

	t.Run("accepts tool results matching the preceding assistant turn", func(t *testing.T) {
		c := NewConversation()
		require.NoError(t, c.Append(ai.NewUserMessage("search for cats")))
		require.NoError(t, c.Append(ai.Message{
			Role:      ai.RoleAssistant,
			ToolCalls: []ai.ToolCall{{ID: "call-1", Name: "web_search", Arguments: `{"query":"cats"}`}},
		}))

		err := c.Append(ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call-1", Content: "results"}))

		assert.NoError(t, err)
		assert.Equal(t, 3, c.Len())
	})

	t.Run("rejects orphaned tool results", func(t *testing.T) {
		c := NewConversation()
		require.NoError(t, c.Append(ai.NewUserMessage("hi")))
		require.NoError(t, c.Append(ai.Message{
			Role:      ai.RoleAssistant,
			ToolCalls: []ai.ToolCall{{ID: "call-1", Name: "web_search"}},
		}))

		err := c.Append(ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call-99", Content: "x"}))

		var orphan *ErrOrphanToolResult
		require.ErrorAs(t, err, &orphan)
		assert.Equal(t, "call-99", orphan.ToolCallID)
		assert.Equal(t, 2, c.Len())
	})

	t.Run("rejects tool results without a preceding assistant message", func(t *testing.T) {
		c := NewConversation()
		require.NoError(t, c.Append(ai.NewUserMessage("hi")))

		err := c.Append(ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call-1", Content: "x"}))

		assert.Error(t, err)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("rejects tool results into an empty conversation", func(t *testing.T) {
		c := NewConversation()

		err := c.Append(ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call-1", Content: "x"}))

		assert.Error(t, err)
		assert.Zero(t, c.Len())
	})

	t.Run("batch append is atomic", func(t *testing.T) {
		c := NewConversation()

		err := c.Append(
			ai.NewUserMessage("hi"),
			ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call-1", Content: "x"}),
		)

		assert.Error(t, err)
		assert.Zero(t, c.Len())
	})
}

func TestConversation_Observers(t *testing.T) {
	t.Run("observers see every message in append order", func(t *testing.T) {
		c := NewConversation()
		var seen []ai.Role
		c.Subscribe(ObserverFunc(func(msg ai.Message) {
			seen = append(seen, msg.Role)
		}))

		require.NoError(t, c.Append(ai.NewUserMessage("a")))
		require.NoError(t, c.Append(ai.NewAssistantMessage("b")))

		assert.Equal(t, []ai.Role{ai.RoleUser, ai.RoleAssistant}, seen)
	})

	t.Run("rejected appends are not observed", func(t *testing.T) {
		c := NewConversation()
		count := 0
		c.Subscribe(ObserverFunc(func(msg ai.Message) { count++ }))

		_ = c.Append(ai.NewToolResultMessage(ai.ToolResult{ToolCallID: "call-1"}))

		assert.Zero(t, count)
	})
}

func TestConversation_Views(t *testing.T) {
	t.Run("Messages returns a copy", func(t *testing.T) {
		c := NewConversation()
		require.NoError(t, c.Append(ai.NewUserMessage("hi")))

		msgs := c.Messages()
		msgs[0].Content = "mutated"

		assert.Equal(t, "hi", c.Messages()[0].Content)
	})

	t.Run("Last bounds correctly", func(t *testing.T) {
		c := NewConversationFrom([]ai.Message{
			ai.NewUserMessage("1"),
			ai.NewAssistantMessage("2"),
			ai.NewUserMessage("3"),
		})

		assert.Len(t, c.Last(2), 2)
		assert.Equal(t, "3", c.Last(1)[0].Content)
		assert.Len(t, c.Last(10), 3)
		assert.Nil(t, c.Last(0))
	})
}
