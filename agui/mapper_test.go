package agui

import (
	"errors"
	"testing"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/event"
)

func TestNewMapper(t *testing.T) {
	t.Run("uses provided IDs", func(t *testing.T) {
		m := NewMapper("thread-1", "run-1")
		assert.Equal(t, "thread-1", m.ThreadID())
		assert.Equal(t, "run-1", m.RunID())
	})

	t.Run("generates missing IDs", func(t *testing.T) {
		m := NewMapper("", "")
		assert.NotEmpty(t, m.ThreadID())
		assert.NotEmpty(t, m.RunID())
	})
}

func TestMapRunLifecycle(t *testing.T) {
	m := NewMapper("thread-1", "run-1")

	started := m.MapEvent(event.Event{Type: event.RunStart})
	require.NotNil(t, started)
	assert.Equal(t, events.EventTypeRunStarted, started.Type())

	finished := m.MapEvent(event.Event{Type: event.RunEnd})
	require.NotNil(t, finished)
	assert.Equal(t, events.EventTypeRunFinished, finished.Type())

	failed := m.MapEvent(event.Event{Type: event.RunError, Error: errors.New("boom")})
	require.NotNil(t, failed)
	assert.Equal(t, events.EventTypeRunError, failed.Type())
}

func TestMapStepLifecycle(t *testing.T) {
	m := NewMapper("t", "r")

	start := m.MapEvent(event.Event{Type: event.StepStart, Step: 2})
	require.NotNil(t, start)
	assert.Equal(t, events.EventTypeStepStarted, start.Type())

	end := m.MapEvent(event.Event{Type: event.StepEnd, Step: 2})
	require.NotNil(t, end)
	assert.Equal(t, events.EventTypeStepFinished, end.Type())
}

func TestMapMessageLifecycle(t *testing.T) {
	m := NewMapper("t", "r")

	start := m.MapEvent(event.Event{Type: event.MessageStart, MessageID: "msg-1"})
	require.NotNil(t, start)
	assert.Equal(t, events.EventTypeTextMessageStart, start.Type())

	delta := m.MapEvent(event.Event{Type: event.MessageDelta, MessageID: "msg-1", Delta: "hello"})
	require.NotNil(t, delta)
	assert.Equal(t, events.EventTypeTextMessageContent, delta.Type())

	end := m.MapEvent(event.Event{Type: event.MessageEnd, MessageID: "msg-1"})
	require.NotNil(t, end)
	assert.Equal(t, events.EventTypeTextMessageEnd, end.Type())
}

func TestMapToolCallLifecycle(t *testing.T) {
	m := NewMapper("t", "r")
	call := &ai.ToolCall{ID: "call-1", Name: "web_search", Arguments: `{"query":"go"}`}

	start := m.MapEvent(event.Event{Type: event.ToolCallStart, ToolCall: call})
	require.NotNil(t, start)
	assert.Equal(t, events.EventTypeToolCallStart, start.Type())

	args := m.MapEvent(event.Event{Type: event.ToolCallArgs, ToolCall: call})
	require.NotNil(t, args)
	assert.Equal(t, events.EventTypeToolCallArgs, args.Type())

	end := m.MapEvent(event.Event{Type: event.ToolCallEnd, ToolCall: call})
	require.NotNil(t, end)
	assert.Equal(t, events.EventTypeToolCallEnd, end.Type())

	result := m.MapEvent(event.Event{
		Type:       event.ToolCallResult,
		ToolCall:   call,
		ToolResult: &ai.ToolResult{ToolCallID: "call-1", Content: "ok"},
	})
	require.NotNil(t, result)
	assert.Equal(t, events.EventTypeToolCallResult, result.Type())
}

func TestMapEventNilCases(t *testing.T) {
	m := NewMapper("t", "r")

	assert.Nil(t, m.MapEvent(event.Event{Type: event.ToolCallStart}))
	assert.Nil(t, m.MapEvent(event.Event{Type: event.ToolCallResult}))
	assert.Nil(t, m.MapEvent(event.Event{Type: event.ToolCallExecuting}))
	assert.Nil(t, m.MapEvent(event.Event{Type: "unknown"}))
}
