// Package event provides the unified event stream emitted while the agent
// loop runs. Rendering surfaces consume these events read-only; they observe
// every model turn, tool call, and streaming delta in order but cannot
// influence the loop. The event types map 1:1 onto the AG-UI protocol via
// the agui package.
package event

import (
	"time"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when a loop run begins.
	RunStart Type = "run_start"

	// RunEnd fires when a run completes (any terminal outcome).
	RunEnd Type = "run_end"

	// RunError fires when an unrecoverable error occurs.
	RunError Type = "run_error"
)

// Step lifecycle events
const (
	// StepStart fires at the beginning of each reasoning iteration.
	StepStart Type = "step_start"

	// StepEnd fires when a reasoning iteration completes.
	StepEnd Type = "step_end"
)

// Message lifecycle events
const (
	// MessageStart fires when an assistant message begins.
	MessageStart Type = "message_start"

	// MessageDelta fires for each streaming token.
	MessageDelta Type = "message_delta"

	// MessageEnd fires when an assistant message completes.
	MessageEnd Type = "message_end"
)

// Tool call lifecycle events
const (
	// ToolCallStart fires when a tool call begins (contains tool name).
	ToolCallStart Type = "tool_call_start"

	// ToolCallArgs fires with tool call arguments.
	ToolCallArgs Type = "tool_call_args"

	// ToolCallExecuting fires before the executor runs.
	ToolCallExecuting Type = "tool_call_executing"

	// ToolCallEnd fires when tool execution is complete.
	ToolCallEnd Type = "tool_call_end"

	// ToolCallResult fires with the tool execution result.
	ToolCallResult Type = "tool_call_result"
)

// Event represents an observable occurrence during a run.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// MessageID identifies the message for Start/Delta/End correlation.
	MessageID string

	// Delta contains streaming content for MessageDelta events.
	Delta string

	// Response contains the complete response for MessageEnd and RunEnd events.
	Response *ai.Response

	// ToolCall contains the tool call for tool-related events.
	ToolCall *ai.ToolCall

	// ToolResult contains the result for ToolCallResult events.
	ToolResult *ai.ToolResult

	// Step is the current iteration number (1-indexed).
	Step int

	// Error contains the error for RunError events.
	Error error

	// Message contains additional context (e.g., termination reason).
	Message string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel (non-blocking).
// If the channel is full the event is dropped; observers are advisory and
// must never stall the loop.
func Emit(ch chan<- Event, e Event) {
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
