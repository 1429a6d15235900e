package store

import "fmt"

// ErrOrphanToolResult is returned when a tool result does not answer a tool
// call from the immediately preceding assistant message.
type ErrOrphanToolResult struct {
	ToolCallID string
	Reason     string
}

// Error returns a formatted error message.
func (e *ErrOrphanToolResult) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("store: orphan tool result: %s", e.Reason)
	}
	return fmt.Sprintf("store: orphan tool result: no pending tool call with id %q", e.ToolCallID)
}
