package tool

import (
	"context"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
)

// Handler executes a tool call and returns the result content as a string.
// The call carries the tool name, ID, and raw JSON arguments; the context
// supports cancellation and timeout. A returned error marks the result as
// a tool error without stopping the run.
type Handler func(ctx context.Context, call ai.ToolCall) (string, error)

// TypedHandler executes a tool call whose JSON arguments have already been
// unmarshaled into T.
type TypedHandler[T any] func(ctx context.Context, args T) (string, error)
