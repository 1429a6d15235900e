// Package anthropic provides an Anthropic Claude adapter implementing
// the ChatProvider interface over the official Go SDK.
//
// The adapter owns the Anthropic wire format: system prompts as
// top-level system blocks, tool results as user messages with
// tool_result blocks, and tool_use content blocks normalized into
// ToolCalls.
package anthropic
