// Package openai provides an OpenAI chat-completions adapter
// implementing the ChatProvider interface over the official Go SDK.
//
// The adapter owns the OpenAI wire format: tool results as role:tool
// messages keyed by tool_call_id, and tool_calls on assistant messages
// normalized into ToolCalls.
package openai
