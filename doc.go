// Package multitool is a provider-agnostic agent reasoning loop and tool
// orchestration engine for Go.
//
// The root package defines the shared vocabulary: [Message] and the
// conversation roles, [Tool] / [ToolCall] / [ToolResult] for tool
// orchestration, [Response] as the normalized model turn every provider
// adapter must produce, and the categorized error taxonomy used for retry
// decisions.
//
// Subpackages build on these types:
//
//   - provider/anthropic, provider/openai, provider/google: adapters that
//     translate between the normalized types and each backend's wire format
//   - tool: the registry plus the built-in search, code, and pipeline
//     executors
//   - agent: the iterative reasoning loop that drives model turns and tool
//     dispatch under a bounded iteration budget
//   - store: the append-only conversation log
//   - client: unified multi-provider client with retry
//   - event: the streaming event feed consumed by rendering surfaces
//   - mcp, agui: Model Context Protocol and AG-UI protocol bridges
//   - model: model identifiers and pricing
//
// The root package is imported as ai by convention:
//
//	import ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
package multitool
