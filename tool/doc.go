// Package tool provides a registry for tool definitions and handlers,
// argument validation against tool schemas, and the built-in executors
// for web search, sandboxed code execution, and text pipelines.
package tool
