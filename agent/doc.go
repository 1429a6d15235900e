// Package agent implements the reasoning loop that drives a model and a
// tool registry to a final answer.
//
// A run appends the user's input to the conversation, then alternates
// between model turns and tool dispatch until the model answers with
// text only, the loop budget is exhausted, or the model call fails.
// Tool calls within one turn may execute concurrently, but their
// results are always appended in the order the model requested them,
// so the conversation log stays deterministic for a given turn.
//
// The agent is the only component that mutates the conversation;
// rendering surfaces subscribe to it or to the run's event stream as
// read-only observers.
package agent
