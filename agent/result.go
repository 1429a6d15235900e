package agent

import (
	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
)

// TerminationReason explains why a run ended.
type TerminationReason string

const (
	// TerminationComplete means the model answered with text only.
	TerminationComplete TerminationReason = "complete"

	// TerminationBudgetExceeded means the loop budget ran out before a
	// final answer.
	TerminationBudgetExceeded TerminationReason = "budget_exceeded"

	// TerminationError means a model call failed unrecoverably.
	TerminationError TerminationReason = "error"

	// TerminationCancelled means the caller cancelled the run.
	TerminationCancelled TerminationReason = "cancelled"

	// TerminationTimeout means the overall run deadline was exceeded.
	TerminationTimeout TerminationReason = "timeout"

	// TerminationStopped means a custom stop predicate ended the run.
	TerminationStopped TerminationReason = "stopped"
)

// Result holds the outcome of a run.
type Result struct {
	// Response is the final model response, or the last one received
	// before a non-complete termination. May be nil on early failure.
	Response *ai.Response

	// Steps is the number of model turns taken.
	Steps int

	// TotalUsage accumulates token usage across all model turns.
	TotalUsage ai.Usage

	// Termination explains how the run ended.
	Termination TerminationReason

	// Err is the terminal error for error, cancelled, and
	// budget-exceeded outcomes; nil for complete and stopped.
	Err error
}

// Text returns the final answer text, or "" if the run produced none.
func (r *Result) Text() string {
	if r.Response == nil {
		return ""
	}
	return r.Response.Content
}
