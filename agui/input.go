package agui

import (
	"errors"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"
)

// RunAgentInput represents the AG-UI protocol request for running an
// agent. This mirrors the protocol specification and is transport-agnostic.
type RunAgentInput struct {
	ThreadID       string           `json:"thread_id"`
	RunID          string           `json:"run_id"`
	Messages       []events.Message `json:"messages"`
	Tools          []any            `json:"tools,omitempty"`
	Context        []any            `json:"context,omitempty"`
	State          any              `json:"state,omitempty"`
	ForwardedProps any              `json:"forwarded_props,omitempty"`
}

// PreparedInput contains validated and converted input ready for a run.
type PreparedInput struct {
	ThreadID  string
	RunID     string
	Messages  []ai.Message
	Tools     []Tool
	ToolNames []string
	State     any
}

// ErrNoMessages is returned when the input contains no messages.
var ErrNoMessages = errors.New("no messages provided")

// Prepare validates the input and converts it to conversation types.
// Returns ErrNoMessages if Messages is empty, or an error if the
// frontend tool declarations fail to parse.
func (r *RunAgentInput) Prepare() (*PreparedInput, error) {
	if len(r.Messages) == 0 {
		return nil, ErrNoMessages
	}

	tools, err := ParseTools(r.Tools)
	if err != nil {
		return nil, err
	}

	return &PreparedInput{
		ThreadID:  r.ThreadID,
		RunID:     r.RunID,
		Messages:  ToMessages(r.Messages),
		Tools:     tools,
		ToolNames: ToolNames(tools),
		State:     r.State,
	}, nil
}
