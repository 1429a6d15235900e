package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// PipelineBackend processes text for a named operation. Implementations
// wrap a real analysis or transformation service.
type PipelineBackend interface {
	Process(ctx context.Context, operation, input string) (string, error)
}

// PipelineToolOption configures the pipeline tool.
type PipelineToolOption func(*pipelineToolConfig)

type pipelineToolConfig struct {
	backend PipelineBackend
}

// WithPipelineBackend wires a real processing backend. Without one the
// tool returns labeled deterministic placeholder responses.
func WithPipelineBackend(b PipelineBackend) PipelineToolOption {
	return func(c *pipelineToolConfig) {
		c.backend = b
	}
}

// pipelineArgs defines arguments for the pipeline tool.
type pipelineArgs struct {
	Operation string `json:"operation" desc:"Processing operation to apply" required:"true" enum:"summarize,translate,analyze"`
	Input     string `json:"input" desc:"Text to process" required:"true"`
}

// pipelineOutput is the JSON payload returned to the model. Source is
// "live" when a real backend handled the request and "placeholder"
// for the deterministic substitute.
type pipelineOutput struct {
	Operation string `json:"operation"`
	Source    string `json:"source"`
	Result    string `json:"result"`
}

// NewPipelineTool creates the text pipeline tool. It forwards input to
// the configured backend, or substitutes a clearly labeled
// deterministic response keyed by operation when no backend is wired.
func NewPipelineTool(opts ...PipelineToolOption) Registration {
	cfg := &pipelineToolConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return Func("text_pipeline", "Summarize, translate, or analyze a piece of text",
		func(ctx context.Context, args pipelineArgs) (string, error) {
			var out pipelineOutput
			if cfg.backend != nil {
				result, err := cfg.backend.Process(ctx, args.Operation, args.Input)
				if err != nil {
					return "", err
				}
				out = pipelineOutput{Operation: args.Operation, Source: "live", Result: result}
			} else {
				out = pipelineOutput{
					Operation: args.Operation,
					Source:    "placeholder",
					Result:    placeholderResult(args.Operation, args.Input),
				}
			}

			b, err := json.Marshal(out)
			if err != nil {
				return "", err
			}
			return string(b), nil
		})
}

// placeholderResult produces the fixed substitute response for an
// operation. It is deterministic for a given operation and input.
func placeholderResult(operation, input string) string {
	excerpt := input
	if len(excerpt) > 80 {
		excerpt = excerpt[:80] + "..."
	}
	words := len(strings.Fields(input))

	switch operation {
	case "summarize":
		return fmt.Sprintf("[placeholder summary] %d-word input beginning: %s", words, excerpt)
	case "translate":
		return fmt.Sprintf("[placeholder translation] untranslated input: %s", excerpt)
	case "analyze":
		return fmt.Sprintf("[placeholder analysis] input has %d words and %d characters", words, len(input))
	default:
		return fmt.Sprintf("[placeholder] unsupported operation %q", operation)
	}
}
