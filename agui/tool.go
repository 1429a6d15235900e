package agui

import (
	"encoding/json"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
)

// Tool is a frontend-declared tool definition carried in RunAgentInput.
// Parameters holds the raw JSON schema for the tool's arguments.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters,omitempty"`
}

// ToTool converts the AG-UI declaration to a tool definition the agent
// can pass to a provider.
func (t Tool) ToTool() ai.Tool {
	return ai.Tool{
		Name:        t.Name,
		Description: t.Description,
		Parameters:  t.Parameters,
	}
}

// ParseTools decodes the untyped Tools field of RunAgentInput. The field
// arrives as []any from JSON unmarshaling, so it goes through a
// marshal/unmarshal round trip to land in typed structs.
func ParseTools(raw []any) ([]Tool, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var tools []Tool
	if err := json.Unmarshal(data, &tools); err != nil {
		return nil, err
	}
	return tools, nil
}

// ToTools converts every declaration in the slice.
func ToTools(tools []Tool) []ai.Tool {
	if len(tools) == 0 {
		return nil
	}
	out := make([]ai.Tool, len(tools))
	for i, t := range tools {
		out[i] = t.ToTool()
	}
	return out
}

// ToolNames lists the declared tool names, typically for logging.
func ToolNames(tools []Tool) []string {
	if len(tools) == 0 {
		return nil
	}
	names := make([]string, len(tools))
	for i, t := range tools {
		names[i] = t.Name
	}
	return names
}
