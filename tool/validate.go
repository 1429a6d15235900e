package tool

import (
	"encoding/json"
	"fmt"
)

// paramSchema is the subset of JSON Schema the registry validates
// against: an object with typed properties and a required list.
type paramSchema struct {
	Type       string                `json:"type"`
	Properties map[string]propSchema `json:"properties"`
	Required   []string              `json:"required"`
}

type propSchema struct {
	Type string   `json:"type"`
	Enum []string `json:"enum"`
}

// ValidateArguments checks a tool call's JSON arguments against the
// tool's parameter schema: the payload must be a JSON object, every
// required field must be present, and present fields must match their
// declared type. Unknown fields are allowed (providers occasionally
// send extras). A nil or empty schema validates only that the payload
// is well-formed JSON.
func ValidateArguments(toolName string, schema json.RawMessage, arguments string) error {
	if arguments == "" {
		arguments = "{}"
	}

	var args map[string]json.RawMessage
	if err := json.Unmarshal([]byte(arguments), &args); err != nil {
		return &ErrInvalidArguments{Tool: toolName, Reason: "not a JSON object: " + err.Error()}
	}

	if len(schema) == 0 {
		return nil
	}

	var ps paramSchema
	if err := json.Unmarshal(schema, &ps); err != nil {
		// A schema the registry can't parse shouldn't block execution.
		return nil
	}

	for _, field := range ps.Required {
		if _, ok := args[field]; !ok {
			return &ErrInvalidArguments{Tool: toolName, Field: field, Reason: "required field missing"}
		}
	}

	for field, raw := range args {
		prop, ok := ps.Properties[field]
		if !ok {
			continue
		}
		if err := checkType(toolName, field, prop, raw); err != nil {
			return err
		}
	}

	return nil
}

func checkType(toolName, field string, prop propSchema, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	// null is treated as absent
	if string(raw) == "null" {
		return nil
	}

	switch prop.Type {
	case "string":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return &ErrInvalidArguments{Tool: toolName, Field: field, Reason: "expected string"}
		}
		if len(prop.Enum) > 0 && !containsString(prop.Enum, s) {
			return &ErrInvalidArguments{Tool: toolName, Field: field,
				Reason: fmt.Sprintf("value %q not in allowed set %v", s, prop.Enum)}
		}
	case "number":
		var f float64
		if err := json.Unmarshal(raw, &f); err != nil {
			return &ErrInvalidArguments{Tool: toolName, Field: field, Reason: "expected number"}
		}
	case "integer":
		var i int64
		if err := json.Unmarshal(raw, &i); err != nil {
			return &ErrInvalidArguments{Tool: toolName, Field: field, Reason: "expected integer"}
		}
	case "boolean":
		var b bool
		if err := json.Unmarshal(raw, &b); err != nil {
			return &ErrInvalidArguments{Tool: toolName, Field: field, Reason: "expected boolean"}
		}
	case "array":
		var a []json.RawMessage
		if err := json.Unmarshal(raw, &a); err != nil {
			return &ErrInvalidArguments{Tool: toolName, Field: field, Reason: "expected array"}
		}
	case "object":
		var o map[string]json.RawMessage
		if err := json.Unmarshal(raw, &o); err != nil {
			return &ErrInvalidArguments{Tool: toolName, Field: field, Reason: "expected object"}
		}
	}

	return nil
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
