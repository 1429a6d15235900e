package google

import (
	"encoding/json"
	"fmt"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"google.golang.org/genai"
)

// convertMessages maps normalized messages onto Gemini contents.
// Gemini correlates tool results by function name rather than call ID,
// so the walk keeps an ID-to-name map built from earlier assistant
// tool calls in the same history.
func convertMessages(messages []ai.Message) []*genai.Content {
	var contents []*genai.Content
	callNames := make(map[string]string)

	for _, msg := range messages {
		role := genai.RoleUser
		switch msg.Role {
		case ai.RoleAssistant:
			role = genai.RoleModel
		case ai.RoleSystem:
			// Gemini has no separate system role in contents; send as a
			// user turn so the instruction stays in the history.
			role = genai.RoleUser
		case ai.RoleUser, ai.RoleTool:
			role = genai.RoleUser
		}

		var parts []*genai.Part

		if msg.Content != "" {
			parts = append(parts, &genai.Part{Text: msg.Content})
		}

		for _, tc := range msg.ToolCalls {
			callNames[tc.ID] = tc.Name
			var args map[string]any
			json.Unmarshal([]byte(tc.Arguments), &args)
			parts = append(parts, &genai.Part{
				FunctionCall: &genai.FunctionCall{
					Name: tc.Name,
					Args: args,
				},
			})
		}

		for _, tr := range msg.ToolResults {
			name := callNames[tr.ToolCallID]
			if name == "" {
				name = tr.ToolCallID
			}
			var response map[string]any
			if err := json.Unmarshal([]byte(tr.Content), &response); err != nil {
				response = map[string]any{"result": tr.Content}
			}
			if tr.IsError {
				response["error"] = true
			}
			parts = append(parts, &genai.Part{
				FunctionResponse: &genai.FunctionResponse{
					Name:     name,
					Response: response,
				},
			})
		}

		if len(parts) > 0 {
			contents = append(contents, &genai.Content{
				Role:  role,
				Parts: parts,
			})
		}
	}

	return contents
}

// BlockedError indicates the request was blocked by content filtering.
type BlockedError struct {
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("request blocked: %s", e.Reason)
}
