package tool

import "fmt"

// ErrToolNotFound is returned when a tool call references an unregistered tool.
type ErrToolNotFound struct {
	Name string
}

func (e *ErrToolNotFound) Error() string {
	return fmt.Sprintf("tool: not found: %s", e.Name)
}

// ErrToolAlreadyRegistered is returned when registering a tool with a duplicate name.
type ErrToolAlreadyRegistered struct {
	Name string
}

func (e *ErrToolAlreadyRegistered) Error() string {
	return fmt.Sprintf("tool: already registered: %s", e.Name)
}

// ErrInvalidArguments is returned when a tool call's arguments fail
// validation against the tool's parameter schema.
type ErrInvalidArguments struct {
	Tool   string
	Field  string
	Reason string
}

func (e *ErrInvalidArguments) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("tool: %s: invalid argument %q: %s", e.Tool, e.Field, e.Reason)
	}
	return fmt.Sprintf("tool: %s: invalid arguments: %s", e.Tool, e.Reason)
}

// ErrToolExecution wraps errors from tool handler execution.
type ErrToolExecution struct {
	Name string
	Err  error
}

func (e *ErrToolExecution) Error() string {
	return fmt.Sprintf("tool: %s execution failed: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ErrToolExecution) Unwrap() error {
	return e.Err
}
