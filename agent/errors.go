package agent

import "errors"

// ErrBudgetExceeded indicates the loop hit its iteration budget before
// the model produced a final answer. It is a distinct terminal outcome,
// not a success and not a model failure.
var ErrBudgetExceeded = errors.New("agent: loop budget exceeded")
