package tool

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dop251/goja"
)

// CodeToolOption configures the code execution tool.
type CodeToolOption func(*codeToolConfig)

type codeToolConfig struct {
	timeout   time.Duration
	maxOutput int
}

// WithCodeTimeout sets the wall-clock limit for a single execution.
// Default is 5 seconds.
func WithCodeTimeout(d time.Duration) CodeToolOption {
	return func(c *codeToolConfig) {
		c.timeout = d
	}
}

// WithCodeMaxOutput caps the captured output size in bytes.
// Default is 64KB.
func WithCodeMaxOutput(n int) CodeToolOption {
	return func(c *codeToolConfig) {
		c.maxOutput = n
	}
}

func applyCodeOpts(opts []CodeToolOption) *codeToolConfig {
	cfg := &codeToolConfig{
		timeout:   5 * time.Second,
		maxOutput: 64 * 1024,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// codeArgs defines arguments for the code execution tool.
type codeArgs struct {
	Code string `json:"code" desc:"JavaScript source to evaluate" required:"true"`
}

// codeOutput is the JSON payload returned to the model.
type codeOutput struct {
	Output string `json:"output"`
	Value  string `json:"value,omitempty"`
	Error  string `json:"error,omitempty"`
}

// errExecutionTimeout marks a run that was aborted at the wall-clock
// limit. The interrupt value is matched by string because goja wraps
// it in its own InterruptedError.
var errExecutionTimeout = errors.New("execution timed out")

const interruptReason = "execution timed out"

// NewCodeTool creates the sandboxed code execution tool. Each call
// evaluates the supplied JavaScript in a fresh goja VM with no host
// access beyond a console shim that captures output. A hard wall-clock
// timeout interrupts runaway code so the loop is never blocked
// indefinitely.
func NewCodeTool(opts ...CodeToolOption) Registration {
	cfg := applyCodeOpts(opts)

	return Func("run_code", "Execute a JavaScript snippet in a sandbox and return its output",
		func(ctx context.Context, args codeArgs) (string, error) {
			out := cfg.run(ctx, args.Code)
			b, err := json.Marshal(out)
			if err != nil {
				return "", err
			}
			if out.Error != "" {
				// Surface as a handler error so the registry marks the
				// result IsError while keeping the structured payload.
				return "", errors.New(string(b))
			}
			return string(b), nil
		})
}

func (c *codeToolConfig) run(ctx context.Context, code string) codeOutput {
	vm := goja.New()

	var captured strings.Builder
	appendOutput := func(parts []goja.Value) {
		if captured.Len() >= c.maxOutput {
			return
		}
		strs := make([]string, len(parts))
		for i, p := range parts {
			strs[i] = p.String()
		}
		line := strings.Join(strs, " ")
		if captured.Len()+len(line)+1 > c.maxOutput {
			line = line[:c.maxOutput-captured.Len()]
		}
		captured.WriteString(line)
		captured.WriteString("\n")
	}

	console := vm.NewObject()
	logFn := func(call goja.FunctionCall) goja.Value {
		appendOutput(call.Arguments)
		return goja.Undefined()
	}
	_ = console.Set("log", logFn)
	_ = console.Set("error", logFn)
	_ = console.Set("warn", logFn)
	_ = vm.Set("console", console)

	timer := time.AfterFunc(c.timeout, func() {
		vm.Interrupt(interruptReason)
	})
	defer timer.Stop()

	// A caller cancel interrupts the VM the same way the timeout does.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			vm.Interrupt(ctx.Err().Error())
		case <-done:
		}
	}()

	value, err := vm.RunString(code)
	if err != nil {
		var interrupted *goja.InterruptedError
		if errors.As(err, &interrupted) {
			if strings.Contains(fmt.Sprint(interrupted.Value()), interruptReason) {
				return codeOutput{
					Output: captured.String(),
					Error:  fmt.Sprintf("%s after %s", errExecutionTimeout, c.timeout),
				}
			}
			return codeOutput{
				Output: captured.String(),
				Error:  fmt.Sprintf("execution cancelled: %v", interrupted.Value()),
			}
		}
		return codeOutput{
			Output: captured.String(),
			Error:  err.Error(),
		}
	}

	out := codeOutput{Output: captured.String()}
	if value != nil && !goja.IsUndefined(value) && !goja.IsNull(value) {
		out.Value = value.String()
	}
	return out
}
