package agent

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/event"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/store"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/tool"
)

// Agent orchestrates autonomous tool-calling conversations.
type Agent struct {
	provider ai.ChatProvider
	registry *tool.Registry
}

// New creates an Agent with the given chat provider and tool registry.
func New(provider ai.ChatProvider, registry *tool.Registry) *Agent {
	return &Agent{
		provider: provider,
		registry: registry,
	}
}

// Run appends userInput to the conversation and drives the loop to a
// terminal outcome. It blocks until the run ends and returns the
// result; Result.Err (also returned) is non-nil for error, cancelled,
// and budget-exceeded terminations.
func (a *Agent) Run(ctx context.Context, conv *store.Conversation, userInput string, opts ...Option) (*Result, error) {
	eventCh := event.NewChannel()
	drained := make(chan struct{})
	go func() {
		for range eventCh {
		}
		close(drained)
	}()

	result := a.runLoop(ctx, conv, userInput, eventCh, ApplyOptions(opts...))
	close(eventCh)
	<-drained
	return result, result.Err
}

// RunStream is like Run but returns the run's event stream instead of
// blocking. The channel is closed when the run ends; the terminal
// outcome arrives as a RunEnd or RunError event. Callers should drain
// the channel.
func (a *Agent) RunStream(ctx context.Context, conv *store.Conversation, userInput string, opts ...Option) <-chan event.Event {
	eventCh := event.NewChannel()
	go func() {
		defer close(eventCh)
		a.runLoop(ctx, conv, userInput, eventCh, ApplyOptions(opts...))
	}()
	return eventCh
}

func (a *Agent) runLoop(ctx context.Context, conv *store.Conversation, userInput string, eventCh chan<- event.Event, options *Options) *Result {
	if options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, options.Timeout)
		defer cancel()
	}

	event.Emit(eventCh, event.Event{Type: event.RunStart})

	result := &Result{}

	if userInput != "" {
		if err := conv.Append(ai.NewUserMessage(userInput)); err != nil {
			return a.fail(eventCh, result, 0, err)
		}
	}

	chatOpts := append([]ai.Option{ai.WithTools(a.registry.Tools())}, options.ChatOptions...)

	step := 0
	for {
		step++

		if err := ctx.Err(); err != nil {
			return a.abort(eventCh, result, ctx)
		}

		// The budget counts completed tool-dispatch cycles: step N runs
		// only if fewer than MaxSteps cycles have already happened.
		if options.MaxSteps > 0 && step > options.MaxSteps {
			result.Termination = TerminationBudgetExceeded
			result.Err = ErrBudgetExceeded
			event.Emit(eventCh, event.Event{
				Type:    event.RunEnd,
				Step:    step - 1,
				Message: string(TerminationBudgetExceeded),
			})
			return result
		}

		event.Emit(eventCh, event.Event{Type: event.StepStart, Step: step})

		response, err := a.modelTurn(ctx, conv.Messages(), chatOpts, options, step, eventCh)
		if err != nil {
			if ctx.Err() != nil {
				return a.abort(eventCh, result, ctx)
			}
			result.Steps = step
			return a.fail(eventCh, result, step, err)
		}

		result.Steps = step
		result.Response = response
		result.TotalUsage.InputTokens += response.Usage.InputTokens
		result.TotalUsage.OutputTokens += response.Usage.OutputTokens

		event.Emit(eventCh, event.Event{Type: event.StepEnd, Step: step, Response: response})

		if options.StopPredicate != nil && options.StopPredicate(step, response) {
			conv.Append(ai.Message{
				Role:      ai.RoleAssistant,
				Content:   response.Content,
				ToolCalls: response.ToolCalls,
			})
			result.Termination = TerminationStopped
			event.Emit(eventCh, event.Event{
				Type: event.RunEnd, Step: step, Response: response,
				Message: string(TerminationStopped),
			})
			return result
		}

		// No tool calls = final answer.
		if !response.HasToolCalls() {
			conv.Append(ai.NewAssistantMessage(response.Content))
			result.Termination = TerminationComplete
			event.Emit(eventCh, event.Event{
				Type: event.RunEnd, Step: step, Response: response,
				Message: string(TerminationComplete),
			})
			return result
		}

		conv.Append(ai.Message{
			Role:      ai.RoleAssistant,
			Content:   response.Content,
			ToolCalls: response.ToolCalls,
		})

		results := a.dispatchToolCalls(ctx, response.ToolCalls, options, step, eventCh)

		// Results that arrive after cancellation are discarded, never
		// appended.
		if ctx.Err() != nil {
			return a.abort(eventCh, result, ctx)
		}

		if err := conv.Append(ai.NewToolResultMessage(results...)); err != nil {
			return a.fail(eventCh, result, step, err)
		}
	}
}

// modelTurn executes one bounded model call, forwarding stream deltas
// as message events, and returns the normalized response.
func (a *Agent) modelTurn(ctx context.Context, messages []ai.Message, chatOpts []ai.Option, options *Options, step int, eventCh chan<- event.Event) (*ai.Response, error) {
	callCtx := ctx
	if options.ModelTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, options.ModelTimeout)
		defer cancel()
	}

	streamCh, err := a.provider.ChatStream(callCtx, messages, chatOpts...)
	if err != nil {
		return nil, err
	}

	messageID := fmt.Sprintf("msg_%d_%d", step, time.Now().UnixNano())
	event.Emit(eventCh, event.Event{Type: event.MessageStart, Step: step, MessageID: messageID})

	var response *ai.Response
	for ev := range streamCh {
		if ev.Err != nil {
			return nil, ev.Err
		}
		if ev.Delta != "" {
			event.Emit(eventCh, event.Event{
				Type:      event.MessageDelta,
				Step:      step,
				MessageID: messageID,
				Delta:     ev.Delta,
			})
		}
		if ev.Done {
			response = ev.Response
		}
	}

	if response == nil {
		if callCtx.Err() != nil {
			return nil, callCtx.Err()
		}
		return nil, errors.New("model stream ended without a response")
	}

	event.Emit(eventCh, event.Event{
		Type:      event.MessageEnd,
		Step:      step,
		MessageID: messageID,
		Response:  response,
	})
	return response, nil
}

// dispatchToolCalls executes every tool call from one turn and returns
// the results indexed by request order; completion order never affects
// the appended log.
func (a *Agent) dispatchToolCalls(ctx context.Context, toolCalls []ai.ToolCall, options *Options, step int, eventCh chan<- event.Event) []ai.ToolResult {
	for i := range toolCalls {
		tc := toolCalls[i]
		event.Emit(eventCh, event.Event{Type: event.ToolCallStart, Step: step, ToolCall: &tc})
		event.Emit(eventCh, event.Event{Type: event.ToolCallArgs, Step: step, ToolCall: &tc})
	}

	results := make([]ai.ToolResult, len(toolCalls))

	if options.ParallelToolCalls && len(toolCalls) > 1 {
		var wg sync.WaitGroup
		for i, tc := range toolCalls {
			wg.Add(1)
			go func(idx int, call ai.ToolCall) {
				defer wg.Done()
				results[idx] = a.executeToolCall(ctx, call, options, step, eventCh)
			}(i, tc)
		}
		wg.Wait()
	} else {
		for i, tc := range toolCalls {
			results[i] = a.executeToolCall(ctx, tc, options, step, eventCh)
		}
	}

	return results
}

func (a *Agent) executeToolCall(ctx context.Context, tc ai.ToolCall, options *Options, step int, eventCh chan<- event.Event) ai.ToolResult {
	event.Emit(eventCh, event.Event{Type: event.ToolCallExecuting, Step: step, ToolCall: &tc})

	execCtx := ctx
	if options.HandlerTimeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, options.HandlerTimeout)
		defer cancel()
	}

	result, err := a.registry.Execute(execCtx, tc)
	if err != nil {
		// Unknown tool or registry failure becomes an error result the
		// model can see; it never aborts the loop.
		result = ai.ToolResult{
			ToolCallID: tc.ID,
			Content:    err.Error(),
			IsError:    true,
		}
	}

	event.Emit(eventCh, event.Event{Type: event.ToolCallEnd, Step: step, ToolCall: &tc})
	event.Emit(eventCh, event.Event{Type: event.ToolCallResult, Step: step, ToolCall: &tc, ToolResult: &result})
	return result
}

func (a *Agent) fail(eventCh chan<- event.Event, result *Result, step int, err error) *Result {
	result.Termination = TerminationError
	result.Err = err
	event.Emit(eventCh, event.Event{Type: event.RunError, Step: step, Error: err})
	return result
}

func (a *Agent) abort(eventCh chan<- event.Event, result *Result, ctx context.Context) *Result {
	reason := TerminationCancelled
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		reason = TerminationTimeout
	}
	result.Termination = reason
	result.Err = ctx.Err()
	event.Emit(eventCh, event.Event{
		Type:    event.RunEnd,
		Step:    result.Steps,
		Message: string(reason),
	})
	return result
}
