package agent

import (
	"context"
	"sync"
	"testing"
	"time"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/event"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/store"
	"github.com/Rubix-av/LLM-Browser-Based-Multi-Tool/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProvider serves scripted responses in order. When the script is
// exhausted it keeps serving the last response.
type mockProvider struct {
	mu        sync.Mutex
	responses []*ai.Response
	err       error
	calls     [][]ai.Message
}

func (m *mockProvider) next(messages []ai.Message) (*ai.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make([]ai.Message, len(messages))
	copy(snapshot, messages)
	m.calls = append(m.calls, snapshot)

	if m.err != nil {
		return nil, m.err
	}
	if len(m.responses) == 0 {
		return &ai.Response{Content: "done"}, nil
	}
	resp := m.responses[0]
	if len(m.responses) > 1 {
		m.responses = m.responses[1:]
	}
	return resp, nil
}

func (m *mockProvider) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func (m *mockProvider) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	return m.next(messages)
}

func (m *mockProvider) ChatStream(ctx context.Context, messages []ai.Message, opts ...ai.Option) (<-chan ai.StreamEvent, error) {
	resp, err := m.next(messages)
	if err != nil {
		return nil, err
	}

	ch := make(chan ai.StreamEvent, 2)
	if resp.Content != "" {
		ch <- ai.StreamEvent{Delta: resp.Content}
	}
	ch <- ai.StreamEvent{Done: true, Response: resp}
	close(ch)
	return ch, nil
}

func textResponse(content string) *ai.Response {
	return &ai.Response{Content: content, FinishReason: "stop", Usage: ai.Usage{InputTokens: 10, OutputTokens: 5}}
}

func toolResponse(calls ...ai.ToolCall) *ai.Response {
	return &ai.Response{FinishReason: "tool_use", ToolCalls: calls, Usage: ai.Usage{InputTokens: 10, OutputTokens: 5}}
}

func echoRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	r := tool.NewRegistry()
	type args struct {
		Text  string `json:"text" desc:"Text to echo" required:"true"`
		Delay int    `json:"delay" desc:"Milliseconds to wait before answering"`
	}
	require.NoError(t, tool.RegisterFunc(r, "echo", "Echo text",
		func(ctx context.Context, a args) (string, error) {
			if a.Delay > 0 {
				select {
				case <-time.After(time.Duration(a.Delay) * time.Millisecond):
				case <-ctx.Done():
					return "", ctx.Err()
				}
			}
			return a.Text, nil
		}))
	return r
}

func TestRunCompletesWithoutTools(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{textResponse("the answer is 4")}}
	a := New(provider, tool.NewRegistry())
	conv := store.NewConversation()

	result, err := a.Run(context.Background(), conv, "what is 2+2?")
	require.NoError(t, err)
	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Equal(t, "the answer is 4", result.Text())
	assert.Equal(t, 1, result.Steps)

	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ai.RoleUser, msgs[0].Role)
	assert.Equal(t, "what is 2+2?", msgs[0].Content)
	assert.Equal(t, ai.RoleAssistant, msgs[1].Role)
	assert.Equal(t, "the answer is 4", msgs[1].Content)
}

func TestRunExecutesToolsThenCompletes(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(
			ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"first"}`},
			ai.ToolCall{ID: "call-2", Name: "echo", Arguments: `{"text":"second"}`},
		),
		textResponse("both done"),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	result, err := a.Run(context.Background(), conv, "echo twice")
	require.NoError(t, err)
	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Equal(t, 2, result.Steps)

	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, ai.RoleUser, msgs[0].Role)
	assert.Equal(t, ai.RoleAssistant, msgs[1].Role)
	require.Len(t, msgs[1].ToolCalls, 2)
	assert.Equal(t, ai.RoleTool, msgs[2].Role)
	require.Len(t, msgs[2].ToolResults, 2)
	assert.Equal(t, "call-1", msgs[2].ToolResults[0].ToolCallID)
	assert.Equal(t, "first", msgs[2].ToolResults[0].Content)
	assert.Equal(t, "call-2", msgs[2].ToolResults[1].ToolCallID)
	assert.Equal(t, "second", msgs[2].ToolResults[1].Content)
	assert.Equal(t, ai.RoleAssistant, msgs[3].Role)
}

func TestToolResultsKeepRequestOrder(t *testing.T) {
	// The first requested call finishes last; the appended results must
	// still follow request order.
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(
			ai.ToolCall{ID: "call-slow", Name: "echo", Arguments: `{"text":"slow","delay":150}`},
			ai.ToolCall{ID: "call-fast", Name: "echo", Arguments: `{"text":"fast"}`},
		),
		textResponse("ordered"),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	_, err := a.Run(context.Background(), conv, "race", WithParallelToolCalls(true))
	require.NoError(t, err)

	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	results := msgs[2].ToolResults
	require.Len(t, results, 2)
	assert.Equal(t, "call-slow", results[0].ToolCallID)
	assert.Equal(t, "slow", results[0].Content)
	assert.Equal(t, "call-fast", results[1].ToolCallID)
}

func TestUnknownToolContinuesLoop(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "no_such_tool", Arguments: `{}`}),
		textResponse("recovered"),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	result, err := a.Run(context.Background(), conv, "try it")
	require.NoError(t, err)
	assert.Equal(t, TerminationComplete, result.Termination)

	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	results := msgs[2].ToolResults
	require.Len(t, results, 1)
	assert.True(t, results[0].IsError)
	assert.Contains(t, results[0].Content, "no_such_tool")
}

func TestBudgetExceededAfterOneDispatchCycle(t *testing.T) {
	// A model that always wants a tool with budget 1 must stop after
	// exactly one dispatch cycle.
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"again"}`}),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	result, err := a.Run(context.Background(), conv, "loop forever", WithMaxSteps(1))
	require.ErrorIs(t, err, ErrBudgetExceeded)
	assert.Equal(t, TerminationBudgetExceeded, result.Termination)
	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, 1, provider.callCount())

	// The dispatched cycle is fully recorded: user, assistant, results.
	msgs := conv.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, ai.RoleTool, msgs[2].Role)
}

func TestAuthFailureTerminatesImmediately(t *testing.T) {
	provider := &mockProvider{err: ai.NewPermanentError("invalid api key", 401, nil)}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	result, err := a.Run(context.Background(), conv, "hello")
	require.Error(t, err)
	assert.Equal(t, TerminationError, result.Termination)
	assert.True(t, ai.IsAuth(err))
	assert.Equal(t, 1, provider.callCount())

	// Nothing beyond the user's message entered the log.
	msgs := conv.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, ai.RoleUser, msgs[0].Role)
}

func TestSearchFallbackFlow(t *testing.T) {
	// No search credentials configured: the executor answers with the
	// fallback-tagged result set and the loop still completes.
	registry := tool.NewRegistry().Add(tool.NewSearchTool())
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "web_search", Arguments: `{"query":"latest go release"}`}),
		textResponse("I could not reach a live search backend."),
	}}
	a := New(provider, registry)
	conv := store.NewConversation()

	result, err := a.Run(context.Background(), conv, "look this up")
	require.NoError(t, err)
	assert.Equal(t, TerminationComplete, result.Termination)

	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	toolMsg := msgs[2]
	require.Len(t, toolMsg.ToolResults, 1)
	assert.False(t, toolMsg.ToolResults[0].IsError)
	assert.Contains(t, toolMsg.ToolResults[0].Content, `"source":"fallback"`)
}

func TestCodeTimeoutDoesNotHangLoop(t *testing.T) {
	registry := tool.NewRegistry().Add(tool.NewCodeTool(tool.WithCodeTimeout(100 * time.Millisecond)))
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "run_code", Arguments: `{"code":"while (true) {}"}`}),
		textResponse("that code never terminates"),
	}}
	a := New(provider, registry)
	conv := store.NewConversation()

	start := time.Now()
	result, err := a.Run(context.Background(), conv, "run this")
	require.NoError(t, err)
	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Less(t, time.Since(start), 10*time.Second)

	msgs := conv.Messages()
	require.Len(t, msgs, 4)
	results := msgs[2].ToolResults
	require.Len(t, results, 1)
	assert.True(t, results[0].IsError)
	assert.Contains(t, results[0].Content, "timed out")
}

func TestCancellationDiscardsLateResults(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"late","delay":5000}`}),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	result, err := a.Run(ctx, conv, "slow tool")
	require.Error(t, err)
	assert.Equal(t, TerminationCancelled, result.Termination)

	// The in-flight result was discarded, not appended.
	msgs := conv.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, ai.RoleAssistant, msgs[1].Role)
}

func TestRunStreamEmitsLifecycleEvents(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"hi"}`}),
		textResponse("all done"),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	var types []event.Type
	for ev := range a.RunStream(context.Background(), conv, "go") {
		types = append(types, ev.Type)
	}

	assert.Equal(t, event.RunStart, types[0])
	assert.Contains(t, types, event.StepStart)
	assert.Contains(t, types, event.MessageStart)
	assert.Contains(t, types, event.ToolCallStart)
	assert.Contains(t, types, event.ToolCallResult)
	assert.Contains(t, types, event.StepEnd)
	assert.Equal(t, event.RunEnd, types[len(types)-1])
}

func TestStopPredicate(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"x"}`}),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	result, err := a.Run(context.Background(), conv, "stop early",
		WithStopPredicate(func(step int, _ *ai.Response) bool { return step >= 1 }))
	require.NoError(t, err)
	assert.Equal(t, TerminationStopped, result.Termination)
	assert.Equal(t, 1, provider.callCount())
}

func TestUsageAccumulatesAcrossSteps(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"x"}`}),
		textResponse("final"),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	result, err := a.Run(context.Background(), conv, "count tokens")
	require.NoError(t, err)
	assert.Equal(t, 20, result.TotalUsage.InputTokens)
	assert.Equal(t, 10, result.TotalUsage.OutputTokens)
}

func TestFullHistorySentEachTurn(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"x"}`}),
		textResponse("final"),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	_, err := a.Run(context.Background(), conv, "history check")
	require.NoError(t, err)

	require.Len(t, provider.calls, 2)
	assert.Len(t, provider.calls[0], 1)
	// Second turn carries user, assistant tool-call turn, and results.
	assert.Len(t, provider.calls[1], 3)
}

func TestObserverSeesAppendsInOrder(t *testing.T) {
	provider := &mockProvider{responses: []*ai.Response{
		toolResponse(ai.ToolCall{ID: "call-1", Name: "echo", Arguments: `{"text":"x"}`}),
		textResponse("final"),
	}}
	a := New(provider, echoRegistry(t))
	conv := store.NewConversation()

	var seen []ai.Role
	conv.Subscribe(store.ObserverFunc(func(msg ai.Message) {
		seen = append(seen, msg.Role)
	}))

	_, err := a.Run(context.Background(), conv, "observe")
	require.NoError(t, err)
	assert.Equal(t, []ai.Role{ai.RoleUser, ai.RoleAssistant, ai.RoleTool, ai.RoleAssistant}, seen)
}
