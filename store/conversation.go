// Package store provides the append-only conversation log for a single
// session. The log is mutated only through Append; there is no deletion or
// reordering, so any reconstructed transcript is reproducible. Nothing is
// persisted: the conversation lives and dies with the session.
package store

import (
	"sync"

	ai "github.com/Rubix-av/LLM-Browser-Based-Multi-Tool"
)

// Observer receives every appended message in order. Observers get copies
// and cannot mutate the conversation; rendering surfaces attach here.
type Observer interface {
	MessageAppended(msg ai.Message)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(msg ai.Message)

// MessageAppended calls f(msg).
func (f ObserverFunc) MessageAppended(msg ai.Message) { f(msg) }

// Conversation manages the ordered message log for one session.
// It is safe for concurrent use.
type Conversation struct {
	mu        sync.RWMutex
	messages  []ai.Message
	observers []Observer
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{
		messages: make([]ai.Message, 0),
	}
}

// NewConversationFrom creates a conversation seeded with existing messages.
// The seed is copied; the caller's slice is not retained. Seed messages are
// not validated (they are assumed to come from a prior valid transcript)
// and observers are not notified for them.
func NewConversationFrom(messages []ai.Message) *Conversation {
	c := NewConversation()
	if len(messages) > 0 {
		c.messages = make([]ai.Message, len(messages))
		copy(c.messages, messages)
	}
	return c
}

// Subscribe attaches an observer that will be called for every subsequent
// append, in append order.
func (c *Conversation) Subscribe(obs Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, obs)
}

// Append adds messages to the log after validating them.
//
// A tool message is rejected unless every one of its results answers a tool
// call from the immediately preceding assistant message; this keeps result
// correlation unambiguous and prevents orphaned tool results from entering
// the transcript. On error, nothing is appended.
func (c *Conversation) Append(msgs ...ai.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	c.mu.Lock()
	log := c.messages
	for _, msg := range msgs {
		if msg.Role == ai.RoleTool {
			if err := validateToolMessage(log, msg); err != nil {
				c.mu.Unlock()
				return err
			}
		}
		log = append(log, msg)
	}
	c.messages = log
	observers := make([]Observer, len(c.observers))
	copy(observers, c.observers)
	c.mu.Unlock()

	for _, msg := range msgs {
		for _, obs := range observers {
			obs.MessageAppended(msg)
		}
	}
	return nil
}

// validateToolMessage checks that every result in msg answers a call from
// the assistant message at the tail of the log.
func validateToolMessage(log []ai.Message, msg ai.Message) error {
	if len(log) == 0 {
		return &ErrOrphanToolResult{Reason: "conversation is empty"}
	}
	prev := log[len(log)-1]
	if prev.Role != ai.RoleAssistant {
		return &ErrOrphanToolResult{Reason: "preceding message is not an assistant message"}
	}

	calls := make(map[string]bool, len(prev.ToolCalls))
	for _, tc := range prev.ToolCalls {
		calls[tc.ID] = true
	}
	for _, tr := range msg.ToolResults {
		if !calls[tr.ToolCallID] {
			return &ErrOrphanToolResult{ToolCallID: tr.ToolCallID}
		}
	}
	return nil
}

// Messages returns a copy of all messages.
func (c *Conversation) Messages() []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make([]ai.Message, len(c.messages))
	copy(result, c.messages)
	return result
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// Last returns the last n messages. If n exceeds Len, all messages are returned.
func (c *Conversation) Last(n int) []ai.Message {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	start := len(c.messages) - n
	if start < 0 {
		start = 0
	}
	result := make([]ai.Message, len(c.messages)-start)
	copy(result, c.messages[start:])
	return result
}
