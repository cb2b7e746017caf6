package services

import (
	"context"
	"fmt"
	"log"
	"sync"
)

const WellnessCoachInstruction = "You are a warm, supportive wellness coach. Keep answers short, encouraging, and helpful. Do not give medical diagnosis."

// ChatAdapter owns one conversation's session handle. The handle is created
// on Open or lazily on the first Send, and dropped after any failed turn so
// the next Send starts a fresh session. History is not replayed.
type ChatAdapter struct {
	mu          sync.Mutex
	transport   Transport
	model       string
	instruction string
	session     ChatSession
}

func NewChatAdapter(transport Transport, model string) *ChatAdapter {
	return &ChatAdapter{
		transport:   transport,
		model:       model,
		instruction: WellnessCoachInstruction,
	}
}

// Open tries to create the session up front. A failure is only logged; Send
// will retry.
func (a *ChatAdapter) Open(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return
	}
	if err := a.startLocked(ctx); err != nil {
		log.Printf("[chat] session init error: %v", err)
	}
}

// Active reports whether a session handle is currently held.
func (a *ChatAdapter) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session != nil
}

// Send submits one user turn and returns the model's reply. Errors are
// returned as-is; use IsQuotaExceeded to pick a user-facing message.
func (a *ChatAdapter) Send(ctx context.Context, text string) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session == nil {
		if err := a.startLocked(ctx); err != nil {
			return "", err
		}
	}

	reply, err := a.session.SendMessage(ctx, text)
	if err != nil {
		a.session = nil
		return "", err
	}
	return reply, nil
}

// Close releases the session handle. A later Send starts over.
func (a *ChatAdapter) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = nil
}

func (a *ChatAdapter) startLocked(ctx context.Context) error {
	session, err := a.transport.StartChat(ctx, a.model, a.instruction)
	if err != nil {
		return fmt.Errorf("failed to start chat session: %w", err)
	}
	if session == nil {
		return fmt.Errorf("failed to start chat session: transport returned no session")
	}
	a.session = session
	return nil
}
