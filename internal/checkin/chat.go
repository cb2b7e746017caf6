package checkin

import (
	"context"
	"log"
	"strings"
	"sync"

	"caresphere/internal/models"
	"caresphere/internal/services"
)

const (
	chatGreeting     = "Hi there! I'm your wellness companion. How are you feeling today?"
	chatBusyReply    = "I'm receiving too many messages right now. Please wait a moment."
	chatFailureReply = "I'm having trouble connecting right now. Please try again."
)

// ChatSupport keeps the visible transcript for one conversation and words
// transport failures as model turns.
type ChatSupport struct {
	adapter *services.ChatAdapter

	mu       sync.RWMutex
	messages []models.ChatMessage
	flight   flight
}

func NewChatSupport(adapter *services.ChatAdapter) *ChatSupport {
	return &ChatSupport{
		adapter:  adapter,
		messages: []models.ChatMessage{models.NewChatMessage(models.RoleModel, chatGreeting)},
	}
}

// Mount eagerly opens the session; failures are retried on first Send.
func (c *ChatSupport) Mount(ctx context.Context) {
	c.adapter.Open(ctx)
}

func (c *ChatSupport) Loading() bool { return c.flight.Loading() }

// Send appends the user's turn and the reply (or a failure notice) and
// returns the model-side message.
func (c *ChatSupport) Send(ctx context.Context, text string) (models.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return models.ChatMessage{}, ErrEmptyInput
	}

	return runFlight(&c.flight, text, func() (models.ChatMessage, error) {
		c.appendMessage(models.NewChatMessage(models.RoleUser, text))

		reply, err := c.adapter.Send(ctx, text)
		if err != nil {
			log.Printf("[checkin] chat error: %v", err)
			reply = chatFailureReply
			if services.IsQuotaExceeded(err) {
				reply = chatBusyReply
			}
		}

		msg := models.NewChatMessage(models.RoleModel, reply)
		c.appendMessage(msg)
		return msg, nil
	})
}

// Messages returns a copy of the transcript.
func (c *ChatSupport) Messages() []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()

	copied := make([]models.ChatMessage, len(c.messages))
	copy(copied, c.messages)
	return copied
}

// Close ends the conversation's session.
func (c *ChatSupport) Close() error {
	c.adapter.Close()
	return nil
}

func (c *ChatSupport) appendMessage(msg models.ChatMessage) {
	c.mu.Lock()
	c.messages = append(c.messages, msg)
	c.mu.Unlock()
}
