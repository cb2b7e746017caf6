package services

import (
	"context"
	"fmt"
)

const standInEchoLimit = 200

// StandInTransport mirrors the Transport shape without any network access.
// Generation returns Response (an empty JSON object unless set) and chat
// echoes the user's message back.
type StandInTransport struct {
	Response string
}

func NewStandInTransport() *StandInTransport {
	return &StandInTransport{Response: "{}"}
}

func (t *StandInTransport) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if t.Response == "" {
		return "{}", nil
	}
	return t.Response, nil
}

func (t *StandInTransport) StartChat(ctx context.Context, model, systemInstruction string) (ChatSession, error) {
	return standInChat{}, nil
}

type standInChat struct{}

func (standInChat) SendMessage(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return fmt.Sprintf("Thanks for sharing. I heard: %q. (No API key configured in dev)", truncateRunes(message, standInEchoLimit)), nil
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
