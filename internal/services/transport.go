package services

import (
	"context"

	"caresphere/internal/models"
)

// GenerateRequest is a single-shot content generation call: one instruction,
// optionally paired with one inline media part.
type GenerateRequest struct {
	Model        string
	Instruction  string
	Media        *models.Media
	JSONResponse bool
}

// Transport is the slice of the inference service the adapters depend on.
// GeminiTransport talks to the real API; StandInTransport keeps the app
// usable when no credential is configured.
type Transport interface {
	GenerateContent(ctx context.Context, req GenerateRequest) (string, error)
	StartChat(ctx context.Context, model, systemInstruction string) (ChatSession, error)
}

// ChatSession is a stateful multi-turn handle.
type ChatSession interface {
	SendMessage(ctx context.Context, message string) (string, error)
}
