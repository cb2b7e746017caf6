package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const rateSlotWait = 5 * time.Minute

type GeminiTransport struct {
	client   *genai.Client
	limiter  *rate.Limiter
	rateChan chan struct{} // Token bucket
}

func NewGeminiTransport(ctx context.Context, apiKey string, requestsPerMin, concurrentReqs int) (*GeminiTransport, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiTransport{
		client:   client,
		limiter:  newRequestLimiter(requestsPerMin, concurrentReqs),
		rateChan: newRateSlots(concurrentReqs),
	}, nil
}

func newRequestLimiter(requestsPerMin, burst int) *rate.Limiter {
	if requestsPerMin <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	if burst < 1 {
		burst = 1
	}
	return rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMin)), burst)
}

func newRateSlots(concurrentReqs int) chan struct{} {
	if concurrentReqs < 1 {
		concurrentReqs = 1
	}
	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}
	return rateChan
}

func (t *GeminiTransport) Close() {
	t.client.Close()
}

// acquireRate blocks until both the per-minute budget and a concurrency slot
// are available. When the local budget cannot be met before the caller's
// deadline the error carries a 429 code, so callers treat it like upstream
// throttling.
func (t *GeminiTransport) acquireRate(ctx context.Context) error {
	if err := t.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return localThrottle("waiting for Gemini request budget: %v", err)
	}

	select {
	case <-t.rateChan:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(rateSlotWait):
		return localThrottle("timeout waiting for Gemini rate slot")
	}
}

func localThrottle(format string, args ...any) error {
	return &StatusError{
		Code:    http.StatusTooManyRequests,
		Message: fmt.Sprintf(format, args...),
	}
}

func (t *GeminiTransport) releaseRate() {
	t.rateChan <- struct{}{}
}

func (t *GeminiTransport) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	if err := t.acquireRate(ctx); err != nil {
		return "", err
	}
	defer t.releaseRate()

	model := t.client.GenerativeModel(req.Model)
	if req.JSONResponse {
		model.ResponseMIMEType = "application/json"
	}

	parts := make([]genai.Part, 0, 2)
	if req.Media != nil {
		parts = append(parts, genai.Blob{MIMEType: req.Media.MIMEType, Data: req.Media.Data})
	}
	parts = append(parts, genai.Text(req.Instruction))

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop {
			log.Printf("[gemini] candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	return extractText(resp), nil
}

func (t *GeminiTransport) StartChat(ctx context.Context, model, systemInstruction string) (ChatSession, error) {
	m := t.client.GenerativeModel(model)
	if systemInstruction != "" {
		m.SystemInstruction = genai.NewUserContent(genai.Text(systemInstruction))
	}
	return &geminiChat{transport: t, session: m.StartChat()}, nil
}

type geminiChat struct {
	transport *GeminiTransport
	session   *genai.ChatSession
}

func (c *geminiChat) SendMessage(ctx context.Context, message string) (string, error) {
	if err := c.transport.acquireRate(ctx); err != nil {
		return "", err
	}
	defer c.transport.releaseRate()

	resp, err := c.session.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", fmt.Errorf("Gemini chat error: %w", err)
	}
	return extractText(resp), nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if t, ok := part.(genai.Text); ok {
					text.WriteString(string(t))
				}
			}
		}
	}
	return text.String()
}
