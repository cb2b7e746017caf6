package services

import (
	"context"
	"sync"
	"time"
)

type stubTransport struct {
	mu       sync.Mutex
	response string
	err      error
	block    bool          // wait for ctx cancellation
	sleep    time.Duration // ignore ctx and sleep
	requests []GenerateRequest
	ctxErr   error

	startErrs  []error // consumed one per StartChat call
	startCalls int
	lastSystem string
	session    *stubSession
}

func (s *stubTransport) GenerateContent(ctx context.Context, req GenerateRequest) (string, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	s.mu.Unlock()

	if s.block {
		<-ctx.Done()
		s.mu.Lock()
		s.ctxErr = ctx.Err()
		s.mu.Unlock()
		return "", ctx.Err()
	}
	if s.sleep > 0 {
		time.Sleep(s.sleep)
	}
	return s.response, s.err
}

func (s *stubTransport) StartChat(ctx context.Context, model, systemInstruction string) (ChatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.startCalls++
	s.lastSystem = systemInstruction
	if len(s.startErrs) > 0 {
		err := s.startErrs[0]
		s.startErrs = s.startErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	if s.session == nil {
		s.session = &stubSession{}
	}
	return s.session, nil
}

func (s *stubTransport) lastRequest() GenerateRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return GenerateRequest{}
	}
	return s.requests[len(s.requests)-1]
}

func (s *stubTransport) cancelledWith() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctxErr
}

type stubSession struct {
	mu    sync.Mutex
	sent  []string
	reply string
	errs  []error // consumed one per SendMessage call
}

func (s *stubSession) SendMessage(ctx context.Context, message string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sent = append(s.sent, message)
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return "", err
		}
	}
	if s.reply == "" {
		return "echo: " + message, nil
	}
	return s.reply, nil
}
