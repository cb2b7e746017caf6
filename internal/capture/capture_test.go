package capture

import (
	"errors"
	"sync"
	"testing"
)

type countingCloser struct {
	mu     sync.Mutex
	closes int
	err    error
}

func (c *countingCloser) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closes++
	return c.err
}

func TestGuard_ClosesOnce(t *testing.T) {
	inner := &countingCloser{err: errors.New("track already stopped")}
	g := NewGuard(inner)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Close()
		}()
	}
	wg.Wait()

	if inner.closes != 1 {
		t.Fatalf("expected exactly one close, got %d", inner.closes)
	}
	if err := g.Close(); err == nil || err.Error() != "track already stopped" {
		t.Fatalf("expected first close error to be remembered, got %v", err)
	}
}

func TestGuard_NilSafe(t *testing.T) {
	var g *Guard
	if err := g.Close(); err != nil {
		t.Fatalf("expected nil guard close to be a no-op, got %v", err)
	}
	if err := NewGuard(nil).Close(); err != nil {
		t.Fatalf("expected guard over nil closer to be a no-op, got %v", err)
	}
}
