// Package checkin holds the behaviour behind each check-in screen: input
// validation, one-request-at-a-time guarding, device ownership, history
// recording and the user-facing wording of failures. Rendering lives
// elsewhere.
package checkin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"

	"caresphere/internal/models"
)

var (
	ErrBusy         = errors.New("a request is already in progress")
	ErrEmptyInput   = errors.New("input is required")
	ErrNotStreaming = errors.New("camera is not streaming")
	ErrNoRecording  = errors.New("no recording to analyze")
)

type historySink interface {
	Create(ctx context.Context, rec *models.WellnessRecord) error
}

// flight lets one logical request run per surface. A repeat of the pending
// request (same key) joins it and shares its result; anything else is
// rejected with ErrBusy until it finishes. Joined callers share the first
// caller's context.
type flight struct {
	mu    sync.Mutex
	key   string
	calls int
	group singleflight.Group
}

func (f *flight) Loading() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls > 0
}

func (f *flight) enter(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls > 0 && f.key != key {
		return false
	}
	f.key = key
	f.calls++
	return true
}

func (f *flight) leave() {
	f.mu.Lock()
	f.calls--
	f.mu.Unlock()
}

func runFlight[T any](f *flight, key string, fn func() (T, error)) (T, error) {
	var zero T
	if !f.enter(key) {
		return zero, ErrBusy
	}
	defer f.leave()

	v, err, _ := f.group.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

func mediaKey(m models.Media) string {
	h := sha256.New()
	h.Write([]byte(m.MIMEType))
	h.Write([]byte{0})
	h.Write(m.Data)
	return hex.EncodeToString(h.Sum(nil))
}

func record(ctx context.Context, history historySink, kind models.RecordType, score int) {
	if history == nil {
		return
	}
	rec := &models.WellnessRecord{Score: score, Type: kind}
	if err := history.Create(ctx, rec); err != nil {
		log.Printf("[checkin] failed to record %s check-in: %v", kind, err)
	}
}
