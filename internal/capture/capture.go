// Package capture defines the device handles the check-in surfaces hold
// exclusively while streaming or recording. Platform bindings implement
// Camera and Microphone; every opened handle must be closed on every exit
// path, so surfaces wrap them in a Guard.
package capture

import (
	"context"
	"errors"
	"io"
	"sync"

	"caresphere/internal/models"
)

var ErrPermissionDenied = errors.New("device permission denied")

type Camera interface {
	Open(ctx context.Context) (VideoStream, error)
}

type VideoStream interface {
	io.Closer
	// Frame grabs one encoded still from the live stream.
	Frame(ctx context.Context) (models.Media, error)
}

type Microphone interface {
	Open(ctx context.Context) (Recorder, error)
}

type Recorder interface {
	io.Closer
	// Stop ends the recording and returns it as a single encoded blob.
	Stop() (models.Media, error)
}

// Guard makes Close idempotent and safe to call from teardown paths that may
// race with an explicit stop.
type Guard struct {
	once sync.Once
	c    io.Closer
	err  error
}

func NewGuard(c io.Closer) *Guard {
	return &Guard{c: c}
}

func (g *Guard) Close() error {
	if g == nil {
		return nil
	}
	g.once.Do(func() {
		if g.c != nil {
			g.err = g.c.Close()
		}
	})
	return g.err
}
