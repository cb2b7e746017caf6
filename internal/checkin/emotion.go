package checkin

import (
	"context"
	"fmt"
	"log"
	"sync"

	"caresphere/internal/capture"
	"caresphere/internal/models"
	"caresphere/internal/services"
)

// EmotionScan owns the camera between Start and Stop (or Close on teardown).
type EmotionScan struct {
	camera   capture.Camera
	wellness *services.WellnessService
	history  historySink

	mu     sync.Mutex
	stream capture.VideoStream
	guard  *capture.Guard
	flight flight
}

func NewEmotionScan(camera capture.Camera, wellness *services.WellnessService, history historySink) *EmotionScan {
	return &EmotionScan{camera: camera, wellness: wellness, history: history}
}

// Start acquires the camera. A denied or failed open leaves the scan idle.
func (s *EmotionScan) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stream != nil {
		return nil
	}

	stream, err := s.camera.Open(ctx)
	if err != nil {
		log.Printf("[checkin] camera access error: %v", err)
		return fmt.Errorf("failed to open camera: %w", err)
	}

	s.stream = stream
	s.guard = capture.NewGuard(stream)
	return nil
}

func (s *EmotionScan) Streaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stream != nil
}

func (s *EmotionScan) Loading() bool { return s.flight.Loading() }

// Detect grabs one frame and classifies it. Concurrent calls share the
// pending detection. Sentinel results (Timeout, Limit Reached) are not
// recorded.
func (s *EmotionScan) Detect(ctx context.Context) (models.LiveEmotion, error) {
	s.mu.Lock()
	stream := s.stream
	s.mu.Unlock()

	if stream == nil {
		return models.LiveEmotion{}, ErrNotStreaming
	}

	return runFlight(&s.flight, "detect", func() (models.LiveEmotion, error) {
		frame, err := stream.Frame(ctx)
		if err != nil {
			return models.LiveEmotion{}, fmt.Errorf("failed to capture frame: %w", err)
		}

		result := s.wellness.DetectRealtimeEmotion(ctx, frame)
		if result.Emotion != models.EmotionTimeout && result.Emotion != models.EmotionLimitReached {
			record(ctx, s.history, models.RecordEmotion, result.Score())
		}
		return result, nil
	})
}

// Stop releases the camera.
func (s *EmotionScan) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.guard.Close()
	s.stream = nil
	s.guard = nil
	return err
}

// Close is the teardown hook; it always releases the camera.
func (s *EmotionScan) Close() error {
	return s.Stop()
}
