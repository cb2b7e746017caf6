package caresphere

import (
	"context"
	"sync/atomic"
	"testing"

	"caresphere/internal/capture"
	"caresphere/internal/config"
	"caresphere/internal/models"
	"caresphere/internal/services"
)

type appStream struct{ closed atomic.Int32 }

func (s *appStream) Frame(ctx context.Context) (models.Media, error) {
	return models.Media{MIMEType: "image/jpeg", Data: []byte("frame")}, nil
}

func (s *appStream) Close() error {
	s.closed.Add(1)
	return nil
}

type appCamera struct{ stream *appStream }

func (c appCamera) Open(ctx context.Context) (capture.VideoStream, error) { return c.stream, nil }

func testConfig() *config.Config {
	return &config.Config{GeminiModel: config.DefaultModel}
}

func TestNew_WithoutKeyUsesStandIn(t *testing.T) {
	app, err := New(context.Background(), testConfig())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	defer app.Close()

	if _, ok := app.transport.(*services.StandInTransport); !ok {
		t.Errorf("Expected stand-in transport, got %T", app.transport)
	}

	chat := app.ChatSupport(context.Background())
	reply, err := chat.Send(context.Background(), "Hello")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reply.Text == "" {
		t.Error("Expected a stand-in reply")
	}
}

func TestApp_VoiceCheckInFeedsDashboard(t *testing.T) {
	stand := services.NewStandInTransport()
	stand.Response = `{"tone":"Calm","anxietyLevel":2,"confidenceLevel":8,"wellnessScore":82}`
	app := NewWithTransport(testConfig(), stand, nil)
	defer app.Close()

	stats, err := app.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Average != 75 || stats.Count != 0 {
		t.Errorf("Expected empty-history defaults, got %+v", stats)
	}

	reflection, err := app.Wellness().AnalyzeVoiceReflection(context.Background(), models.Media{MIMEType: "audio/wav", Data: []byte("clip")})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if reflection.WellnessScore != 82 {
		t.Fatalf("Expected score 82, got %d", reflection.WellnessScore)
	}

	image := app.ImageCheckIn()
	stand.Response = `{"emotions":["Calm"],"wellnessScore":70}`
	if _, err := image.Analyze(context.Background(), "aW1hZ2U="); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	history, _ := app.History(context.Background())
	if len(history) != 1 || history[0].Type != models.RecordImage || history[0].Score != 70 {
		t.Errorf("Expected one image record, got %+v", history)
	}

	stats, _ = app.Dashboard(context.Background())
	if stats.Average != 70 || stats.Count != 1 || len(stats.Chart) != 1 {
		t.Errorf("Unexpected stats %+v", stats)
	}
}

func TestApp_CloseReleasesDevices(t *testing.T) {
	var closed atomic.Int32
	app := NewWithTransport(testConfig(), services.NewStandInTransport(), func() { closed.Add(1) })

	stream := &appStream{}
	scan := app.EmotionScan(appCamera{stream: stream})
	if err := scan.Start(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	app.Close()
	app.Close()

	if scan.Streaming() {
		t.Error("Expected scan stopped on close")
	}
	if stream.closed.Load() != 1 {
		t.Errorf("Expected camera released once, got %d", stream.closed.Load())
	}
	if closed.Load() != 1 {
		t.Errorf("Expected transport closed once, got %d", closed.Load())
	}
}
