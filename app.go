// Package caresphere wires the wellness companion's adapter layer: the
// inference gateway, chat sessions, check-in surfaces and the in-memory
// wellness history. The host UI creates one App per session and closes it on
// teardown.
package caresphere

import (
	"context"
	"fmt"
	"log"
	"sync"

	"caresphere/internal/capture"
	"caresphere/internal/checkin"
	"caresphere/internal/config"
	"caresphere/internal/models"
	"caresphere/internal/repository"
	"caresphere/internal/services"
)

type (
	Config         = config.Config
	Media          = models.Media
	WellnessRecord = models.WellnessRecord
	ChatMessage    = models.ChatMessage
	DashboardStats = services.DashboardStats
	Transport      = services.Transport
	Camera         = capture.Camera
	Microphone     = capture.Microphone
)

// LoadConfig reads .env and the process environment.
func LoadConfig() *Config {
	return config.Load()
}

type App struct {
	cfg       *config.Config
	transport services.Transport
	closeFn   func()

	history   *repository.WellnessRepo
	wellness  *services.WellnessService
	dashboard *services.DashboardService

	mu        sync.Mutex
	surfaces  []interface{ Close() error }
	closeOnce sync.Once
}

// New builds the app against Gemini when a key is configured and against the
// local stand-in otherwise. A missing key is not an error.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	log.Printf("[gemini] API key present: %t", cfg.HasCredential())

	if !cfg.HasCredential() {
		log.Println("[gemini] No API key found. Set GEMINI_API_KEY to enable inference; using the local stand-in.")
		return NewWithTransport(cfg, services.NewStandInTransport(), nil), nil
	}

	gemini, err := services.NewGeminiTransport(ctx, cfg.GeminiAPIKey, cfg.GeminiRequestsPerMin, cfg.GeminiConcurrentReqs)
	if err != nil {
		return nil, fmt.Errorf("gemini client initialization failed: %w", err)
	}
	log.Printf("✓ Gemini client initialized (model %s)", cfg.GeminiModel)

	return NewWithTransport(cfg, gemini, gemini.Close), nil
}

// NewWithTransport builds the app on a caller-supplied transport. closeFn,
// if set, runs on Close.
func NewWithTransport(cfg *config.Config, transport services.Transport, closeFn func()) *App {
	history := repository.NewWellnessRepo()

	return &App{
		cfg:       cfg,
		transport: transport,
		closeFn:   closeFn,
		history:   history,
		wellness:  services.NewWellnessService(transport, cfg.GeminiModel, cfg.LiveEmotionTimeout),
		dashboard: services.NewDashboardService(history),
	}
}

func (a *App) Wellness() *services.WellnessService { return a.wellness }

func (a *App) History(ctx context.Context) ([]WellnessRecord, error) {
	return a.history.List(ctx)
}

func (a *App) Dashboard(ctx context.Context) (DashboardStats, error) {
	return a.dashboard.Stats(ctx)
}

func (a *App) ImageCheckIn() *checkin.ImageCheckIn {
	return checkin.NewImageCheckIn(a.wellness, a.history)
}

func (a *App) EmotionScan(camera Camera) *checkin.EmotionScan {
	return track(a, checkin.NewEmotionScan(camera, a.wellness, a.history))
}

func (a *App) VoiceCheckIn(mic Microphone) *checkin.VoiceCheckIn {
	return track(a, checkin.NewVoiceCheckIn(mic, a.wellness, a.history))
}

// ChatSupport starts a new conversation and mounts its session.
func (a *App) ChatSupport(ctx context.Context) *checkin.ChatSupport {
	chat := checkin.NewChatSupport(services.NewChatAdapter(a.transport, a.cfg.GeminiModel))
	chat.Mount(ctx)
	return track(a, chat)
}

func (a *App) ProductivityCoach() *checkin.ProductivityCoach {
	return checkin.NewProductivityCoach(a.wellness)
}

func (a *App) AccessibilityMode() *checkin.AccessibilityMode {
	return checkin.NewAccessibilityMode(a.wellness)
}

// Close releases every device and session handed out by the app, then the
// transport.
func (a *App) Close() {
	a.mu.Lock()
	surfaces := a.surfaces
	a.surfaces = nil
	a.mu.Unlock()

	for _, s := range surfaces {
		if err := s.Close(); err != nil {
			log.Printf("[app] failed to release surface: %v", err)
		}
	}

	a.closeOnce.Do(func() {
		if a.closeFn != nil {
			a.closeFn()
		}
	})
}

func track[T interface{ Close() error }](a *App, surface T) T {
	a.mu.Lock()
	a.surfaces = append(a.surfaces, surface)
	a.mu.Unlock()
	return surface
}
