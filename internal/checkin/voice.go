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

const defaultAudioMIME = "audio/wav"

// VoiceCheckIn owns the microphone while recording.
type VoiceCheckIn struct {
	mic      capture.Microphone
	wellness *services.WellnessService
	history  historySink

	mu       sync.Mutex
	recorder capture.Recorder
	guard    *capture.Guard
	blob     models.Media
	flight   flight
}

func NewVoiceCheckIn(mic capture.Microphone, wellness *services.WellnessService, history historySink) *VoiceCheckIn {
	return &VoiceCheckIn{mic: mic, wellness: wellness, history: history}
}

// StartRecording acquires the microphone and discards any previous clip.
func (v *VoiceCheckIn) StartRecording(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.recorder != nil {
		return nil
	}

	recorder, err := v.mic.Open(ctx)
	if err != nil {
		log.Printf("[checkin] mic access error: %v", err)
		return fmt.Errorf("failed to open microphone: %w", err)
	}

	v.recorder = recorder
	v.guard = capture.NewGuard(recorder)
	v.blob = models.Media{}
	return nil
}

func (v *VoiceCheckIn) Recording() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.recorder != nil
}

func (v *VoiceCheckIn) Loading() bool { return v.flight.Loading() }

// StopRecording finalises the clip and releases the microphone, even when
// the recorder fails to produce audio.
func (v *VoiceCheckIn) StopRecording() (models.Media, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.recorder == nil {
		return models.Media{}, ErrNoRecording
	}

	blob, err := v.recorder.Stop()
	v.releaseLocked()
	if err != nil {
		return models.Media{}, fmt.Errorf("failed to finish recording: %w", err)
	}
	if blob.MIMEType == "" {
		blob.MIMEType = defaultAudioMIME
	}

	v.blob = blob
	return blob, nil
}

// Analyze sends the last finished clip for reflection. A failed call is
// worded for the user instead of being returned; a scored result is added
// to the history.
func (v *VoiceCheckIn) Analyze(ctx context.Context) (models.VoiceReflection, error) {
	v.mu.Lock()
	blob := v.blob
	v.mu.Unlock()

	if blob.Empty() {
		return models.VoiceReflection{}, ErrNoRecording
	}

	return runFlight(&v.flight, mediaKey(blob), func() (models.VoiceReflection, error) {
		result, err := v.wellness.AnalyzeVoiceReflection(ctx, blob)
		if err != nil {
			log.Printf("[checkin] voice analysis error: %v", err)
			return models.VoiceReflection{
				Tone:        "Could not analyze voice. Please try again.",
				Suggestions: []string{},
			}, nil
		}

		if result.WellnessScore > 0 {
			record(ctx, v.history, models.RecordVoice, int(result.WellnessScore))
		}
		return result, nil
	})
}

// Close is the teardown hook; a recording in progress is abandoned and the
// microphone released.
func (v *VoiceCheckIn) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.releaseLocked()
}

func (v *VoiceCheckIn) releaseLocked() error {
	err := v.guard.Close()
	v.recorder = nil
	v.guard = nil
	return err
}
