package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"caresphere/internal/models"
)

// WellnessService is the gateway between the check-in surfaces and the
// inference transport. Image, live emotion and plan calls always return a
// renderable result; voice and simplify calls return non-quota failures as
// errors for the caller to word.
type WellnessService struct {
	transport   Transport
	model       string
	liveTimeout time.Duration
}

func NewWellnessService(transport Transport, model string, liveTimeout time.Duration) *WellnessService {
	if liveTimeout <= 0 {
		liveTimeout = 4 * time.Second
	}
	return &WellnessService{
		transport:   transport,
		model:       model,
		liveTimeout: liveTimeout,
	}
}

func (s *WellnessService) generate(ctx context.Context, instruction string, media *models.Media) (string, error) {
	return s.transport.GenerateContent(ctx, GenerateRequest{
		Model:        s.model,
		Instruction:  instruction,
		Media:        media,
		JSONResponse: true,
	})
}

// AnalyzeImageWellness reads emotions, stress and happiness from a photo.
func (s *WellnessService) AnalyzeImageWellness(ctx context.Context, image models.Media) models.ImageWellness {
	if image.Empty() {
		log.Printf("[wellness] image analysis error: %v", models.ErrEmptyMedia)
		return imageErrorResult()
	}

	text, err := s.generate(ctx, imageWellnessPrompt, &image)
	if err != nil {
		if IsQuotaExceeded(err) {
			return models.ImageWellness{
				Emotions: []string{"Busy"},
				Feedback: "System is busy. Please wait a moment.",
			}
		}
		log.Printf("[wellness] image analysis error: %v", err)
		return imageErrorResult()
	}

	return NormalizeJSON(text, models.ImageWellness{
		Emotions: []string{"Analysis Failed"},
		Feedback: "Could not analyze image. Please try again.",
	}).WithDefaults()
}

func imageErrorResult() models.ImageWellness {
	return models.ImageWellness{
		Emotions: []string{"Error"},
		Feedback: "We encountered an issue analyzing the image.",
	}
}

// DetectRealtimeEmotion classifies the dominant facial emotion in one frame.
// The call is bounded by the live timeout: when it fires the request is
// cancelled and a Timeout result is returned without waiting for the
// transport to notice.
func (s *WellnessService) DetectRealtimeEmotion(ctx context.Context, frame models.Media) models.LiveEmotion {
	ctx, cancel := context.WithTimeout(ctx, s.liveTimeout)
	defer cancel()

	type outcome struct {
		text string
		err  error
	}
	done := make(chan outcome, 1)
	go func() {
		text, err := s.generate(ctx, liveEmotionPrompt, &frame)
		done <- outcome{text: text, err: err}
	}()

	select {
	case <-ctx.Done():
		return liveEmotionAfterCancel(ctx.Err())
	case out := <-done:
		if out.err != nil {
			if errors.Is(out.err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return models.LiveEmotion{Emotion: models.EmotionTimeout}
			}
			if IsQuotaExceeded(out.err) {
				return models.LiveEmotion{Emotion: models.EmotionLimitReached}
			}
			log.Printf("[wellness] live emotion error: %v", out.err)
			return models.LiveEmotion{Emotion: models.EmotionNeutral}
		}
		return NormalizeJSON(out.text, models.LiveEmotion{Emotion: models.EmotionNeutral}).WithDefaults()
	}
}

func liveEmotionAfterCancel(err error) models.LiveEmotion {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.LiveEmotion{Emotion: models.EmotionTimeout}
	}
	return models.LiveEmotion{Emotion: models.EmotionNeutral}
}

// AnalyzeVoiceReflection reads tone, anxiety and confidence from a recording.
// Quota failures become a "System Busy" result; any other failure is
// returned unchanged.
func (s *WellnessService) AnalyzeVoiceReflection(ctx context.Context, audio models.Media) (models.VoiceReflection, error) {
	if audio.Empty() {
		return models.VoiceReflection{}, models.ErrEmptyMedia
	}

	text, err := s.generate(ctx, voiceReflectionPrompt, &audio)
	if err != nil {
		if IsQuotaExceeded(err) {
			return models.VoiceReflection{
				Tone:        "System Busy",
				Suggestions: []string{"Please try again later"},
			}, nil
		}
		log.Printf("[wellness] voice analysis error: %v", err)
		return models.VoiceReflection{}, err
	}

	return NormalizeJSON(text, models.VoiceReflection{
		Tone:        "Analysis Failed",
		Suggestions: []string{"Could not process audio"},
	}).WithDefaults(), nil
}

// GenerateProductivityPlan turns a free-form description of the day into a
// timed task list.
func (s *WellnessService) GenerateProductivityPlan(ctx context.Context, input string) models.ProductivityPlan {
	text, err := s.generate(ctx, buildPlanPrompt(input), nil)
	if err != nil {
		if IsQuotaExceeded(err) {
			return models.ProductivityPlan{Tasks: []models.PlanTask{}, Advice: "Quota exceeded. Please wait."}
		}
		log.Printf("[wellness] productivity plan error: %v", err)
		return models.ProductivityPlan{Tasks: []models.PlanTask{}, Advice: "Error generating plan."}
	}

	return NormalizeJSON(text, models.ProductivityPlan{
		Tasks:  []models.PlanTask{},
		Advice: "Failed to generate plan.",
	}).WithDefaults()
}

// SimplifyContent rewrites text in plain language with an optional sign
// language gloss. Non-quota failures are returned unchanged.
func (s *WellnessService) SimplifyContent(ctx context.Context, text string) (models.Simplification, error) {
	reply, err := s.generate(ctx, buildSimplifyPrompt(text), nil)
	if err != nil {
		if IsQuotaExceeded(err) {
			return models.Simplification{Simplified: "System busy."}, nil
		}
		log.Printf("[wellness] accessibility error: %v", err)
		return models.Simplification{}, err
	}

	return NormalizeJSON(reply, models.Simplification{
		Simplified: "Error processing text.",
	}).WithDefaults(), nil
}

// Prompts

const imageWellnessPrompt = `Analyze this image for wellness. Detect emotions, stress, and atmosphere.
Return strict JSON:
{
  "emotions": ["emotion1", "emotion2"],
  "stressLevel": number (1-10),
  "happinessLevel": number (1-10),
  "feedback": "Warm, supportive feedback paragraph.",
  "wellnessScore": number (0-100)
}`

const liveEmotionPrompt = `Identify the dominant human facial emotion from this image.
The image may be low light or have occlusion.
Focus on landmarks: eyebrows, mouth corners, eye openness.

Return JSON only: { "emotion": "Happy" | "Sad" | "Angry" | "Fear" | "Neutral" | "Disgust" | "Surprise", "confidence": 0.0 to 1.0 }`

const voiceReflectionPrompt = `Analyze the speaker's tone, anxiety, and confidence in this audio.
Return strict JSON:
{
  "tone": "Brief description",
  "anxietyLevel": number (1-10),
  "confidenceLevel": number (1-10),
  "suggestions": ["suggestion1", "suggestion2"],
  "wellnessScore": number (0-100)
}`

func buildPlanPrompt(input string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Create a daily plan for: \"%s\".\n", input))
	b.WriteString(`Return JSON:
{
  "tasks": [ { "time": "09:00", "task": "..." } ],
  "advice": "..."
}`)
	return b.String()
}

func buildSimplifyPrompt(text string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Simplify this text: \"%s\". Provide Sign Language Gloss if possible.\n", text))
	b.WriteString(`Return JSON: { "simplified": "...", "signLanguageGloss": "..." }`)
	return b.String()
}
