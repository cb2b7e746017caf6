package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type ResultKind string

const (
	KindImageWellness   ResultKind = "image_wellness"
	KindLiveEmotion     ResultKind = "live_emotion"
	KindVoiceReflection ResultKind = "voice_reflection"
	KindProductivity    ResultKind = "productivity_plan"
	KindSimplification  ResultKind = "text_simplification"
)

// Result is implemented by every inference result variant.
type Result interface {
	Kind() ResultKind
}

// Metric is an integer gauge (levels 1-10, scores 0-100). Models are loose
// with number formatting, so floats are rounded and numeric strings accepted.
// Anything unreadable as a number decodes to zero, which means absent, so one
// wordy field never costs the rest of the reply.
type Metric int

// Bound applied before the float to int conversion; WithDefaults narrows it
// to the real range.
const metricLimit = 1 << 20

func (m *Metric) UnmarshalJSON(b []byte) error {
	*m = toMetric(parseLooseNumber(b))
	return nil
}

func toMetric(f float64) Metric {
	switch {
	case math.IsNaN(f):
		return 0
	case f > metricLimit:
		return metricLimit
	case f < -metricLimit:
		return -metricLimit
	}
	return Metric(math.Round(f))
}

// Fraction is a 0.0-1.0 value with the same loose decoding as Metric.
type Fraction float64

func (f *Fraction) UnmarshalJSON(b []byte) error {
	v := parseLooseNumber(b)
	if math.IsNaN(v) {
		v = 0
	}
	*f = Fraction(v)
	return nil
}

// parseLooseNumber reads a JSON number or numeric string. Out-of-range input
// saturates to an infinity; everything else unreadable is zero.
func parseLooseNumber(b []byte) float64 {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return 0
		}
		b = bytes.TrimSpace([]byte(s))
	}
	f, err := strconv.ParseFloat(string(b), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	return f
}

func clampMetric(m Metric, lo, hi int) Metric {
	if m < Metric(lo) {
		return Metric(lo)
	}
	if m > Metric(hi) {
		return Metric(hi)
	}
	return m
}

// ─── Image wellness ───

type ImageWellness struct {
	Emotions       []string `json:"emotions"`
	StressLevel    Metric   `json:"stressLevel"`
	HappinessLevel Metric   `json:"happinessLevel"`
	Feedback       string   `json:"feedback"`
	WellnessScore  Metric   `json:"wellnessScore"`
}

func (ImageWellness) Kind() ResultKind { return KindImageWellness }

func (r ImageWellness) WithDefaults() ImageWellness {
	if r.Emotions == nil {
		r.Emotions = []string{}
	}
	r.StressLevel = clampMetric(r.StressLevel, 0, 10)
	r.HappinessLevel = clampMetric(r.HappinessLevel, 0, 10)
	r.WellnessScore = clampMetric(r.WellnessScore, 0, 100)
	return r
}

// ─── Live emotion ───

type Emotion string

const (
	EmotionHappy    Emotion = "Happy"
	EmotionSad      Emotion = "Sad"
	EmotionAngry    Emotion = "Angry"
	EmotionFear     Emotion = "Fear"
	EmotionNeutral  Emotion = "Neutral"
	EmotionDisgust  Emotion = "Disgust"
	EmotionSurprise Emotion = "Surprise"

	// Sentinels produced on failure paths, never by the model.
	EmotionTimeout      Emotion = "Timeout"
	EmotionLimitReached Emotion = "Limit Reached"
)

// ParseEmotion maps a model label onto the seven reportable emotions,
// ignoring case and common adjective forms. Sentinels are not model labels
// and never match.
func ParseEmotion(raw string) (Emotion, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "happy", "happiness", "joy":
		return EmotionHappy, true
	case "sad", "sadness":
		return EmotionSad, true
	case "angry", "anger":
		return EmotionAngry, true
	case "fear", "fearful", "afraid", "scared":
		return EmotionFear, true
	case "neutral", "calm":
		return EmotionNeutral, true
	case "disgust", "disgusted":
		return EmotionDisgust, true
	case "surprise", "surprised":
		return EmotionSurprise, true
	default:
		return "", false
	}
}

type LiveEmotion struct {
	Emotion    Emotion  `json:"emotion"`
	Confidence Fraction `json:"confidence"`
}

func (LiveEmotion) Kind() ResultKind { return KindLiveEmotion }

func (r LiveEmotion) WithDefaults() LiveEmotion {
	if e, ok := ParseEmotion(string(r.Emotion)); ok {
		r.Emotion = e
	} else {
		r.Emotion = EmotionNeutral
	}
	if r.Confidence < 0 || math.IsNaN(float64(r.Confidence)) {
		r.Confidence = 0
	}
	if r.Confidence > 1 {
		r.Confidence = 1
	}
	return r
}

// Score maps confidence onto the 0-100 history scale.
func (r LiveEmotion) Score() int {
	return int(math.Round(float64(r.Confidence) * 100))
}

// ─── Voice reflection ───

type VoiceReflection struct {
	Tone            string   `json:"tone"`
	AnxietyLevel    Metric   `json:"anxietyLevel"`
	ConfidenceLevel Metric   `json:"confidenceLevel"`
	Suggestions     []string `json:"suggestions"`
	WellnessScore   Metric   `json:"wellnessScore"`
}

func (VoiceReflection) Kind() ResultKind { return KindVoiceReflection }

func (r VoiceReflection) WithDefaults() VoiceReflection {
	if r.Suggestions == nil {
		r.Suggestions = []string{}
	}
	r.AnxietyLevel = clampMetric(r.AnxietyLevel, 0, 10)
	r.ConfidenceLevel = clampMetric(r.ConfidenceLevel, 0, 10)
	r.WellnessScore = clampMetric(r.WellnessScore, 0, 100)
	return r
}

// ─── Productivity plan ───

type PlanTask struct {
	Time string `json:"time"` // "HH:MM"
	Task string `json:"task"`
}

// UnmarshalJSON accepts a bare string as the task and numeric times; a whole
// hour such as 9 becomes "09:00".
func (p *PlanTask) UnmarshalJSON(b []byte) error {
	var text string
	if err := json.Unmarshal(b, &text); err == nil {
		*p = PlanTask{Task: text}
		return nil
	}

	var raw struct {
		Time json.RawMessage `json:"time"`
		Task json.RawMessage `json:"task"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	*p = PlanTask{Time: looseClock(raw.Time), Task: looseText(raw.Task)}
	return nil
}

func looseText(b json.RawMessage) string {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	return string(b)
}

func looseClock(b json.RawMessage) string {
	text := looseText(b)
	if hour, err := strconv.Atoi(text); err == nil && hour >= 0 && hour < 24 {
		return fmt.Sprintf("%02d:00", hour)
	}
	return text
}

type ProductivityPlan struct {
	Tasks  []PlanTask `json:"tasks"`
	Advice string     `json:"advice"`
}

func (ProductivityPlan) Kind() ResultKind { return KindProductivity }

func (r ProductivityPlan) WithDefaults() ProductivityPlan {
	if r.Tasks == nil {
		r.Tasks = []PlanTask{}
	}
	return r
}

// ─── Text simplification ───

type Simplification struct {
	Simplified        string `json:"simplified"`
	SignLanguageGloss string `json:"signLanguageGloss"`
}

func (Simplification) Kind() ResultKind { return KindSimplification }

func (r Simplification) WithDefaults() Simplification { return r }
