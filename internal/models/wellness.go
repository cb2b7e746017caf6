package models

import "time"

type RecordType string

const (
	RecordImage   RecordType = "image"
	RecordVoice   RecordType = "voice"
	RecordEmotion RecordType = "emotion"
)

func (t RecordType) Valid() bool {
	switch t {
	case RecordImage, RecordVoice, RecordEmotion:
		return true
	}
	return false
}

type WellnessRecord struct {
	Date  time.Time  `json:"date"`
	Score int        `json:"score"` // 0-100
	Type  RecordType `json:"type"`
}

// ChartPoint is one bar of the dashboard trend chart.
type ChartPoint struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}
