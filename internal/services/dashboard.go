package services

import (
	"context"
	"fmt"
	"math"

	"caresphere/internal/models"
)

const (
	chartWindow         = 7
	defaultAverageScore = 75
)

// Shown until the first check-in lands.
var placeholderWeek = []models.ChartPoint{
	{Name: "Mon", Score: 65},
	{Name: "Tue", Score: 70},
	{Name: "Wed", Score: 60},
	{Name: "Thu", Score: 75},
	{Name: "Fri", Score: 85},
	{Name: "Sat", Score: 80},
	{Name: "Sun", Score: 90},
}

type historySource interface {
	List(ctx context.Context) ([]models.WellnessRecord, error)
}

type DashboardService struct {
	history historySource
}

func NewDashboardService(history historySource) *DashboardService {
	return &DashboardService{history: history}
}

type DashboardStats struct {
	Average  int                 `json:"average"`
	Count    int                 `json:"count"`
	Chart    []models.ChartPoint `json:"chart"`
	Headline string              `json:"headline"`
}

func (s *DashboardService) Stats(ctx context.Context) (DashboardStats, error) {
	records, err := s.history.List(ctx)
	if err != nil {
		return DashboardStats{}, fmt.Errorf("failed to load wellness history: %w", err)
	}

	return DashboardStats{
		Average:  averageScore(records),
		Count:    len(records),
		Chart:    chartPoints(records),
		Headline: headline(len(records)),
	}, nil
}

func averageScore(records []models.WellnessRecord) int {
	if len(records) == 0 {
		return defaultAverageScore
	}
	sum := 0
	for _, rec := range records {
		sum += rec.Score
	}
	return int(math.Round(float64(sum) / float64(len(records))))
}

func chartPoints(records []models.WellnessRecord) []models.ChartPoint {
	if len(records) == 0 {
		points := make([]models.ChartPoint, len(placeholderWeek))
		copy(points, placeholderWeek)
		return points
	}

	start := 0
	if len(records) > chartWindow {
		start = len(records) - chartWindow
	}

	points := make([]models.ChartPoint, 0, len(records)-start)
	for _, rec := range records[start:] {
		points = append(points, models.ChartPoint{
			Name:  rec.Date.Format("15:04"),
			Score: rec.Score,
		})
	}
	return points
}

func headline(count int) string {
	if count == 0 {
		return "Start a check-in to track your wellness journey."
	}
	if count == 1 {
		return "You have completed 1 check-in this session."
	}
	return fmt.Sprintf("You have completed %d check-ins this session.", count)
}
