package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"caresphere/internal/models"
)

type fakeHistory struct {
	records []models.WellnessRecord
	err     error
}

func (f fakeHistory) List(ctx context.Context) ([]models.WellnessRecord, error) {
	return f.records, f.err
}

func recordsAt(base time.Time, scores ...int) []models.WellnessRecord {
	out := make([]models.WellnessRecord, 0, len(scores))
	for i, s := range scores {
		out = append(out, models.WellnessRecord{
			Date:  base.Add(time.Duration(i) * time.Minute),
			Score: s,
			Type:  models.RecordImage,
		})
	}
	return out
}

func TestDashboardStats_Empty(t *testing.T) {
	svc := NewDashboardService(fakeHistory{})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if stats.Average != 75 {
		t.Errorf("Expected default average 75, got %d", stats.Average)
	}
	if stats.Count != 0 {
		t.Errorf("Expected count 0, got %d", stats.Count)
	}
	if !reflect.DeepEqual(stats.Chart, placeholderWeek) {
		t.Errorf("Expected placeholder week, got %+v", stats.Chart)
	}

	stats.Chart[0].Score = 0
	if placeholderWeek[0].Score != 65 {
		t.Error("Expected placeholder week to be copied, not shared")
	}
}

func TestDashboardStats_Average(t *testing.T) {
	tests := []struct {
		name     string
		scores   []int
		expected int
	}{
		{"single", []int{82}, 82},
		{"rounds half up", []int{80, 81}, 81},
		{"rounds down", []int{70, 70, 71}, 70},
		{"spans range", []int{0, 100}, 50},
	}

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewDashboardService(fakeHistory{records: recordsAt(base, tc.scores...)})
			stats, err := svc.Stats(context.Background())
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if stats.Average != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, stats.Average)
			}
		})
	}
}

func TestDashboardStats_ChartKeepsLastSeven(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	svc := NewDashboardService(fakeHistory{records: recordsAt(base, 10, 20, 30, 40, 50, 60, 70, 80, 90)})

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(stats.Chart) != 7 {
		t.Fatalf("Expected 7 points, got %d", len(stats.Chart))
	}
	first := stats.Chart[0]
	if first.Name != "09:02" || first.Score != 30 {
		t.Errorf("Expected first point 09:02/30, got %+v", first)
	}
	last := stats.Chart[6]
	if last.Name != "09:08" || last.Score != 90 {
		t.Errorf("Expected last point 09:08/90, got %+v", last)
	}
	if stats.Count != 9 {
		t.Errorf("Expected count 9, got %d", stats.Count)
	}
}

func TestDashboardStats_Headline(t *testing.T) {
	tests := []struct {
		count    int
		expected string
	}{
		{0, "Start a check-in to track your wellness journey."},
		{1, "You have completed 1 check-in this session."},
		{4, "You have completed 4 check-ins this session."},
	}

	for _, tc := range tests {
		if got := headline(tc.count); got != tc.expected {
			t.Errorf("count %d: expected %q, got %q", tc.count, tc.expected, got)
		}
	}
}

func TestDashboardStats_HistoryError(t *testing.T) {
	loadErr := errors.New("boom")
	svc := NewDashboardService(fakeHistory{err: loadErr})

	if _, err := svc.Stats(context.Background()); !errors.Is(err, loadErr) {
		t.Errorf("Expected wrapped history error, got %v", err)
	}
}
