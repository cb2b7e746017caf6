package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"caresphere/internal/models"
)

var ErrInvalidRecord = errors.New("invalid wellness record")

// WellnessRepo keeps the session's check-in history in memory. Records are
// only ever appended; the history dies with the process.
type WellnessRepo struct {
	mu      sync.RWMutex
	records []models.WellnessRecord
	now     func() time.Time
}

func NewWellnessRepo() *WellnessRepo {
	return &WellnessRepo{
		records: make([]models.WellnessRecord, 0, 16),
		now:     time.Now,
	}
}

func (r *WellnessRepo) Create(ctx context.Context, rec *models.WellnessRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !rec.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidRecord, rec.Type)
	}
	if rec.Score < 0 || rec.Score > 100 {
		return fmt.Errorf("%w: score %d out of range", ErrInvalidRecord, rec.Score)
	}
	if rec.Date.IsZero() {
		rec.Date = r.now()
	}

	r.mu.Lock()
	r.records = append(r.records, *rec)
	r.mu.Unlock()
	return nil
}

// List returns a copy of the history in insertion order.
func (r *WellnessRepo) List(ctx context.Context) ([]models.WellnessRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	copied := make([]models.WellnessRecord, len(r.records))
	copy(copied, r.records)
	return copied, nil
}

func (r *WellnessRepo) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}
