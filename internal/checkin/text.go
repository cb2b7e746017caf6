package checkin

import (
	"context"
	"log"
	"strings"

	"caresphere/internal/models"
	"caresphere/internal/services"
)

type ProductivityCoach struct {
	wellness *services.WellnessService
	flight   flight
}

func NewProductivityCoach(wellness *services.WellnessService) *ProductivityCoach {
	return &ProductivityCoach{wellness: wellness}
}

func (p *ProductivityCoach) Loading() bool { return p.flight.Loading() }

func (p *ProductivityCoach) Plan(ctx context.Context, input string) (models.ProductivityPlan, error) {
	if strings.TrimSpace(input) == "" {
		return models.ProductivityPlan{}, ErrEmptyInput
	}

	return runFlight(&p.flight, input, func() (models.ProductivityPlan, error) {
		return p.wellness.GenerateProductivityPlan(ctx, input), nil
	})
}

type AccessibilityMode struct {
	wellness *services.WellnessService
	flight   flight
}

func NewAccessibilityMode(wellness *services.WellnessService) *AccessibilityMode {
	return &AccessibilityMode{wellness: wellness}
}

func (a *AccessibilityMode) Loading() bool { return a.flight.Loading() }

// Simplify never returns a transport failure; it becomes a retry prompt.
func (a *AccessibilityMode) Simplify(ctx context.Context, text string) (models.Simplification, error) {
	if strings.TrimSpace(text) == "" {
		return models.Simplification{}, ErrEmptyInput
	}

	return runFlight(&a.flight, text, func() (models.Simplification, error) {
		result, err := a.wellness.SimplifyContent(ctx, text)
		if err != nil {
			log.Printf("[checkin] simplify error: %v", err)
			return models.Simplification{Simplified: "Could not simplify text. Try again."}, nil
		}
		return result, nil
	})
}
