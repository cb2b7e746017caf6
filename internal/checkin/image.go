package checkin

import (
	"context"

	"caresphere/internal/models"
	"caresphere/internal/services"
)

const defaultImageMIME = "image/jpeg"

type ImageCheckIn struct {
	wellness *services.WellnessService
	history  historySink
	flight   flight
}

func NewImageCheckIn(wellness *services.WellnessService, history historySink) *ImageCheckIn {
	return &ImageCheckIn{wellness: wellness, history: history}
}

func (c *ImageCheckIn) Loading() bool { return c.flight.Loading() }

// Analyze takes the picked file as a data URL (or bare base64, assumed JPEG).
// A result with a wellness score is added to the history.
func (c *ImageCheckIn) Analyze(ctx context.Context, dataURL string) (models.ImageWellness, error) {
	image, err := models.ParseDataURL(dataURL, defaultImageMIME)
	if err != nil {
		return models.ImageWellness{}, err
	}

	return runFlight(&c.flight, mediaKey(image), func() (models.ImageWellness, error) {
		result := c.wellness.AnalyzeImageWellness(ctx, image)
		if result.WellnessScore > 0 {
			record(ctx, c.history, models.RecordImage, int(result.WellnessScore))
		}
		return result, nil
	})
}
