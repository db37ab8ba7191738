package services

import (
	"context"
	"log"

	"findit-backend/internal/models"
)

// Classifier wraps the label model. Classify is total: inference failures
// and empty label sets degrade to sentinel results, never to errors.
type Classifier struct {
	labeler Labeler
}

func NewClassifier(labeler Labeler) *Classifier {
	return &Classifier{labeler: labeler}
}

func (c *Classifier) Classify(ctx context.Context, image []byte) models.LabelResult {
	labels, err := c.labeler.AnnotateLabels(ctx, image)
	if err != nil {
		log.Printf("classification failed: %v", err)
		return models.LabelResult{Name: models.LabelFetchFailed}
	}

	if len(labels) == 0 {
		return models.LabelResult{Name: models.LabelNoneFound}
	}

	// Running max with strict greater-than: equal-confidence ties keep the
	// earliest label the model returned.
	best := models.LabelResult{Name: models.LabelNothingFound}
	for _, label := range labels {
		if label.Score > best.Confidence {
			best = models.LabelResult{
				Name:       label.Description,
				Confidence: label.Score,
				Found:      true,
			}
		}
	}

	return best
}
