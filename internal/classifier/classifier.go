package classifier

import (
	"context"
	"errors"
	"fmt"

	"cyberbro/internal/models"
	"cyberbro/internal/toxicity"

	"go.uber.org/zap"
)

const (
	positiveThreshold = 0.2
	negativeThreshold = -0.2
	toxicThreshold    = 0.5

	// ToxicLabel is the only category of the toxicity model that is consumed
	ToxicLabel = "toxic"

	warmupText = "warmup"
)

// ErrToxicLabelMissing is returned when the model output has no "toxic" category
var ErrToxicLabelMissing = errors.New("toxicity model returned no \"toxic\" score")

// PolarityScorer computes a polarity in [-1, 1]
type PolarityScorer interface {
	Polarity(text string) float64
}

// Classifier turns raw scores from the sentiment scorer and the toxicity
// model into labels. It owns the toxicity backend for the process lifetime.
type Classifier struct {
	scorer  PolarityScorer
	backend toxicity.Backend
	logger  *zap.Logger
}

// New creates a classifier around an already constructed scorer and backend
func New(scorer PolarityScorer, backend toxicity.Backend, logger *zap.Logger) *Classifier {
	return &Classifier{
		scorer:  scorer,
		backend: backend,
		logger:  logger,
	}
}

// Warmup runs one probe classification so a misconfigured or unreachable model
// fails at startup instead of on the first batch
func (c *Classifier) Warmup(ctx context.Context) error {
	if _, err := c.toxicScore(ctx, warmupText); err != nil {
		return fmt.Errorf("failed to initialize toxicity model: %w", err)
	}

	c.logger.Info("Toxicity model ready", zap.Any("model", c.backend.GetModelInfo()))
	return nil
}

// ClassifySentiment labels text by its polarity
func (c *Classifier) ClassifySentiment(text string) (models.SentimentLabel, float64) {
	polarity := c.scorer.Polarity(text)
	return SentimentLabelFor(polarity), polarity
}

// ClassifyToxicity returns the display label and the "toxic" score of text
func (c *Classifier) ClassifyToxicity(ctx context.Context, text string) (string, float64, error) {
	score, err := c.toxicScore(ctx, text)
	if err != nil {
		return "", 0, err
	}

	label, _ := ToxicityLabelFor(score)
	return label, score, nil
}

func (c *Classifier) toxicScore(ctx context.Context, text string) (float64, error) {
	scores, err := c.backend.Classify(ctx, text)
	if err != nil {
		return 0, fmt.Errorf("toxicity classification failed: %w", err)
	}

	for _, s := range scores {
		if s.Label == ToxicLabel {
			return s.Score, nil
		}
	}
	return 0, ErrToxicLabelMissing
}

// ModelInfo describes the toxicity backend
func (c *Classifier) ModelInfo() map[string]interface{} {
	return c.backend.GetModelInfo()
}

// Close releases the toxicity backend
func (c *Classifier) Close() error {
	return c.backend.Close()
}

// SentimentLabelFor maps polarity to a label. Both thresholds are strict, so
// exactly 0.2 and -0.2 are Neutral.
func SentimentLabelFor(polarity float64) models.SentimentLabel {
	switch {
	case polarity > positiveThreshold:
		return models.Positive
	case polarity < negativeThreshold:
		return models.Negative
	default:
		return models.Neutral
	}
}

// ToxicityLabelFor renders the score with two decimals and reports whether it is
// toxic (strictly above 0.5)
func ToxicityLabelFor(score float64) (string, bool) {
	if score > toxicThreshold {
		return fmt.Sprintf("⚠️ Toxic (%.2f)", score), true
	}
	return fmt.Sprintf("✅ Safe (%.2f)", score), false
}

// IsToxic reports whether score is above the toxicity threshold
func IsToxic(score float64) bool {
	return score > toxicThreshold
}
