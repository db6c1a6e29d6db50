package service

import (
	"context"
	"fmt"

	"cyberbro/internal/classifier"
	"cyberbro/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostClassifier labels a single post
type PostClassifier interface {
	ClassifySentiment(text string) (models.SentimentLabel, float64)
	ClassifyToxicity(ctx context.Context, text string) (string, float64, error)
}

// HistoryStore persists analyzed posts
type HistoryStore interface {
	Load() ([]models.HistoryRow, error)
	Save(batch []models.PostRecord) ([]models.HistoryRow, error)
}

// Report is the result of an analysis that was persisted
type Report struct {
	Batch   *models.BatchResult
	History []models.HistoryRow
}

// Analyzer runs the classify -> aggregate -> persist pipeline
type Analyzer struct {
	classifier PostClassifier
	history    HistoryStore
	logger     *zap.Logger
}

// NewAnalyzer creates a new analysis pipeline
func NewAnalyzer(
	classifier PostClassifier,
	history HistoryStore,
	logger *zap.Logger,
) *Analyzer {
	return &Analyzer{
		classifier: classifier,
		history:    history,
		logger:     logger,
	}
}

// Classify labels every post in input order. The first classification failure
// aborts the batch.
func (a *Analyzer) Classify(ctx context.Context, posts []string) (*models.BatchResult, error) {
	if len(posts) == 0 {
		return nil, ErrEmptyInput
	}

	batch := &models.BatchResult{
		ID:              uuid.New().String(),
		Records:         make([]models.PostRecord, 0, len(posts)),
		SentimentCounts: models.NewSentimentCounts(),
		ToxicCounts:     models.NewToxicCounts(),
	}

	for i, post := range posts {
		sentiment, polarity := a.classifier.ClassifySentiment(post)
		batch.SentimentCounts[sentiment]++

		toxicityLabel, score, err := a.classifier.ClassifyToxicity(ctx, post)
		if err != nil {
			a.logger.Error("Failed to classify post",
				zap.String("batch_id", batch.ID),
				zap.Int("index", i),
				zap.Error(err))
			return nil, fmt.Errorf("failed to classify post %d: %w", i+1, err)
		}

		if classifier.IsToxic(score) {
			batch.ToxicCounts[models.Toxic]++
		} else {
			batch.ToxicCounts[models.Safe]++
		}

		batch.Records = append(batch.Records, models.PostRecord{
			Text:           post,
			SentimentLabel: sentiment,
			Polarity:       polarity,
			ToxicityLabel:  toxicityLabel,
			ToxicityScore:  score,
		})
	}

	a.logger.Info("Batch classified",
		zap.String("batch_id", batch.ID),
		zap.Int("posts", len(batch.Records)),
		zap.Int("positive", batch.SentimentCounts[models.Positive]),
		zap.Int("negative", batch.SentimentCounts[models.Negative]),
		zap.Int("neutral", batch.SentimentCounts[models.Neutral]),
		zap.Int("toxic", batch.ToxicCounts[models.Toxic]),
		zap.Int("safe", batch.ToxicCounts[models.Safe]))

	return batch, nil
}

// Analyze classifies posts and appends the batch to the history. Nothing is
// saved unless the whole batch succeeds.
func (a *Analyzer) Analyze(ctx context.Context, posts []string) (*Report, error) {
	batch, err := a.Classify(ctx, posts)
	if err != nil {
		return nil, err
	}

	rows, err := a.history.Save(batch.Records)
	if err != nil {
		return nil, fmt.Errorf("failed to save history: %w", err)
	}

	return &Report{Batch: batch, History: rows}, nil
}

// History returns the full persisted history
func (a *Analyzer) History() ([]models.HistoryRow, error) {
	return a.history.Load()
}
