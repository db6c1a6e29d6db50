package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cyberbro/internal/classifier"
	"cyberbro/internal/history"
	"cyberbro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClassifier applies the real thresholds to scripted scores
type fakeClassifier struct {
	polarity map[string]float64
	toxicity map[string]float64
	failOn   string
	calls    []string
}

func (f *fakeClassifier) ClassifySentiment(text string) (models.SentimentLabel, float64) {
	p := f.polarity[text]
	return classifier.SentimentLabelFor(p), p
}

func (f *fakeClassifier) ClassifyToxicity(ctx context.Context, text string) (string, float64, error) {
	f.calls = append(f.calls, text)
	if text == f.failOn {
		return "", 0, classifier.ErrToxicLabelMissing
	}
	score := f.toxicity[text]
	label, _ := classifier.ToxicityLabelFor(score)
	return label, score, nil
}

func newTestAnalyzer(t *testing.T, fc *fakeClassifier) (*Analyzer, *history.Store) {
	t.Helper()
	store := history.NewStore(filepath.Join(t.TempDir(), "analysis_history.csv"), zap.NewNop())
	return NewAnalyzer(fc, store, zap.NewNop()), store
}

func scenarioClassifier() *fakeClassifier {
	return &fakeClassifier{
		polarity: map[string]float64{"I love this!": 0.6, "I hate you": -0.5, "It is raining": 0.0},
		toxicity: map[string]float64{"I love this!": 0.01, "I hate you": 0.87, "It is raining": 0.5},
	}
}

func TestClassifyScenario(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, scenarioClassifier())

	batch, err := analyzer.Classify(context.Background(), []string{"I love this!", "I hate you", "It is raining"})
	require.NoError(t, err)

	assert.NotEmpty(t, batch.ID)
	require.Len(t, batch.Records, 3)
	assert.Equal(t, models.Positive, batch.Records[0].SentimentLabel)
	assert.Equal(t, models.Negative, batch.Records[1].SentimentLabel)
	assert.Equal(t, models.Neutral, batch.Records[2].SentimentLabel)

	assert.Equal(t, "I hate you", batch.Records[1].Text)
	assert.Equal(t, "⚠️ Toxic (0.87)", batch.Records[1].ToxicityLabel)
	assert.Equal(t, 0.87, batch.Records[1].ToxicityScore)
	assert.Equal(t, "✅ Safe (0.50)", batch.Records[2].ToxicityLabel)

	assert.Equal(t, models.SentimentCounts{models.Positive: 1, models.Negative: 1, models.Neutral: 1}, batch.SentimentCounts)
	assert.Equal(t, models.ToxicCounts{models.Toxic: 1, models.Safe: 2}, batch.ToxicCounts)
}

func TestClassifyCountsIncludeZeroes(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, scenarioClassifier())

	batch, err := analyzer.Classify(context.Background(), []string{"I love this!"})
	require.NoError(t, err)
	assert.Equal(t, models.SentimentCounts{models.Positive: 1, models.Negative: 0, models.Neutral: 0}, batch.SentimentCounts)
	assert.Equal(t, models.ToxicCounts{models.Toxic: 0, models.Safe: 1}, batch.ToxicCounts)
}

func TestAnalyzePersistsBatch(t *testing.T) {
	analyzer, store := newTestAnalyzer(t, scenarioClassifier())

	report, err := analyzer.Analyze(context.Background(), []string{"I love this!", "I hate you"})
	require.NoError(t, err)
	assert.Len(t, report.Batch.Records, 2)
	assert.Equal(t, report.Batch.Rows(), report.History)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, report.History, loaded)
}

func TestAnalyzeSequentialRunsAccumulateHistory(t *testing.T) {
	analyzer, _ := newTestAnalyzer(t, scenarioClassifier())

	first, err := analyzer.Analyze(context.Background(), []string{"I hate you"})
	require.NoError(t, err)
	assert.Len(t, first.History, 1)

	second, err := analyzer.Analyze(context.Background(), []string{"I love this!"})
	require.NoError(t, err)

	// counts are per batch, history is cumulative
	assert.Equal(t, 1, second.Batch.SentimentCounts[models.Positive])
	assert.Equal(t, 0, second.Batch.SentimentCounts[models.Negative])

	rows, err := analyzer.History()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "I hate you", rows[0].Post)
	assert.Equal(t, "I love this!", rows[1].Post)
}

func TestAnalyzeFailFast(t *testing.T) {
	fc := scenarioClassifier()
	fc.failOn = "I hate you"
	analyzer, store := newTestAnalyzer(t, fc)

	_, err := analyzer.Analyze(context.Background(), []string{"I love this!", "I hate you", "It is raining"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, classifier.ErrToxicLabelMissing))
	assert.Equal(t, []string{"I love this!", "I hate you"}, fc.calls, "processing stops at the failing post")

	_, statErr := os.Stat(store.Path())
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "a failed batch must not be persisted")
}

func TestAnalyzeEmptyInput(t *testing.T) {
	analyzer, store := newTestAnalyzer(t, scenarioClassifier())

	_, err := analyzer.Analyze(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrEmptyInput))

	_, statErr := os.Stat(store.Path())
	assert.True(t, errors.Is(statErr, os.ErrNotExist))
}
