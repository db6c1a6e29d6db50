package history

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"cyberbro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "analysis_history.csv"), zap.NewNop())
}

func record(text string, sentiment models.SentimentLabel, toxicity string) models.PostRecord {
	return models.PostRecord{Text: text, SentimentLabel: sentiment, ToxicityLabel: toxicity}
}

func TestLoadMissingFile(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)

	var buf bytes.Buffer
	require.NoError(t, store.Export(&buf))
	assert.Equal(t, "Post,Sentiment,Toxicity\n", buf.String())
}

func TestSaveAppendsInOrder(t *testing.T) {
	store := newTestStore(t)

	first, err := store.Save([]models.PostRecord{
		record("I love this!", models.Positive, "✅ Safe (0.01)"),
		record("I hate you", models.Negative, "⚠️ Toxic (0.88)"),
	})
	require.NoError(t, err)
	require.Len(t, first, 2)

	combined, err := store.Save([]models.PostRecord{
		record("It is raining", models.Neutral, "✅ Safe (0.00)"),
		record("I love this!", models.Positive, "✅ Safe (0.01)"),
	})
	require.NoError(t, err)

	want := []models.HistoryRow{
		{Post: "I love this!", Sentiment: "Positive", Toxicity: "✅ Safe (0.01)"},
		{Post: "I hate you", Sentiment: "Negative", Toxicity: "⚠️ Toxic (0.88)"},
		{Post: "It is raining", Sentiment: "Neutral", Toxicity: "✅ Safe (0.00)"},
		{Post: "I love this!", Sentiment: "Positive", Toxicity: "✅ Safe (0.01)"},
	}
	assert.Equal(t, want, combined)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, want, loaded)
}

func TestSaveWritesFixedColumnsWithoutIndex(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Save([]models.PostRecord{
		record("hello, \"world\"\nsecond line", models.Neutral, "✅ Safe (0.10)"),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Post,Sentiment,Toxicity\n"))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "hello, \"world\"\nsecond line", loaded[0].Post)

	entries, err := os.ReadDir(filepath.Dir(store.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestSaveLeavesHistoryWorldReadable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	store := newTestStore(t)

	_, err := store.Save([]models.PostRecord{record("hello", models.Neutral, "✅ Safe (0.01)")})
	require.NoError(t, err)

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

	_, err = store.Save([]models.PostRecord{record("again", models.Neutral, "✅ Safe (0.02)")})
	require.NoError(t, err)
	info, err = os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0644), info.Mode().Perm())
}

func TestSaveEmptyBatchCreatesFile(t *testing.T) {
	store := newTestStore(t)

	rows, err := store.Save(nil)
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestExportRoundTrip(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.Save([]models.PostRecord{
		record("first", models.Positive, "✅ Safe (0.02)"),
		record("second", models.Negative, "⚠️ Toxic (0.77)"),
		record("first", models.Positive, "✅ Safe (0.02)"),
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, store.Export(&buf))

	reloaded, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, saved, reloaded)
}

func TestReadByHeaderName(t *testing.T) {
	input := "\uFEFFToxicity,Post,Sentiment\n✅ Safe (0.01),hi,Neutral\n⚠️ Toxic (0.90),short\n"

	rows, err := Read(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []models.HistoryRow{
		{Post: "hi", Sentiment: "Neutral", Toxicity: "✅ Safe (0.01)"},
		{Post: "short", Sentiment: "", Toxicity: "⚠️ Toxic (0.90)"},
	}, rows)
}

func TestReadErrors(t *testing.T) {
	rows, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)

	_, err = Read(strings.NewReader("Post,Sentiment\nhi,Neutral\n"))
	assert.Error(t, err)

	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.Path(), []byte("text\nhello\n"), 0644))
	_, err = store.Load()
	assert.Error(t, err)

	_, err = store.Save([]models.PostRecord{record("x", models.Neutral, "✅ Safe (0.00)")})
	assert.Error(t, err)

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Equal(t, "text\nhello\n", string(data), "a failed save must leave the file untouched")
}
