package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cyberbro/internal/models"
	"cyberbro/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"", "console", "json"} {
		l, err := newLogger(format, true)
		require.NoError(t, err, format)
		assert.NotNil(t, l)
	}

	_, err := newLogger("xml", false)
	assert.Error(t, err)
}

func TestReadPosts(t *testing.T) {
	defer func() { analyzeText, analyzeFile = "", "" }()

	analyzeText = "I love this!\n\n  I hate you  "
	posts, err := readPosts(strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, []string{"I love this!", "I hate you"}, posts)

	analyzeText = ""
	posts, err = readPosts(strings.NewReader("from stdin\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"from stdin"}, posts)

	_, err = readPosts(strings.NewReader(" \n"))
	assert.ErrorIs(t, err, service.ErrEmptyInput)
}

func TestReadPostsFromFile(t *testing.T) {
	defer func() { analyzeFile = "" }()
	dir := t.TempDir()

	analyzeFile = filepath.Join(dir, "posts.csv")
	require.NoError(t, os.WriteFile(analyzeFile, []byte("post,author\nhello,a\n,b\n"), 0o644))
	posts, err := readPosts(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, posts)

	require.NoError(t, os.WriteFile(analyzeFile, []byte("post\n"), 0o644))
	_, err = readPosts(nil)
	assert.ErrorIs(t, err, service.ErrEmptyInput)

	require.NoError(t, os.WriteFile(analyzeFile, []byte("text\nhello\n"), 0o644))
	_, err = readPosts(nil)
	assert.ErrorIs(t, err, service.ErrMissingPostColumn)

	analyzeFile = filepath.Join(dir, "missing.csv")
	_, err = readPosts(nil)
	assert.Error(t, err)
}

func TestRenderBatch(t *testing.T) {
	batch := &models.BatchResult{
		Records: []models.PostRecord{
			{Text: "I love this!", SentimentLabel: models.Positive, ToxicityLabel: "✅ Safe (0.01)"},
			{Text: "I hate you", SentimentLabel: models.Negative, ToxicityLabel: "⚠️ Toxic (0.91)"},
		},
		SentimentCounts: models.SentimentCounts{models.Positive: 1, models.Negative: 1, models.Neutral: 0},
		ToxicCounts:     models.ToxicCounts{models.Toxic: 1, models.Safe: 1},
	}

	out := renderBatch(batch)
	assert.Contains(t, out, "I hate you")
	assert.Contains(t, out, "Toxicity")

	counts := renderCounts(batch)
	assert.Contains(t, counts, "Neutral")
	assert.Contains(t, counts, "Toxic     1")
}

func TestRunHistoryExport(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yml")
	historyPath := filepath.Join(dir, "analysis_history.csv")
	require.NoError(t, os.WriteFile(cfgPath, []byte("history:\n  path: \""+historyPath+"\"\n"), 0o644))
	require.NoError(t, os.WriteFile(historyPath, []byte("Post,Sentiment,Toxicity\nhi,Neutral,✅ Safe (0.02)\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"history", "--config", cfgPath, "--export", "-"})
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		exportPath = ""
	}()

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "Post,Sentiment,Toxicity\nhi,Neutral,✅ Safe (0.02)\n", out.String())
}
