package main

import (
	"fmt"
	"io"
	"os"

	"cyberbro/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	analyzeText string
	analyzeFile string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze posts and append them to the history",
	Long: `Classifies posts by sentiment and toxicity, prints the batch with its
counts and appends it to the history file.

Posts come from --text (one per line), from a CSV file with a "post" column
(--file) or, when neither is given, from stdin one per line.

Example:
  cyberbro analyze --text "I love this!"
  cyberbro analyze --file posts.csv`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeText, "text", "t", "", "Posts to analyze, one per line")
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "CSV file with a 'post' column")
	analyzeCmd.MarkFlagsMutuallyExclusive("text", "file")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	posts, err := readPosts(cmd.InOrStdin())
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), cmd.Flags().Changed("config"), true)
	if err != nil {
		logger.Fatal("Failed to initialize analyzer", zap.Error(err))
	}
	defer a.Close()

	report, err := a.analyzer.Analyze(cmd.Context(), posts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderBatch(report.Batch))
	fmt.Fprintln(out, renderCounts(report.Batch))
	fmt.Fprintf(out, "History now holds %d posts (%s)\n", len(report.History), a.store.Path())
	return nil
}

// readPosts collects posts from --file, --text or stdin in that order
func readPosts(stdin io.Reader) ([]string, error) {
	switch {
	case analyzeFile != "":
		file, err := os.Open(analyzeFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open posts file: %w", err)
		}
		defer file.Close()

		posts, err := service.PostsFromCSV(file)
		if err != nil {
			return nil, err
		}
		if len(posts) == 0 {
			return nil, service.ErrEmptyInput
		}
		return posts, nil

	case analyzeText != "":
		return service.PostsFromText(analyzeText)

	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return service.PostsFromText(string(data))
	}
}
