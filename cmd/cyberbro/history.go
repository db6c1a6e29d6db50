package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportPath string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or export the full analysis history",
	Long: `Prints every post analyzed so far, or writes the history as CSV.

Example:
  cyberbro history
  cyberbro history --export cyberbro_full_history.csv`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().StringVarP(&exportPath, "export", "e", "", "Write the history CSV to this path (- for stdout)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), cmd.Flags().Changed("config"), false)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if exportPath != "" {
		if exportPath == "-" {
			return a.store.Export(out)
		}

		file, err := os.Create(exportPath)
		if err != nil {
			return fmt.Errorf("failed to create export file: %w", err)
		}
		if err := a.store.Export(file); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("failed to close export file: %w", err)
		}
		fmt.Fprintf(out, "History exported to %s\n", exportPath)
		return nil
	}

	rows, err := a.store.Load()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, "No history found yet. Run an analysis to start building history.")
		return nil
	}

	fmt.Fprintln(out, renderHistory(rows))
	return nil
}
