package main

import (
	"fmt"
	"strings"

	"cyberbro/internal/models"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	toxicStyle  = cellStyle.Foreground(lipgloss.Color("#FF6F61")).Bold(true)
	safeStyle   = cellStyle.Foreground(lipgloss.Color("#66BB6A"))
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// renderRows draws Post/Sentiment/Toxicity rows, colouring the toxicity column
func renderRows(rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(models.HistoryColumns...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(rows) {
				if strings.Contains(rows[row][2], models.Toxic) {
					return toxicStyle
				}
				return safeStyle
			}
			return cellStyle
		})

	return t.String()
}

func renderBatch(batch *models.BatchResult) string {
	rows := make([][]string, 0, len(batch.Records))
	for _, record := range batch.Records {
		rows = append(rows, record.Row().Fields())
	}
	return titleStyle.Render("Analysis Results") + "\n" + renderRows(rows)
}

func renderHistory(history []models.HistoryRow) string {
	rows := make([][]string, 0, len(history))
	for _, row := range history {
		rows = append(rows, row.Fields())
	}
	return titleStyle.Render(fmt.Sprintf("Full Analysis History (%d posts)", len(history))) + "\n" + renderRows(rows)
}

// renderCounts summarizes the per-batch sentiment and toxicity counts
func renderCounts(batch *models.BatchResult) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Sentiment Breakdown"))
	b.WriteString("\n")
	for _, label := range []models.SentimentLabel{models.Positive, models.Negative, models.Neutral} {
		fmt.Fprintf(&b, "  %-9s %d\n", label, batch.SentimentCounts[label])
	}
	b.WriteString(titleStyle.Render("Toxic vs Safe Posts"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %-9s %d\n", models.Toxic, batch.ToxicCounts[models.Toxic])
	fmt.Fprintf(&b, "  %-9s %d", models.Safe, batch.ToxicCounts[models.Safe])
	return b.String()
}
