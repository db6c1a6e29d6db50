// Package charts builds the dashboard charts for one analysis batch.
package charts

import (
	"cyberbro/internal/models"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

var (
	sentimentOrder = []models.SentimentLabel{models.Positive, models.Negative, models.Neutral}
	toxicOrder     = []string{models.Toxic, models.Safe}

	// viridis samples for the pie, coral/green for toxic/safe
	sentimentColors = opts.Colors{"#440154", "#21908C", "#FDE725"}
	toxicColors     = map[string]string{models.Toxic: "#FF6F61", models.Safe: "#66BB6A"}
)

// SentimentPie shows the proportion of each sentiment label in the batch
func SentimentPie(counts models.SentimentCounts) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Sentiment Distribution", Width: "560px", Height: "380px"}),
		charts.WithTitleOpts(opts.Title{Title: "Sentiment Breakdown"}),
		charts.WithColorsOpts(sentimentColors),
	)

	data := make([]opts.PieData, 0, len(sentimentOrder))
	for _, label := range sentimentOrder {
		data = append(data, opts.PieData{Name: string(label), Value: counts[label]})
	}

	pie.AddSeries("Sentiment", data,
		charts.WithLabelOpts(opts.Label{Formatter: "{b}: {d}%"}),
	)
	return pie
}

// ToxicityBar shows the number of toxic and safe posts in the batch
func ToxicityBar(counts models.ToxicCounts) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Toxic vs Safe Posts", Width: "560px", Height: "380px"}),
		charts.WithTitleOpts(opts.Title{Title: "Toxic vs Safe Posts"}),
	)

	data := make([]opts.BarData, 0, len(toxicOrder))
	for _, class := range toxicOrder {
		data = append(data, opts.BarData{
			Name:      class,
			Value:     counts[class],
			ItemStyle: &opts.ItemStyle{Color: toxicColors[class], BorderColor: "black"},
		})
	}

	bar.SetXAxis(toxicOrder).AddSeries("Posts", data)
	return bar
}
