package models

// SentimentLabel is the polarity class of a post
type SentimentLabel string

const (
	Positive SentimentLabel = "Positive"
	Negative SentimentLabel = "Negative"
	Neutral  SentimentLabel = "Neutral"
)

// Toxicity classes used for aggregate counts
const (
	Toxic = "Toxic"
	Safe  = "Safe"
)

// HistoryColumns is the fixed column order of the history file
var HistoryColumns = []string{"Post", "Sentiment", "Toxicity"}

// PostRecord represents one analyzed post
type PostRecord struct {
	Text           string         `json:"text"`
	SentimentLabel SentimentLabel `json:"sentiment_label"`
	Polarity       float64        `json:"polarity"`
	ToxicityLabel  string         `json:"toxicity_label"` // e.g. "⚠️ Toxic (0.91)"
	ToxicityScore  float64        `json:"toxicity_score"`
}

// Row converts the record into its persisted three-column form
func (p PostRecord) Row() HistoryRow {
	return HistoryRow{
		Post:      p.Text,
		Sentiment: string(p.SentimentLabel),
		Toxicity:  p.ToxicityLabel,
	}
}

// HistoryRow is one row of the persisted history table
type HistoryRow struct {
	Post      string `json:"post"`
	Sentiment string `json:"sentiment"`
	Toxicity  string `json:"toxicity"`
}

// Fields returns the row in column order
func (r HistoryRow) Fields() []string {
	return []string{r.Post, r.Sentiment, r.Toxicity}
}

// LabelScore is a single category score returned by the toxicity model
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}
