package models

// SentimentCounts maps each sentiment label to the number of posts in a batch
type SentimentCounts map[SentimentLabel]int

// NewSentimentCounts returns counts with every label present at zero
func NewSentimentCounts() SentimentCounts {
	return SentimentCounts{Positive: 0, Negative: 0, Neutral: 0}
}

// ToxicCounts maps Toxic/Safe to the number of posts in a batch
type ToxicCounts map[string]int

// NewToxicCounts returns counts with both classes present at zero
func NewToxicCounts() ToxicCounts {
	return ToxicCounts{Toxic: 0, Safe: 0}
}

// BatchResult is the output of one analysis run. Counts cover this batch only.
type BatchResult struct {
	ID              string          `json:"id"`
	Records         []PostRecord    `json:"records"`
	SentimentCounts SentimentCounts `json:"sentiment_counts"`
	ToxicCounts     ToxicCounts     `json:"toxic_counts"`
}

// Rows returns the batch in persisted form, order preserved
func (b *BatchResult) Rows() []HistoryRow {
	rows := make([]HistoryRow, len(b.Records))
	for i, rec := range b.Records {
		rows[i] = rec.Row()
	}
	return rows
}

// AnalyzeRequest is the JSON body of POST /api/v1/analyze.
// Text is split one post per line; Posts is used as-is.
type AnalyzeRequest struct {
	Text  string   `json:"text"`
	Posts []string `json:"posts"`
}

// AnalyzeResponse is returned after a successful analysis
type AnalyzeResponse struct {
	Batch        *BatchResult `json:"batch"`
	HistoryTotal int          `json:"history_total"`
}

// HistoryResponse lists the full history table
type HistoryResponse struct {
	Columns []string     `json:"columns"`
	Rows    []HistoryRow `json:"rows"`
	Total   int          `json:"total"`
}
