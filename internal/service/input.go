package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// PostColumn is the required column of an uploaded CSV
const PostColumn = "post"

var (
	// ErrEmptyInput is returned when there is no post to analyze
	ErrEmptyInput = errors.New("please enter some posts to analyze")

	// ErrMissingPostColumn is returned when an upload has no "post" column
	ErrMissingPostColumn = errors.New("CSV must contain a column named 'post'")
)

// naMarkers are cell values read as missing, the default NA strings of pandas
var naMarkers = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

func isMissing(cell string) bool {
	_, ok := naMarkers[cell]
	return ok
}

// PostsFromText splits free text into posts, one per line. Blank lines are dropped.
func PostsFromText(text string) ([]string, error) {
	var posts []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		posts = append(posts, line)
	}

	if len(posts) == 0 {
		return nil, ErrEmptyInput
	}
	return posts, nil
}

// PostsFromCSV extracts the "post" column of a CSV upload. Rows where the cell
// is missing, empty or an NA marker such as "NaN" or "null" are dropped.
func PostsFromCSV(r io.Reader) ([]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrMissingPostColumn
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\uFEFF")
		}
		if name == PostColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, ErrMissingPostColumn
	}

	var posts []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		if col >= len(record) || isMissing(record[col]) {
			continue
		}
		posts = append(posts, record[col])
	}

	return posts, nil
}
