package history

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"cyberbro/internal/models"

	"go.uber.org/zap"
)

const (
	utf8BOM         = "\uFEFF"
	historyFileMode = 0644
)

// Store persists the analysis history as a flat CSV file with the columns
// Post, Sentiment, Toxicity. Every Save rewrites the whole file.
type Store struct {
	path   string
	mu     sync.Mutex // serializes Save within this process only
	logger *zap.Logger
}

// NewStore creates a store backed by the file at path. The file is created on
// the first Save.
func NewStore(path string, logger *zap.Logger) *Store {
	logger.Info("History store initialized", zap.String("path", path))

	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the backing file location
func (s *Store) Path() string {
	return s.path
}

// Load reads the full history. A missing file yields an empty table.
func (s *Store) Load() ([]models.HistoryRow, error) {
	file, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return []models.HistoryRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer file.Close()

	rows, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read history file %s: %w", s.path, err)
	}
	return rows, nil
}

// Save appends batch after the existing rows and writes the combined table back.
// Existing rows keep their order; nothing is deduplicated.
func (s *Store) Save(batch []models.PostRecord) ([]models.HistoryRow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.Load()
	if err != nil {
		return nil, err
	}

	for _, rec := range batch {
		rows = append(rows, rec.Row())
	}

	if err := s.writeFile(rows); err != nil {
		return nil, err
	}

	s.logger.Info("History saved",
		zap.String("path", s.path),
		zap.Int("added", len(batch)),
		zap.Int("history_rows", len(rows)))

	return rows, nil
}

// Export writes the full history as CSV to w
func (s *Store) Export(w io.Writer) error {
	rows, err := s.Load()
	if err != nil {
		return err
	}
	return Write(w, rows)
}

// writeFile replaces the history file through a temp file in the same directory
func (s *Store) writeFile(rows []models.HistoryRow) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".history-*.csv")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, rows); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write history: %w", err)
	}
	// CreateTemp opens with 0600
	if err := tmp.Chmod(historyFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set history file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp history file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}

// Write encodes rows as CSV with the fixed header and no index column
func Write(w io.Writer, rows []models.HistoryRow) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(models.HistoryColumns); err != nil {
		return err
	}

	for _, row := range rows {
		if err := writer.Write(row.Fields()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Read decodes a history CSV. Columns are matched by header name; short rows
// leave the missing cells empty.
func Read(r io.Reader) ([]models.HistoryRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []models.HistoryRow{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, utf8BOM)
		}
		index[name] = i
	}

	cols := make([]int, len(models.HistoryColumns))
	for i, name := range models.HistoryColumns {
		pos, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		cols[i] = pos
	}

	rows := []models.HistoryRow{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", len(rows)+1, err)
		}

		cell := func(i int) string {
			if cols[i] < len(record) {
				return record[cols[i]]
			}
			return ""
		}
		rows = append(rows, models.HistoryRow{
			Post:      cell(0),
			Sentiment: cell(1),
			Toxicity:  cell(2),
		})
	}

	return rows, nil
}
