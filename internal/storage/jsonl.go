package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"swapScope/internal/model"
)

// JsonlStorage appends records to JSONL files, one file per record kind.
type JsonlStorage struct {
	quotePath    string
	snapshotPath string
	mu           sync.Mutex
}

func NewJsonlStorage(quotePath, snapshotPath string) *JsonlStorage {
	return &JsonlStorage{quotePath: quotePath, snapshotPath: snapshotPath}
}

// PutQuoteBatch appends a batch of quote records as JSON lines.
func (s *JsonlStorage) PutQuoteBatch(quotes []model.QuoteRecord) error {
	if len(quotes) == 0 {
		return nil
	}
	lines := make([]any, len(quotes))
	for i := range quotes {
		lines[i] = quotes[i]
	}
	return s.appendLines(s.quotePath, lines)
}

// PutSnapshotBatch appends a batch of pool snapshots as JSON lines.
func (s *JsonlStorage) PutSnapshotBatch(snapshots []model.PoolSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}
	lines := make([]any, len(snapshots))
	for i := range snapshots {
		lines[i] = snapshots[i]
	}
	return s.appendLines(s.snapshotPath, lines)
}

func (s *JsonlStorage) appendLines(path string, records []any) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}

	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open output file: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("marshal record: %w", err)
		}
		if _, err := writer.Write(line); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		if err := writer.WriteByte('\n'); err != nil {
			return fmt.Errorf("write newline: %w", err)
		}
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	return nil
}
