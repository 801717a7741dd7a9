package storage

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"swapScope/internal/model"
)

func TestJsonlStorageAppends(t *testing.T) {
	dir := t.TempDir()
	quotesPath := filepath.Join(dir, "out", "quotes.jsonl")
	snapshotsPath := filepath.Join(dir, "out", "snapshots.jsonl")

	sink := NewJsonlStorage(quotesPath, snapshotsPath)

	quotes := []model.QuoteRecord{
		{ChainID: 1, InputToken: "0xaa", OutputToken: "0xbb", TradeType: "exact_input", Status: "found", SlippageBps: 50, CreatedAt: "2024-01-01T00:00:00Z"},
		{ChainID: 1, InputToken: "0xaa", OutputToken: "0xcc", TradeType: "exact_input", Status: "no_route", SlippageBps: 50, CreatedAt: "2024-01-01T00:00:00Z"},
	}
	if err := sink.PutQuoteBatch(quotes); err != nil {
		t.Fatalf("PutQuoteBatch: %v", err)
	}
	if err := sink.PutQuoteBatch(quotes[:1]); err != nil {
		t.Fatalf("PutQuoteBatch second batch: %v", err)
	}

	snapshots := []model.PoolSnapshot{
		{ChainID: 1, PairAddress: "0xdd", Token0: "0xaa", Token1: "0xbb", Reserve0: "100", Reserve1: "200", BlockNumber: 7},
	}
	if err := sink.PutSnapshotBatch(snapshots); err != nil {
		t.Fatalf("PutSnapshotBatch: %v", err)
	}

	gotQuotes := readLines(t, quotesPath)
	if len(gotQuotes) != 3 {
		t.Fatalf("quote lines = %d, want 3", len(gotQuotes))
	}
	var first model.QuoteRecord
	if err := json.Unmarshal([]byte(gotQuotes[0]), &first); err != nil {
		t.Fatalf("unmarshal quote line: %v", err)
	}
	if first.OutputToken != quotes[0].OutputToken || first.Status != quotes[0].Status || first.SlippageBps != quotes[0].SlippageBps {
		t.Fatalf("round-tripped quote = %+v, want %+v", first, quotes[0])
	}

	gotSnapshots := readLines(t, snapshotsPath)
	if len(gotSnapshots) != 1 {
		t.Fatalf("snapshot lines = %d, want 1", len(gotSnapshots))
	}
}

func TestJsonlStorageEmptyBatch(t *testing.T) {
	sink := NewJsonlStorage("", "")
	if err := sink.PutQuoteBatch(nil); err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}
	if err := sink.PutSnapshotBatch(nil); err != nil {
		t.Fatalf("empty batch should be a no-op, got %v", err)
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan %s: %v", path, err)
	}
	return lines
}
