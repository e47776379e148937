package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vocdoni/gofirma/eolookup/internal/canon"
)

const historyFile = "history.jsonl"

type HistoryEntry struct {
	Timestamp    string `json:"timestamp"`
	LookupID     string `json:"lookupId"`
	OrderID      string `json:"orderId"`
	BundleID     string `json:"bundleId"`
	Environment  string `json:"environment"`
	Status       string `json:"status"`
	Transactions int    `json:"transactions"`
	Error        string `json:"error,omitempty"`
}

// HistoryLogger appends one JSON line per finished lookup.
type HistoryLogger struct {
	mu       sync.Mutex
	filePath string
	logger   *zap.Logger
}

func NewHistoryLogger(dir string, logger *zap.Logger) (*HistoryLogger, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryLogger{
		filePath: filepath.Join(dir, historyFile),
		logger:   logger,
	}, nil
}

func (l *HistoryLogger) Log(entry HistoryEntry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().Format(time.RFC3339)
	}
	l.logger.Sugar().Debugw("History entry", "lookupId", entry.LookupID, "orderId", entry.OrderID, "status", entry.Status)

	data, err := canon.Encode(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}

	f, err := os.OpenFile(l.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// ReadAll returns every readable entry, oldest first. Lines that do not
// decode are skipped.
func (l *HistoryLogger) ReadAll() ([]HistoryEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []HistoryEntry{}, nil
		}
		return nil, fmt.Errorf("failed to open history file: %w", err)
	}
	defer f.Close()

	entries := []HistoryEntry{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var entry HistoryEntry
		if err := json.Unmarshal(line, &entry); err != nil {
			l.logger.Sugar().Warnw("Skipping unreadable history entry", "error", err)
			continue
		}
		entries = append(entries, entry)
	}
	if err := sc.Err(); err != nil {
		return entries, fmt.Errorf("failed to read history file: %w", err)
	}
	return entries, nil
}
