package storage

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestHistoryLogReadAll(t *testing.T) {
	dir := t.TempDir()
	h, err := NewHistoryLogger(dir, zap.NewNop())
	if err != nil {
		t.Fatalf("NewHistoryLogger: %v", err)
	}

	entries, err := h.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll on empty history: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}

	if err := h.Log(HistoryEntry{LookupID: "l1", OrderID: "A", Status: "success", Transactions: 2}); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := h.Log(HistoryEntry{LookupID: "l2", OrderID: "B", Status: "invalid_order"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	entries, err = h.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].LookupID != "l1" || entries[1].OrderID != "B" {
		t.Fatalf("unexpected entries %+v", entries)
	}
	if entries[0].Timestamp == "" {
		t.Fatal("timestamp not filled in")
	}
}

func TestHistorySkipsBadLines(t *testing.T) {
	dir := t.TempDir()
	content := "{\"lookupId\":\"ok1\"}\nnot json at all\n\n{\"lookupId\":\"ok2\"}\n"
	if err := os.WriteFile(filepath.Join(dir, historyFile), []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	h, err := NewHistoryLogger(dir, nil)
	if err != nil {
		t.Fatalf("NewHistoryLogger: %v", err)
	}
	entries, err := h.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(entries) != 2 || entries[0].LookupID != "ok1" || entries[1].LookupID != "ok2" {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
