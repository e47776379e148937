package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vocdoni/gofirma/eolookup/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	in := model.FormInputs{
		KeyFilePath: "/keys/SubscriptionKey_ABC123.p8",
		KeyID:       "ABC123",
		IssuerID:    "57246542-96fe-1a63-e053-0824d011072a",
		BundleID:    "com.example.app",
		OrderID:     "MQKXQ2Z8T1",
		Environment: model.Sandbox,
	}

	if err := Save(path, in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok := Load(path)
	if !ok {
		t.Fatal("Load reported no settings after Save")
	}
	if got != in {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, in)
	}
}

func TestSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	first := model.FormInputs{KeyFilePath: "/a.p8", OrderID: "ONE", Environment: model.Sandbox}
	second := model.FormInputs{KeyFilePath: "/b.p8", OrderID: "TWO", Environment: model.Production}

	if err := Save(path, first); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := Save(path, second); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, _ := Load(path)
	if got != second {
		t.Fatalf("got %+v want %+v", got, second)
	}
}

func TestLoadMissingOrMalformed(t *testing.T) {
	dir := t.TempDir()

	got, ok := Load(filepath.Join(dir, "missing.json"))
	if ok {
		t.Fatal("expected no settings for a missing file")
	}
	if got != Defaults() {
		t.Fatalf("expected defaults, got %+v", got)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, ok = Load(bad)
	if ok || got != Defaults() {
		t.Fatalf("expected defaults for malformed file, got %+v ok=%v", got, ok)
	}
}

func TestLoadPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"order_id":"X1","environment":"Production"}`), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, ok := Load(path)
	if !ok {
		t.Fatal("expected settings")
	}
	if got.OrderID != "X1" || got.KeyFilePath != DefaultKeyFilePath || got.Environment != model.Production {
		t.Fatalf("unexpected %+v", got)
	}
}

func TestLoadKeepsEmptyFilePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(`{"order_id":"X1","file_path":""}`), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got, ok := Load(path)
	if !ok {
		t.Fatal("expected settings")
	}
	if got.KeyFilePath != "" {
		t.Fatalf("stored empty path replaced with %q", got.KeyFilePath)
	}
}

func TestFileKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Save(path, model.FormInputs{KeyFilePath: "/k.p8", Environment: model.Sandbox}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := `{"issuer_id":"","key_id":"","bundle_id":"","order_id":"","environment":"Sandbox","file_path":"/k.p8"}`
	if string(raw) != want {
		t.Fatalf("file=%s\nwant %s", raw, want)
	}
}
