// Package settings persists the last submitted lookup form so the next
// launch can pre-fill it.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vocdoni/gofirma/eolookup/internal/canon"
	"github.com/vocdoni/gofirma/eolookup/internal/model"
)

const (
	FileName = "eoconfig.json"

	DefaultKeyFilePath = "/path/to/SubscriptionKey_xxx.p8"
)

type fileFormat struct {
	IssuerID    string  `json:"issuer_id"`
	KeyID       string  `json:"key_id"`
	BundleID    string  `json:"bundle_id"`
	OrderID     string  `json:"order_id"`
	Environment string  `json:"environment"`
	FilePath    *string `json:"file_path"`
}

// DefaultPath is the settings file inside the system temp directory.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), FileName)
}

func Defaults() model.FormInputs {
	return model.FormInputs{
		KeyFilePath: DefaultKeyFilePath,
		Environment: model.Production,
	}
}

// Load reads the settings at path. A missing or unreadable file, or one that
// is not valid JSON, yields the defaults and false.
func Load(path string) (model.FormInputs, bool) {
	in := Defaults()
	raw, err := os.ReadFile(path)
	if err != nil {
		return in, false
	}
	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		return in, false
	}

	in.IssuerID = f.IssuerID
	in.KeyID = f.KeyID
	in.BundleID = f.BundleID
	in.OrderID = f.OrderID
	// Only an absent key falls back to the placeholder path.
	if f.FilePath != nil {
		in.KeyFilePath = *f.FilePath
	}
	if f.Environment == string(model.Sandbox) {
		in.Environment = model.Sandbox
	}
	return in, true
}

// Save overwrites the settings file with in.
func Save(path string, in model.FormInputs) error {
	data, err := canon.Encode(fileFormat{
		IssuerID:    in.IssuerID,
		KeyID:       in.KeyID,
		BundleID:    in.BundleID,
		OrderID:     in.OrderID,
		Environment: in.Environment.String(),
		FilePath:    &in.KeyFilePath,
	})
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}
