package model

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestValidateField(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "abc-123.x", want: true},
		{in: "com.example.app", want: true},
		{in: "2B1C3D4E5F", want: true},
		{in: "", want: false},
		{in: "a/b", want: false},
		{in: "with space", want: false},
		{in: "under_score", want: false},
		{in: "abc\n", want: false},
	}

	for _, tt := range tests {
		if got := ValidateField(tt.in); got != tt.want {
			t.Fatalf("ValidateField(%q)=%v want %v", tt.in, got, tt.want)
		}
	}
}

func validInputs(t *testing.T) FormInputs {
	t.Helper()
	keyPath := filepath.Join(t.TempDir(), "SubscriptionKey_ABC123.p8")
	if err := os.WriteFile(keyPath, []byte("key"), 0600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return FormInputs{
		KeyFilePath: keyPath,
		KeyID:       "ABC123DEFG",
		IssuerID:    "57246542-96fe-1a63-e053-0824d011072a",
		BundleID:    "com.example.app",
		OrderID:     "MQKXQ2Z8T1",
		Environment: Production,
	}
}

func TestValidate(t *testing.T) {
	if err := validInputs(t).Validate(); err != nil {
		t.Fatalf("Validate() on valid inputs: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*FormInputs)
		field  string
	}{
		{name: "missing key file", mutate: func(in *FormInputs) { in.KeyFilePath = filepath.Join(t.TempDir(), "nope.p8") }, field: FieldKeyFilePath},
		{name: "key path is dir", mutate: func(in *FormInputs) { in.KeyFilePath = t.TempDir() }, field: FieldKeyFilePath},
		{name: "empty issuer", mutate: func(in *FormInputs) { in.IssuerID = "" }, field: FieldIssuerID},
		{name: "bundle with slash", mutate: func(in *FormInputs) { in.BundleID = "com/example" }, field: FieldBundleID},
		{name: "key id with space", mutate: func(in *FormInputs) { in.KeyID = "ABC 123" }, field: FieldKeyID},
		{name: "empty order", mutate: func(in *FormInputs) { in.OrderID = "" }, field: FieldOrderID},
		{name: "issuer checked before order", mutate: func(in *FormInputs) { in.IssuerID = ""; in.OrderID = "" }, field: FieldIssuerID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInputs(t)
			tt.mutate(&in)
			err := in.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Fatalf("field=%q want %q (%s)", verr.Field, tt.field, verr.Message)
			}
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		in      string
		want    Environment
		wantErr bool
	}{
		{in: "Production", want: Production},
		{in: "SANDBOX", want: Sandbox},
		{in: " sandbox ", want: Sandbox},
		{in: "xcode", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseEnvironment(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseEnvironment(%q) err=%v", tt.in, err)
		}
		if got != tt.want {
			t.Fatalf("ParseEnvironment(%q)=%q want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadKey(t *testing.T) {
	in := validInputs(t)
	key, err := in.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if string(key) != "key" {
		t.Fatalf("unexpected key bytes %q", key)
	}
}
