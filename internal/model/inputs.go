package model

import (
	"fmt"
	"os"
	"strings"
)

type Environment string

const (
	Production Environment = "Production"
	Sandbox    Environment = "Sandbox"
)

func (e Environment) String() string {
	return string(e)
}

// ParseEnvironment accepts the persisted value of either environment,
// ignoring case.
func ParseEnvironment(s string) (Environment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "production":
		return Production, nil
	case "sandbox":
		return Sandbox, nil
	default:
		return "", fmt.Errorf("unknown environment: %q", s)
	}
}

// FormInputs holds everything the lookup form collects. The key itself is
// never kept here, only the path it is read from.
type FormInputs struct {
	KeyFilePath string
	KeyID       string
	IssuerID    string
	BundleID    string
	OrderID     string
	Environment Environment
}

func (in FormInputs) ReadKey() ([]byte, error) {
	key, err := os.ReadFile(in.KeyFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}
	return key, nil
}
