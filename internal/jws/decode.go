// Package jws reads the segments of compact JWS tokens such as the signed
// transactions returned by the App Store Server API. Nothing here verifies
// signatures.
package jws

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vocdoni/gofirma/eolookup/internal/canon"
)

const payloadIndent = "    "

// DecodePayload returns the payload segment of token as indented JSON. When
// the token is malformed in any way the token itself is returned unchanged.
func DecodePayload(token string) string {
	raw, err := segment(token, 1)
	if err != nil {
		return token
	}
	pretty, err := canon.Indent(raw, payloadIndent)
	if err != nil {
		return token
	}
	return string(pretty)
}

// Header is the protected header of a compact JWS. App Store transactions
// carry the signing certificate chain in X5C.
type Header struct {
	Alg string   `json:"alg"`
	Kid string   `json:"kid,omitempty"`
	Typ string   `json:"typ,omitempty"`
	X5C []string `json:"x5c,omitempty"`
}

// DecodeHeader decodes the first segment of token. Unlike DecodePayload it
// reports failures.
func DecodeHeader(token string) (*Header, error) {
	raw, err := segment(token, 0)
	if err != nil {
		return nil, err
	}
	var h Header
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("invalid JWS header json: %w", err)
	}
	return &h, nil
}

func segment(token string, i int) ([]byte, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 || i >= len(parts) {
		return nil, errors.New("invalid JWS format")
	}
	b, err := base64.StdEncoding.DecodeString(toStdBase64(parts[i]))
	if err != nil {
		return nil, fmt.Errorf("invalid JWS segment encoding: %w", err)
	}
	return b, nil
}

// toStdBase64 maps the URL-safe alphabet onto the standard one and restores
// the padding the JWS encoding strips.
func toStdBase64(s string) string {
	s = strings.NewReplacer("-", "+", "_", "/").Replace(s)
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}
	return s
}
