package jws

import (
	"encoding/base64"
	"testing"
)

func TestDecodePayload(t *testing.T) {
	got := DecodePayload("AAA.eyJhIjoxfQ.BBB")
	want := "{\n    \"a\": 1\n}"
	if got != want {
		t.Fatalf("DecodePayload()=%q want %q", got, want)
	}
}

func TestDecodePayloadURLAlphabet(t *testing.T) {
	// These bytes encode to a payload containing both '-' and '_' in the
	// URL-safe alphabet.
	payload := []byte(`{"k":"???>>>"}`)
	urlSeg := base64.RawURLEncoding.EncodeToString(payload)
	stdSeg := base64.StdEncoding.EncodeToString(payload)
	if urlSeg == stdSeg {
		t.Fatalf("test payload does not exercise the url alphabet: %s", urlSeg)
	}

	fromURL := DecodePayload("h." + urlSeg + ".s")
	fromStd := DecodePayload("h." + stdSeg + ".s")
	if fromURL != fromStd {
		t.Fatalf("url=%q std=%q", fromURL, fromStd)
	}
	if fromURL != "{\n    \"k\": \"???>>>\"\n}" {
		t.Fatalf("unexpected decode %q", fromURL)
	}
}

func TestDecodePayloadUnescapesNonASCII(t *testing.T) {
	seg := base64.RawURLEncoding.EncodeToString([]byte(`{"storefront":"Espa\u00f1a","price":1E3}`))
	got := DecodePayload("h." + seg + ".s")
	want := "{\n    \"storefront\": \"España\",\n    \"price\": 1E3\n}"
	if got != want {
		t.Fatalf("DecodePayload()=%q want %q", got, want)
	}
}

func TestDecodePayloadFallback(t *testing.T) {
	notJSON := base64.RawURLEncoding.EncodeToString([]byte("plain text"))
	badUTF8 := base64.RawURLEncoding.EncodeToString([]byte{'"', 0xff, '"'})

	tests := []string{
		"",
		"no-dots-at-all",
		"AAA.!!!.BBB",
		"AAA.A.BBB",
		"AAA." + notJSON + ".BBB",
		"AAA." + badUTF8 + ".BBB",
	}
	for _, tok := range tests {
		if got := DecodePayload(tok); got != tok {
			t.Fatalf("DecodePayload(%q)=%q want token back", tok, got)
		}
	}
}

func TestDecodePayloadTwoSegments(t *testing.T) {
	if got := DecodePayload("AAA.eyJhIjoxfQ"); got != "{\n    \"a\": 1\n}" {
		t.Fatalf("unexpected decode %q", got)
	}
}

func TestDecodePayloadStable(t *testing.T) {
	tok := "AAA." + base64.RawURLEncoding.EncodeToString([]byte(`{"transactionId":"2000000","price":9990,"currency":"EUR","nested":{"b":[1,2]}}`)) + ".BBB"
	first := DecodePayload(tok)
	for i := 0; i < 3; i++ {
		if again := DecodePayload(tok); again != first {
			t.Fatalf("decode not stable: %q vs %q", first, again)
		}
	}
}

func TestDecodeHeader(t *testing.T) {
	hdr := base64.RawURLEncoding.EncodeToString([]byte(`{"alg":"ES256","x5c":["a","b","c"]}`))
	h, err := DecodeHeader(hdr + ".eyJhIjoxfQ.sig")
	if err != nil {
		t.Fatalf("DecodeHeader: %v", err)
	}
	if h.Alg != "ES256" || len(h.X5C) != 3 {
		t.Fatalf("unexpected header %+v", h)
	}

	if _, err := DecodeHeader("single"); err == nil {
		t.Fatal("expected error for single segment token")
	}
}
