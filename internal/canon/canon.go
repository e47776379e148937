package canon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode/utf8"
)

// Encode returns the compact JSON encoding of v without HTML escaping and
// without the trailing newline json.Encoder adds.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("json encoding failed: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Indent re-serializes a raw JSON document with one member or element per
// line. Member order and number spelling are kept; strings are re-encoded,
// so \uXXXX escapes come out as the characters they stand for and non-ASCII
// text is never escaped.
func Indent(raw []byte, indent string) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, errors.New("json is not valid utf-8")
	}
	if !json.Valid(raw) {
		return nil, errors.New("invalid json")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	p := &printer{dec: dec, indent: indent}
	if err := p.value(0); err != nil {
		return nil, fmt.Errorf("json indent failed: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid json: trailing data")
	}
	return p.buf.Bytes(), nil
}

type printer struct {
	dec    *json.Decoder
	buf    bytes.Buffer
	indent string
}

func (p *printer) newline(depth int) {
	p.buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		p.buf.WriteString(p.indent)
	}
}

func (p *printer) value(depth int) error {
	tok, err := p.dec.Token()
	if err != nil {
		return err
	}
	switch t := tok.(type) {
	case json.Delim:
		return p.container(t, depth)
	case string:
		return p.str(t)
	case json.Number:
		p.buf.WriteString(t.String())
	case bool:
		p.buf.WriteString(strconv.FormatBool(t))
	case nil:
		p.buf.WriteString("null")
	default:
		return fmt.Errorf("unexpected token %v", tok)
	}
	return nil
}

func (p *printer) container(open json.Delim, depth int) error {
	closing := byte('}')
	if open == '[' {
		closing = ']'
	}
	p.buf.WriteByte(byte(open))
	n := 0
	for p.dec.More() {
		if n > 0 {
			p.buf.WriteByte(',')
		}
		p.newline(depth + 1)
		if open == '{' {
			key, err := p.dec.Token()
			if err != nil {
				return err
			}
			k, ok := key.(string)
			if !ok {
				return fmt.Errorf("unexpected object key %v", key)
			}
			if err := p.str(k); err != nil {
				return err
			}
			p.buf.WriteString(": ")
		}
		if err := p.value(depth + 1); err != nil {
			return err
		}
		n++
	}
	// Consume the closing delimiter.
	if _, err := p.dec.Token(); err != nil {
		return err
	}
	if n > 0 {
		p.newline(depth)
	}
	p.buf.WriteByte(closing)
	return nil
}

func (p *printer) str(s string) error {
	b, err := Encode(s)
	if err != nil {
		return err
	}
	p.buf.Write(b)
	return nil
}
