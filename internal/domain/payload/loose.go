// Package payload holds the tolerant field types used by request and model response bodies.
package payload

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Loose captures any JSON value for a request field and remembers whether the field was
// sent at all. An explicit null counts as sent.
type Loose struct {
	raw json.RawMessage
}

// L builds a Loose from a Go value; used by tests and callers assembling requests.
func L(v any) Loose {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return Loose{}
	}
	return Loose{raw: bytes.TrimSpace(buf.Bytes())}
}

func (l *Loose) UnmarshalJSON(b []byte) error {
	l.raw = append(l.raw[:0:0], bytes.TrimSpace(b)...)
	return nil
}

func (l Loose) MarshalJSON() ([]byte, error) {
	if len(l.raw) == 0 {
		return []byte("null"), nil
	}
	return l.raw, nil
}

func (l Loose) Present() bool { return len(l.raw) > 0 }

// Text renders the value the way it should appear inside a prompt: strings verbatim,
// numbers as written, booleans and null as literals, arrays and objects as compact JSON.
// Absent fields render as def.
func (l Loose) Text(def string) string {
	if !l.Present() {
		return def
	}
	switch l.raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(l.raw, &s); err == nil {
			return s
		}
		return string(l.raw)
	case '{', '[':
		return string(compact(l.raw))
	default:
		return string(l.raw)
	}
}

// JSON returns the compact encoding of the value, or def when the field was not sent.
func (l Loose) JSON(def string) json.RawMessage {
	if !l.Present() {
		return json.RawMessage(def)
	}
	return compact(l.raw)
}

func compact(raw []byte) []byte {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return []byte(strings.TrimSpace(string(raw)))
	}
	return buf.Bytes()
}
