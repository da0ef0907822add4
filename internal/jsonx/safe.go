// Package jsonx holds lenient JSON helpers for model output.
package jsonx

import (
	"encoding/json"
	"strings"
)

// Parse decodes text into a T. When text is empty, is not valid JSON, or does not fit T,
// fallback is returned unchanged.
func Parse[T any](text string, fallback T) T {
	if text == "" {
		return fallback
	}
	var out T
	if err := json.Unmarshal([]byte(text), &out); err != nil {
		return fallback
	}
	return out
}

// Extract trims the wrappers models commonly put around a JSON object: markdown code
// fences and leading or trailing prose. Text without an object is returned trimmed.
func Extract(text string) string {
	s := strings.TrimSpace(text)
	if strings.HasPrefix(s, "```") {
		if nl := strings.IndexByte(s, '\n'); nl != -1 {
			s = s[nl+1:]
		} else {
			s = strings.Trim(s, "`")
		}
		if idx := strings.LastIndex(s, "```"); idx != -1 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start == -1 || end <= start {
		return s
	}
	return s[start : end+1]
}
