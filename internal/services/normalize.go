package services

import (
	"encoding/json"
	"log"
	"strings"
)

// NormalizeJSON pulls the outermost {...} span out of a model reply and
// decodes it into T. Surrounding prose and code fences are discarded. Any
// failure yields fallback unchanged; fields missing from a successful decode
// keep their zero value.
func NormalizeJSON[T any](rawText string, fallback T) T {
	if rawText == "" {
		return fallback
	}

	cleaned := strings.TrimSpace(rawText)
	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end >= 0 && end >= start {
		cleaned = cleaned[start : end+1]
	}

	var parsed T
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		log.Printf("[normalize] JSON parse error, using fallback: %v", err)
		return fallback
	}
	return parsed
}
