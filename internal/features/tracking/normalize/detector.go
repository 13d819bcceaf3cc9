package normalize

import (
	"encoding/json"
	"strings"

	"ledger-sync/internal/features/tracking/domain"
)

// htmlMarkers are substrings whose presence classifies a payload as a
// rendered HTML page rather than generic XML.
var htmlMarkers = []string{"<html", "<body", "<div", "<script", "<!doctype html"}

// Detect classifies a raw tracking payload. Empty or blank input is
// Unknown; a payload only counts as JSON if it actually parses.
func Detect(raw string) domain.ContentType {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.ContentUnknown
	}

	if trimmed[0] == '{' || trimmed[0] == '[' {
		if json.Valid([]byte(trimmed)) {
			return domain.ContentJSON
		}
	}

	lower := strings.ToLower(trimmed)
	for _, marker := range htmlMarkers {
		if strings.Contains(lower, marker) {
			return domain.ContentHTML
		}
	}

	if strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, "</") {
		return domain.ContentXML
	}

	return domain.ContentPlainText
}
