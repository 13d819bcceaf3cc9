package normalize

import (
	"regexp"
	"strings"
)

// Pattern-fallback extraction limits per category.
const (
	maxStatusMatches   = 5
	maxLocationMatches = 3
	maxDateMatches     = 2
)

// Quoted key/value patterns searched in the raw payload regardless of
// structure. Key vocabularies include common courier-API spellings.
var (
	statusPairPattern   = regexp.MustCompile(`(?i)"(?:status|state|current_status|delivery_status|shipment_status|status_description|packet_status|scan_status)"\s*:\s*"([^"]+)"`)
	locationPairPattern = regexp.MustCompile(`(?i)"(?:location|city|branch|destination|origin|current_location|receiver_city|dest_city)"\s*:\s*"([^"]+)"`)
	datePairPattern     = regexp.MustCompile(`(?i)"(?:date|time|timestamp|datetime|updated_at|event_date|status_date|activity_date)"\s*:\s*"([^"]+)"`)
)

// ExtractPatterns is the last-resort structured extraction: regex
// search the raw payload for quoted key/value pairs from the
// status/location/date vocabularies. Returns "" when nothing matches.
func ExtractPatterns(raw string) string {
	var lines []string

	lines = appendMatches(lines, categoryStatus, statusPairPattern, raw, maxStatusMatches)
	lines = appendMatches(lines, categoryLocation, locationPairPattern, raw, maxLocationMatches)
	lines = appendMatches(lines, categoryTime, datePairPattern, raw, maxDateMatches)

	return strings.Join(lines, "\n")
}

// appendMatches collects up to limit de-duplicated matches for one
// category, tagged and in source order.
func appendMatches(lines []string, category string, pattern *regexp.Regexp, raw string, limit int) []string {
	seen := make(map[string]bool)
	for _, m := range pattern.FindAllStringSubmatch(raw, -1) {
		value := strings.TrimSpace(m[1])
		if value == "" || seen[strings.ToLower(value)] {
			continue
		}
		seen[strings.ToLower(value)] = true
		lines = append(lines, category+": "+value)
		if len(seen) >= limit {
			break
		}
	}
	return lines
}
