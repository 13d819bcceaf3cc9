package normalize

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Category labels emitted in front of extracted values.
const (
	categoryStatus   = "STATUS"
	categoryLocation = "LOCATION"
	categoryTime     = "TIME"
	categoryInfo     = "INFO"
)

// Field-name vocabularies, lowercased. Matching is case-insensitive
// and covers common courier-API spellings.
var (
	statusFields = map[string]bool{
		"status": true, "state": true, "current_status": true,
		"delivery_status": true, "shipment_status": true,
		"status_description": true, "statusdescription": true,
		"description": true, "remark": true, "remarks": true,
		"comment": true, "scan_status": true, "checkpoint_status": true,
		"delivered": true, "message": true,
	}
	locationFields = map[string]bool{
		"location": true, "city": true, "branch": true, "office": true,
		"hub": true, "destination": true, "origin": true,
		"current_location": true, "place": true, "station": true,
		"area": true, "receiver_city": true,
	}
	timeFields = map[string]bool{
		"date": true, "time": true, "timestamp": true, "datetime": true,
		"updated_at": true, "event_date": true, "event_time": true,
		"status_date": true, "last_update": true, "activity_date": true,
	}
	contextFields = map[string]bool{
		"courier": true, "carrier": true, "service": true,
		"tracking_number": true, "consignment": true, "awb": true,
		"reference": true, "receiver": true, "consignee": true,
		"signed_by": true, "attempts": true, "expected_delivery": true,
	}
	historyFields = map[string]bool{
		"history": true, "events": true, "checkpoints": true,
		"scans": true, "activities": true, "track_details": true,
		"trackdetails": true, "shipment_track": true,
		"tracking_history": true, "tracking_events": true,
	}
)

// recentHistoryLimit caps how many prior entries an array payload or a
// history field contributes.
const recentHistoryLimit = 3

// jsonCollector accumulates first-seen, de-duplicated tagged values
// while walking a parsed JSON structure.
type jsonCollector struct {
	lines []string
	seen  map[string]bool
}

// ExtractJSON pulls semantically tagged lines out of a JSON payload.
// Returns "" when the payload does not parse or yields nothing.
func ExtractJSON(raw string) string {
	var root interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &root); err != nil {
		return ""
	}

	c := &jsonCollector{seen: make(map[string]bool)}

	switch v := root.(type) {
	case []interface{}:
		c.extractArrayRoot(v)
	case map[string]interface{}:
		c.walk(v)
		c.extractHistory(v)
	default:
		return ""
	}

	return strings.Join(c.lines, "\n")
}

// extractArrayRoot treats the last element as the latest event (fully
// tagged) and the up-to-3 prior elements as recent history, emitted
// oldest-to-newest without category tags.
func (c *jsonCollector) extractArrayRoot(items []interface{}) {
	if len(items) == 0 {
		return
	}

	c.walk(items[len(items)-1])

	start := len(items) - 1 - recentHistoryLimit
	if start < 0 {
		start = 0
	}
	recent := items[start : len(items)-1]
	if len(recent) == 0 {
		return
	}

	c.lines = append(c.lines, "RECENT:")
	for _, item := range recent {
		if line := untaggedValues(item); line != "" {
			c.lines = append(c.lines, line)
		}
	}
}

// walk recurses through the structure collecting tagged values.
func (c *jsonCollector) walk(node interface{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for _, key := range sortedKeys(v) {
			val := v[key]
			category, ok := categoryFor(key)
			if ok {
				if s := scalarString(val); s != "" {
					c.add(category, s)
					continue
				}
			}
			c.walk(val)
		}
	case []interface{}:
		for _, item := range v {
			c.walk(item)
		}
	}
}

// extractHistory scans an object root for known history/event arrays
// and emits up to the 3 most recent entries as one line each.
func (c *jsonCollector) extractHistory(obj map[string]interface{}) {
	for _, key := range sortedKeys(obj) {
		val := obj[key]
		if !historyFields[strings.ToLower(key)] {
			continue
		}
		items, ok := val.([]interface{})
		if !ok || len(items) == 0 {
			continue
		}

		start := len(items) - recentHistoryLimit
		if start < 0 {
			start = 0
		}
		for _, item := range items[start:] {
			entry, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			if line := renderHistoryEntry(entry); line != "" {
				c.add("EVENT", line)
			}
		}
	}
}

// renderHistoryEntry formats an event as "status (date) at location",
// dropping whichever sub-fields are missing.
func renderHistoryEntry(entry map[string]interface{}) string {
	var status, date, location string
	for _, key := range sortedKeys(entry) {
		s := scalarString(entry[key])
		if s == "" {
			continue
		}
		lower := strings.ToLower(key)
		switch {
		case statusFields[lower] && status == "":
			status = s
		case timeFields[lower] && date == "":
			date = s
		case locationFields[lower] && location == "":
			location = s
		}
	}

	if status == "" {
		return ""
	}
	line := status
	if date != "" {
		line += " (" + date + ")"
	}
	if location != "" {
		line += " at " + location
	}
	return line
}

// add appends one tagged line, de-duplicated by category and value.
func (c *jsonCollector) add(category, value string) {
	key := category + "|" + strings.ToLower(value)
	if c.seen[key] {
		return
	}
	c.seen[key] = true
	c.lines = append(c.lines, category+": "+value)
}

// categoryFor maps a field name to its category.
func categoryFor(key string) (string, bool) {
	lower := strings.ToLower(key)
	switch {
	case statusFields[lower]:
		return categoryStatus, true
	case locationFields[lower]:
		return categoryLocation, true
	case timeFields[lower]:
		return categoryTime, true
	case contextFields[lower]:
		return categoryInfo, true
	default:
		return "", false
	}
}

// scalarString renders string and boolean values; anything else is
// not a directly usable leaf.
func scalarString(val interface{}) string {
	switch v := val.(type) {
	case string:
		return strings.TrimSpace(v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}

// untaggedValues joins an element's recognized values without category
// tags, for recent-history entries.
func untaggedValues(node interface{}) string {
	obj, ok := node.(map[string]interface{})
	if !ok {
		if s := scalarString(node); s != "" {
			return s
		}
		return ""
	}

	var parts []string
	for _, key := range sortedKeys(obj) {
		if _, recognized := categoryFor(key); !recognized {
			continue
		}
		if s := scalarString(obj[key]); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " | ")
}

// sortedKeys returns map keys in stable order so extraction output is
// deterministic for identical payloads.
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
