package normalize

import (
	"strings"
)

// signalKeywords marks segments worth keeping when text has to be cut
// down. A segment containing any of these survives truncation before
// anything else does.
var signalKeywords = []string{
	"delivered", "delivery", "status", "tracking", "failed", "returned",
	"stuck", "transit", "location", "date", "received", "recipient",
	"out for delivery", "in transit", "picked up", "attempted",
	"exception", "delay", "completed",
}

// spliceMarker separates the head and tail in the fallback splice.
const spliceMarker = " [...] "

// Truncate bounds text to maxLength while preferentially keeping
// keyword-bearing segments. The result is always ≤ maxLength and the
// operation is idempotent: truncating an already-truncated text
// returns it unchanged.
func Truncate(text string, maxLength int) string {
	if len(text) <= maxLength {
		return text
	}
	if maxLength <= 0 {
		return ""
	}

	kept := keywordSegments(text, maxLength)
	if len(kept) > maxLength/2 {
		return kept
	}

	return headTailSplice(text, maxLength)
}

// keywordSegments splits on sentence-like delimiters and keeps, in
// source order, segments containing at least one signal keyword until
// the running length would exceed maxLength.
func keywordSegments(text string, maxLength int) string {
	segments := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '\n' || r == ';'
	})

	var b strings.Builder
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" || !containsKeyword(seg) {
			continue
		}

		addition := len(seg)
		if b.Len() > 0 {
			addition += 2 // ". " joiner
		}
		if b.Len()+addition > maxLength {
			break
		}

		if b.Len() > 0 {
			b.WriteString(". ")
		}
		b.WriteString(seg)
	}

	return b.String()
}

// headTailSplice keeps the start and end of the text around a marker.
func headTailSplice(text string, maxLength int) string {
	half := maxLength/2 - 10
	if half < 0 {
		half = 0
	}
	if half > len(text) {
		half = len(text)
	}

	head := text[:half]
	tail := text[len(text)-half:]

	out := head + spliceMarker + tail
	if len(out) > maxLength {
		// Tiny maxLength values leave no room for the marker.
		return out[:maxLength]
	}
	return out
}

// containsKeyword reports whether the segment carries decision signal.
func containsKeyword(segment string) bool {
	lower := strings.ToLower(segment)
	for _, kw := range signalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
