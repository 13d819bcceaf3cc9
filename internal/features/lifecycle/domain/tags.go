package domain

import "strings"

// Tag vocabulary used by shop staff as ad-hoc lifecycle flags. The
// resolver rule table is the only consumer; keep all literals here.
const (
	TagCancelled         = "Cancelled"
	TagWhatsAppSent      = "WhatsApp Sent"
	TagConfirmed         = "Confirmed"
	TagInvalidWhatsApp   = "Invalid WhatsApp"
	TagWhatsAppConfirmed = "WhatsApp Confirmed"
	TagAwaitingCall      = "Awaiting Call"
	TagDidNotPickUp      = "Did not pick up"
	TagNoAnswer          = "No Answer"
	TagCallCompleted     = "Call Completed"
	TagSizeConfirmed     = "Size Confirmed"
)

// TagSet is an order's free-text tag field parsed into normalized
// tokens for case-insensitive membership checks.
type TagSet struct {
	tokens []string
}

// ParseTags splits a comma-delimited tag string into a TagSet.
// Tokens are trimmed and lowercased; empty tokens are dropped.
func ParseTags(raw string) TagSet {
	parts := strings.Split(raw, ",")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		token := strings.ToLower(strings.TrimSpace(p))
		if token != "" {
			tokens = append(tokens, token)
		}
	}
	return TagSet{tokens: tokens}
}

// Has reports whether the set contains the given tag as a whole token.
func (t TagSet) Has(tag string) bool {
	needle := strings.ToLower(tag)
	for _, token := range t.tokens {
		if token == needle {
			return true
		}
	}
	return false
}

// HasAny reports whether the set contains any of the given tags.
func (t TagSet) HasAny(tags ...string) bool {
	for _, tag := range tags {
		if t.Has(tag) {
			return true
		}
	}
	return false
}

// HasWord reports whether any token contains the given word. Used for
// flags like "Confirmed" that staff embed inside longer tags
// ("WhatsApp Confirmed", "Size Confirmed").
func (t TagSet) HasWord(word string) bool {
	needle := strings.ToLower(word)
	for _, token := range t.tokens {
		if strings.Contains(token, needle) {
			return true
		}
	}
	return false
}

// Len returns the number of tokens in the set.
func (t TagSet) Len() int {
	return len(t.tokens)
}
