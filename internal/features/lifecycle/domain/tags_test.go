package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestParseTags verifies splitting, trimming and empty-token handling.
func TestParseTags(t *testing.T) {
	tags := ParseTags(" WhatsApp Sent ,, Size Confirmed , ")

	assert.Equal(t, 2, tags.Len())
	assert.True(t, tags.Has("whatsapp sent"))
	assert.True(t, tags.Has(TagSizeConfirmed))

	assert.Zero(t, ParseTags("").Len())
	assert.Zero(t, ParseTags(" , ,").Len())
}

// TestTagSet_Has verifies whole-token, case-insensitive membership.
func TestTagSet_Has(t *testing.T) {
	tags := ParseTags("WhatsApp Sent, Priority")

	assert.True(t, tags.Has("WHATSAPP SENT"))
	assert.False(t, tags.Has("WhatsApp"))
	assert.False(t, tags.Has("Sent"))
}

// TestTagSet_HasAny verifies membership over alternatives.
func TestTagSet_HasAny(t *testing.T) {
	tags := ParseTags("No Answer")

	assert.True(t, tags.HasAny(TagDidNotPickUp, TagNoAnswer))
	assert.False(t, tags.HasAny(TagCancelled, TagSizeConfirmed))
}

// TestTagSet_HasWord verifies substring matching inside tokens, used for
// flags embedded in longer tags.
func TestTagSet_HasWord(t *testing.T) {
	assert.True(t, ParseTags("WhatsApp Confirmed").HasWord(TagConfirmed))
	assert.True(t, ParseTags("Size Confirmed").HasWord(TagConfirmed))
	assert.True(t, ParseTags("Confirmed").HasWord(TagConfirmed))
	assert.False(t, ParseTags("WhatsApp Sent").HasWord(TagConfirmed))
}

// TestTemplateFor verifies template lookup and the UpdateOnly fallback.
func TestTemplateFor(t *testing.T) {
	tpl := TemplateFor(ScenarioNewOrder)
	assert.Equal(t, "New Order", tpl.Stage)

	fallback := TemplateFor(Scenario("Bogus"))
	assert.Equal(t, TemplateFor(ScenarioUpdateOnly), fallback)
}
