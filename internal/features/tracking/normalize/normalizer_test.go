package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestNormalizer_JSON verifies the structured path for a rich JSON payload.
func TestNormalizer_JSON(t *testing.T) {
	n := NewNormalizer()
	raw := `{"status": "In Transit", "city": "Lahore", "date": "2024-06-01", "courier": "Leopards", "destination": "Karachi"}`

	out := n.Normalize(raw)

	assert.Contains(t, out, "STATUS: In Transit")
	assert.Contains(t, out, "LOCATION: Lahore")
}

// TestNormalizer_JSONPatternFallback verifies that a weak structured
// extraction cascades to the pattern fallback.
func TestNormalizer_JSONPatternFallback(t *testing.T) {
	n := NewNormalizer()
	// Valid JSON whose only recognized field sits under an unusual key
	// spelling, so the structured walk yields nearly nothing.
	raw := `{"packet_status": "Out For Delivery", "payload": {"x": 1, "y": 2}}`

	out := n.Normalize(raw)

	assert.Contains(t, out, "STATUS: Out For Delivery")
}

// TestNormalizer_JSONRawFallback verifies the bounded raw fallback when no
// extraction strategy finds anything.
func TestNormalizer_JSONRawFallback(t *testing.T) {
	n := NewNormalizer()
	raw := `{"a": "` + strings.Repeat("z", 3000) + `"}`

	out := n.Normalize(raw)

	assert.NotEmpty(t, out)
	assert.LessOrEqual(t, len(out), rawFallbackCeiling)
}

// TestNormalizer_XMLDemotion verifies unextractable XML degrades to bounded
// plain text.
func TestNormalizer_XMLDemotion(t *testing.T) {
	n := NewNormalizer()
	raw := `<foo><bar>parcel delivered to recipient</bar></foo>`

	out := n.Normalize(raw)

	assert.NotEmpty(t, out)
	assert.Contains(t, out, "delivered")
}

// TestNormalizer_HTML verifies the HTML path produces visible text only.
func TestNormalizer_HTML(t *testing.T) {
	n := NewNormalizer()
	raw := `<html><body><script>junk()</script><div>Delivered on Monday</div></body></html>`

	out := n.Normalize(raw)

	assert.Contains(t, out, "Delivered on Monday")
	assert.NotContains(t, out, "junk")
}

// TestNormalizer_Ceiling verifies the hard output ceiling holds on every path.
func TestNormalizer_Ceiling(t *testing.T) {
	n := NewNormalizer()

	payloads := []string{
		strings.Repeat("status delivered tracking transit. ", 300),
		`<html><body>` + strings.Repeat("<p>delivered in transit status update</p>", 300) + `</body></html>`,
		`<status>` + strings.Repeat("x", 3000) + `</status>`,
	}

	for i, raw := range payloads {
		out := n.Normalize(raw)
		assert.LessOrEqual(t, len(out), MaxOutputLength, "payload %d", i)
	}
}

// TestNormalizer_Empty verifies blank input yields empty output.
func TestNormalizer_Empty(t *testing.T) {
	n := NewNormalizer()

	assert.Empty(t, n.Normalize(""))
	assert.Empty(t, n.Normalize("   \n "))
}
