package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestTruncate_ShortTextUnchanged verifies text within bounds passes through.
func TestTruncate_ShortTextUnchanged(t *testing.T) {
	text := "Parcel delivered to recipient."
	assert.Equal(t, text, Truncate(text, 100))
	assert.Equal(t, text, Truncate(text, len(text)))
}

// TestTruncate_KeepsKeywordSegments verifies keyword-bearing segments survive
// over filler.
func TestTruncate_KeepsKeywordSegments(t *testing.T) {
	filler := strings.Repeat("lorem ipsum dolor sit amet. ", 20)
	text := filler + "Package delivered at front door. " + filler + "Current status: complete. " + filler

	out := Truncate(text, 100)

	assert.LessOrEqual(t, len(out), 100)
	assert.Contains(t, out, "delivered")
	assert.NotContains(t, out, "lorem")
}

// TestTruncate_HeadTailSplice verifies the fallback when no keywords exist.
func TestTruncate_HeadTailSplice(t *testing.T) {
	text := strings.Repeat("abcdefghij", 50)

	out := Truncate(text, 100)

	assert.LessOrEqual(t, len(out), 100)
	assert.Contains(t, out, spliceMarker)
}

// TestTruncate_Idempotent verifies truncating an already-truncated text
// returns it unchanged.
func TestTruncate_Idempotent(t *testing.T) {
	filler := strings.Repeat("x", 2000)
	text := "Status: in transit. " + filler + " Delivered yesterday."

	once := Truncate(text, 200)
	twice := Truncate(once, 200)

	assert.Equal(t, once, twice)
	assert.LessOrEqual(t, len(once), 200)
}

// TestTruncate_TinyMax verifies degenerate maximums still bound the output.
func TestTruncate_TinyMax(t *testing.T) {
	text := strings.Repeat("delivered ", 100)

	for _, max := range []int{0, 1, 5, 10} {
		out := Truncate(text, max)
		assert.LessOrEqual(t, len(out), max, "max %d", max)
	}
}
