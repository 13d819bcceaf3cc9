package normalize

import (
	"ledger-sync/internal/core/logger"
	"ledger-sync/internal/features/tracking/domain"

	"go.uber.org/zap"
)

const (
	// MaxOutputLength is the hard ceiling on normalized text,
	// enforced unconditionally regardless of which path produced it.
	MaxOutputLength = 1800

	// minSignalLength is the threshold below which a structured
	// extraction is considered too weak and cascades to the pattern
	// fallback.
	minSignalLength = 50

	// rawFallbackCeiling bounds whitespace-collapsed raw payloads
	// when every extraction strategy came up empty.
	rawFallbackCeiling = 1000
)

// Normalizer reduces arbitrary courier tracking payloads to bounded,
// signal-dense text for the status classifier.
type Normalizer struct{}

// NewNormalizer creates a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize converts a raw tracking payload into bounded text. Never
// fails: a payload that defeats every extraction strategy degrades to
// collapsed raw text, and the output is always ≤ MaxOutputLength.
func (n *Normalizer) Normalize(raw string) string {
	contentType := Detect(raw)

	var text string
	switch contentType {
	case domain.ContentJSON:
		text = n.normalizeJSON(raw)
	case domain.ContentXML:
		text = ExtractXML(raw)
		if text == "" {
			// Demote unextractable XML to plain text.
			text = Truncate(collapseWhitespace(raw), MaxOutputLength)
		}
	case domain.ContentHTML:
		text = Truncate(ExtractHTML(raw), MaxOutputLength)
	case domain.ContentPlainText:
		text = Truncate(collapseWhitespace(raw), MaxOutputLength)
	default:
		text = ""
	}

	if len(text) > MaxOutputLength {
		// Final safety cut, whatever path produced the text.
		text = text[:MaxOutputLength]
	}

	logger.Get().Debug("Normalized tracking payload",
		zap.String("content_type", contentType.String()),
		zap.Int("raw_len", len(raw)),
		zap.Int("out_len", len(text)),
	)

	return text
}

// normalizeJSON runs the extraction cascade for JSON payloads:
// structured walk, then pattern fallback, then collapsed raw JSON.
func (n *Normalizer) normalizeJSON(raw string) string {
	if text := ExtractJSON(raw); len(text) >= minSignalLength {
		return text
	}

	if text := ExtractPatterns(raw); text != "" {
		return text
	}

	return Truncate(collapseWhitespace(raw), rawFallbackCeiling)
}
