package domain

import "strings"

// Color is the severity color attached to a classifier verdict and,
// downstream, to ledger rows.
type Color string

const (
	// ColorGreen indicates a resolved, healthy state.
	ColorGreen Color = "Green"
	// ColorYellow indicates an in-progress or unconfirmed state.
	ColorYellow Color = "Yellow"
	// ColorOrange indicates a state that needs attention soon.
	ColorOrange Color = "Orange"
	// ColorRed indicates a critical state requiring immediate action.
	ColorRed Color = "Red"
)

// Canonical status labels produced by NormalizeStatus. The classifier
// may return any other string, which is passed through verbatim.
const (
	StatusDelivered        = "Delivered"
	StatusInTransit        = "In-Transit"
	StatusStuck            = "Stuck"
	StatusFailed           = "Failed"
	StatusReturn           = "Return"
	StatusNotPickingPhone  = "Customer Not Picking Phone"
	StatusUnableToClassify = "Unable to Classify"
)

// ContentType classifies the shape of a raw tracking payload. Derived
// per payload, never persisted.
type ContentType int

const (
	// ContentUnknown is used for empty or blank payloads.
	ContentUnknown ContentType = iota
	// ContentJSON is structured JSON data.
	ContentJSON
	// ContentXML is an XML document.
	ContentXML
	// ContentHTML is a rendered HTML page.
	ContentHTML
	// ContentPlainText is anything else.
	ContentPlainText
)

// String returns a readable name for logging.
func (c ContentType) String() string {
	switch c {
	case ContentJSON:
		return "json"
	case ContentXML:
		return "xml"
	case ContentHTML:
		return "html"
	case ContentPlainText:
		return "text"
	default:
		return "unknown"
	}
}

// AnalysisResult is the verdict for one tracked shipment, produced by
// the external classifier from normalized tracking text.
type AnalysisResult struct {
	// Status is the canonical (or passthrough) status label.
	Status string `json:"status"`
	// Color is the severity color for the status.
	Color Color `json:"color"`
	// Err records the underlying failure when classification could
	// not be performed. Never shown to the end user.
	Err string `json:"error,omitempty"`
}

// Fallback returns the defined "unable to classify" result for a
// failed or timed-out classifier call. Deliberately distinct from the
// optimistic defaults used for blank fields in a valid response.
func Fallback(err error) AnalysisResult {
	res := AnalysisResult{
		Status: StatusUnableToClassify,
		Color:  ColorOrange,
	}
	if err != nil {
		res.Err = err.Error()
	}
	return res
}

// NormalizeStatus maps a raw classifier status onto the canonical
// vocabulary using ordered, case-insensitive substring rules. An
// unrecognized non-blank status is returned unchanged: the classifier
// may legitimately produce a novel label. Blank input resolves to the
// optimistic In-Transit default.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return StatusInTransit
	}

	switch {
	case strings.Contains(s, "deliver") && !strings.Contains(s, "not") && !strings.Contains(s, "fail"):
		return StatusDelivered
	case strings.Contains(s, "transit"):
		return StatusInTransit
	case strings.Contains(s, "stuck"), strings.Contains(s, "delay"), strings.Contains(s, "hold"):
		return StatusStuck
	case strings.Contains(s, "fail"), strings.Contains(s, "unsuccess"), strings.Contains(s, "cancel"):
		return StatusFailed
	case strings.Contains(s, "return"):
		return StatusReturn
	case strings.Contains(s, "phone"), strings.Contains(s, "contact"), strings.Contains(s, "unreachable"):
		return StatusNotPickingPhone
	default:
		return strings.TrimSpace(raw)
	}
}

// NormalizeColor maps a raw color string onto the closed color set.
// Unmatched or blank input resolves to Yellow: an unconfirmed color
// must not silently read as resolved-green or critical-red.
func NormalizeColor(raw string) Color {
	s := strings.ToLower(strings.TrimSpace(raw))

	switch {
	case strings.Contains(s, "green"):
		return ColorGreen
	case strings.Contains(s, "orange"):
		return ColorOrange
	case strings.Contains(s, "red"):
		return ColorRed
	default:
		return ColorYellow
	}
}
