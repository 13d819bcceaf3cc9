package normalize

import (
	"html"
	"regexp"
	"strings"
)

// xmlTagPattern matches the text content of the tags courier XML
// responses put their signal in. Courier XML is frequently malformed,
// so this deliberately scrapes tag content instead of parsing the
// document.
var xmlTagPattern = regexp.MustCompile(`(?is)<(status|location|date|time|message|description|remarks|delivery)[^>]*>(.*?)</\s*(?:status|location|date|time|message|description|remarks|delivery)\s*>`)

// ExtractXML pulls the text content of known tags out of an XML
// payload, one non-empty match per line. Returns "" when nothing
// matches; callers then demote the payload to plain text.
func ExtractXML(raw string) string {
	matches := xmlTagPattern.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return ""
	}

	var lines []string
	for _, m := range matches {
		content := strings.TrimSpace(html.UnescapeString(m[2]))
		if content == "" {
			continue
		}
		// Nested tags inside the captured content are noise.
		content = stripTags(content)
		if content != "" {
			lines = append(lines, content)
		}
	}

	return strings.Join(lines, "\n")
}

// tagPattern matches any markup tag for stripping.
var tagPattern = regexp.MustCompile(`<[^>]*>`)

// stripTags removes remaining markup and collapses whitespace.
func stripTags(s string) string {
	return collapseWhitespace(tagPattern.ReplaceAllString(s, " "))
}

// whitespacePattern matches runs of whitespace for collapsing.
var whitespacePattern = regexp.MustCompile(`\s+`)

// collapseWhitespace reduces all whitespace runs to single spaces.
func collapseWhitespace(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}
