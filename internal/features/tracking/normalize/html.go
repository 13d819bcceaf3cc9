package normalize

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// commentPattern matches HTML comments including their content.
var commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)

// ExtractHTML strips script/style blocks and markup from an HTML
// payload and returns the collapsed visible text. Falls back to a
// regex strip when the document does not parse.
func ExtractHTML(raw string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		stripped := commentPattern.ReplaceAllString(raw, " ")
		return collapseWhitespace(tagPattern.ReplaceAllString(stripped, " "))
	}

	doc.Find("script, style, noscript").Remove()

	return collapseWhitespace(doc.Text())
}
