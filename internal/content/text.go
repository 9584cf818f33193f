// Package content extracts readable text from the HTML produced by the
// article editor.
package content

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText returns the visible text of an HTML fragment with whitespace collapsed.
// Input that is not HTML is returned trimmed.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.Join(strings.Fields(html), " ")
	}
	doc.Find("script, style").Remove()
	return strings.Join(strings.Fields(doc.Text()), " ")
}
