package untis

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// cellText returns the visible text of a selection with all whitespace,
// including non-breaking spaces, collapsed to single spaces and trimmed.
func cellText(s *goquery.Selection) string {
	return strings.Join(strings.Fields(s.Text()), " ")
}

// ownText returns the text of the element's direct text nodes only,
// excluding child elements, normalized like cellText. This is the part of
// a cell that is not struck through.
func ownText(s *goquery.Selection) string {
	if len(s.Nodes) == 0 {
		return ""
	}
	var b strings.Builder
	for c := s.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// isEmptyCell reports whether a normalized cell text is blank or the
// "---" placeholder Untis prints for unset values.
func isEmptyCell(text string) bool {
	return text == "" || text == "---"
}

// stripValueMarkers removes the leading "?" (uncertain value) and the
// first "→" (moved-from arrow) that Untis puts in front of new values.
func stripValueMarkers(text string) string {
	text = strings.TrimPrefix(text, "?")
	text = strings.Replace(text, "→", "", 1)
	return strings.TrimSpace(text)
}

// splitStrike splits a cell that may carry a struck-through old value.
// The struck part becomes previous, the remaining own text the current
// value. Without strike markup the whole cell text is the current value.
func splitStrike(cell *goquery.Selection) (previous, current string) {
	struck := cell.Find("s")
	if struck.Length() == 0 {
		return "", cellText(cell)
	}
	previous = cellText(struck)
	if own := ownText(cell); own != "" {
		current = stripValueMarkers(own)
	}
	return previous, current
}

// wholeText renders a selection to plain text while keeping line breaks:
// <br> elements become newlines instead of being collapsed away. Used for
// the free-text message tables.
func wholeText(s *goquery.Selection) string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			b.WriteString(n.Data)
		case html.ElementNode:
			if n.Data == "br" {
				b.WriteString("\n")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range s.Nodes {
		walk(n)
	}
	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.Join(strings.Fields(line), " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
