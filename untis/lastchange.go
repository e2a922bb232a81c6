package untis

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var lastChangeRe = regexp.MustCompile(`\d\d\.\d\d\.\d\d\d\d \d\d:\d\d`)

// FindLastChange locates the last-changed timestamp of an Untis page. It
// is printed in the .mon_head table, sometimes in the top left corner of
// the body (lastChangeLeft), and on some schedules the whole mon_head
// table is hidden inside an HTML comment.
func FindLastChange(doc *goquery.Document, lastChangeLeft bool) string {
	if monHead := doc.Find("table.mon_head"); monHead.Length() > 0 {
		return lastChangeFromMonHead(monHead.First())
	}
	if lastChangeLeft {
		body, err := doc.Find("body").Html()
		if err != nil {
			return ""
		}
		if idx := strings.Index(body, "<p>"); idx > 0 {
			return strings.TrimSpace(body[:idx-1])
		}
		return ""
	}
	for _, n := range doc.Find("body").Nodes {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.CommentNode {
				continue
			}
			if !strings.Contains(c.Data, `<table class="mon_head">`) {
				continue
			}
			commented, err := goquery.NewDocumentFromReader(strings.NewReader(c.Data))
			if err != nil {
				continue
			}
			if monHead := commented.Find("table.mon_head"); monHead.Length() > 0 {
				return lastChangeFromMonHead(monHead.First())
			}
		}
	}
	return ""
}

func lastChangeFromMonHead(monHead *goquery.Selection) string {
	cells := monHead.Find("td[align=right]")
	if cells.Length() == 0 {
		return ""
	}
	if m := lastChangeRe.FindString(cellText(cells.First())); m != "" {
		return m
	}
	text := cellText(monHead)
	if idx := strings.Index(text, "Stand: "); idx >= 0 {
		return strings.TrimSpace(text[idx+len("Stand:"):])
	}
	return ""
}
