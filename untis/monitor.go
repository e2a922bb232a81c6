package untis

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var pageCounterRe = regexp.MustCompile(` \(Seite \d+ / \d+\)`)

// ParseMessages reads a "Nachrichten zum Tag" (daily news) table into the
// day's message list. Each row becomes one message; cells within a row
// are joined with newlines.
func ParseMessages(table *goquery.Selection, day *ScheduleDay) {
	table.Find("tr").Each(func(_ int, row *goquery.Selection) {
		if strings.Contains(cellText(row), "Nachrichten zum Tag") {
			return
		}
		var parts []string
		row.Find("td").Each(func(_ int, cell *goquery.Selection) {
			parts = append(parts, wholeText(cell))
		})
		if len(parts) == 0 {
			return
		}
		day.AddMessage(strings.Join(parts, "\n"))
	})
}

// ParseMonitorDay parses one Untis monitor page (the kind displayed on
// hallway screens) into a schedule day: title date, last-change
// timestamp, daily news and the substitution table.
func (p *Parser) ParseMonitorDay(doc *goquery.Document) (*ScheduleDay, error) {
	title := doc.Find(".mon_title").First()
	if title.Length() == 0 {
		return nil, fmt.Errorf("page has no .mon_title date header")
	}

	day := &ScheduleDay{}
	date := pageCounterRe.ReplaceAllString(cellText(title), "")
	day.DateString = date
	day.Date = ParseDate(date)

	if p.lastChangeSelector != "" {
		day.LastChangeString = cellText(doc.Find(p.lastChangeSelector).First())
	} else {
		day.LastChangeString = FindLastChange(doc, p.lastChangeLeft)
	}
	day.LastChange = ParseDateTime(day.LastChangeString)

	if info := doc.Find("table.info"); info.Length() > 0 {
		ParseMessages(info.First(), day)
	}

	table := doc.Find("table").FilterFunction(func(_ int, t *goquery.Selection) bool {
		return t.Find("tr.list").Length() > 0
	})
	if table.Length() > 0 {
		if err := p.ParseTable(table.First(), day); err != nil {
			return nil, err
		}
	}
	return day, nil
}
