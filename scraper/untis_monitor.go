package scraper

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vertretungsplan-scraper/config"
	"vertretungsplan-scraper/untis"
)

// monitorScraper fetches plain Untis monitor pages, the static HTML that
// schools show on hallway displays and often host as-is. A monitor page
// can paginate by redirecting to the next page with a meta refresh, so
// each configured URL is followed until the chain loops back.
type monitorScraper struct {
	cfg    *config.SchoolConfig
	sess   *session
	parser *untis.Parser
}

func newMonitorScraper(cfg *config.SchoolConfig) (Scraper, error) {
	if cfg.URL == "" && len(cfg.URLs) == 0 {
		return nil, fmt.Errorf("%s: untis-monitor needs url or urls", cfg.Name)
	}
	parser, err := newParser(cfg)
	if err != nil {
		return nil, err
	}
	return &monitorScraper{cfg: cfg, sess: newSession(), parser: parser}, nil
}

func (m *monitorScraper) Fetch() (*untis.Schedule, error) {
	urls := m.cfg.URLs
	if m.cfg.URL != "" {
		urls = append([]string{m.cfg.URL}, urls...)
	}

	schedule := &untis.Schedule{
		Classes: m.cfg.Classes,
		Website: urls[0],
	}
	for _, u := range urls {
		if err := m.fetchPage(u, u, schedule); err != nil {
			return nil, err
		}
	}
	return schedule, nil
}

// fetchPage parses one monitor page and follows its meta refresh chain
// until it points back at the page the chain started on.
func (m *monitorScraper) fetchPage(pageURL, startURL string, schedule *untis.Schedule) error {
	body, err := m.sess.get(pageURL, m.cfg.Encoding, nil)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return err
	}

	day, err := m.parser.ParseMonitorDay(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", pageURL, err)
	}
	schedule.AddDay(day)

	if meta := doc.Find("meta[http-equiv=refresh]"); meta.Length() > 0 {
		content := strings.ToLower(meta.First().AttrOr("content", ""))
		if idx := strings.Index(content, "url="); idx >= 0 {
			next := resolveRef(pageURL, content[idx+len("url="):])
			if next != startURL && next != pageURL {
				return m.fetchPage(next, startURL, schedule)
			}
		}
	}
	return nil
}
