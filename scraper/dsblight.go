package scraper

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"vertretungsplan-scraper/config"
	"vertretungsplan-scraper/untis"
)

const dsbLightBaseURL = "https://light.dsbcontrol.de/DSBlightWebsite/Homepage"

var locationHrefRe = regexp.MustCompile(`location\.href="([^"]*)"`)

// dsbLightScraper handles Untis schedules served through the DSBlight
// notice-board frontend: a Player page embedding an iframe chain, an
// optional ASP.NET form login, and per-day Untis monitor pages at the
// bottom of the chain.
type dsbLightScraper struct {
	cfg    *config.SchoolConfig
	sess   *session
	parser *untis.Parser
}

func newDSBLightScraper(cfg *config.SchoolConfig) (Scraper, error) {
	if cfg.ID == "" {
		return nil, fmt.Errorf("%s: dsblight needs the player id", cfg.Name)
	}
	if cfg.Login && (cfg.Username == "" || cfg.Password == "") {
		return nil, fmt.Errorf("%s: dsblight login needs username and password", cfg.Name)
	}
	parser, err := newParser(cfg)
	if err != nil {
		return nil, err
	}
	return &dsbLightScraper{cfg: cfg, sess: newSession(), parser: parser}, nil
}

func (d *dsbLightScraper) Fetch() (*untis.Schedule, error) {
	playerURL := fmt.Sprintf("%s/Player.aspx?ID=%s", dsbLightBaseURL, d.cfg.ID)
	referer := map[string]string{"Referer": playerURL}

	schedule := &untis.Schedule{
		Classes: d.cfg.Classes,
		Website: playerURL,
	}

	body, err := d.sess.get(playerURL, "utf-8", referer)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	iframeURL := resolveRef(playerURL, doc.Find("iframe").First().AttrOr("src", ""))
	body, err = d.sess.get(iframeURL, "utf-8", referer)
	if err != nil {
		return nil, err
	}
	doc, err = goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	if d.cfg.Login {
		doc, err = d.login(iframeURL, doc, referer)
		if err != nil {
			return nil, err
		}
	}

	var iframes []string
	doc.Find("iframe").Each(func(_ int, iframe *goquery.Selection) {
		iframes = append(iframes, resolveRef(iframeURL, iframe.AttrOr("src", "")))
	})
	for _, src := range iframes {
		// PreProgram.aspx redirects to the Program page via script.
		body, err := d.sess.get(src, "utf-8", referer)
		if err != nil {
			return nil, err
		}
		m := locationHrefRe.FindStringSubmatch(body)
		if m == nil {
			return nil, fmt.Errorf("%s: program URL not found", d.cfg.Name)
		}
		if err := d.fetchProgram(resolveRef(src, m[1]), "", referer, schedule); err != nil {
			return nil, err
		}
	}
	return schedule, nil
}

// login submits the ASP.NET login form embedded in the player iframe.
func (d *dsbLightScraper) login(iframeURL string, doc *goquery.Document, referer map[string]string) (*goquery.Document, error) {
	form := url.Values{
		"__VIEWSTATE":           {doc.Find("#__VIEWSTATE").AttrOr("value", "")},
		"__VIEWSTATEGENERATOR":  {doc.Find("#__VIEWSTATEGENERATOR").AttrOr("value", "")},
		"__EVENTVALIDATION":     {doc.Find("#__EVENTVALIDATION").AttrOr("value", "")},
		"ctl02$txtBenutzername": {d.cfg.Username},
		"ctl02$txtPasswort":     {d.cfg.Password},
		"ctl02$btnLogin":        {"weiter"},
	}
	body, err := d.sess.postForm(iframeURL, "utf-8", form, referer)
	if err != nil {
		return nil, err
	}
	loggedIn, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	if loggedIn.Find("#ctl02_lblLoginFehlgeschlagen").Length() > 0 {
		return nil, ErrInvalidCredentials
	}
	return loggedIn, nil
}

// fetchProgram walks one Program.aspx page: each iframe is a day, the
// #hlNext link paginates. firstURL marks where the pagination loop
// started so it terminates.
func (d *dsbLightScraper) fetchProgram(programURL, firstURL string, referer map[string]string, schedule *untis.Schedule) error {
	body, err := d.sess.get(programURL, "utf-8", referer)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return err
	}

	first := resolveRef(programURL, doc.Find("iframe").First().AttrOr("src", ""))
	if first == firstURL {
		return nil
	}

	var days []string
	doc.Find("iframe").Each(func(_ int, iframe *goquery.Selection) {
		days = append(days, resolveRef(programURL, iframe.AttrOr("src", "")))
	})
	for _, day := range days {
		if err := d.fetchDay(day, day, referer, schedule); err != nil {
			return err
		}
	}

	if next := doc.Find("#hlNext"); next.Length() > 0 {
		nextURL := resolveRef(programURL, next.First().AttrOr("href", ""))
		if firstURL == "" {
			firstURL = first
		}
		return d.fetchProgram(nextURL, firstURL, referer, schedule)
	}
	return nil
}

// fetchDay parses one hosted Untis day page, following meta refresh
// pagination until it loops back to the start page.
func (d *dsbLightScraper) fetchDay(dayURL, startURL string, referer map[string]string, schedule *untis.Schedule) error {
	body, err := d.sess.get(dayURL, d.cfg.Encoding, referer)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return err
	}

	if !strings.Contains(strings.ToLower(body), "untis") && doc.Find(".mon_list").Length() == 0 {
		return nil
	}

	day, err := d.parser.ParseMonitorDay(doc)
	if err != nil {
		return fmt.Errorf("%s: %w", dayURL, err)
	}
	schedule.AddDay(day)

	if meta := doc.Find("meta[http-equiv=refresh]"); meta.Length() > 0 {
		content := strings.ToLower(meta.First().AttrOr("content", ""))
		if idx := strings.Index(content, "url="); idx >= 0 {
			next := resolveRef(dayURL, content[idx+len("url="):])
			if next != startURL {
				return d.fetchDay(next, startURL, referer, schedule)
			}
		}
	}
	return nil
}
