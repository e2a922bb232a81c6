package scraper

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vertretungsplan-scraper/config"
)

func TestNewRejectsUnknownAPI(t *testing.T) {
	_, err := New(&config.SchoolConfig{
		Name:    "testschule",
		API:     "moodle",
		Columns: []string{"lesson"},
	})
	assert.Error(t, err)
}

func TestMonitorScraperRequiresURL(t *testing.T) {
	_, err := New(&config.SchoolConfig{
		Name:    "testschule",
		API:     "untis-monitor",
		Columns: []string{"lesson"},
	})
	assert.Error(t, err)
}

func TestDSBLightScraperRequiresID(t *testing.T) {
	_, err := New(&config.SchoolConfig{
		Name:    "testschule",
		API:     "dsblight",
		Columns: []string{"lesson"},
	})
	assert.Error(t, err)
}

func TestDSBLightScraperRequiresCredentialsForLogin(t *testing.T) {
	_, err := New(&config.SchoolConfig{
		Name:    "testschule",
		API:     "dsblight",
		ID:      "abc",
		Login:   true,
		Columns: []string{"lesson"},
	})
	assert.Error(t, err)
}

func monitorPage(date, lesson, refresh string) string {
	meta := ""
	if refresh != "" {
		meta = fmt.Sprintf(`<meta http-equiv="refresh" content="8; url=%s">`, refresh)
	}
	return fmt.Sprintf(`<html><head>%s</head><body>
		<div class="mon_title">%s</div>
		<table class="mon_list">
			<tr class="list odd"><td>5a</td><td>%s</td><td>Ma</td></tr>
		</table>
	</body></html>`, meta, date, lesson)
}

func TestMonitorScraperFollowsRefreshChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/page1.htm":
			fmt.Fprint(w, monitorPage("2.9.2026 Mittwoch (Seite 1 / 2)", "1", "page2.htm"))
		case "/page2.htm":
			fmt.Fprint(w, monitorPage("2.9.2026 Mittwoch (Seite 2 / 2)", "2", "page1.htm"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s, err := New(&config.SchoolConfig{
		Name:    "testschule",
		API:     "untis-monitor",
		URL:     srv.URL + "/page1.htm",
		Columns: []string{"class", "lesson", "subject"},
	})
	require.NoError(t, err)

	schedule, err := s.Fetch()
	require.NoError(t, err)

	// Both pages carry the same date, so pagination merges into one day.
	require.Len(t, schedule.Days, 1)
	day := schedule.Days[0]
	assert.Equal(t, "2.9.2026 Mittwoch", day.DateString)
	require.Len(t, day.Substitutions, 2)
	assert.Equal(t, "1", day.Substitutions[0].Lesson)
	assert.Equal(t, "2", day.Substitutions[1].Lesson)
}

func TestMonitorScraperReportsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	s, err := New(&config.SchoolConfig{
		Name:    "testschule",
		API:     "untis-monitor",
		URL:     srv.URL + "/plan.htm",
		Columns: []string{"lesson"},
	})
	require.NoError(t, err)

	_, err = s.Fetch()
	assert.Error(t, err)
}

func TestSessionDecodesConfiguredCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte{'f', 0xe4, 'l', 'l', 't'}) // ISO-8859-1 "fällt"
	}))
	defer srv.Close()

	body, err := newSession().get(srv.URL, "iso-8859-1", nil)
	require.NoError(t, err)
	assert.Equal(t, "fällt", body)
}

func TestResolveRef(t *testing.T) {
	assert.Equal(t, "http://example.com/a/page2.htm",
		resolveRef("http://example.com/a/page1.htm", "page2.htm"))
	assert.Equal(t, "http://other.com/x",
		resolveRef("http://example.com/a/page1.htm", "http://other.com/x"))
}
