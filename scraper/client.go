package scraper

import (
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// session is a cookie-carrying HTTP client for one school. Hosted Untis
// pages are frequently ISO-8859-1, so responses are decoded with the
// configured charset (falling back to content-type detection).
type session struct {
	client *http.Client
}

func newSession() *session {
	jar, _ := cookiejar.New(nil)
	return &session{
		client: &http.Client{
			Jar:     jar,
			Timeout: 15 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				req.Header.Set("User-Agent", userAgent)
				return nil
			},
		},
	}
}

func (s *session) get(rawURL, encoding string, headers map[string]string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	return s.do(req, encoding, headers)
}

func (s *session) postForm(rawURL, encoding string, form url.Values, headers map[string]string) (string, error) {
	req, err := http.NewRequest(http.MethodPost, rawURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req, encoding, headers)
}

func (s *session) do(req *http.Request, encoding string, headers map[string]string) (string, error) {
	req.Header.Set("User-Agent", userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s: HTTP %d", req.URL, resp.StatusCode)
	}

	var reader io.Reader
	if encoding != "" {
		reader, err = charset.NewReaderLabel(encoding, resp.Body)
	} else {
		reader, err = charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	}
	if err != nil {
		return "", fmt.Errorf("decoding %s: %w", req.URL, err)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// resolveRef resolves a possibly relative link against the page it was
// found on.
func resolveRef(base, ref string) string {
	baseURL, err := url.Parse(base)
	if err != nil {
		return ref
	}
	refURL, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return baseURL.ResolveReference(refURL).String()
}
