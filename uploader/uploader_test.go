package uploader

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadScheduleCreatesNewFile(t *testing.T) {
	var put uploadRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/someone/plans/contents/ics/testschule.ics", r.URL.Path)
		assert.Equal(t, "token secret", r.Header.Get("Authorization"))
		switch r.Method {
		case http.MethodGet:
			http.NotFound(w, r)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
			w.WriteHeader(http.StatusCreated)
		}
	}))
	defer srv.Close()
	githubAPI = srv.URL
	defer func() { githubAPI = "https://api.github.com" }()

	file := filepath.Join(t.TempDir(), "testschule.ics")
	require.NoError(t, os.WriteFile(file, []byte("BEGIN:VCALENDAR"), 0644))

	require.NoError(t, UploadSchedule("secret", "someone/plans", "ics/testschule.ics", file))

	assert.Empty(t, put.SHA)
	content, err := base64.StdEncoding.DecodeString(put.Content)
	require.NoError(t, err)
	assert.Equal(t, "BEGIN:VCALENDAR", string(content))
}

func TestUploadScheduleUpdatesExistingFile(t *testing.T) {
	var put uploadRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			fmt.Fprint(w, `{"sha": "abc123"}`)
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&put))
		}
	}))
	defer srv.Close()
	githubAPI = srv.URL
	defer func() { githubAPI = "https://api.github.com" }()

	file := filepath.Join(t.TempDir(), "testschule.ics")
	require.NoError(t, os.WriteFile(file, []byte("BEGIN:VCALENDAR"), 0644))

	require.NoError(t, UploadSchedule("secret", "someone/plans", "ics/testschule.ics", file))
	assert.Equal(t, "abc123", put.SHA)
}

func TestUploadScheduleReportsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	githubAPI = srv.URL
	defer func() { githubAPI = "https://api.github.com" }()

	file := filepath.Join(t.TempDir(), "testschule.ics")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	assert.Error(t, UploadSchedule("secret", "someone/plans", "ics/testschule.ics", file))
}
