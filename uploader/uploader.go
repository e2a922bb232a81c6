// Package uploader pushes generated schedule files to a GitHub repo via
// the contents API, so static hosting can serve the .ics subscriptions.
package uploader

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
)

var githubAPI = "https://api.github.com"

type uploadRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
}

// UploadSchedule creates or updates path in the given repo with the
// contents of filename.
func UploadSchedule(token, repo, path, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	apiURL := fmt.Sprintf("%s/repos/%s/contents/%s", githubAPI, repo, path)
	sha, err := currentSHA(apiURL, token)
	if err != nil {
		return err
	}

	payload, err := json.Marshal(uploadRequest{
		Message: "Update substitution schedule",
		Content: base64.StdEncoding.EncodeToString(data),
		SHA:     sha,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPut, apiURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("uploading %s: HTTP %d", path, resp.StatusCode)
	}
	return nil
}

// currentSHA fetches the blob SHA of the existing file, required by the
// contents API for updates. Returns an empty SHA when the file does not
// exist yet.
func currentSHA(apiURL, token string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, apiURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "token "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", nil
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("checking %s: HTTP %d", apiURL, resp.StatusCode)
	}

	var current struct {
		SHA string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&current); err != nil {
		return "", err
	}
	return current.SHA, nil
}
