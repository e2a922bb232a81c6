package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vertretungsplan-scraper/untis"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadCommonConfigDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "common_config.json", `{"listen_addr": ":8080"}`)

	cfg, err := LoadCommonConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, "config/schools", cfg.SchoolsDir)
	assert.Equal(t, 10, cfg.PollIntervalMinutes)
	assert.Equal(t, ":8080", cfg.ListenAddr)
}

func TestLoadCommonConfigEnvOverride(t *testing.T) {
	t.Setenv("SCRAPER_GITHUB_TOKEN", "from-env")
	path := writeFile(t, t.TempDir(), "common_config.json", `{"github_token": "from-file"}`)

	cfg, err := LoadCommonConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GithubToken)
}

func TestLoadSchoolConfigNameFromFilename(t *testing.T) {
	path := writeFile(t, t.TempDir(), "gymnasium-musterstadt.json", `{
		"api": "untis-monitor",
		"url": "https://example.com/plan.htm",
		"columns": ["class", "lesson", "subject"]
	}`)

	cfg, err := LoadSchoolConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "gymnasium-musterstadt", cfg.Name)
	assert.Equal(t, "untis-monitor", cfg.API)
}

func TestLoadSchoolConfigRequiresAPI(t *testing.T) {
	path := writeFile(t, t.TempDir(), "school.json", `{"columns": ["lesson"]}`)

	_, err := LoadSchoolConfig(path)
	assert.Error(t, err)
}

func TestLoadSchoolConfigRejectsUnknownColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "school.json", `{
		"api": "untis-monitor",
		"columns": ["lesson", "bogus"]
	}`)

	_, err := LoadSchoolConfig(path)
	var cfgErr *untis.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoadSchoolConfigs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.json", `{"api": "untis-monitor", "columns": ["lesson"]}`)
	writeFile(t, dir, "b.json", `{"api": "dsblight", "id": "abc", "columns": ["lesson"]}`)
	writeFile(t, dir, "notes.txt", "ignored")

	configs, err := LoadSchoolConfigs(dir)
	require.NoError(t, err)
	assert.Len(t, configs, 2)
}

func TestParserOptions(t *testing.T) {
	separated := false
	cfg := &SchoolConfig{
		API:              "untis-monitor",
		Columns:          []string{"lesson", "subject"},
		ClassesSeparated: &separated,
		Classes:          []string{"5a", "5b"},
	}

	opts, err := cfg.ParserOptions()
	require.NoError(t, err)

	assert.Equal(t, []untis.ColumnType{untis.ColLesson, untis.ColSubject}, opts.Columns)
	assert.False(t, opts.ClassesSeparated)

	roster, err := opts.Roster()
	require.NoError(t, err)
	assert.Equal(t, []string{"5a", "5b"}, roster)
}

func TestParserOptionsSeparatedDefaultsTrue(t *testing.T) {
	cfg := &SchoolConfig{API: "untis-monitor", Columns: []string{"lesson"}}

	opts, err := cfg.ParserOptions()
	require.NoError(t, err)
	assert.True(t, opts.ClassesSeparated)
}
