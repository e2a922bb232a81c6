package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"vertretungsplan-scraper/untis"
)

// CommonConfig holds the daemon-wide settings. Secrets can be overridden
// from the environment (SCRAPER_GITHUB_TOKEN etc.) so they do not have to
// live in the JSON file.
type CommonConfig struct {
	OutputDir           string `json:"output_dir"`
	SchoolsDir          string `json:"schools_dir"`
	PollIntervalMinutes int    `json:"poll_interval_minutes"`
	ListenAddr          string `json:"listen_addr"`
	GithubToken         string `json:"github_token" envconfig:"GITHUB_TOKEN"`
	GithubRepo          string `json:"github_repo"`
	GithubPath          string `json:"github_path"`
}

func LoadCommonConfig(filename string) (*CommonConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg CommonConfig
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if err := envconfig.Process("scraper", &cfg); err != nil {
		return nil, err
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "output"
	}
	if cfg.SchoolsDir == "" {
		cfg.SchoolsDir = "config/schools"
	}
	if cfg.PollIntervalMinutes <= 0 {
		cfg.PollIntervalMinutes = 10
	}
	return &cfg, nil
}

// SchoolConfig describes one school's substitution schedule: where to
// fetch it (api discriminator plus adapter-specific fields) and how to
// read its tables (column schema and behavior flags).
type SchoolConfig struct {
	Name     string   `json:"name"`
	API      string   `json:"api"`
	URL      string   `json:"url,omitempty"`
	URLs     []string `json:"urls,omitempty"`
	ID       string   `json:"id,omitempty"`
	Encoding string   `json:"encoding,omitempty"`
	Login    bool     `json:"login,omitempty"`
	Username string   `json:"username,omitempty"`
	Password string   `json:"password,omitempty"`

	Columns            []string          `json:"columns"`
	ClassInExtraLine   bool              `json:"classInExtraLine,omitempty"`
	ClassesSeparated   *bool             `json:"classesSeparated,omitempty"`
	ExcludeClasses     []string          `json:"excludeClasses,omitempty"`
	ClassRegex         string            `json:"classRegex,omitempty"`
	LastChangeLeft     bool              `json:"lastChangeLeft,omitempty"`
	LastChangeSelector string            `json:"lastChangeSelector,omitempty"`
	Classes            []string          `json:"classes,omitempty"`
	Colors             map[string]string `json:"colors,omitempty"`
}

func LoadSchoolConfig(filename string) (*SchoolConfig, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var cfg SchoolConfig
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	if cfg.API == "" {
		return nil, fmt.Errorf("%s: missing api", filename)
	}
	// Fail on schema mistakes at load time, before anything is fetched.
	if _, err := untis.ParseColumns(cfg.Columns); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return &cfg, nil
}

// LoadSchoolConfigs reads every school config file in the given directory.
func LoadSchoolConfigs(dir string) ([]*SchoolConfig, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	var configs []*SchoolConfig
	for _, file := range files {
		cfg, err := LoadSchoolConfig(file)
		if err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, nil
}

// ParserOptions converts the school config into engine options. The class
// roster is served from the configured class list.
func (c *SchoolConfig) ParserOptions() (untis.ParserOptions, error) {
	columns, err := untis.ParseColumns(c.Columns)
	if err != nil {
		return untis.ParserOptions{}, err
	}
	separated := true
	if c.ClassesSeparated != nil {
		separated = *c.ClassesSeparated
	}
	classes := c.Classes
	return untis.ParserOptions{
		Columns:            columns,
		ClassInExtraLine:   c.ClassInExtraLine,
		ClassesSeparated:   separated,
		ExcludeClasses:     c.ExcludeClasses,
		ClassRegex:         c.ClassRegex,
		LastChangeLeft:     c.LastChangeLeft,
		LastChangeSelector: c.LastChangeSelector,
		Roster: func() ([]string, error) {
			return classes, nil
		},
		Colors: untis.NewColorProvider(c.Colors),
	}, nil
}
