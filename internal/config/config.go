// Package config loads the tool settings from an optional YAML file, the
// environment and a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cli/go-gh/v2/pkg/auth"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/ryo246912/gh-comment-pace/internal/github"
	"github.com/ryo246912/gh-comment-pace/internal/models"
)

const (
	// AppName names the config directory and the environment prefix
	AppName = "gh-comment-pace"

	envPrefix = "GH_COMMENT_PACE_"
)

// ErrMissingToken is returned when no token could be found anywhere
var ErrMissingToken = errors.New("no GitHub token found: pass --token, set GH_COMMENT_PACE_TOKEN or GITHUB_TOKEN, or run `gh auth login`")

var configValidator = validator.New()

// ParseError indicates a configuration file exists but contains invalid content.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid config at %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Config holds the settings of a run
type Config struct {
	// Host is the GitHub host, e.g. "github.com"
	Host string `yaml:"host" validate:"required,hostname_rfc1123"`
	// APIURL overrides the REST root derived from Host
	APIURL    string `yaml:"api_url" validate:"omitempty,url"`
	UserAgent string `yaml:"user_agent" validate:"required"`
	// PageSize is sent as per_page; GitHub caps it at 100
	PageSize    int           `yaml:"page_size" validate:"min=1,max=100"`
	MaxPages    int           `yaml:"max_pages" validate:"min=1"`
	Concurrency int           `yaml:"concurrency" validate:"min=1,max=64"`
	Timeout     time.Duration `yaml:"timeout" validate:"min=0"`
	Categories  []string      `yaml:"categories" validate:"min=1"`
	// Token is never read from the YAML file
	Token string `yaml:"-"`
}

// Default returns the built-in settings
func Default() Config {
	return Config{
		Host:        "github.com",
		UserAgent:   AppName,
		PageSize:    100,
		MaxPages:    10000,
		Concurrency: 8,
		Timeout:     30 * time.Second,
		Categories:  []string{string(models.ReviewComments), string(models.Reviews), string(models.IssueComments)},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/gh-comment-pace/config.yml
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, "config.yml")
}

// Load reads path (a missing file at the default location is fine), loads
// .env from the working directory, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		content, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(content, &cfg); err != nil {
				return Config{}, &ParseError{Path: path, Err: err}
			}
		case errors.Is(err, os.ErrNotExist) && !explicit:
		default:
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field
func (c Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.CommentCategories(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.APIURL != "" {
		if err := github.CheckAPIHost(c.APIURL, c.Host); err != nil {
			return fmt.Errorf("invalid config: api_url: %w", err)
		}
	}
	return nil
}

// CommentCategories returns the configured categories in report order
func (c Config) CommentCategories() ([]models.CommentCategory, error) {
	return models.ParseCategories(c.Categories)
}

// ResolveToken picks the first token from flag, the environment (including
// .env) and the gh CLI credentials for the configured host
func (c Config) ResolveToken(flag string) (string, error) {
	if token := strings.TrimSpace(flag); token != "" {
		return token, nil
	}
	if c.Token != "" {
		return c.Token, nil
	}
	for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if token := strings.TrimSpace(os.Getenv(key)); token != "" {
			return token, nil
		}
	}
	if token, _ := auth.TokenForHost(c.Host); token != "" {
		return token, nil
	}
	return "", ErrMissingToken
}

// applyEnvOverrides replaces fields with GH_COMMENT_PACE_* variables
func applyEnvOverrides(cfg *Config) error {
	override := func(key string, target *string) {
		if val := os.Getenv(envPrefix + key); val != "" {
			*target = val
		}
	}
	overrideInt := func(key string, target *int) error {
		val := os.Getenv(envPrefix + key)
		if val == "" {
			return nil
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", envPrefix, key, err)
		}
		*target = n
		return nil
	}

	override("HOST", &cfg.Host)
	override("API_URL", &cfg.APIURL)
	override("USER_AGENT", &cfg.UserAgent)
	override("TOKEN", &cfg.Token)

	for key, target := range map[string]*int{
		"PAGE_SIZE":   &cfg.PageSize,
		"MAX_PAGES":   &cfg.MaxPages,
		"CONCURRENCY": &cfg.Concurrency,
	} {
		if err := overrideInt(key, target); err != nil {
			return err
		}
	}

	if val := os.Getenv(envPrefix + "TIMEOUT"); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", envPrefix, err)
		}
		cfg.Timeout = d
	}
	if val := os.Getenv(envPrefix + "CATEGORIES"); val != "" {
		cfg.Categories = SplitList(val)
	}
	return nil
}

// SplitList splits a comma separated list, dropping empty entries
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
