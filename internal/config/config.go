package config

import (
	"embed"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/matheuskafuri/dexterm/internal/catalog"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.yaml
var defaultConfigFS embed.FS

// Locale holds the display strings for one language.
type Locale struct {
	Prev   string            `yaml:"prev,omitempty"`
	Next   string            `yaml:"next,omitempty"`
	Empty  string            `yaml:"empty,omitempty"`
	Search string            `yaml:"search,omitempty"`
	Types  map[string]string `yaml:"types,omitempty"`
}

type Config struct {
	APIURL            string            `yaml:"api_url"`
	ListingLimit      int               `yaml:"listing_limit"`
	PageSize          int               `yaml:"page_size"`
	PlaceholderImage  string            `yaml:"placeholder_image"`
	RequestTimeout    string            `yaml:"request_timeout"`
	Concurrency       int               `yaml:"concurrency"`
	TypeFailurePolicy string            `yaml:"type_failure_policy"`
	Language          string            `yaml:"language"`
	LogLevel          string            `yaml:"log_level"`
	Types             []string          `yaml:"types"`
	Translations      map[string]Locale `yaml:"translations,omitempty"`
}

func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.RequestTimeout)
	if err != nil || d <= 0 {
		return 15 * time.Second
	}
	return d
}

// GetPageSize returns the grid page size, defaulting to 18.
func (c *Config) GetPageSize() int {
	if c.PageSize <= 0 {
		return catalog.DefaultPageSize
	}
	return c.PageSize
}

// GetListingLimit returns the listing limit, defaulting to 1300, which is
// enough to fetch the whole catalog in one call.
func (c *Config) GetListingLimit() int {
	if c.ListingLimit <= 0 {
		return 1300
	}
	return c.ListingLimit
}

func (c *Config) GetConcurrency() int {
	if c.Concurrency <= 0 {
		return 8
	}
	return c.Concurrency
}

// FailurePolicy resolves type_failure_policy, falling back to retry.
func (c *Config) FailurePolicy() catalog.FailurePolicy {
	p, err := catalog.ParseFailurePolicy(c.TypeFailurePolicy)
	if err != nil {
		return catalog.RetryOnFailure
	}
	return p
}

func (c *Config) GetLanguage() string {
	if c.Language == "" {
		return "en"
	}
	return c.Language
}

// HasType reports whether key is one of the configured categories.
func (c *Config) HasType(key string) bool {
	for _, t := range c.Types {
		if t == key {
			return true
		}
	}
	return false
}

func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "dexterm", "config.yaml")
}

func LogPath() string {
	return filepath.Join(xdg.StateHome, "dexterm", "dexterm.log")
}

func loadDefaults() (*Config, error) {
	data, err := defaultConfigFS.ReadFile("default_config.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded config: %w", err)
	}
	return &cfg, nil
}

// Load reads the config at path (or the default location), layered over the
// embedded defaults. A missing file is created from the defaults.
func Load(path string) (*Config, error) {
	cfg, err := loadDefaults()
	if err != nil {
		return nil, err
	}

	if path == "" {
		path = DefaultConfigPath()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Non-fatal: embedded defaults still apply
			_ = writeDefaults(path)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func writeDefaults(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, _ := defaultConfigFS.ReadFile("default_config.yaml")
	return os.WriteFile(path, data, 0o644)
}

func validate(cfg *Config) error {
	u, err := url.Parse(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("api_url: invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url: scheme must be http or https, got %q", u.Scheme)
	}
	if cfg.PageSize < 0 {
		return fmt.Errorf("page_size must not be negative, got %d", cfg.PageSize)
	}
	if cfg.ListingLimit < 0 {
		return fmt.Errorf("listing_limit must not be negative, got %d", cfg.ListingLimit)
	}
	if cfg.RequestTimeout != "" {
		if _, err := time.ParseDuration(cfg.RequestTimeout); err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
	}
	if _, err := catalog.ParseFailurePolicy(cfg.TypeFailurePolicy); err != nil {
		return fmt.Errorf("type_failure_policy: %w", err)
	}
	if cfg.Language != "" {
		if _, err := language.Parse(cfg.Language); err != nil {
			return fmt.Errorf("language %q: %w", cfg.Language, err)
		}
	}
	seen := make(map[string]bool, len(cfg.Types))
	for i, t := range cfg.Types {
		if t == "" {
			return fmt.Errorf("types[%d]: name is required", i)
		}
		if seen[t] {
			return fmt.Errorf("types: %q listed twice", t)
		}
		seen[t] = true
	}
	return nil
}
