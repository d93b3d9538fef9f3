package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/spendgraph/spendgraph/pkg/service/classify"
	"github.com/urfave/cli/v3"
)

// App holds the optional TOML application configuration that tunes
// classification: a replacement category vocabulary and shelf-life
// overrides per product keyword.
type App struct {
	path string
}

// Flags returns CLI flags for the application configuration
func (a *App) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to TOML application configuration",
			Sources:     cli.EnvVars("SPENDGRAPH_CONFIG"),
			Destination: &a.path,
		},
	}
}

// AppConfig is the parsed TOML application configuration
type AppConfig struct {
	Classifier ClassifierConfig `toml:"classifier"`
	ShelfLife  []ShelfLifeRule  `toml:"shelf_life"`
}

// ClassifierConfig tunes the item classifier
type ClassifierConfig struct {
	// Categories replaces the default category vocabulary when set
	Categories []string `toml:"categories"`
}

// ShelfLifeRule overrides the predicted shelf life for a product keyword
type ShelfLifeRule struct {
	Keyword string `toml:"keyword"`
	Days    int    `toml:"days"`
}

// Validate checks if the AppConfig is valid
func (c *AppConfig) Validate() error {
	seen := make(map[string]bool)
	for _, rule := range c.ShelfLife {
		if rule.Keyword == "" {
			return goerr.Wrap(ErrInvalidConfig, "shelf_life keyword is required")
		}
		if rule.Days <= 0 {
			return goerr.Wrap(ErrInvalidConfig, "shelf_life days must be positive",
				goerr.V("keyword", rule.Keyword), goerr.V("days", rule.Days))
		}
		if seen[rule.Keyword] {
			return goerr.Wrap(ErrDuplicateKeyword, "duplicate shelf_life keyword",
				goerr.V("keyword", rule.Keyword))
		}
		seen[rule.Keyword] = true
	}

	for _, category := range c.Classifier.Categories {
		if category == "" {
			return goerr.Wrap(ErrInvalidConfig, "empty category name")
		}
	}

	return nil
}

// ClassifierOptions converts the configuration into classifier options
func (c *AppConfig) ClassifierOptions() []classify.Option {
	var opts []classify.Option
	if len(c.Classifier.Categories) > 0 {
		opts = append(opts, classify.WithCategories(c.Classifier.Categories))
	}
	if len(c.ShelfLife) > 0 {
		overrides := make(map[string]int, len(c.ShelfLife))
		for _, rule := range c.ShelfLife {
			overrides[rule.Keyword] = rule.Days
		}
		opts = append(opts, classify.WithShelfLife(overrides))
	}
	return opts
}

// Configure loads the TOML file when a path is set. Without a path it
// returns an empty configuration, which leaves the classifier defaults
// untouched.
func (a *App) Configure() (*AppConfig, error) {
	if a.path == "" {
		return &AppConfig{}, nil
	}
	return LoadAppConfig(a.path)
}

// LoadAppConfig loads the application configuration from a TOML file
func LoadAppConfig(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V("path", path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse TOML config", goerr.V("path", path))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V("path", path))
	}

	return &config, nil
}
