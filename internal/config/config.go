package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"github.com/user/jobboard/internal/listing"
)

const (
	DefaultEndpoint  = "https://api.airtable.com/v0/appWI09FiPgQXRTxb/job%20listing"
	DefaultSubmitURL = "https://airtable.com/shrF7d5hcPg97327C"
)

type Config struct {
	DataDir   string        `mapstructure:"data_dir"`
	Source    SourceConfig  `mapstructure:"source"`
	SubmitURL string        `mapstructure:"submit_url"`
	Listing   ListingConfig `mapstructure:"listing"`
	Log       LogConfig     `mapstructure:"log"`
}

// SourceConfig points at the remote record store.
type SourceConfig struct {
	Endpoint string        `mapstructure:"endpoint"`
	Token    Secret        `mapstructure:"token"`
	Timeout  time.Duration `mapstructure:"timeout"` // 0 disables the client timeout
}

type ListingConfig struct {
	Others string `mapstructure:"others"` // include or exclude
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Secret holds a credential that must never end up in logs or output.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[redacted]"
}

func (s Secret) GoString() string {
	return `config.Secret("` + s.String() + `")`
}

func (s Secret) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Reveal returns the raw credential for the one place that sends it.
func (s Secret) Reveal() string {
	return string(s)
}

func Load() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	defaultDataDir := filepath.Join(homeDir, ".jobboard")

	viper.SetDefault("data_dir", defaultDataDir)
	viper.SetDefault("source.endpoint", DefaultEndpoint)
	viper.SetDefault("source.token", "")
	viper.SetDefault("source.timeout", "0s")
	viper.SetDefault("submit_url", DefaultSubmitURL)
	viper.SetDefault("listing.others", "include")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")

	// Environment variable overrides
	viper.SetEnvPrefix("JOBBOARD")
	viper.AutomaticEnv()
	viper.BindEnv("data_dir", "JOBBOARD_DATA_DIR")
	viper.BindEnv("source.endpoint", "JOBBOARD_ENDPOINT")
	viper.BindEnv("source.token", "JOBBOARD_TOKEN")
	viper.BindEnv("source.timeout", "JOBBOARD_TIMEOUT")
	viper.BindEnv("submit_url", "JOBBOARD_SUBMIT_URL")
	viper.BindEnv("listing.others", "JOBBOARD_LISTING_OTHERS")
	viper.BindEnv("log.level", "JOBBOARD_LOG_LEVEL")
	viper.BindEnv("log.file", "JOBBOARD_LOG_FILE")

	// Config file
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(viper.GetString("data_dir"))

	// Read config file if exists (ignore error if not found)
	_ = viper.ReadInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(cfg.DataDir, "jobboard.log")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	// Ensure data directory exists
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the values the loader and listing depend on.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Source.Endpoint)
	if err != nil {
		return fmt.Errorf("invalid source.endpoint: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("source.endpoint must be an absolute URL, got %q", c.Source.Endpoint)
	}
	if c.Source.Timeout < 0 {
		return fmt.Errorf("source.timeout must not be negative")
	}
	if _, err := listing.ParsePolicy(c.Listing.Others); err != nil {
		return fmt.Errorf("invalid listing.others: %w", err)
	}
	return nil
}

// Policy returns the configured others-section policy. Call after Validate.
func (c *Config) Policy() listing.Policy {
	p, _ := listing.ParsePolicy(c.Listing.Others)
	return p
}

func (c *Config) SnapshotPath() string {
	return filepath.Join(c.DataDir, "snapshot.db")
}
