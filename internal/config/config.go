package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Remote service defaults
const (
	DefaultBaseURL     = "https://avocado.io/api/"
	DefaultLoginPath   = "authentication/login"
	DefaultCouplePath  = "couple"
	DefaultCookieName  = "user_email"
	DefaultUserAgent   = "Avocado Test Api Client v.1.0"
	DefaultContentType = "application/x-www-form-urlencoded"
	DefaultSigHeader   = "X-AvoSig"
)

// FailureMessage is printed for every failure except bad input. It is not configurable.
const FailureMessage = "FAILED.  Signature was tested and failed. Try again and check the auth information."

// ConfigFileName is looked up under $XDG_CONFIG_HOME/avosig when no path is given.
const ConfigFileName = "config.toml"

// Config holds every endpoint and header the tool talks to the API with.
type Config struct {
	LoginURL        string `toml:"login_url"`
	CoupleURL       string `toml:"couple_url"`
	CookieName      string `toml:"cookie_name"`
	UserAgent       string `toml:"user_agent"`
	ContentType     string `toml:"content_type"`
	SignatureHeader string `toml:"signature_header"`
}

// Default returns the configuration the Avocado API expects.
func Default() *Config {
	return &Config{
		LoginURL:        DefaultBaseURL + DefaultLoginPath,
		CoupleURL:       DefaultBaseURL + DefaultCouplePath,
		CookieName:      DefaultCookieName,
		UserAgent:       DefaultUserAgent,
		ContentType:     DefaultContentType,
		SignatureHeader: DefaultSigHeader,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/avosig/config.toml (or ~/.config/avosig/config.toml).
func DefaultPath() (string, error) {
	baseDir := os.Getenv("XDG_CONFIG_HOME")
	if baseDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		baseDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(baseDir, "avosig", ConfigFileName), nil
}

// Load overlays the TOML file at path on top of Default().
// An empty path means DefaultPath(); a missing default file is not an error,
// but a missing explicit path is.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects a config with blank required fields.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"login_url", c.LoginURL},
		{"couple_url", c.CoupleURL},
		{"cookie_name", c.CookieName},
		{"signature_header", c.SignatureHeader},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("config: %s cannot be empty", r.name)
		}
	}
	return nil
}
