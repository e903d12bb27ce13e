package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/fakeyudi/worktrack/internal/advisory"
)

// Duration is a time.Duration written as "10s" in config files and env vars.
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Config holds all configurable worktrack settings.
type Config struct {
	APIURL          string   `json:"api_url" env:"API_URL"`
	AdvisoryURL     string   `json:"advisory_url" env:"ADVISORY_URL"`
	AdvisoryKey     string   `json:"advisory_key,omitempty" env:"ADVISORY_KEY"`
	RequestTimeout  Duration `json:"request_timeout" env:"REQUEST_TIMEOUT"`
	RefreshInterval Duration `json:"refresh_interval" env:"REFRESH_INTERVAL"` // negative disables polling; zero is unset
	EventCase       string   `json:"event_case" env:"EVENT_CASE"`             // "upper" | "lower"
	// Booleans are pointers so an explicit false in a later layer wins.
	DiscardStale *bool `json:"discard_stale,omitempty" env:"DISCARD_STALE"`
	Debug        *bool `json:"debug,omitempty" env:"DEBUG"`
}

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "WORKTRACK_"

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		APIURL:          "http://localhost:5000/api",
		AdvisoryURL:     advisory.DefaultURL,
		RequestTimeout:  Duration(10 * time.Second),
		RefreshInterval: Duration(time.Minute),
		EventCase:       "upper",
	}
}

// UpperEvents reports whether event names go on the wire upper-case.
func (c Config) UpperEvents() bool {
	return c.EventCase != "lower"
}

// StaleGuard reports whether out-of-order snapshots are dropped.
func (c Config) StaleGuard() bool {
	return c.DiscardStale != nil && *c.DiscardStale
}

// DebugLog reports whether the debug log is enabled.
func (c Config) DebugLog() bool {
	return c.Debug != nil && *c.Debug
}

// Validate checks values that would otherwise fail later at request time.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api_url %q: want an absolute http(s) URL", c.APIURL)
	}
	switch c.EventCase {
	case "upper", "lower":
	default:
		return fmt.Errorf("invalid event_case %q: want upper or lower", c.EventCase)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request_timeout %s: must be positive", time.Duration(c.RequestTimeout))
	}
	if c.RefreshInterval == 0 {
		return fmt.Errorf("invalid refresh_interval 0s: use a negative value to disable polling")
	}
	return nil
}

// GlobalPath returns ~/.config/worktrack/config.json.
func GlobalPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "worktrack", "config.json"), nil
}

// GlobalExists reports whether the global config file is present.
func GlobalExists() bool {
	p, err := GlobalPath()
	if err != nil {
		return false
	}
	_, err = os.Stat(p)
	return err == nil
}

// LoadGlobal reads ~/.config/worktrack/config.json.
// Returns defaults if the file is absent.
func LoadGlobal() (*Config, error) {
	path, err := GlobalPath()
	if err != nil {
		return nil, err
	}
	return loadFile(path, true)
}

// LoadProject reads .worktrackconfig in the current working directory.
// Returns nil (no error) if the file is absent.
func LoadProject() (*Config, error) {
	return loadFile(".worktrackconfig", false)
}

// SaveGlobal writes cfg to the global config file.
func SaveGlobal(cfg Config) error {
	path, err := GlobalPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	// The advisory key may live here, so keep the file private.
	return os.WriteFile(path, data, 0o600)
}

// loadFile reads and parses a JSON config file at path.
// If returnDefaults is true, returns defaults when the file is absent.
// If returnDefaults is false, returns nil when the file is absent.
func loadFile(path string, returnDefaults bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if returnDefaults {
				d := Defaults()
				return &d, nil
			}
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	overlay(&result, global)
	overlay(&result, project)
	return result
}

func overlay(dst *Config, src *Config) {
	if src == nil {
		return
	}
	if src.APIURL != "" {
		dst.APIURL = src.APIURL
	}
	if src.AdvisoryURL != "" {
		dst.AdvisoryURL = src.AdvisoryURL
	}
	if src.AdvisoryKey != "" {
		dst.AdvisoryKey = src.AdvisoryKey
	}
	if src.RequestTimeout != 0 {
		dst.RequestTimeout = src.RequestTimeout
	}
	if src.RefreshInterval != 0 {
		dst.RefreshInterval = src.RefreshInterval
	}
	if src.EventCase != "" {
		dst.EventCase = src.EventCase
	}
	if src.DiscardStale != nil {
		v := *src.DiscardStale
		dst.DiscardStale = &v
	}
	if src.Debug != nil {
		v := *src.Debug
		dst.Debug = &v
	}
}

// ApplyEnv overrides cfg with any WORKTRACK_* environment variables that are set.
func ApplyEnv(cfg *Config) error {
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load runs the full chain: defaults, global file, project file, environment.
func Load() (Config, error) {
	global, err := LoadGlobal()
	if err != nil {
		return Config{}, fmt.Errorf("loading global config: %w", err)
	}
	project, err := LoadProject()
	if err != nil {
		return Config{}, fmt.Errorf("loading project config: %w", err)
	}
	cfg := Merge(global, project)
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
