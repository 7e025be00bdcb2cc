package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"triviabrowse/internal/eventbus"
)

const (
	currentVersion  = 1
	localConfigFile = ".triviabrowse.toml"
	defaultBaseURL  = "http://127.0.0.1:5000"
)

// Config represents the application configuration
type Config struct {
	Version               int        `toml:"version" mapstructure:"version"`
	BaseURL               string     `toml:"base_url" mapstructure:"base_url"`
	Token                 string     `toml:"token,omitempty" mapstructure:"token"`
	RequestTimeout        string     `toml:"request_timeout" mapstructure:"request_timeout"`
	DiscardStaleResponses bool       `toml:"discard_stale_responses" mapstructure:"discard_stale_responses"`
	UISettings            UISettings `toml:"ui" mapstructure:"ui"`
	Logging               Logging    `toml:"log" mapstructure:"log"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	ShowAnswers bool `toml:"show_answers" mapstructure:"show_answers"`
	ShowHelp    bool `toml:"show_help" mapstructure:"show_help"`
}

// Logging holds the log destination and trace switch
type Logging struct {
	FilePath string `toml:"file,omitempty" mapstructure:"file"`
	Trace    bool   `toml:"trace" mapstructure:"trace"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Version:        currentVersion,
		BaseURL:        defaultBaseURL,
		RequestTimeout: "0s",
		UISettings: UISettings{
			ShowHelp: true,
		},
	}
}

// Timeout returns the parsed request timeout. Zero means no timeout.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(c.RequestTimeout))
	if err != nil || d < 0 {
		return 0
	}
	return d
}

// Validate checks that the configuration can drive a client.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url must not be empty")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url must use http or https (got %q)", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("base_url has no host: %q", c.BaseURL)
	}
	if strings.TrimSpace(c.RequestTimeout) != "" {
		d, err := time.ParseDuration(strings.TrimSpace(c.RequestTimeout))
		if err != nil {
			return fmt.Errorf("invalid request_timeout %q: %w", c.RequestTimeout, err)
		}
		if d < 0 {
			return fmt.Errorf("request_timeout must be >= 0 (got %s)", d)
		}
	}
	return nil
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path. An empty path picks
// ./.triviabrowse.toml when present, otherwise the user config directory.
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service that publishes load and save events
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath resolves the config file location.
func DefaultPath() string {
	if _, err := os.Stat(localConfigFile); err == nil {
		return localConfigFile
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return localConfigFile
		}
		configDir = filepath.Join(home, ".config")
	}
	return filepath.Join(configDir, "triviabrowse", "config.toml")
}

func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the service's file, falling back to defaults when it is missing.
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg, "")
		return cfg, nil
	}
	return cs.LoadFromPath(cs.filePath)
}

// Save writes config to the service's file
func (cs *configService) Save(config *Config) error {
	return cs.SaveToPath(config, cs.filePath)
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Version == 0 {
		cfg.Version = currentVersion
	}

	cs.publishLoaded(cfg, path)
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: path})
	}
	return nil
}

func (cs *configService) publishLoaded(cfg *Config, path string) {
	if cs.bus == nil {
		return
	}
	cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: path, BaseURL: cfg.BaseURL})
}
