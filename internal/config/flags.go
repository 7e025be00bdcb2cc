package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix     = "TRIVIABROWSE"
	defaultDotEnv = ".env"
)

// Setting keys, in the TOML file's dotted form
const (
	keyConfig       = "config"
	keyVersion      = "version"
	keyBaseURL      = "base_url"
	keyToken        = "token"
	keyTimeout      = "request_timeout"
	keyDiscardStale = "discard_stale_responses"
	keyShowAnswers  = "ui.show_answers"
	keyShowHelp     = "ui.show_help"
	keyLogFile      = "log.file"
	keyTrace        = "log.trace"
)

// envNames maps setting keys to their short environment variable names.
// Keys not listed here still resolve through the TRIVIABROWSE_ prefix,
// e.g. TRIVIABROWSE_UI_SHOW_ANSWERS.
var envNames = map[string]string{
	keyConfig:       "TRIVIABROWSE_CONFIG",
	keyBaseURL:      "TRIVIABROWSE_BASE_URL",
	keyToken:        "TRIVIABROWSE_TOKEN",
	keyTimeout:      "TRIVIABROWSE_TIMEOUT",
	keyDiscardStale: "TRIVIABROWSE_DISCARD_STALE",
	keyTrace:        "TRIVIABROWSE_TRACE",
	keyLogFile:      "TRIVIABROWSE_LOG_FILE",
}

// flagKeys maps CLI flag names to setting keys
var flagKeys = map[string]string{
	"config":        keyConfig,
	"base-url":      keyBaseURL,
	"token":         keyToken,
	"timeout":       keyTimeout,
	"discard-stale": keyDiscardStale,
	"trace":         keyTrace,
	"log-file":      keyLogFile,
}

// Settings is the effective configuration together with where it lives.
type Settings struct {
	Config      *Config
	Path        string
	WriteConfig bool
}

// Load parses configuration from the config file, .env, the environment and
// CLI arguments, in increasing order of precedence.
func Load() (Settings, error) {
	return LoadArgs(os.Args[1:], defaultDotEnv)
}

// LoadArgs allows tests to supply specific args and .env path. The
// environment is read from the process.
func LoadArgs(args []string, dotenvPath string) (Settings, error) {
	dotenv, err := readDotEnv(dotenvPath)
	if err != nil {
		return Settings{}, err
	}

	fset := flag.NewFlagSet("triviabrowse", flag.ContinueOnError)
	fset.SetOutput(new(strings.Builder))

	fset.String("config", "", "path to the TOML config file")
	fset.String("base-url", "", "trivia service base URL")
	fset.String("token", "", "bearer token sent with every request")
	fset.String("timeout", "", "per-request timeout such as 5s (0 disables)")
	fset.Bool("discard-stale", false, "drop list responses that arrive after a newer request was issued")
	fset.Bool("trace", false, "enable JSON trace logging")
	fset.String("log-file", "", "path to the log file")
	writeConfig := fset.Bool("write-config", false, "write the effective configuration to the config file")

	if err := fset.Parse(args); err != nil {
		return Settings{}, err
	}
	if fset.NArg() > 0 {
		return Settings{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fset.Args(), " "))
	}

	v := newViper()
	if p, ok := dotenv[envNames[keyConfig]]; ok {
		v.SetDefault(keyConfig, p)
	}
	bindFlags(v, fset)

	configPath := v.GetString(keyConfig)
	svc := NewConfigService(configPath)
	var fileCfg *Config
	if configPath != "" && !*writeConfig {
		fileCfg, err = svc.LoadFromPath(configPath)
	} else {
		fileCfg, err = svc.Load()
	}
	if err != nil {
		return Settings{}, err
	}

	// The file is the lowest layer, .env sits above it and below the
	// process environment.
	seedDefaults(v, fileCfg)
	for key, name := range envNames {
		if val, ok := dotenv[name]; ok && strings.TrimSpace(val) != "" {
			v.SetDefault(key, val)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}

	return Settings{
		Config:      cfg,
		Path:        svc.Path(),
		WriteConfig: *writeConfig,
	}, nil
}

// MustLoad returns configuration or exits.
func MustLoad() Settings {
	s, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return s
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, name := range envNames {
		_ = v.BindEnv(key, name)
	}
	return v
}

func seedDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault(keyVersion, cfg.Version)
	v.SetDefault(keyBaseURL, cfg.BaseURL)
	v.SetDefault(keyToken, cfg.Token)
	v.SetDefault(keyTimeout, cfg.RequestTimeout)
	v.SetDefault(keyDiscardStale, cfg.DiscardStaleResponses)
	v.SetDefault(keyShowAnswers, cfg.UISettings.ShowAnswers)
	v.SetDefault(keyShowHelp, cfg.UISettings.ShowHelp)
	v.SetDefault(keyLogFile, cfg.Logging.FilePath)
	v.SetDefault(keyTrace, cfg.Logging.Trace)
}

// bindFlags overrides settings with the flags given on the command line.
// Flags left at their zero value do not override anything.
func bindFlags(v *viper.Viper, fset *flag.FlagSet) {
	fset.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}
		if g, ok := f.Value.(flag.Getter); ok {
			v.Set(key, g.Get())
			return
		}
		v.Set(key, f.Value.String())
	})
}

// readDotEnv returns the values of the .env file. A missing file is empty.
func readDotEnv(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return values, nil
}
