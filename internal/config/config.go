// Package config loads dojopool settings from defaults, an optional YAML
// file, and DOJOPOOL_* environment variables, in that order. The effective
// config is held package-wide so screens can read it without plumbing.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// UIConfig tunes the interactive screens.
type UIConfig struct {
	// Overscan is how many extra rows the virtualized lists render above
	// and below the visible band.
	Overscan     int  `yaml:"overscan"       env:"DOJOPOOL_UI_OVERSCAN"`
	RowCacheSize int  `yaml:"row_cache_size" env:"DOJOPOOL_UI_ROW_CACHE_SIZE"`
	Mouse        bool `yaml:"mouse"          env:"DOJOPOOL_UI_MOUSE"`
	AltScreen    bool `yaml:"alt_screen"     env:"DOJOPOOL_UI_ALT_SCREEN"`
}

// GatewayConfig selects and describes the backend gateway.
type GatewayConfig struct {
	// URL is shown in the status bar; no network client lives in this
	// repo, so it is informational until a gateway binary provides one.
	URL    string `yaml:"url"    env:"DOJOPOOL_GATEWAY_URL"`
	Region string `yaml:"region" env:"DOJOPOOL_GATEWAY_REGION"`
	// MinAPIVersion is the oldest gateway API this client accepts.
	MinAPIVersion string `yaml:"min_api_version" env:"DOJOPOOL_GATEWAY_MIN_API_VERSION"`
	Demo          bool   `yaml:"demo"            env:"DOJOPOOL_GATEWAY_DEMO"`
	DemoSeed      int64  `yaml:"demo_seed"       env:"DOJOPOOL_GATEWAY_DEMO_SEED"`
}

// ChatConfig tunes the chat screen.
type ChatConfig struct {
	Channel string `yaml:"channel" env:"DOJOPOOL_CHAT_CHANNEL"`
	Author  string `yaml:"author"  env:"DOJOPOOL_CHAT_AUTHOR"`
	// HistoryPage is how many messages each history fetch pulls.
	HistoryPage  int           `yaml:"history_page"  env:"DOJOPOOL_CHAT_HISTORY_PAGE"`
	PollInterval time.Duration `yaml:"poll_interval" env:"DOJOPOOL_CHAT_POLL_INTERVAL"`
}

// LoggingConfig controls the zerolog sink.
type LoggingConfig struct {
	Level  string `yaml:"level"  env:"DOJOPOOL_LOG_LEVEL"`
	Format string `yaml:"format" env:"DOJOPOOL_LOG_FORMAT"` // console or json
	Output string `yaml:"output" env:"DOJOPOOL_LOG_OUTPUT"` // stderr or file
	File   string `yaml:"file"   env:"DOJOPOOL_LOG_FILE"`
}

// Config is the full dojopool configuration.
type Config struct {
	UI      UIConfig      `yaml:"ui"`
	Gateway GatewayConfig `yaml:"gateway"`
	Chat    ChatConfig    `yaml:"chat"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the configuration used when no file or env overrides
// exist. Demo mode is on: the binary is fully usable out of the box.
func Default() Config {
	return Config{
		UI: UIConfig{
			Overscan:     3,
			RowCacheSize: 512,
			Mouse:        true,
			AltScreen:    true,
		},
		Gateway: GatewayConfig{
			Region:        "au-southeast",
			MinAPIVersion: "1.0.0",
			Demo:          true,
			DemoSeed:      42,
		},
		Chat: ChatConfig{
			Channel:      "dojo-general",
			Author:       "you",
			HistoryPage:  50,
			PollInterval: 2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

// Validate rejects values the screens cannot work with.
func (c Config) Validate() error {
	if c.UI.Overscan < 0 {
		return fmt.Errorf("ui.overscan must be >= 0, got %d", c.UI.Overscan)
	}
	if c.UI.RowCacheSize < 0 {
		return fmt.Errorf("ui.row_cache_size must be >= 0, got %d", c.UI.RowCacheSize)
	}
	if c.Chat.HistoryPage < 1 {
		return fmt.Errorf("chat.history_page must be >= 1, got %d", c.Chat.HistoryPage)
	}
	if c.Chat.PollInterval < 100*time.Millisecond {
		return fmt.Errorf("chat.poll_interval must be >= 100ms, got %s", c.Chat.PollInterval)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Output {
	case "", "stderr", "file":
	default:
		return fmt.Errorf("logging.output must be stderr or file, got %q", c.Logging.Output)
	}
	return nil
}

// DefaultPath returns the per-user config file location,
// ~/.config/dojopool/config.yaml on Linux.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "dojopool", "config.yaml"), nil
}

// DefaultLogPath returns where file logging goes when no path is set.
func DefaultLogPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(dir, "dojopool", "dojopool.log"), nil
}

// Load builds the effective config: defaults, then the YAML file at path
// (or the default path when path is empty), then environment overrides.
// A missing file at the default path is fine; a missing explicit path is
// an error, since the user asked for it.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		// No config file yet; defaults apply.
	default:
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("apply environment overrides: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// starterHeader is written above the YAML by Init so a fresh file explains
// itself.
const starterHeader = `# dojopool configuration.
# Every key can also be set via DOJOPOOL_* environment variables,
# e.g. DOJOPOOL_UI_OVERSCAN=5. Environment variables win.
`

// ErrConfigExists is returned by Init when the target file already exists
// and force was not set.
var ErrConfigExists = errors.New("configuration file already exists")

// Init writes a starter config file with the default values. It refuses to
// overwrite an existing file unless force is set, and returns the path it
// wrote.
func Init(path string, force bool) (string, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !os.IsNotExist(err) {
			return path, fmt.Errorf("check config path %s: %w", path, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return path, fmt.Errorf("create config directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return path, fmt.Errorf("marshal default config: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(starterHeader), data...), 0o600); err != nil {
		return path, fmt.Errorf("write config %s: %w", path, err)
	}
	return path, nil
}

var (
	currentMu sync.RWMutex
	current   = Default()
)

// Set installs cfg as the process-wide configuration.
func Set(cfg Config) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current = cfg
}

// Current returns the process-wide configuration; defaults until Set runs.
func Current() Config {
	currentMu.RLock()
	defer currentMu.RUnlock()
	return current
}
