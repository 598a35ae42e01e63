// Package config loads runtime settings from defaults, an optional YAML
// file and the environment, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"leetui/internal/editor"
	"leetui/internal/leetcode"
)

// Config controls runtime behavior of the client.
type Config struct {
	Credentials  Credentials   `yaml:"-"`
	BaseURL      string        `yaml:"base_url" env:"LEETUI_BASE_URL"`
	WorkspaceDir string        `yaml:"workspace_dir" env:"LEETUI_WORKSPACE"`
	LogPath      string        `yaml:"log_path" env:"LEETUI_LOG"`
	Debug        bool          `yaml:"debug" env:"LEETUI_DEBUG"`
	Editor       EditorConfig  `yaml:"editor"`
	UI           UIConfig      `yaml:"ui"`
	Network      NetworkConfig `yaml:"network"`
}

// Credentials come from the environment only.
type Credentials struct {
	Session string `env:"LEETCODE_SESSION,required,notEmpty"`
	CSRF    string `env:"CSRF_TOKEN,required,notEmpty"`
}

type EditorConfig struct {
	Mode    string `yaml:"mode" env:"LEETUI_EDITOR_MODE"`
	Command string `yaml:"command" env:"LEETUI_EDITOR"`
}

type UIConfig struct {
	StyleVariant string `yaml:"style_variant" env:"LEETUI_STYLE"`
	ASCII        bool   `yaml:"ascii" env:"LEETUI_ASCII"`
}

type NetworkConfig struct {
	Timeout      time.Duration `yaml:"timeout" env:"LEETUI_TIMEOUT"`
	PollInterval time.Duration `yaml:"poll_interval" env:"LEETUI_POLL_INTERVAL"`
	MaxPolls     int           `yaml:"max_polls" env:"LEETUI_MAX_POLLS"`
	Workers      int           `yaml:"workers" env:"LEETUI_WORKERS"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL: leetcode.DefaultBaseURL,
		Editor: EditorConfig{
			Mode: string(editor.ModeAuto),
		},
		UI: UIConfig{
			StyleVariant: "modern_arcade",
		},
		Network: NetworkConfig{
			Timeout:      30 * time.Second,
			PollInterval: time.Second,
			MaxPolls:     60,
			Workers:      4,
		},
	}
}

// DefaultPath is ~/.config/leetui/config.yaml, honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "leetui", "config.yaml")
}

// Load reads path (or the default location, which may be absent), then
// the environment. environ replaces the process environment when non-nil.
func Load(path string, environ map[string]string) (Config, error) {
	cfg := DefaultConfig()

	optional := path == ""
	if optional {
		path = DefaultPath()
	}
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(b, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case optional && errors.Is(err, fs.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Credentials.Session) == "" || strings.TrimSpace(c.Credentials.CSRF) == "" {
		return errors.New("LEETCODE_SESSION and CSRF_TOKEN must be set")
	}

	if c.BaseURL == "" {
		c.BaseURL = leetcode.DefaultBaseURL
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("invalid base url %q", c.BaseURL)
	}

	mode, err := editor.ParseMode(c.Editor.Mode)
	if err != nil {
		return err
	}
	c.Editor.Mode = string(mode)

	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	if c.UI.StyleVariant == "" {
		c.UI.StyleVariant = "modern_arcade"
	}

	if c.Network.Timeout <= 0 {
		c.Network.Timeout = 30 * time.Second
	}
	if c.Network.PollInterval <= 0 {
		c.Network.PollInterval = time.Second
	}
	if c.Network.MaxPolls <= 0 {
		c.Network.MaxPolls = 60
	}
	if c.Network.Workers <= 0 {
		c.Network.Workers = 4
	}

	if c.WorkspaceDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.WorkspaceDir = filepath.Join(home, ".leetui")
	}
	if strings.HasPrefix(c.WorkspaceDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.WorkspaceDir = filepath.Join(home, c.WorkspaceDir[2:])
	}
	return nil
}
