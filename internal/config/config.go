package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "rpgmplay"

type Config struct {
	DefaultFolder string `koanf:"default_folder"` // folder scanned when no path is given

	Audio AudioConfig `koanf:"audio"`
	UI    UIConfig    `koanf:"ui"`
	Log   LogConfig   `koanf:"log"`

	// MPRIS remote control (Linux only)
	MPRIS MPRISConfig `koanf:"mpris"`

	// Desktop notifications when a track starts (Linux only)
	Notify NotifyConfig `koanf:"notify"`
}

// AudioConfig holds output device settings.
type AudioConfig struct {
	Backend         string `koanf:"backend"`           // "portaudio", "speaker" or "null" (default: "portaudio")
	FramesPerBuffer int    `koanf:"frames_per_buffer"` // frames per callback (default: 1024)
	PositionBuffer  int    `koanf:"position_buffer"`   // capacity of the position channel (default: 16)
}

// UIConfig holds terminal interface settings.
type UIConfig struct {
	PollIntervalMS int `koanf:"poll_interval_ms"` // position polling period (default: 100)
}

// LogConfig holds file logging settings.
type LogConfig struct {
	Enabled *bool  `koanf:"enabled"` // write a log file (default: true)
	Level   string `koanf:"level"`   // logrus level name (default: "info")
	JSON    bool   `koanf:"json"`    // JSON lines instead of text
}

// MPRISConfig holds D-Bus remote control settings.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // register on the session bus (default: true)
}

// NotifyConfig holds desktop notification settings.
type NotifyConfig struct {
	Enabled bool `koanf:"enabled"` // default: false
}

func Load() (*Config, error) {
	return LoadFrom(getConfigPaths()...)
}

// LoadFrom loads the given files in order, later files overriding earlier
// ones. Missing files are skipped.
func LoadFrom(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		DefaultFolder: "", // empty means use cwd
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in default_folder
	if cfg.DefaultFolder != "" {
		cfg.DefaultFolder = expandPath(cfg.DefaultFolder)
	}

	cfg.Audio.Backend = strings.ToLower(strings.TrimSpace(cfg.Audio.Backend))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/rpgmplay/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// GetAudioConfig returns the audio configuration with defaults applied.
func (c *Config) GetAudioConfig() AudioConfig {
	cfg := c.Audio

	switch cfg.Backend {
	case "portaudio", "speaker", "null":
	default:
		cfg.Backend = "portaudio"
	}
	if cfg.FramesPerBuffer <= 0 || cfg.FramesPerBuffer > 16384 {
		cfg.FramesPerBuffer = 1024
	}
	if cfg.PositionBuffer <= 0 {
		cfg.PositionBuffer = 16
	}

	return cfg
}

// GetUIConfig returns the UI configuration with defaults applied.
func (c *Config) GetUIConfig() UIConfig {
	cfg := c.UI
	if cfg.PollIntervalMS < 10 || cfg.PollIntervalMS > 5000 {
		cfg.PollIntervalMS = 100
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Enabled == nil {
		enabled := true
		cfg.Enabled = &enabled
	}
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	return cfg
}

// LogEnabled returns true if file logging is on.
func (c *Config) LogEnabled() bool {
	return *c.GetLogConfig().Enabled
}

// MPRISEnabled returns true if the MPRIS adapter should be registered.
func (c *Config) MPRISEnabled() bool {
	return c.MPRIS.Enabled == nil || *c.MPRIS.Enabled
}
