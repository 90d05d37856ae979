// Package config loads the CLI's settings. Credentials are not settings and
// never pass through here.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// EnvPrefix prefixes every environment override, e.g. JIRA_ASSETS_LOG_LEVEL.
	EnvPrefix = "JIRA_ASSETS"
	// FileName is the optional settings file inside the data directory.
	FileName = "settings.yaml"
	// AppDirName is the data directory under the user config dir.
	AppDirName = "jira-assets-cli"
)

const (
	KeyDataDir  = "data-dir"
	KeyLogLevel = "log-level"
	KeyTimeout  = "timeout"
	KeyNoColor  = "no-color"
)

const DefaultLogLevel = "warn"

var logLevels = []string{"debug", "info", "warn", "error"}

// Settings holds process-wide options.
type Settings struct {
	DataDir  string        `mapstructure:"data-dir"`
	LogLevel string        `mapstructure:"log-level"`
	Timeout  time.Duration `mapstructure:"timeout"`
	NoColor  bool          `mapstructure:"no-color"`
}

// DefaultDataDir returns <user config dir>/jira-assets-cli.
func DefaultDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, AppDirName), nil
}

// AddFlags registers the persistent flags Load reads.
func AddFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String(KeyDataDir, "", "directory holding credentials and settings (default: user config dir)")
	pf.String(KeyLogLevel, DefaultLogLevel, "log level (debug, info, warn, error)")
	pf.Duration(KeyTimeout, 0, "HTTP request timeout, 0 for none")
	pf.Bool(KeyNoColor, false, "disable coloured output")
}

// Load resolves Settings for cmd. Precedence is flag, then environment, then
// settings.yaml in the data directory, then flag defaults. The data directory
// itself cannot be set from settings.yaml.
func Load(cmd *cobra.Command) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	dir := v.GetString(KeyDataDir)
	if dir == "" {
		d, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}
	s.DataDir = dir
	s.LogLevel = strings.ToLower(strings.TrimSpace(s.LogLevel))
	if s.LogLevel == "" {
		s.LogLevel = DefaultLogLevel
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks option values.
func (s *Settings) Validate() error {
	if !slices.Contains(logLevels, s.LogLevel) {
		return fmt.Errorf("invalid log level %q (want one of %s)", s.LogLevel, strings.Join(logLevels, ", "))
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
