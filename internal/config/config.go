// Package config loads mdvault settings from a YAML file and MDVAULT_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"mdvault/internal/domain"
)

const (
	DefaultVaultPath = "~/Documents/notes"
	DefaultDebounce  = time.Second
	EnvPrefix        = "MDVAULT"
)

// ConfigPath returns the default config file location.
// It is a variable so tests can point it elsewhere.
var ConfigPath = func() string {
	return filepath.Join(xdg.ConfigHome, "mdvault", "config.yaml")
}

// Echoes is the number of watcher events each mutation is expected to raise.
// Rename and move depend on the platform's watcher backend.
type Echoes struct {
	Create int `mapstructure:"create"`
	Delete int `mapstructure:"delete"`
	Rename int `mapstructure:"rename"`
	Move   int `mapstructure:"move"`
	Copy   int `mapstructure:"copy"`
	Save   int `mapstructure:"save"`
}

// DefaultEchoes returns the counts observed with fsnotify on Linux and macOS
func DefaultEchoes() Echoes {
	return Echoes{Create: 1, Delete: 1, Rename: 2, Move: 2, Copy: 2, Save: 1}
}

// IndexConfig controls the sqlite entry index
type IndexConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"` // empty selects the XDG data directory
}

// Config holds every mdvault setting
type Config struct {
	Vault    string          `mapstructure:"vault"`
	Sort     domain.SortMode `mapstructure:"-"`
	Debounce time.Duration   `mapstructure:"debounce"`
	LogFile  string          `mapstructure:"log_file"`
	LogLevel string          `mapstructure:"log_level"`
	Editor   string          `mapstructure:"editor"` // empty uses $VISUAL or $EDITOR
	Index    IndexConfig     `mapstructure:"index"`
	Echoes   Echoes          `mapstructure:"echoes"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		Vault:    DefaultVaultPath,
		Sort:     domain.SortNameAsc,
		Debounce: DefaultDebounce,
		LogFile:  filepath.Join(xdg.StateHome, "mdvault", "mdvault.log"),
		LogLevel: "info",
		Index:    IndexConfig{Enabled: true},
		Echoes:   DefaultEchoes(),
	}
}

func newViper(file string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("vault", d.Vault)
	v.SetDefault("sort", string(d.Sort))
	v.SetDefault("debounce", d.Debounce.String())
	v.SetDefault("log_file", d.LogFile)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("editor", d.Editor)
	v.SetDefault("index.enabled", d.Index.Enabled)
	v.SetDefault("index.path", d.Index.Path)
	v.SetDefault("echoes.create", d.Echoes.Create)
	v.SetDefault("echoes.delete", d.Echoes.Delete)
	v.SetDefault("echoes.rename", d.Echoes.Rename)
	v.SetDefault("echoes.move", d.Echoes.Move)
	v.SetDefault("echoes.copy", d.Echoes.Copy)
	v.SetDefault("echoes.save", d.Echoes.Save)
	return v
}

// Load reads the config file (ConfigPath when file is empty).
// A missing file yields the defaults.
func Load(file string) (*Config, error) {
	if file == "" {
		file = ConfigPath()
	}
	v := newViper(file)

	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", file, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	sort, err := domain.ParseSortMode(v.GetString("sort"))
	if err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Sort = sort

	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks for values no component can work with
func (c *Config) Validate() error {
	counts := map[string]int{
		"create": c.Echoes.Create, "delete": c.Echoes.Delete,
		"rename": c.Echoes.Rename, "move": c.Echoes.Move,
		"copy": c.Echoes.Copy, "save": c.Echoes.Save,
	}
	for name, n := range counts {
		if n < 0 {
			return fmt.Errorf("invalid config: echoes.%s must not be negative", name)
		}
	}
	if strings.TrimSpace(c.Vault) == "" {
		return fmt.Errorf("invalid config: vault is required")
	}
	return nil
}

// VaultPath returns the vault path from the MDVAULT_VAULT env var,
// falling back to the config file and then DefaultVaultPath.
func VaultPath() string {
	if env := os.Getenv(EnvPrefix + "_VAULT"); env != "" {
		return env
	}
	if cfg, err := Load(""); err == nil {
		return cfg.Vault
	}
	return DefaultVaultPath
}

// SaveVaultPath persists root as the vault in the config file
// (ConfigPath when file is empty), keeping any other settings.
func SaveVaultPath(file, root string) error {
	if file == "" {
		file = ConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(file), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// without defaults or env, so only explicit settings are written back
	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
		return fmt.Errorf("failed to read config %s: %w", file, err)
	}

	v.Set("vault", root)
	if err := v.WriteConfigAs(file); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}
