package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/budgetui/internal/common"
	"github.com/Veraticus/budgetui/internal/fieldparse"
)

// AppName names the config and data directories.
const AppName = "budgetui"

// EnvPrefix prefixes environment overrides, e.g. BUDGETUI_DATABASE_PATH.
const EnvPrefix = "BUDGETUI"

// Config is the typed application configuration.
type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Import   ImportConfig   `mapstructure:"import"`
	Export   ExportConfig   `mapstructure:"export"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// DatabaseConfig locates the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// ImportConfig holds import defaults.
type ImportConfig struct {
	DefaultAccount string `mapstructure:"default_account"`
	// DateFormat is the date token used by manual column mappings.
	DateFormat string `mapstructure:"date_format"`
}

// ExportConfig holds export defaults.
type ExportConfig struct {
	Directory string `mapstructure:"directory"`
}

// LoggingConfig selects log level and format.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("database.path", filepath.Join("~", ".local", "share", AppName, AppName+".db"))
	v.SetDefault("import.default_account", "")
	v.SetDefault("import.date_format", string(fieldparse.DateMDY))
	v.SetDefault("export.directory", ".")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// Dirs returns the directories searched for config.yaml, in order.
func Dirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, AppName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".config", AppName))
	}
	return append(dirs, ".")
}

// Load reads the typed configuration from v, expanding paths and checking
// values that would otherwise fail later.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	cfg.Database.Path = ExpandPath(cfg.Database.Path)
	cfg.Export.Directory = ExpandPath(cfg.Export.Directory)
	cfg.Import.DefaultAccount = strings.TrimSpace(cfg.Import.DefaultAccount)

	if cfg.Database.Path == "" {
		return nil, fmt.Errorf("%w: database.path", common.ErrMissingConfig)
	}
	if _, err := fieldparse.ParseDateFormat(cfg.Import.DateFormat); err != nil {
		return nil, fmt.Errorf("%w: import.date_format: %v", common.ErrInvalidConfig, err)
	}
	if _, err := common.ParseLevel(cfg.Logging.Level); err != nil {
		return nil, err
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		return nil, fmt.Errorf("%w: logging.format must be console or json, got %q", common.ErrInvalidConfig, cfg.Logging.Format)
	}

	return &cfg, nil
}

// DateFormat returns the configured manual-mapping date token.
func (c *Config) DateFormat() fieldparse.DateFormat {
	f, err := fieldparse.ParseDateFormat(c.Import.DateFormat)
	if err != nil {
		return fieldparse.DateMDY
	}
	return f
}
