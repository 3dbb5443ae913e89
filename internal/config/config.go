// Package config loads CLI configuration with the following precedence:
// command line flags > environment variables > config file > defaults.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config is the nomen CLI configuration
type Config struct {
	Naming NamingConfig `mapstructure:"naming"`
	Log    LogConfig    `mapstructure:"log"`
}

// NamingConfig mirrors the library's naming options
type NamingConfig struct {
	TablePrefix       string `mapstructure:"table_prefix"`
	Underscored       bool   `mapstructure:"underscored"`
	FreezeTableName   bool   `mapstructure:"freeze_table_name"`
	DisableTimestamps bool   `mapstructure:"disable_timestamps"`
	Paranoid          bool   `mapstructure:"paranoid"`
	CreatedAt         string `mapstructure:"created_at"`
	UpdatedAt         string `mapstructure:"updated_at"`
	DeletedAt         string `mapstructure:"deleted_at"`
}

// LogConfig controls CLI logging
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps flag names to canonical config keys
var flagKeys = map[string]string{
	"prefix":        "naming.table_prefix",
	"underscored":   "naming.underscored",
	"freeze":        "naming.freeze_table_name",
	"no-timestamps": "naming.disable_timestamps",
	"paranoid":      "naming.paranoid",
	"created-at":    "naming.created_at",
	"updated-at":    "naming.updated_at",
	"deleted-at":    "naming.deleted_at",
	"log-level":     "log.level",
	"log-format":    "log.format",
}

// Load builds the configuration from defaults, an optional YAML config
// file, NOMEN_* environment variables and any changed flags.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	cfgPath := ""
	if flags != nil {
		cfgPath, _ = flags.GetString("config")
	}
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.SetConfigName("nomen")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.nomen")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgPath != "" {
			return nil, fmt.Errorf("failed to read config file %q: %w", cfgPath, err)
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Canonical keys: dot + snake_case. Env vars: NOMEN_NAMING_UNDERSCORED
	v.SetEnvPrefix("NOMEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		bindChangedFlags(v, flags)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("naming.table_prefix", "")
	v.SetDefault("naming.underscored", false)
	v.SetDefault("naming.freeze_table_name", false)
	v.SetDefault("naming.disable_timestamps", false)
	v.SetDefault("naming.paranoid", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
}

// bindChangedFlags copies only explicitly-set flags into viper,
// preserving precedence: flags > env > file > defaults.
func bindChangedFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return
		}

		switch f.Value.Type() {
		case "bool":
			val, _ := flags.GetBool(f.Name)
			v.Set(key, val)
		case "string":
			val, _ := flags.GetString(f.Name)
			v.Set(key, val)
		default:
			v.Set(key, f.Value.String())
		}
	})
}
