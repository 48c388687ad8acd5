package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (MODDOCS_*)
// 2. Config file (.moddocs.yaml in the root directory)
// 3. Default values
func Load(rootDir string) (*Config, error) {
	v := viper.New()

	v.SetConfigName(".moddocs")
	v.SetConfigType("yaml")
	v.AddConfigPath(rootDir)

	v.SetEnvPrefix("MODDOCS")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Missing config file is fine; defaults plus env vars apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults seeds viper with the built-in defaults.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("scan.source_ext", defaults.Scan.SourceExt)
	v.SetDefault("scan.excludes", defaults.Scan.Excludes)
	v.SetDefault("scan.batch_size", defaults.Scan.BatchSize)

	v.SetDefault("linker.markup_ext", defaults.Linker.MarkupExt)
	v.SetDefault("linker.class_tags", defaults.Linker.ClassTags)
	v.SetDefault("linker.key_tags", defaults.Linker.KeyTags)

	v.SetDefault("storage.db_path", defaults.Storage.DBPath)
}
