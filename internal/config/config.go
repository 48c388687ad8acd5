package config

import (
	"errors"
	"fmt"
)

// Config holds the tool configuration. Flags override these values; the
// config file and MODDOCS_* environment variables fill in the rest.
type Config struct {
	Scan    ScanConfig    `mapstructure:"scan"`
	Linker  LinkerConfig  `mapstructure:"linker"`
	Storage StorageConfig `mapstructure:"storage"`
}

// ScanConfig configures the structural extractor pass.
type ScanConfig struct {
	// SourceExt is the source file extension to scan (with dot).
	SourceExt string `mapstructure:"source_ext"`
	// Excludes are glob patterns for paths to skip during discovery.
	Excludes []string `mapstructure:"excludes"`
	// BatchSize is the progress-reporting batch size. Cosmetic only.
	BatchSize int `mapstructure:"batch_size"`
}

// LinkerConfig configures the two cross-reference passes.
type LinkerConfig struct {
	// MarkupExt is the markup file extension to scan (with dot).
	MarkupExt string `mapstructure:"markup_ext"`
	// ClassTags are the XML tags whose text content may name a C# class.
	ClassTags []string `mapstructure:"class_tags"`
	// KeyTags are the XML tag/attribute names treated as translation-key
	// carriers by the plausibility filter.
	KeyTags []string `mapstructure:"key_tags"`
}

// StorageConfig configures the optional persistent index.
type StorageConfig struct {
	// DBPath is the SQLite database file. Empty disables persistence for
	// scan runs; serve mode falls back to the user default location.
	DBPath string `mapstructure:"db_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			SourceExt: ".cs",
			Excludes:  nil,
			BatchSize: 100,
		},
		Linker: LinkerConfig{
			MarkupExt: ".xml",
			ClassTags: []string{
				"verbClass", "compClass", "defClass", "thingClass", "jobClass",
				"workType", "skillDef", "traitDef", "hediffDef", "abilityDef",
				"class", "type", "def", "operation", "patch",
			},
			KeyTags: []string{"key", "defName", "label", "description", "text"},
		},
		Storage: StorageConfig{
			DBPath: "",
		},
	}
}

// Validate checks a loaded configuration for values the tool cannot work with.
func Validate(cfg *Config) error {
	if cfg.Scan.SourceExt == "" {
		return errors.New("scan.source_ext must not be empty")
	}
	if cfg.Linker.MarkupExt == "" {
		return errors.New("linker.markup_ext must not be empty")
	}
	if cfg.Scan.BatchSize <= 0 {
		return fmt.Errorf("scan.batch_size must be positive, got %d", cfg.Scan.BatchSize)
	}
	if len(cfg.Linker.ClassTags) == 0 {
		return errors.New("linker.class_tags must not be empty")
	}
	return nil
}
