// Package config contains the benchmark configuration definitions.
package config

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/spacemeshos/go-txrecon/iblt"
)

const defaultConfigFileName = "./ibltbench.toml"

// Config defines the configuration of a reconciliation benchmark.
type Config struct {
	BaseConfig `mapstructure:"main"`
	Sketch     SketchConfig  `mapstructure:"sketch"`
	Decode     DecodeConfig  `mapstructure:"decode"`
	LOGGING    LoggerConfig  `mapstructure:"logging"`
	Metrics    MetricsConfig `mapstructure:"metrics"`
}

// BaseConfig holds the options that are not specific to a component.
type BaseConfig struct {
	ConfigFile string `mapstructure:"config"`
	Preset     string `mapstructure:"preset"`

	// Workers is the number of runs executed concurrently.
	Workers int  `mapstructure:"workers"`
	Verbose bool `mapstructure:"verbose"`
	// Strict rejects input records that are not exactly one transaction.
	Strict bool `mapstructure:"strict"`
}

// SketchConfig sizes the table shipped by the remote side.
type SketchConfig struct {
	// Mem is the memory budget of the table, the number of buckets is derived from it.
	Mem Bytes `mapstructure:"mem"`
	// Checksum is the width of the per bucket checksum in bytes, 0 disables it.
	Checksum int `mapstructure:"checksum"`
}

// DecodeConfig controls the peeling decoder.
type DecodeConfig struct {
	// MaxPasses caps the number of passes. 0 derives the cap from the table contents.
	MaxPasses int `mapstructure:"max-passes"`
}

// MetricsConfig controls the export of metrics collected during the run.
type MetricsConfig struct {
	// Print writes metrics in the text exposition format after the run.
	Print bool `mapstructure:"print"`
	// Push is the url of a push gateway, empty to disable.
	Push    string `mapstructure:"push"`
	PushJob string `mapstructure:"push-job"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		BaseConfig: defaultBaseConfig(),
		Sketch: SketchConfig{
			Mem: 1 << 20,
		},
		LOGGING: defaultLoggingConfig(),
		Metrics: MetricsConfig{
			PushJob: "ibltbench",
		},
	}
}

func defaultBaseConfig() BaseConfig {
	return BaseConfig{
		Workers: 1,
		Strict:  true,
	}
}

// Validate checks that the values can be used together.
func (cfg *Config) Validate() error {
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be positive, got %d", cfg.Workers)
	}
	if cfg.Sketch.Checksum < 0 || cfg.Sketch.Checksum > iblt.MaxChecksumSize {
		return fmt.Errorf("checksum must be within [0, %d], got %d", iblt.MaxChecksumSize, cfg.Sketch.Checksum)
	}
	if elem := uint64(iblt.ElemSize(cfg.Sketch.Checksum)); uint64(cfg.Sketch.Mem) < elem*iblt.NumHashes {
		return fmt.Errorf("mem %s is too small for %d buckets of %d bytes", cfg.Sketch.Mem, iblt.NumHashes, elem)
	}
	if cfg.Decode.MaxPasses < 0 {
		return errors.New("max-passes can't be negative")
	}
	return nil
}

// LoadConfig reads the config file into vip.
func LoadConfig(fileLocation string, vip *viper.Viper) (err error) {
	if fileLocation == "" {
		fileLocation = defaultConfigFileName
	}

	vip.SetConfigFile(fileLocation)
	if err := vip.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %w", err)
	}
	return nil
}

// Unmarshal decodes the values loaded into vip on top of cfg.
// Keys that don't map to any field are an error.
func Unmarshal(vip *viper.Viper, cfg *Config) error {
	hook := mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
	opts := []viper.DecoderConfigOption{
		viper.DecodeHook(hook),
		WithZeroFields(),
		WithIgnoreUntagged(),
		WithErrorUnused(),
	}
	if err := vip.Unmarshal(cfg, opts...); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

func WithZeroFields() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ZeroFields = true
	}
}

func WithIgnoreUntagged() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.IgnoreUntaggedFields = true
	}
}

func WithErrorUnused() viper.DecoderConfigOption {
	return func(cfg *mapstructure.DecoderConfig) {
		cfg.ErrorUnused = true
	}
}
