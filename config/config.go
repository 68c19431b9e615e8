// Package config loads generator and export settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/astei/endgen/generator"
	"github.com/astei/endgen/noise"
)

const (
	FormatSlime = "slime"
	FormatAnvil = "anvil"
)

type Config struct {
	Seed       int64        `yaml:"seed"`
	LegacySeed bool         `yaml:"legacySeed"`
	Noise      NoiseConfig  `yaml:"noise"`
	Export     ExportConfig `yaml:"export"`
}

type NoiseConfig struct {
	Backend     string  `yaml:"backend"` // "perlin" or "simplex"
	Frequency   float64 `yaml:"frequency"`
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
	XScale      float64 `yaml:"xScale"`
	YScale      float64 `yaml:"yScale"`
	ZScale      float64 `yaml:"zScale"`
}

type ExportConfig struct {
	Radius  int    `yaml:"radius"`  // chunks around the origin
	Workers int    `yaml:"workers"` // 0 = one per CPU
	Format  string `yaml:"format"`  // "slime" or "anvil"
}

func Default() *Config {
	opts := generator.DefaultOptions()
	return &Config{
		Noise: NoiseConfig{
			Backend:     opts.Noise.Backend,
			Frequency:   opts.Noise.Frequency,
			Octaves:     opts.Noise.Octaves,
			Persistence: opts.Noise.Persistence,
			Lacunarity:  opts.Noise.Lacunarity,
			XScale:      opts.XScale,
			YScale:      opts.YScale,
			ZScale:      opts.ZScale,
		},
		Export: ExportConfig{
			Radius: 8,
			Format: FormatSlime,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.GeneratorOptions().Noise.Validate(); err != nil {
		return err
	}
	if c.Noise.XScale <= 0 || c.Noise.YScale <= 0 || c.Noise.ZScale <= 0 {
		return errors.New("noise scales must be positive")
	}
	if c.Export.Radius < 0 {
		return errors.New("export.radius cannot be negative")
	}
	if c.Export.Workers < 0 {
		return errors.New("export.workers cannot be negative")
	}
	switch c.Export.Format {
	case FormatSlime, FormatAnvil:
	default:
		return fmt.Errorf("export.format must be %q or %q, got %q", FormatSlime, FormatAnvil, c.Export.Format)
	}
	return nil
}

// GeneratorOptions converts the noise section into generator options.
func (c *Config) GeneratorOptions() generator.Options {
	return generator.Options{
		Noise: noise.Params{
			Backend:     c.Noise.Backend,
			Frequency:   c.Noise.Frequency,
			Octaves:     c.Noise.Octaves,
			Persistence: c.Noise.Persistence,
			Lacunarity:  c.Noise.Lacunarity,
		},
		XScale:     c.Noise.XScale,
		YScale:     c.Noise.YScale,
		ZScale:     c.Noise.ZScale,
		LegacySeed: c.LegacySeed,
	}
}
