package main

import (
	"os"
	"runtime"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/df07/go-raykernel/pkg/core"
	"github.com/df07/go-raykernel/pkg/scene"
)

// benchConfig holds everything a benchmark run needs
type benchConfig struct {
	Scene   scene.SphereFieldConfig `toml:"scene"`
	Rays    int                     `toml:"rays"`    // Primary rays to trace
	Bounces int                     `toml:"bounces"` // Mirror bounces followed after each primary hit
	Workers int                     `toml:"workers"` // Concurrent query goroutines, 0 for one per CPU
	Seed    uint64                  `toml:"seed"`
}

func defaultBenchConfig() benchConfig {
	return benchConfig{
		Scene:   scene.DefaultSphereFieldConfig(),
		Rays:    100000,
		Bounces: 8,
		Workers: 0,
		Seed:    1,
	}
}

// loadBenchConfig reads a TOML file over the defaults. Keys missing from the
// file keep their default values.
func loadBenchConfig(path string) (benchConfig, error) {
	cfg := defaultBenchConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "reading config")
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// applyFlags overrides config values with flags given on the command line
func applyFlags(ctx *cli.Context, cfg *benchConfig) {
	if ctx.IsSet("spheres") {
		cfg.Scene.Count = ctx.Int("spheres")
	}
	if ctx.IsSet("extent") {
		cfg.Scene.Extent = ctx.Float64("extent")
	}
	if ctx.IsSet("rays") {
		cfg.Rays = ctx.Int("rays")
	}
	if ctx.IsSet("bounces") {
		cfg.Bounces = ctx.Int("bounces")
	}
	if ctx.IsSet("workers") {
		cfg.Workers = ctx.Int("workers")
	}
	if ctx.IsSet("seed") {
		cfg.Seed = ctx.Uint64("seed")
	}
}

// validate checks the config and resolves the worker count
func (c *benchConfig) validate() error {
	if err := c.Scene.Validate(); err != nil {
		return errors.Wrap(err, "scene")
	}
	if c.Rays <= 0 {
		return errors.Wrapf(core.ErrInvalidArgument, "ray count %d", c.Rays)
	}
	if c.Bounces < 0 {
		return errors.Wrapf(core.ErrInvalidArgument, "bounce count %d", c.Bounces)
	}
	if c.Workers < 0 {
		return errors.Wrapf(core.ErrInvalidArgument, "worker count %d", c.Workers)
	}
	if c.Workers == 0 {
		c.Workers = runtime.NumCPU()
	}
	return nil
}
