package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-raykernel/pkg/log"
)

var logger = log.New("raybench")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	// The default version flag also claims -v
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raybench"
	app.Usage = "cross-check and benchmark BVH ray queries against a linear scan"
	app.Version = "0.1.0"
	app.Description = `
Assemble a random field of mirror spheres, build a BVH over it and trace the
same rays through the BVH and through a linear scan of every sphere from
concurrent workers. Each primary hit is followed along its mirror reflections.
The run fails if the two structures disagree on any ray.

Settings come from an optional TOML file given with --config; flags given on
the command line take precedence.`
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "TOML file with benchmark settings",
		},
		cli.IntFlag{
			Name:  "spheres",
			Usage: "number of spheres in the scene",
		},
		cli.Float64Flag{
			Name:  "extent",
			Usage: "sphere centers lie in [-extent, extent] on every axis",
		},
		cli.IntFlag{
			Name:  "rays",
			Usage: "number of primary rays",
		},
		cli.IntFlag{
			Name:  "bounces",
			Usage: "mirror bounces followed after each primary hit",
		},
		cli.IntFlag{
			Name:  "workers",
			Usage: "concurrent query workers (0 = one per CPU)",
		},
		cli.Uint64Flag{
			Name:  "seed",
			Usage: "seed for scene, ray and material sampling",
		},
	}
	app.Action = benchAction
	return app
}

func setupLogging(ctx *cli.Context) {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.Bool("vv") {
		log.SetLevel(log.Debug)
	}
}

func benchAction(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadBenchConfig(ctx.String("config"))
	if err != nil {
		return err
	}
	applyFlags(ctx, &cfg)
	if err := cfg.validate(); err != nil {
		return err
	}

	report, err := runBench(cfg)
	if err != nil {
		return err
	}
	logger.Noticef("benchmark results\n%s", report)
	return report.err()
}
