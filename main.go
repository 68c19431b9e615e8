package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"

	"github.com/astei/endgen/config"
	"github.com/astei/endgen/generator"
	"github.com/astei/endgen/world"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "endgen",
		Usage: "generates end dimension islands and exports them as Slime or Anvil worlds",
		Commands: []*cli.Command{
			{
				Name:      "generate",
				Usage:     "generate the islands around the origin",
				ArgsUsage: "OUTPUT",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "YAML configuration file"},
					&cli.Int64Flag{Name: "seed", Usage: "world seed (overrides the config)"},
					&cli.IntFlag{Name: "radius", Aliases: []string{"r"}, Usage: "chunk radius (overrides the config)"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Usage: "slime or anvil (overrides the config)"},
				},
				Action: generate,
			},
			{
				Name:      "inspect",
				Usage:     "report the spawn point and surface of an Anvil region directory",
				ArgsUsage: "REGION_DIR",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "x", Usage: "column to probe"},
					&cli.IntFlag{Name: "z", Usage: "column to probe"},
				},
				Action: inspect,
			},
		},
	}
}

func generate(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("need an output path")
	}
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("seed") {
		cfg.Seed = c.Int64("seed")
	}
	if c.IsSet("radius") {
		cfg.Export.Radius = c.Int("radius")
	}
	if c.IsSet("format") {
		cfg.Export.Format = c.String("format")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	gen, err := generator.NewEndGenerator(cfg.GeneratorOptions())
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Printf("generating %s with seed %d, radius %d", gen.Name(), cfg.Seed, cfg.Export.Radius)
	w, err := world.Generate(ctx, gen, world.GenerateOptions{
		Seed:    cfg.Seed,
		Radius:  cfg.Export.Radius,
		Workers: cfg.Export.Workers,
	})
	if err != nil {
		return err
	}

	spawn := gen.SafeSpawn(w)
	log.Printf("spawn point %.1f, %.1f, %.1f", spawn.X, spawn.Y, spawn.Z)

	out := c.Args().First()
	if cfg.Export.Format == config.FormatAnvil {
		return w.WriteAnvil(out)
	}

	file, err := os.OpenFile(out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}
	if err = w.WriteAsSlime(file); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

func inspect(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("need a region directory")
	}
	w, err := world.OpenAnvil(c.Args().First())
	if err != nil {
		return err
	}
	gen, err := generator.NewEndGenerator(generator.DefaultOptions())
	if err != nil {
		return err
	}

	x, z := c.Int("x"), c.Int("z")
	fmt.Printf("chunks: %d\n", w.Len())
	if y := generator.HighestSolidBlock(w, x, z); y == generator.NotFound {
		fmt.Printf("column %d,%d: no surface\n", x, z)
	} else {
		fmt.Printf("column %d,%d: surface at %d\n", x, z, y)
	}
	spawn := gen.SafeSpawn(w)
	fmt.Printf("spawn: %.1f %.1f %.1f\n", spawn.X, spawn.Y, spawn.Z)

	coord := world.ChunkAt(x, z)
	heights := gen.SurfaceHeights(w, coord.X, coord.Z)
	fmt.Printf("surface heights of chunk %d,%d: %v\n", coord.X, coord.Z, heights[x&0xf])
	return nil
}
