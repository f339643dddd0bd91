// terraingen generates geomip terrains without a window: it reports their
// layout, prints the LOD map for a camera and writes PNG dumps.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/geomip/internal/config"
	"github.com/Faultbox/geomip/internal/engine/debug"
	"github.com/Faultbox/geomip/internal/engine/terrain"
	"github.com/Faultbox/geomip/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(args, os.Stdout)
	case "generate", "gen":
		err = cmdGenerate(args, os.Stdout)
	case "lod":
		err = cmdLod(args, os.Stdout)
	case "config":
		err = cmdConfig(args, os.Stdout)
	case "help", "-h", "--help":
		printUsage(os.Stdout)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `terraingen - geomipmapped terrain generator

Usage:
  terraingen <command> [options]

Commands:
  info                               Show patch layout and LOD regions
  generate [-o heightmap.png]        Write the heightfield as a 16-bit PNG
  lod [-x X -y Y -z Z] [-o lod.png]  Print the LOD map for a camera position
  config [-o geomip.yaml]            Write the effective config as YAML

Common options:
  -config <file>   YAML config (terrain section)
  -size, -patch, -roughness, -seed, -scale
  -v               Log terrain construction

Examples:
  terraingen info -size 1025 -patch 33
  terraingen generate -seed 7 -o heightmap.png
  terraingen lod -seed 7 -x 0 -y 300 -z 0 -o lod.png
  terraingen config -size 513 -o geomip.yaml`)
}

// terrainFlags are shared by every command.
type terrainFlags struct {
	config    *string
	size      *int
	patch     *int
	roughness *float64
	seed      *int64
	scale     *float64
	verbose   *bool
}

func addTerrainFlags(fs *flag.FlagSet) terrainFlags {
	return terrainFlags{
		config:    fs.String("config", "", "Path to config file"),
		size:      fs.Int("size", 0, "Terrain size in vertices"),
		patch:     fs.Int("patch", 0, "Patch size in vertices"),
		roughness: fs.Float64("roughness", 0, "Midpoint displacement roughness"),
		seed:      fs.Int64("seed", 0, "Terrain seed (0 = random)"),
		scale:     fs.Float64("scale", 0, "World units between vertices"),
		verbose:   fs.Bool("v", false, "Log terrain construction"),
	}
}

// load reads the config file and applies the flag overrides.
func (f terrainFlags) load() (*config.Config, error) {
	cfg, err := config.LoadFile(*f.config)
	if err != nil {
		return nil, err
	}

	t := &cfg.Terrain
	if *f.size > 0 {
		t.Size = *f.size
	}
	if *f.patch > 0 {
		t.PatchSize = *f.patch
	}
	if *f.roughness > 0 {
		t.Roughness = float32(*f.roughness)
	}
	if *f.seed != 0 {
		t.Seed = *f.seed
	}
	if *f.scale > 0 {
		t.WorldScale = float32(*f.scale)
	}
	return cfg, nil
}

// build loads the config and initializes a terrain from it.
func (f terrainFlags) build() (*terrain.Terrain, error) {
	cfg, err := f.load()
	if err != nil {
		return nil, err
	}
	tc := cfg.TerrainConfig()

	log := logger.Nop()
	if *f.verbose {
		if err := logger.Init("debug", ""); err != nil {
			return nil, err
		}
		log = logger.Named("terrain")
	}

	t, err := terrain.New(tc, terrain.WithLogger(log))
	if err != nil {
		return nil, err
	}
	if err := t.Init(); err != nil {
		return nil, err
	}
	return t, nil
}

func cmdInfo(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	tf := addTerrainFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := tf.build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg := t.Config()
	mesh := t.Mesh()
	px, pz := mesh.NumPatches()
	lo, hi := t.HeightField().MinMax()
	b := mesh.Bounds()

	fmt.Fprintf(w, "Terrain:   %d x %d vertices (seed %d)\n", cfg.TerrainSize, cfg.TerrainSize, cfg.Seed)
	fmt.Fprintf(w, "Patches:   %d x %d of %d vertices\n", px, pz, cfg.PatchSize)
	fmt.Fprintf(w, "Max LOD:   %d\n", mesh.Mesher().MaxLOD())
	fmt.Fprintf(w, "Heights:   %.2f .. %.2f\n", lo, hi)
	fmt.Fprintf(w, "Extent:    %.1f x %.1f world units\n", b.Max[0]-b.Min[0], b.Max[2]-b.Min[2])
	fmt.Fprintf(w, "Vertices:  %d (%.2f MB)\n", len(mesh.Vertices()), float64(len(mesh.Vertices())*32)/(1024*1024))
	fmt.Fprintf(w, "Indices:   %d (%.2f MB)\n", len(mesh.Indices()), float64(len(mesh.Indices())*4)/(1024*1024))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "LOD regions (distance to patch center):")
	prev := float32(0)
	for i, r := range mesh.Selector().Regions() {
		fmt.Fprintf(w, "  LOD %d  %8.1f .. %8.1f\n", i, prev, r)
		prev = r
	}
	return nil
}

func cmdGenerate(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	tf := addTerrainFlags(fs)
	out := fs.String("o", "heightmap.png", "Output PNG path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := tf.build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if err := debug.WritePNG(*out, debug.HeightmapImage(t.HeightField())); err != nil {
		return err
	}
	fmt.Fprintf(w, "Wrote %s (%d x %d)\n", *out, t.GetSize(), t.GetSize())
	return nil
}

func cmdLod(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("lod", flag.ContinueOnError)
	tf := addTerrainFlags(fs)
	x := fs.Float64("x", -1, "Camera X (default: terrain center)")
	y := fs.Float64("y", -1, "Camera Y (default: terrain center)")
	z := fs.Float64("z", -1, "Camera Z (default: terrain center)")
	out := fs.String("o", "", "Optional LOD map PNG path")
	cell := fs.Int("cell", 16, "Pixels per patch in the PNG")
	if err := fs.Parse(args); err != nil {
		return err
	}

	t, err := tf.build()
	if err != nil {
		return err
	}
	defer logger.Sync()

	cam, err := t.Center()
	if err != nil {
		return err
	}
	// Negative coordinates are valid camera positions, so only flags the
	// user actually set override the center.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "x":
			cam[0] = float32(*x)
		case "y":
			cam[1] = float32(*y)
		case "z":
			cam[2] = float32(*z)
		}
	})

	sel := t.Mesh().Selector()
	sel.Update(cam)

	fmt.Fprintf(w, "Camera %v, top row is the far edge (max z):\n", fmtVec(cam))
	fmt.Fprint(w, sel.String())

	if *out != "" {
		if err := debug.WritePNG(*out, debug.LodImage(sel, *cell)); err != nil {
			return err
		}
		fmt.Fprintf(w, "Wrote %s\n", *out)
	}
	return nil
}

func cmdConfig(args []string, w io.Writer) error {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)
	tf := addTerrainFlags(fs)
	out := fs.String("o", "", "Output path (default: user config directory)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := tf.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	path := *out
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
		err = cfg.Save()
	} else {
		err = cfg.SaveTo(path)
	}
	if err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	fmt.Fprintf(w, "Wrote %s\n", path)
	return nil
}

func fmtVec(v mgl32.Vec3) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", v[0], v[1], v[2])
}
