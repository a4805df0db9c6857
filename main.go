package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/df07/tinytracer/pkg/config"
	"github.com/df07/tinytracer/pkg/geometry"
	"github.com/df07/tinytracer/pkg/loaders"
	"github.com/df07/tinytracer/pkg/output"
	"github.com/df07/tinytracer/pkg/renderer"
	"github.com/df07/tinytracer/pkg/scene"
)

// scenesDir is searched for JSON scene files by -list
const scenesDir = "scenes"

// cliFlags holds the parsed command line
type cliFlags struct {
	Scene      string
	ConfigPath string
	Format     string
	Output     string
	Seed       int64
	List       bool
	Help       bool
	Options    config.Options

	explicit map[string]bool // Flags given on the command line
	usage    func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

// parseFlags parses args without touching the global flag set
func parseFlags(args []string, errOut io.Writer) (*cliFlags, error) {
	fs := flag.NewFlagSet("tinytracer", flag.ContinueOnError)
	fs.SetOutput(errOut)

	f := &cliFlags{Options: config.DefaultOptions(), explicit: make(map[string]bool)}
	fs.StringVar(&f.Scene, "scene", "default", "Built-in scene ("+strings.Join(scene.Names(), ", ")+") or a .json scene file")
	fs.StringVar(&f.ConfigPath, "config", "", "JSON scene file, takes precedence over -scene")
	fs.StringVar(&f.Format, "format", string(output.FormatPPM), "Output format: ppm or png")
	fs.IntVar(&f.Options.Width, "width", 0, "Image width (default 400 when -height is unset)")
	fs.IntVar(&f.Options.Height, "height", 0, "Image height (derived from width and aspect ratio when unset)")
	fs.StringVar(&f.Options.AspectRatio, "aspectratio", "", "Aspect ratio X:Y (default 16:9)")
	fs.IntVar(&f.Options.SamplesPerPixel, "samples", config.DefaultSamplesPerPixel, "Samples per pixel")
	fs.IntVar(&f.Options.MaxDepth, "depth", config.DefaultMaxDepth, "Maximum ray bounce depth")
	fs.StringVar(&f.Output, "output", "", "Output file (default output/image.<format>)")
	fs.IntVar(&f.Options.NumWorkers, "workers", 0, "Number of parallel workers (0 = number of CPUs)")
	fs.IntVar(&f.Options.ChunkSize, "chunk", renderer.DefaultChunkSize, "Pixels per task")
	fs.Int64Var(&f.Seed, "seed", 1, "Base seed for the per-task random streams")
	fs.BoolVar(&f.List, "list", false, "List built-in scenes and scene files, then exit")
	fs.BoolVar(&f.Help, "help", false, "Show help information")
	f.usage = fs.PrintDefaults

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	fs.Visit(func(fl *flag.Flag) { f.explicit[fl.Name] = true })

	return f, nil
}

// run executes one CLI invocation. All configuration errors are returned
// before any rendering starts.
func run(ctx context.Context, args []string, errOut io.Writer) error {
	f, err := parseFlags(args, errOut)
	if err != nil {
		return err
	}

	if f.Help {
		fmt.Println("tinytracer - Monte Carlo path tracer")
		fmt.Println("Usage: tinytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		f.usage()
		fmt.Println()
		fmt.Println("Run with -list to see the available scenes.")
		return nil
	}

	if f.List {
		return listScenes(os.Stdout, scenesDir)
	}

	format, err := output.ParseFormat(f.Format)
	if err != nil {
		return err
	}

	res, err := f.Options.Resolution()
	if err != nil {
		return err
	}

	s, err := createScene(f.Scene, f.ConfigPath, geometry.CameraConfig{AspectRatio: res.AspectRatio})
	if err != nil {
		return err
	}

	outputPath := f.Output
	if outputPath == "" {
		outputPath = output.DefaultPath(format)
	}

	samples, depth := samplingFor(s, f)
	rt := renderer.NewRaytracer(s, nil, renderer.Config{
		Width:           res.Width,
		Height:          res.Height,
		SamplesPerPixel: samples,
		MaxDepth:        depth,
		NumWorkers:      f.Options.NumWorkers,
		ChunkSize:       f.Options.ChunkSize,
		Seed:            f.Seed,
	}, renderer.NewDefaultLogger())

	startTime := time.Now()
	img, stats, err := rt.Render(ctx)
	if err != nil {
		return err
	}

	if err := output.WriteFile(outputPath, format, img); err != nil {
		return err
	}

	fmt.Printf("Saved as %s\n", outputPath)
	fmt.Printf("Average luminance: %.3f (%d samples on %d workers)\n",
		renderer.CalculateAverageLuminance(img), stats.TotalSamples, stats.NumWorkers)
	fmt.Printf("Render time: %.2fs\n", time.Since(startTime).Seconds())
	return nil
}

// createScene builds the scene to render. A config path wins over the scene
// name, and a scene name ending in .json is loaded as a file.
func createScene(sceneName, configPath string, cameraOverride geometry.CameraConfig) (*scene.Scene, error) {
	if configPath != "" {
		return loaders.LoadScene(configPath, cameraOverride)
	}
	if strings.HasSuffix(strings.ToLower(sceneName), ".json") {
		return loaders.LoadScene(sceneName, cameraOverride)
	}
	return scene.Create(sceneName, cameraOverride)
}

// samplingFor picks samples per pixel and max depth. Flags given on the
// command line win, then the scene's own settings, then the flag defaults.
func samplingFor(s *scene.Scene, f *cliFlags) (samples, depth int) {
	samples, depth = f.Options.SamplesPerPixel, f.Options.MaxDepth
	if !f.explicit["samples"] && s.SamplingConfig.SamplesPerPixel > 0 {
		samples = s.SamplingConfig.SamplesPerPixel
	}
	if !f.explicit["depth"] && s.SamplingConfig.MaxDepth > 0 {
		depth = s.SamplingConfig.MaxDepth
	}
	return samples, depth
}

// listScenes prints every built-in scene and the scene files in dir by group
func listScenes(w io.Writer, dir string) error {
	groups, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}

	for _, group := range groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			if info.Description != "" {
				fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Description)
			} else {
				fmt.Fprintf(w, "  %-24s %s\n", info.ID, info.Name)
			}
		}
	}
	return nil
}
