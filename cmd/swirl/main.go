package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/swirl2d/swirl"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "Path to a TOML config file")
	width := flag.Int("width", 0, "Window width override")
	height := flag.Int("height", 0, "Window height override")
	title := flag.String("title", "", "Window title override")
	count := flag.Int("count", -1, "Instance count override")
	seed := flag.Int64("seed", 0, "Random seed override")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	logger := swirl.NewDefaultLogger("swirl", *debug)

	cfg, err := swirl.LoadConfig(*configPath)
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
	if *width > 0 {
		cfg.Width = *width
	}
	if *height > 0 {
		cfg.Height = *height
	}
	if *title != "" {
		cfg.Title = *title
	}
	if *count >= 0 {
		cfg.Instances = *count
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	cfg.Debug = cfg.Debug || *debug
	if err := cfg.Validate(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	clearColor, err := cfg.ClearWgpuColor()
	if err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}

	app := swirl.NewAppBuilder().
		UseModule(swirl.LoggingModule{Prefix: "swirl", Debug: cfg.Debug}).
		UseModule(swirl.WindowModule{Width: cfg.Width, Height: cfg.Height, Title: cfg.Title}).
		UseModule(swirl.InputModule{}).
		UseModule(swirl.TimeModule{}).
		UseModule(swirl.AssetServerModule{}).
		UseModule(swirl.FieldModule{
			Count:  cfg.Instances,
			Scale:  cfg.ShapeScale,
			Speed:  cfg.SpinSpeed,
			Aspect: cfg.Aspect(),
			Seed:   cfg.Seed,
		}).
		UseModule(swirl.RendererModule{ClearColor: clearColor}).
		Build()

	// Space toggles wireframe, T swaps the shape (both in the renderer);
	// Escape quits.
	app.UseSystem(
		swirl.System(func(input *swirl.Input, cmd *swirl.Commands) {
			if input.JustPressed[swirl.KeyEscape] {
				cmd.Quit()
			}
		}).InStage(swirl.Update),
	)

	app.Run()
}
