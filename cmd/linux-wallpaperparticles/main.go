package main

import (
	"flag"
	"os"

	"linux-wallpaperparticles/internal/capture"
	"linux-wallpaperparticles/internal/config"
	"linux-wallpaperparticles/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML config file")
	logLevel := flag.String("log", "info", "Log level: debug, info, warn or error")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging and show the debug overlay")
	raylibInfo := flag.Bool("raylib-info", false, "Show raylib info logs")
	seed := flag.Uint64("seed", 0, "Seed particle motion for a reproducible run (overrides the config)")
	recordPath := flag.String("record", "", "Record presented frames to this capture file")
	recordEvery := flag.Int("record-every", 1, "Record one frame out of this many")
	extractPath := flag.String("extract", "", "Convert a capture file to PNG frames and exit")
	outDir := flag.String("out", "frames", "Output directory for -extract")
	watch := flag.Bool("watch", true, "Reload the config file when it changes")
	flag.Parse()

	level, err := utils.ParseLevel(*logLevel)
	if err != nil {
		utils.Error("%v", err)
		os.Exit(2)
	}
	utils.CurrentLevel = level
	utils.DebugMode = *debugFlag
	utils.ShowDebugUI = *debugFlag
	utils.ShowRaylibInfo = *raylibInfo
	if utils.DebugMode {
		utils.CurrentLevel = utils.LevelDebug
	}

	if *extractPath != "" {
		runExtract(*extractPath, *outDir)
		return
	}

	path := utils.ResolveConfigPath(*configPath)
	cfg, err := config.Load(path)
	if err != nil {
		utils.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if path == "" {
		utils.Info("No config file found, using defaults")
	}

	width, height := initialWindowSize()

	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint)
	rl.InitWindow(int32(width), int32(height), "Linux Wallpaper Particles")
	defer rl.CloseWindow()

	window, err := NewWindow(cfg, WindowOptions{
		ConfigPath:  path,
		Watch:       *watch && path != "",
		RecordPath:  *recordPath,
		RecordEvery: *recordEvery,
	})
	if err != nil {
		utils.Error("Failed to start: %v", err)
		os.Exit(1)
	}
	defer window.Close()

	utils.Info("Starting render loop...")
	window.Run()
}

// initialWindowSize sizes the window to the X11 root screen, falling back
// to 1280x720 when no display can be queried.
func initialWindowSize() (int, int) {
	if err := utils.InitX11(); err != nil {
		utils.Warn("X11 unavailable, using default window size: %v", err)
		return 1280, 720
	}
	defer utils.CloseX11()

	w, h, err := utils.ScreenSize()
	if err != nil || w <= 0 || h <= 0 {
		utils.Warn("Could not read screen size, using default: %v", err)
		return 1280, 720
	}
	utils.Debug("Screen size %dx%d", w, h)
	return w, h
}

func runExtract(path, outDir string) {
	utils.Info("Extracting %s", path)
	n, err := capture.Extract(path, outDir)
	if err != nil {
		utils.Error("Extract failed after %d frames: %v", n, err)
		os.Exit(1)
	}
	utils.Info("Extract successful! Saved %d frames to: %s", n, outDir)
}
