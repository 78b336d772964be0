package main

import (
	"image"
	"sync/atomic"
	"time"

	"linux-wallpaperparticles/internal/capture"
	"linux-wallpaperparticles/internal/config"
	"linux-wallpaperparticles/internal/debug"
	"linux-wallpaperparticles/internal/engine2D/display"
	"linux-wallpaperparticles/internal/engine2D/particle"
	"linux-wallpaperparticles/internal/render"
	"linux-wallpaperparticles/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type WindowOptions struct {
	ConfigPath  string
	Watch       bool
	RecordPath  string
	RecordEvery int
}

// Window is the UI side: it owns the raylib window, feeds resizes and key
// toggles to the frame loop and shows whatever the loop presented last.
type Window struct {
	cfg     *config.Config
	pending atomic.Pointer[config.Config]

	surface  *render.BufferedSurface
	recorder *capture.Recorder
	loop     *render.FrameLoop
	line     *particle.LineGenerator
	dust     *particle.DustGenerator

	renderer     *display.Renderer
	debugOverlay *debug.DebugOverlay
	fpsMeter     debug.FPSMeter
	watcher      *config.Watcher

	screenWidth  int
	screenHeight int
}

func NewWindow(cfg *config.Config, opts WindowOptions) (*Window, error) {
	w := &Window{
		cfg:          cfg,
		renderer:     display.NewRenderer(cfg.ScalingMode),
		screenWidth:  rl.GetScreenWidth(),
		screenHeight: rl.GetScreenHeight(),
	}

	sceneWidth, sceneHeight := cfg.SceneSize(w.screenWidth, w.screenHeight)
	w.surface = render.NewBufferedSurface(sceneWidth, sceneHeight)

	var err error
	w.line, w.dust, err = cfg.Generators(sceneWidth, sceneHeight)
	if err != nil {
		return nil, err
	}

	var surface render.SurfaceHandle = w.surface
	if opts.RecordPath != "" {
		w.recorder, err = capture.CreateRecorder(w.surface, opts.RecordPath, capture.RecorderOptions{Every: opts.RecordEvery})
		if err != nil {
			return nil, err
		}
		surface = w.recorder
	}

	w.loop, err = render.NewFrameLoop(render.FrameLoopOptions{
		Surface:        surface,
		Generators:     []particle.Generator{w.line, w.dust},
		Background:     cfg.Background.NRGBA(),
		ClearEachFrame: cfg.ClearEachFrame,
		FPS:            cfg.FPS,
	})
	if err != nil {
		w.closeRecorder()
		return nil, err
	}

	w.renderer.UpdateViewport(w.screenWidth, w.screenHeight, sceneWidth, sceneHeight)

	if opts.Watch {
		w.watcher, err = config.Watch(opts.ConfigPath, func(next *config.Config) {
			w.pending.Store(next)
		})
		if err != nil {
			utils.Warn("Config hot reload disabled: %v", err)
		}
	}

	if err := w.loop.Start(); err != nil {
		w.closeRecorder()
		return nil, err
	}

	utils.Info("Scene %dx%d, %d line and %d dust particles, effect %s",
		sceneWidth, sceneHeight, w.line.Len(), w.dust.Len(), cfg.Effect)
	return w, nil
}

func (w *Window) Run() {
	rl.SetTargetFPS(int32(w.cfg.FPS))

	for !rl.WindowShouldClose() {
		w.Update()

		rl.BeginDrawing()
		w.Draw()
		rl.EndDrawing()
	}
}

func (w *Window) Update() {
	if next := w.pending.Swap(nil); next != nil {
		if err := next.Apply(w.cfg, w.loop, w.line, w.dust); err != nil {
			utils.Error("Failed to apply config: %v", err)
		}
		w.cfg = next
		w.renderer.ScalingMode = next.ScalingMode
	}

	// window resizes and render scale edits both land here
	w.screenWidth, w.screenHeight = rl.GetScreenWidth(), rl.GetScreenHeight()
	sceneWidth, sceneHeight := w.cfg.SceneSize(w.screenWidth, w.screenHeight)
	if curWidth, curHeight := w.surface.Size(); curWidth != sceneWidth || curHeight != sceneHeight {
		w.loop.Resize(sceneWidth, sceneHeight)
	}
	w.renderer.UpdateViewport(w.screenWidth, w.screenHeight, sceneWidth, sceneHeight)

	w.handleKeys()
}

func (w *Window) handleKeys() {
	switch {
	case rl.IsKeyPressed(rl.KeyL):
		w.toggleEffect(w.line)
	case rl.IsKeyPressed(rl.KeyD):
		w.toggleEffect(w.dust)
	case rl.IsKeyPressed(rl.KeyT):
		w.toggleTrails()
	case rl.IsKeyPressed(rl.KeyF8):
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
}

// toggleEffect shows g alone, or hides it when it is already shown.
func (w *Window) toggleEffect(g particle.Generator) {
	if g.IsVisible() {
		w.loop.Show("")
		utils.Debug("Effect %s hidden", g.Name())
		return
	}
	w.loop.Show(g.Name())
	utils.Debug("Effect %s shown", g.Name())
}

func (w *Window) toggleTrails() {
	clearEachFrame := !w.loop.ClearEachFrame()
	w.loop.SetClearEachFrame(clearEachFrame)
	utils.Debug("Clear each frame: %v", clearEachFrame)
}

func (w *Window) Draw() {
	w.surface.Front(func(img *image.RGBA, seq uint64) {
		w.renderer.Upload(img, seq)
	})
	w.renderer.Render()

	if !utils.ShowDebugUI {
		return
	}
	if w.debugOverlay == nil {
		w.debugOverlay = debug.NewDebugOverlay()
	}

	report := w.report()
	w.debugOverlay.Update(&report)
	if action := w.debugOverlay.Draw(report); action.ToggleClearEachFrame {
		w.toggleTrails()
	}
}

func (w *Window) report() debug.Report {
	stats := w.loop.Stats()
	surfaceWidth, surfaceHeight := w.surface.Size()

	r := debug.Report{
		Stats:          stats,
		FPS:            w.fpsMeter.Sample(time.Now(), stats.Frames),
		Interval:       w.loop.FrameInterval(),
		ClearEachFrame: w.loop.ClearEachFrame(),
		WindowWidth:    w.screenWidth,
		WindowHeight:   w.screenHeight,
		SurfaceWidth:   surfaceWidth,
		SurfaceHeight:  surfaceHeight,
		Viewport:       w.renderer.Viewport,
		ScalingMode:    w.renderer.ScalingMode,
		Recording:      w.recorder != nil,
	}
	if g := w.loop.Active(); g != nil {
		r.Active = g.Name()
		r.Particles = g.Len()
	}
	return r
}

func (w *Window) closeRecorder() {
	if w.recorder != nil {
		if err := w.recorder.Close(); err != nil {
			utils.Error("Failed to finish recording: %v", err)
		}
		w.recorder = nil
	}
}

// Close stops the render goroutine before releasing anything it uses.
func (w *Window) Close() {
	if w.watcher != nil {
		w.watcher.Close()
	}
	w.loop.Stop()
	w.closeRecorder()
	w.renderer.Close()
	if w.debugOverlay != nil {
		w.debugOverlay.Close()
	}
}
