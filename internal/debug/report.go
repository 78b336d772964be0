package debug

import (
	"fmt"
	"runtime"
	"time"

	"linux-wallpaperparticles/internal/engine2D"
	"linux-wallpaperparticles/internal/render"
)

// Report is a snapshot of what the overlay shows. It is filled on the UI
// thread once per displayed frame.
type Report struct {
	Stats    render.Stats
	FPS      float64
	Interval time.Duration

	Active         string
	Particles      int
	ClearEachFrame bool

	WindowWidth, WindowHeight   int
	SurfaceWidth, SurfaceHeight int
	Viewport                    engine2D.Viewport
	ScalingMode                 string

	Recording bool

	Mem        runtime.MemStats
	Goroutines int
}

type Section struct {
	Title string
	Lines []string
}

func (r Report) Sections() []Section {
	active := r.Active
	if active == "" {
		active = "none"
	}
	mode := "clear"
	if !r.ClearEachFrame {
		mode = "trail"
	}

	target := 0.0
	if r.Interval > 0 {
		target = float64(time.Second) / float64(r.Interval)
	}

	timing := Section{Title: "Timing:", Lines: []string{
		fmt.Sprintf("FPS: %.1f / %.0f", r.FPS, target),
		fmt.Sprintf("Frames: %d", r.Stats.Frames),
		fmt.Sprintf("Dropped: %d", r.Stats.Dropped),
		fmt.Sprintf("Skipped: %d", r.Stats.Skipped),
	}}

	effect := Section{Title: "Effect:", Lines: []string{
		fmt.Sprintf("Active: %s (%d particles)", active, r.Particles),
		fmt.Sprintf("Mode: %s", mode),
	}}
	if r.Recording {
		effect.Lines = append(effect.Lines, "Recording")
	}

	screen := Section{Title: "Screen:", Lines: []string{
		fmt.Sprintf("Window: %dx%d", r.WindowWidth, r.WindowHeight),
		fmt.Sprintf("Surface: %dx%d", r.SurfaceWidth, r.SurfaceHeight),
	}}
	if r.Viewport.SceneWidth > 0 {
		screen.Lines = append(screen.Lines,
			fmt.Sprintf("Scene Size: %dx%d", r.Viewport.SceneWidth, r.Viewport.SceneHeight),
			fmt.Sprintf("Render Scale: %.2fx (%s)", r.Viewport.RenderScale, r.ScalingMode),
		)
	}

	memory := Section{Title: "Memory Usage:", Lines: []string{
		fmt.Sprintf("Heap Alloc: %.2f MB", float64(r.Mem.HeapAlloc)/1024/1024),
		fmt.Sprintf("Process Total: %.2f MB", float64(r.Mem.Sys)/1024/1024),
		fmt.Sprintf("Goroutines: %d", r.Goroutines),
	}}

	return []Section{timing, effect, screen, memory}
}

// FPSMeter turns the loop's presented frame counter into a rate, refreshed
// about once a second.
type FPSMeter struct {
	last   time.Time
	frames uint64
	fps    float64
}

func (m *FPSMeter) Sample(now time.Time, frames uint64) float64 {
	if m.last.IsZero() {
		m.last, m.frames = now, frames
		return m.fps
	}
	if elapsed := now.Sub(m.last); elapsed >= time.Second {
		m.fps = float64(frames-m.frames) / elapsed.Seconds()
		m.last, m.frames = now, frames
	}
	return m.fps
}
