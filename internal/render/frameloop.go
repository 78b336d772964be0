// Package render drives particle generators on a background goroutine and
// hands finished frames to the host through a SurfaceHandle.
package render

import (
	"errors"
	"fmt"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"linux-wallpaperparticles/internal/engine2D"
	"linux-wallpaperparticles/internal/engine2D/particle"
	"linux-wallpaperparticles/internal/utils"
)

const (
	DefaultFPS        = 60
	DefaultRetryDelay = time.Millisecond
)

var (
	ErrAlreadyRunning = errors.New("frame loop already running")
	ErrNoSurface      = errors.New("frame loop needs a surface")
	ErrFramePanic     = errors.New("panic during frame")
)

type State int32

const (
	StateStopped State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	}
	return "unknown"
}

type FrameLoopOptions struct {
	Surface SurfaceHandle

	// Generators in priority order; the first visible one is drawn.
	Generators []particle.Generator

	Background     color.Color
	ClearEachFrame bool

	FPS        int
	RetryDelay time.Duration
}

// Stats counts loop iterations since construction.
type Stats struct {
	Frames  uint64 // presented without error
	Dropped uint64 // failed while acquiring, drawing or presenting
	Skipped uint64 // surface not ready
}

// FrameLoop owns the render goroutine.
type FrameLoop struct {
	surface    SurfaceHandle
	generators []particle.Generator
	interval   time.Duration
	retryDelay time.Duration

	background     atomic.Pointer[color.NRGBA]
	clearEachFrame atomic.Bool

	// lifecycle guards Start and Stop against each other.
	lifecycle sync.Mutex
	running   atomic.Bool
	wg        sync.WaitGroup

	frames  atomic.Uint64
	dropped atomic.Uint64
	skipped atomic.Uint64

	lastPresent time.Time
}

func NewFrameLoop(opts FrameLoopOptions) (*FrameLoop, error) {
	if opts.Surface == nil {
		return nil, ErrNoSurface
	}
	if opts.FPS < 0 {
		return nil, fmt.Errorf("frame loop: fps %d is negative", opts.FPS)
	}
	if opts.FPS == 0 {
		opts.FPS = DefaultFPS
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}
	if opts.Background == nil {
		opts.Background = color.Black
	}

	l := &FrameLoop{
		surface:    opts.Surface,
		generators: append([]particle.Generator(nil), opts.Generators...),
		interval:   time.Second / time.Duration(opts.FPS),
		retryDelay: opts.RetryDelay,
	}
	l.SetBackground(opts.Background)
	l.clearEachFrame.Store(opts.ClearEachFrame)
	return l, nil
}

func (l *FrameLoop) State() State {
	if l.running.Load() {
		return StateRunning
	}
	return StateStopped
}

func (l *FrameLoop) Start() error {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()

	if l.running.Load() {
		return ErrAlreadyRunning
	}
	l.running.Store(true)
	l.wg.Add(1)
	go l.run()

	utils.Debug("Frame loop started (%v per frame, %d generators)", l.interval, len(l.generators))
	return nil
}

// Stop ends the loop and blocks until the render goroutine has exited. The
// frame in flight, if any, completes first.
func (l *FrameLoop) Stop() {
	l.lifecycle.Lock()
	defer l.lifecycle.Unlock()

	if !l.running.Swap(false) {
		return
	}
	l.wg.Wait()

	utils.Debug("Frame loop stopped after %d frames", l.frames.Load())
}

func (l *FrameLoop) run() {
	defer l.wg.Done()

	l.lastPresent = time.Now()
	for l.running.Load() {
		if !l.frame() {
			time.Sleep(l.retryDelay)
		}
	}
}

// frame paces to the frame interval, then runs one iteration under the
// surface lock and reports whether a surface was acquired.
func (l *FrameLoop) frame() bool {
	if wait := l.interval - time.Since(l.lastPresent); wait > 0 {
		time.Sleep(wait)
	}

	l.surface.Lock()
	defer l.surface.Unlock()

	canvas, err := l.acquire()
	if err != nil {
		l.drop(err)
		return false
	}
	if canvas == nil {
		l.skipped.Add(1)
		return false
	}

	drawErr := l.draw(canvas)
	presentErr := l.present(canvas)
	l.lastPresent = time.Now()

	if err := errors.Join(drawErr, presentErr); err != nil {
		l.drop(err)
		return true
	}
	l.frames.Add(1)
	return true
}

func (l *FrameLoop) acquire() (c engine2D.Canvas, err error) {
	defer recoverFrame(&err)
	return l.surface.Acquire(), nil
}

func (l *FrameLoop) draw(canvas engine2D.Canvas) (err error) {
	defer recoverFrame(&err)

	canvas.Clear(l.Background())

	g := l.Active()
	if g == nil {
		return nil
	}
	g.Update()
	return g.Draw(canvas, l.clearEachFrame.Load())
}

func (l *FrameLoop) present(canvas engine2D.Canvas) (err error) {
	defer recoverFrame(&err)
	return l.surface.Present(canvas)
}

func (l *FrameLoop) drop(err error) {
	n := l.dropped.Add(1)
	utils.Error("Dropped frame (%d so far): %v", n, err)
}

func recoverFrame(err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%w: %v", ErrFramePanic, r)
	}
}

// Active returns the first visible generator, or nil.
func (l *FrameLoop) Active() particle.Generator {
	for _, g := range l.generators {
		if g.IsVisible() {
			return g
		}
	}
	return nil
}

func (l *FrameLoop) Generators() []particle.Generator {
	return l.generators
}

// Show makes the named generator the only visible one. An empty name hides
// every generator. It reports whether the name matched.
func (l *FrameLoop) Show(name string) bool {
	found := false
	for _, g := range l.generators {
		visible := g.Name() == name
		found = found || visible
		if g.IsVisible() != visible {
			g.SetVisible(visible)
		}
	}
	return found
}

// Resize propagates a new surface size to the surface and every generator.
// It waits for the frame in flight, so the next frame sees the new size.
func (l *FrameLoop) Resize(width, height int) {
	l.WithSurfaceLock(func() {
		if r, ok := l.surface.(Resizer); ok {
			r.Resize(width, height)
		}
		for _, g := range l.generators {
			g.SetViewport(width, height)
		}
	})
	utils.Debug("Surface resized to %dx%d", width, height)
}

// WithSurfaceLock runs fn while no frame is being drawn. Generator setters
// called from outside the render goroutine belong in fn.
func (l *FrameLoop) WithSurfaceLock(fn func()) {
	l.surface.Lock()
	defer l.surface.Unlock()
	fn()
}

// SetClearEachFrame switches between clearing and trail mode. Trails are
// cleared either way so a later switch back starts clean.
func (l *FrameLoop) SetClearEachFrame(clear bool) {
	l.clearEachFrame.Store(clear)
	for _, g := range l.generators {
		g.ClearTrail()
	}
}

func (l *FrameLoop) ClearEachFrame() bool {
	return l.clearEachFrame.Load()
}

func (l *FrameLoop) SetBackground(c color.Color) {
	bg := color.NRGBAModel.Convert(c).(color.NRGBA)
	l.background.Store(&bg)
}

func (l *FrameLoop) Background() color.NRGBA {
	return *l.background.Load()
}

func (l *FrameLoop) FrameInterval() time.Duration {
	return l.interval
}

func (l *FrameLoop) Stats() Stats {
	return Stats{
		Frames:  l.frames.Load(),
		Dropped: l.dropped.Load(),
		Skipped: l.skipped.Load(),
	}
}
