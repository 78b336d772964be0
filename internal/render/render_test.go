package render

import (
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"linux-wallpaperparticles/internal/engine2D"
	"linux-wallpaperparticles/internal/engine2D/particle"
	"linux-wallpaperparticles/internal/engine2D/raster"
	"linux-wallpaperparticles/internal/engine2D/recording"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	sync.Mutex

	ready          atomic.Bool
	panicOnAcquire atomic.Bool
	canvas         *recording.Recorder

	acquires atomic.Int64
	presents atomic.Int64
}

func newFakeSurface(ready bool) *fakeSurface {
	s := &fakeSurface{canvas: recording.NewRecorder(64, 48)}
	s.ready.Store(ready)
	return s
}

func (s *fakeSurface) Acquire() engine2D.Canvas {
	if s.panicOnAcquire.Load() {
		panic("surface torn down")
	}
	if !s.ready.Load() {
		return nil
	}
	s.acquires.Add(1)
	s.canvas.Reset()
	return s.canvas
}

func (s *fakeSurface) Present(engine2D.Canvas) error {
	s.presents.Add(1)
	return nil
}

type stubGenerator struct {
	name        string
	visible     atomic.Bool
	panicOnDraw bool

	updates atomic.Int64
	draws   atomic.Int64
	clears  atomic.Int64

	width, height int
}

func newStub(name string, visible bool) *stubGenerator {
	g := &stubGenerator{name: name}
	g.visible.Store(visible)
	return g
}

func (g *stubGenerator) Name() string { return g.name }
func (g *stubGenerator) Len() int     { return 0 }
func (g *stubGenerator) Update()      { g.updates.Add(1) }

func (g *stubGenerator) Draw(target engine2D.Canvas, clearEachFrame bool) error {
	g.draws.Add(1)
	if g.panicOnDraw {
		panic("bad generator")
	}
	return nil
}

func (g *stubGenerator) SetViewport(width, height int) { g.width, g.height = width, height }
func (g *stubGenerator) Viewport() (int, int)          { return g.width, g.height }
func (g *stubGenerator) SetVisible(visible bool)       { g.visible.Store(visible) }
func (g *stubGenerator) IsVisible() bool               { return g.visible.Load() }
func (g *stubGenerator) ClearTrail()                   { g.clears.Add(1) }

func startLoop(t *testing.T, opts FrameLoopOptions) *FrameLoop {
	t.Helper()
	l, err := NewFrameLoop(opts)
	require.NoError(t, err)
	require.NoError(t, l.Start())
	t.Cleanup(l.Stop)
	return l
}

func TestNewFrameLoopValidation(t *testing.T) {
	_, err := NewFrameLoop(FrameLoopOptions{})
	assert.ErrorIs(t, err, ErrNoSurface)

	_, err = NewFrameLoop(FrameLoopOptions{Surface: newFakeSurface(true), FPS: -1})
	assert.Error(t, err)

	l, err := NewFrameLoop(FrameLoopOptions{Surface: newFakeSurface(true)})
	require.NoError(t, err)
	assert.Equal(t, time.Second/60, l.FrameInterval())
	assert.Equal(t, color.NRGBA{A: 255}, l.Background())
	assert.Equal(t, StateStopped, l.State())
}

func TestStartStopLifecycle(t *testing.T) {
	l, err := NewFrameLoop(FrameLoopOptions{Surface: newFakeSurface(true), FPS: 240})
	require.NoError(t, err)

	require.NoError(t, l.Start())
	assert.Equal(t, StateRunning, l.State())
	assert.ErrorIs(t, l.Start(), ErrAlreadyRunning)

	l.Stop()
	assert.Equal(t, StateStopped, l.State())
	l.Stop()

	require.NoError(t, l.Start(), "a stopped loop can be restarted")
	l.Stop()
}

func TestDrawsOnlyFirstVisibleGenerator(t *testing.T) {
	hidden := newStub("line", false)
	shown := newStub("dust", true)
	other := newStub("extra", true)
	surface := newFakeSurface(true)

	l := startLoop(t, FrameLoopOptions{
		Surface:    surface,
		Generators: []particle.Generator{hidden, shown, other},
		Background: color.NRGBA{R: 10, G: 20, B: 30, A: 255},
		FPS:        240,
	})

	require.Eventually(t, func() bool { return shown.draws.Load() >= 3 }, 2*time.Second, time.Millisecond)
	l.Stop()

	assert.Zero(t, hidden.updates.Load())
	assert.Zero(t, other.updates.Load())
	assert.Equal(t, shown.updates.Load(), shown.draws.Load())
	assert.Same(t, shown, l.Active())

	ops := surface.canvas.Ops
	require.NotEmpty(t, ops)
	assert.Equal(t, recording.OpClear, ops[0].Kind)
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, ops[0].Color)
}

func TestSkipsWhileSurfaceNotReady(t *testing.T) {
	g := newStub("dust", true)
	surface := newFakeSurface(false)

	l := startLoop(t, FrameLoopOptions{Surface: surface, Generators: []particle.Generator{g}})

	require.Eventually(t, func() bool { return l.Stats().Skipped >= 5 }, 2*time.Second, time.Millisecond)
	assert.Zero(t, g.updates.Load(), "simulation must not advance without a surface")
	assert.Zero(t, surface.presents.Load())

	surface.ready.Store(true)
	require.Eventually(t, func() bool { return l.Stats().Frames >= 1 }, 2*time.Second, time.Millisecond)
	assert.Zero(t, l.Stats().Dropped)
}

func TestFaultyFrameDoesNotKillLoop(t *testing.T) {
	g := newStub("dust", true)
	g.panicOnDraw = true
	surface := newFakeSurface(true)

	l := startLoop(t, FrameLoopOptions{Surface: surface, Generators: []particle.Generator{g}, FPS: 240})

	require.Eventually(t, func() bool { return l.Stats().Dropped >= 3 }, 2*time.Second, time.Millisecond)
	assert.Equal(t, StateRunning, l.State())
	l.Stop()

	assert.Equal(t, surface.acquires.Load(), surface.presents.Load(), "every acquired surface is presented")
	assert.Zero(t, l.Stats().Frames)
}

func TestAcquirePanicIsRecovered(t *testing.T) {
	surface := newFakeSurface(true)
	surface.panicOnAcquire.Store(true)

	l := startLoop(t, FrameLoopOptions{Surface: surface})

	require.Eventually(t, func() bool { return l.Stats().Dropped >= 2 }, 2*time.Second, time.Millisecond)
	surface.panicOnAcquire.Store(false)
	require.Eventually(t, func() bool { return l.Stats().Frames >= 1 }, 2*time.Second, time.Millisecond)
}

func TestFramePacing(t *testing.T) {
	surface := newFakeSurface(true)
	l := startLoop(t, FrameLoopOptions{Surface: surface, FPS: 20})

	time.Sleep(300 * time.Millisecond)
	l.Stop()

	// 20 fps over 300ms is 6 frames; allow for scheduler slack
	frames := l.Stats().Frames
	assert.GreaterOrEqual(t, frames, uint64(2))
	assert.LessOrEqual(t, frames, uint64(8))
}

func TestResizeFromAnotherGoroutine(t *testing.T) {
	dust, err := particle.NewDustGenerator(particle.DustOptions{
		ViewWidth: 64, ViewHeight: 48, Count: 30,
		Color: color.NRGBA{R: 255, A: 255}, Speed: 3,
		MinRadius: 1, MaxRadius: 4, Visible: true,
		Rand: particle.NewRandom(1),
	})
	require.NoError(t, err)

	surface := NewBufferedSurface(64, 48)
	l := startLoop(t, FrameLoopOptions{
		Surface:    surface,
		Generators: []particle.Generator{dust},
		FPS:        240,
	})

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i <= 20; i++ {
			l.Resize(64+i, 48+i)
			time.Sleep(time.Millisecond)
		}
		l.Resize(120, 90)
	}()
	wg.Wait()

	require.Eventually(t, func() bool { return l.Stats().Frames >= 3 }, 2*time.Second, time.Millisecond)
	l.Stop()

	w, h := dust.Viewport()
	assert.Equal(t, 120, w)
	assert.Equal(t, 90, h)
	sw, sh := surface.Size()
	assert.Equal(t, 120, sw)
	assert.Equal(t, 90, sh)
	assert.Zero(t, l.Stats().Dropped)
}

func TestSurfaceSizeWhileRunning(t *testing.T) {
	surface := NewBufferedSurface(32, 24)
	l := startLoop(t, FrameLoopOptions{Surface: surface, FPS: 240})

	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		w, h := surface.Size()
		require.Equal(t, 32, w)
		require.Equal(t, 24, h)
	}
	l.Stop()
	assert.Positive(t, l.Stats().Frames)
}

func TestSurfaceLockFreeBetweenFrames(t *testing.T) {
	surface := newFakeSurface(true)
	l := startLoop(t, FrameLoopOptions{Surface: surface, FPS: 2})

	require.Eventually(t, func() bool { return l.Stats().Frames >= 1 }, 2*time.Second, time.Millisecond)

	// the loop spends ~500ms waiting for the next frame; the lock must be
	// free during that wait
	for range 5 {
		start := time.Now()
		l.WithSurfaceLock(func() {})
		assert.Less(t, time.Since(start), 100*time.Millisecond)
		time.Sleep(20 * time.Millisecond)
	}
}

func TestSetClearEachFrameClearsTrails(t *testing.T) {
	a, b := newStub("line", true), newStub("dust", false)
	l, err := NewFrameLoop(FrameLoopOptions{
		Surface:        newFakeSurface(true),
		Generators:     []particle.Generator{a, b},
		ClearEachFrame: true,
	})
	require.NoError(t, err)

	assert.True(t, l.ClearEachFrame())
	l.SetClearEachFrame(false)
	assert.False(t, l.ClearEachFrame())
	assert.Equal(t, int64(1), a.clears.Load())
	assert.Equal(t, int64(1), b.clears.Load())
}

func TestShow(t *testing.T) {
	line, dust := newStub("line", true), newStub("dust", false)
	l, err := NewFrameLoop(FrameLoopOptions{
		Surface:    newFakeSurface(true),
		Generators: []particle.Generator{line, dust},
	})
	require.NoError(t, err)

	assert.True(t, l.Show("dust"))
	assert.False(t, line.IsVisible())
	assert.True(t, dust.IsVisible())
	assert.Same(t, dust, l.Active())

	assert.False(t, l.Show(""))
	assert.Nil(t, l.Active())
}

func TestBufferedSurface(t *testing.T) {
	s := NewBufferedSurface(0, 10)
	assert.Nil(t, s.Acquire(), "zero sized surface is not ready")
	called := false
	s.Front(func(*image.RGBA, uint64) { called = true })
	assert.False(t, called)

	s.Resize(8, 4)
	c := s.Acquire()
	require.NotNil(t, c)
	c.Clear(color.NRGBA{G: 255, A: 255})
	require.NoError(t, s.Present(c))

	s.Front(func(img *image.RGBA, seq uint64) {
		called = true
		assert.Equal(t, uint64(1), seq)
		assert.Equal(t, 8, img.Bounds().Dx())
		assert.Equal(t, color.RGBA{G: 255, A: 255}, img.RGBAAt(3, 2))
	})
	assert.True(t, called)

	next := s.Acquire()
	assert.NotSame(t, c, next, "buffers swap on present")
	assert.ErrorIs(t, s.Present(raster.NewCanvas(8, 4)), ErrForeignCanvas)
	assert.ErrorIs(t, s.Present(recording.NewRecorder(8, 4)), ErrForeignCanvas)
}

var (
	_ SurfaceHandle = (*BufferedSurface)(nil)
	_ Resizer       = (*BufferedSurface)(nil)
)
