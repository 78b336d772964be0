package render

import (
	"errors"
	"image"
	"sync"

	"linux-wallpaperparticles/internal/engine2D"
	"linux-wallpaperparticles/internal/engine2D/raster"
)

var ErrForeignCanvas = errors.New("canvas was not acquired from this surface")

// SurfaceHandle is the drawable surface a FrameLoop renders into. The
// handle is its own lock: acquire, draw and present happen while it is
// held, and so does every viewport change.
type SurfaceHandle interface {
	sync.Locker

	// Acquire returns the canvas to draw the next frame on, or nil while
	// the surface is not ready. Not being ready is not an error.
	Acquire() engine2D.Canvas

	// Present releases a canvas returned by Acquire.
	Present(c engine2D.Canvas) error
}

// Resizer is implemented by surfaces whose size follows the host window.
type Resizer interface {
	Resize(width, height int)
}

// BufferedSurface is a double-buffered software surface. The render
// goroutine draws into the back buffer; Present swaps it to the front where
// the host reads it with Front.
type BufferedSurface struct {
	sync.Mutex

	back *raster.Canvas

	frontMu sync.Mutex
	front   *raster.Canvas
	seq     uint64
}

func NewBufferedSurface(width, height int) *BufferedSurface {
	s := &BufferedSurface{}
	s.Resize(width, height)
	return s
}

// Resize reallocates both buffers. A surface with a zero side is not ready.
// Callers must hold the surface lock.
func (s *BufferedSurface) Resize(width, height int) {
	s.frontMu.Lock()
	defer s.frontMu.Unlock()

	if width <= 0 || height <= 0 {
		s.back, s.front = nil, nil
		return
	}
	s.back = raster.NewCanvas(width, height)
	s.front = raster.NewCanvas(width, height)
}

// Size returns the current buffer size. It is safe to call without the
// surface lock.
func (s *BufferedSurface) Size() (int, int) {
	s.frontMu.Lock()
	defer s.frontMu.Unlock()

	if s.back == nil {
		return 0, 0
	}
	return s.back.Width(), s.back.Height()
}

func (s *BufferedSurface) Acquire() engine2D.Canvas {
	if s.back == nil {
		return nil
	}
	s.back.Reset()
	return s.back
}

func (s *BufferedSurface) Present(c engine2D.Canvas) error {
	back, ok := c.(*raster.Canvas)
	if !ok || back == nil || back != s.back {
		return ErrForeignCanvas
	}

	s.frontMu.Lock()
	s.back, s.front = s.front, s.back
	s.seq++
	s.frontMu.Unlock()
	return nil
}

// Front calls fn with the last presented frame and its sequence number,
// which starts at 1 for the first frame. fn is not called before the
// surface is ready, and must not retain img.
func (s *BufferedSurface) Front(fn func(img *image.RGBA, seq uint64)) {
	s.frontMu.Lock()
	defer s.frontMu.Unlock()

	if s.front == nil {
		return
	}
	fn(s.front.Image(), s.seq)
}
