package particle

import (
	"errors"
	"sync/atomic"

	"linux-wallpaperparticles/internal/engine2D"
)

// TrailAlpha is the paint alpha used when particles stamp into the trail
// bitmap instead of a freshly cleared canvas.
const TrailAlpha = 22

var (
	ErrInvalidOptions = errors.New("invalid particle options")
	ErrNilCanvas      = errors.New("nil draw target")
)

// Generator owns a fixed collection of particles of one effect kind.
//
// Update, Draw, SetViewport and the effect setters belong to the render
// goroutine; call them from elsewhere only while holding the surface lock
// or while no frame loop drives the generator. SetVisible and ClearTrail
// are safe from any goroutine and take effect on the next frame.
type Generator interface {
	Name() string
	Len() int

	Update()
	Draw(target engine2D.Canvas, clearEachFrame bool) error

	SetViewport(width, height int)
	Viewport() (int, int)

	SetVisible(visible bool)
	IsVisible() bool

	// ClearTrail erases the trail bitmap before the next trail draw.
	ClearTrail()
}

// generatorState holds what every generator kind shares: viewport, the
// visibility flag, the persistent trail bitmap and the paint.
type generatorState struct {
	viewWidth  int
	viewHeight int

	visible      atomic.Bool
	clearPending atomic.Bool

	trail      engine2D.Bitmap
	trailDirty bool

	paint *engine2D.Paint
	rng   *Random
}

func (g *generatorState) init(width, height int, visible bool, rng *Random) {
	if rng == nil {
		rng = NewTimeRandom()
	}
	g.viewWidth, g.viewHeight = width, height
	g.visible.Store(visible)
	g.trailDirty = true
	g.rng = rng
}

func (g *generatorState) SetViewport(width, height int) {
	g.viewWidth, g.viewHeight = width, height
	g.trailDirty = true
}

func (g *generatorState) Viewport() (int, int) {
	return g.viewWidth, g.viewHeight
}

// SetVisible also clears the trail so a re-shown effect starts clean.
func (g *generatorState) SetVisible(visible bool) {
	g.ClearTrail()
	g.visible.Store(visible)
}

func (g *generatorState) IsVisible() bool {
	return g.visible.Load()
}

func (g *generatorState) ClearTrail() {
	g.clearPending.Store(true)
}

// drawCanvas returns the canvas particles are drawn on this frame: the
// target itself when clearing, otherwise the trail bitmap, reallocated
// first if the viewport changed. It returns nil when there is nothing to
// draw into.
func (g *generatorState) drawCanvas(target engine2D.Canvas, clearEachFrame bool) engine2D.Canvas {
	if clearEachFrame {
		return target
	}
	if g.viewWidth <= 0 || g.viewHeight <= 0 {
		return nil
	}

	if g.trail == nil || g.trailDirty {
		g.trail = target.NewBitmap(g.viewWidth, g.viewHeight)
		g.trailDirty = false
		g.clearPending.Store(false)
	} else if g.clearPending.Swap(false) {
		g.trail.Erase()
	}
	return g.trail
}

// composite blits the trail bitmap onto the target in trail mode.
func (g *generatorState) composite(target engine2D.Canvas, clearEachFrame bool) {
	if clearEachFrame || g.trail == nil {
		return
	}
	target.DrawBitmap(g.trail, 0, 0, 255)
}
