package particle

import (
	"image/color"

	"linux-wallpaperparticles/internal/engine2D"
)

// rampStep bounds the random step drawn on every ramp reversal.
const rampStep = 1.0 / 50.0

// DustParticle twinkles: its opacity and scale ping-pong independently
// between their bounds with a step re-randomized at every reversal.
type DustParticle struct {
	Body

	// Scale multiplies MaxRadius; it stays in [MinRadius/MaxRadius, 1].
	Scale       float64
	ScaleFactor float64

	Opacity       float64
	OpacityFactor float64

	OpacityIncreasing bool
	SizeIncreasing    bool

	Color     color.NRGBA
	MinRadius float64
	MaxRadius float64

	rng *Random
}

func (p *DustParticle) minScale() float64 {
	return p.MinRadius / p.MaxRadius
}

func (p *DustParticle) Advance(viewWidth, viewHeight float64) {
	p.integrate()

	if p.outside(p.MaxRadius*p.Scale, viewWidth, viewHeight) {
		p.reseed(p.rng, viewWidth, viewHeight)
		p.Opacity = 0
		p.Scale = p.rng.Range(p.minScale(), 1)
	}

	p.perturb(p.rng)
}

func (p *DustParticle) AdvanceOpacity() {
	if p.OpacityIncreasing {
		p.Opacity += p.OpacityFactor
		if p.Opacity >= 1 {
			p.Opacity = 1
			p.OpacityIncreasing = false
			p.OpacityFactor = p.rng.Float64() * rampStep
		}
		return
	}

	p.Opacity -= p.OpacityFactor
	if p.Opacity <= 0 {
		p.Opacity = 0
		p.OpacityIncreasing = true
		p.OpacityFactor = p.rng.Float64() * rampStep
	}
}

// AdvanceSize ramps the scale. The floor compares absolute radii since
// MinRadius and MaxRadius are configured independently.
func (p *DustParticle) AdvanceSize() {
	if p.SizeIncreasing {
		p.Scale += p.ScaleFactor
		if p.Scale >= 1 {
			p.Scale = 1
			p.SizeIncreasing = false
			p.ScaleFactor = p.rng.Float64() * rampStep
		}
		return
	}

	p.Scale -= p.ScaleFactor
	if p.Scale*p.MaxRadius <= p.MinRadius {
		p.Scale = p.minScale()
		p.SizeIncreasing = true
		p.ScaleFactor = p.rng.Float64() * rampStep
	}
}

// OpacityAlpha is the paint alpha for the current opacity.
func (p *DustParticle) OpacityAlpha() uint8 {
	return uint8(p.Opacity * 255)
}

func (p *DustParticle) Render(c engine2D.Canvas, paint *engine2D.Paint) {
	p.render(c, paint, p.OpacityAlpha())
}

// render draws a circle of MaxRadius through a translate+scale transform so
// a radial gradient on the paint keeps its normalized profile at any size.
func (p *DustParticle) render(c engine2D.Canvas, paint *engine2D.Paint, alpha uint8) {
	paint.Color = p.Color
	paint.Alpha = alpha

	c.Save()
	c.Translate(p.X, p.Y)
	c.Scale(p.Scale, p.Scale)
	c.FillCircle(0, 0, p.MaxRadius, paint)
	c.Restore()
}
