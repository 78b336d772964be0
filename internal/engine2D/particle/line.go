package particle

import "linux-wallpaperparticles/internal/engine2D"

// LineParticle is a node of the line network; only its position matters.
type LineParticle struct {
	Body

	Radius float64

	// MaxDistance is the width of the wrap band outside each edge.
	MaxDistance float64

	rng *Random
}

func (p *LineParticle) Advance(viewWidth, viewHeight float64) {
	p.integrate()

	if p.outside(p.Radius, viewWidth, viewHeight) {
		p.reseed(p.rng, viewWidth, viewHeight)
	}

	// wrap to the opposite margin once past the band
	if p.X < -p.MaxDistance {
		p.X += viewWidth + p.MaxDistance*2
	} else if p.X > viewWidth+p.MaxDistance {
		p.X -= viewWidth + p.MaxDistance*2
	}
	if p.Y < -p.MaxDistance {
		p.Y += viewHeight + p.MaxDistance*2
	} else if p.Y > viewHeight+p.MaxDistance {
		p.Y -= viewHeight + p.MaxDistance*2
	}

	p.perturb(p.rng)
}

func (p *LineParticle) Render(c engine2D.Canvas, paint *engine2D.Paint) {
	c.FillCircle(p.X, p.Y, p.Radius, paint)
}
