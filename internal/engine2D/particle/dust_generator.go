package particle

import (
	"image/color"

	"linux-wallpaperparticles/internal/engine2D"
)

// DustGenerator drives twinkling dust particles.
type DustGenerator struct {
	generatorState

	particles []DustParticle
	minRadius float64
	maxRadius float64
	gradient  *engine2D.RadialGradient
}

func NewDustGenerator(opts DustOptions) (*DustGenerator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := &DustGenerator{
		minRadius: opts.MinRadius,
		maxRadius: opts.MaxRadius,
		gradient:  opts.Gradient,
	}
	g.init(opts.ViewWidth, opts.ViewHeight, opts.Visible, opts.Rand)
	g.paint = engine2D.NewPaint(opts.Color)

	minScale := opts.MinRadius / opts.MaxRadius
	g.particles = make([]DustParticle, opts.Count)
	for i := range g.particles {
		g.particles[i] = DustParticle{
			Body: Body{
				X:     g.rng.Float64() * float64(opts.ViewWidth),
				Y:     g.rng.Float64() * float64(opts.ViewHeight),
				Speed: opts.Speed,
			},
			Scale:         g.rng.Range(minScale, 1),
			ScaleFactor:   minScale,
			Opacity:       g.rng.Float64(),
			OpacityFactor: 0.01,
			Color:         opts.Color,
			MinRadius:     opts.MinRadius,
			MaxRadius:     opts.MaxRadius,
			rng:           g.rng,
		}
	}

	return g, nil
}

func (g *DustGenerator) Name() string { return "dust" }
func (g *DustGenerator) Len() int     { return len(g.particles) }

// Update moves every particle before ramping it, so a particle re-seeded
// this tick starts its fade-in from zero opacity.
func (g *DustGenerator) Update() {
	w, h := float64(g.viewWidth), float64(g.viewHeight)
	for i := range g.particles {
		p := &g.particles[i]
		p.Advance(w, h)
		p.AdvanceOpacity()
		p.AdvanceSize()
	}
}

func (g *DustGenerator) Draw(target engine2D.Canvas, clearEachFrame bool) error {
	if target == nil {
		return ErrNilCanvas
	}
	if !g.IsVisible() {
		return nil
	}

	canvas := g.drawCanvas(target, clearEachFrame)
	if canvas == nil {
		return nil
	}

	g.paint.Gradient = g.gradient
	for i := range g.particles {
		p := &g.particles[i]
		alpha := p.OpacityAlpha()
		if !clearEachFrame {
			alpha = TrailAlpha
		}
		p.render(canvas, g.paint, alpha)
	}

	g.composite(target, clearEachFrame)
	return nil
}

func (g *DustGenerator) Radii() (float64, float64) {
	return g.minRadius, g.maxRadius
}

// SetRadii changes both radius bounds at once and propagates them to every
// particle.
func (g *DustGenerator) SetRadii(minRadius, maxRadius float64) error {
	if err := validateRadii(minRadius, maxRadius); err != nil {
		return err
	}
	g.minRadius, g.maxRadius = minRadius, maxRadius
	minScale := minRadius / maxRadius
	for i := range g.particles {
		p := &g.particles[i]
		p.MinRadius, p.MaxRadius = minRadius, maxRadius
		if p.Scale < minScale {
			p.Scale = minScale
		}
	}
	return nil
}

func (g *DustGenerator) SetMinRadius(v float64) error {
	return g.SetRadii(v, g.maxRadius)
}

func (g *DustGenerator) SetMaxRadius(v float64) error {
	return g.SetRadii(g.minRadius, v)
}

func (g *DustGenerator) SetColor(c color.NRGBA) {
	g.paint.Color = c
	for i := range g.particles {
		g.particles[i].Color = c
	}
}

func (g *DustGenerator) SetSpeed(speed float64) {
	for i := range g.particles {
		g.particles[i].Speed = speed
	}
}

// SetGradient attaches a radial gradient fill; nil draws solid circles.
func (g *DustGenerator) SetGradient(grad *engine2D.RadialGradient) {
	g.gradient = grad
}
