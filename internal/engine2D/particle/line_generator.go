package particle

import (
	"fmt"
	"image/color"
	"math"

	"linux-wallpaperparticles/internal/engine2D"
)

// LineGenerator draws particles linked by lines whose opacity fades with
// distance.
type LineGenerator struct {
	generatorState

	particles []LineParticle

	minDistance  float64
	maxDistance  float64
	minDistance2 float64
	maxDistance2 float64

	particleColor color.NRGBA
	linePaint     *engine2D.Paint
}

func NewLineGenerator(opts LineOptions) (*LineGenerator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	g := &LineGenerator{particleColor: opts.Color}
	g.init(opts.ViewWidth, opts.ViewHeight, opts.Visible, opts.Rand)
	g.paint = engine2D.NewPaint(opts.Color)
	g.linePaint = engine2D.NewPaint(opts.LineColor)
	g.linePaint.StrokeWidth = opts.LineWidth
	g.setDistances(opts.MinDistance, opts.MaxDistance)

	g.particles = make([]LineParticle, opts.Count)
	for i := range g.particles {
		g.particles[i] = LineParticle{
			Body: Body{
				X:     g.rng.Float64() * float64(opts.ViewWidth),
				Y:     g.rng.Float64() * float64(opts.ViewHeight),
				Speed: opts.Speed,
			},
			Radius:      opts.Radius,
			MaxDistance: opts.MaxDistance,
			rng:         g.rng,
		}
	}

	return g, nil
}

func (g *LineGenerator) Name() string { return "line" }
func (g *LineGenerator) Len() int     { return len(g.particles) }

func (g *LineGenerator) Update() {
	w, h := float64(g.viewWidth), float64(g.viewHeight)
	for i := range g.particles {
		g.particles[i].Advance(w, h)
	}
}

func (g *LineGenerator) Draw(target engine2D.Canvas, clearEachFrame bool) error {
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

	g.paint.Color = g.particleColor
	g.paint.Alpha = 255
	for i := range g.particles {
		g.particles[i].Render(canvas, g.paint)
	}

	n := len(g.particles)
	for i := 0; i < n; i++ {
		pi := &g.particles[i]
		for j := i + 1; j < n; j++ {
			pj := &g.particles[j]

			dx := pi.X - pj.X
			dy := pi.Y - pj.Y
			alpha, ok := g.LinkAlpha(dx*dx + dy*dy)
			if !ok {
				continue
			}
			g.linePaint.Alpha = alpha
			canvas.StrokeLine(pi.X, pi.Y, pj.X, pj.Y, g.linePaint)
		}
	}

	g.composite(target, clearEachFrame)
	return nil
}

// LinkAlpha returns the line alpha for two particles at squared distance
// d2, and false when they are too far apart to link. Pairs at or inside
// the minimum distance get the literal alpha 1.
func (g *LineGenerator) LinkAlpha(d2 float64) (uint8, bool) {
	if d2 >= g.maxDistance2 {
		return 0, false
	}
	if d2 <= g.minDistance2 {
		return 1, true
	}
	return uint8(math.Round(255 * (g.maxDistance2 - d2) / (g.maxDistance2 - g.minDistance2))), true
}

func (g *LineGenerator) Distances() (float64, float64) {
	return g.minDistance, g.maxDistance
}

// SetDistances validates the link range, recomputes the squared bounds and
// propagates the wrap band to every particle.
func (g *LineGenerator) SetDistances(minDistance, maxDistance float64) error {
	if err := validateDistances(minDistance, maxDistance); err != nil {
		return err
	}
	g.setDistances(minDistance, maxDistance)
	for i := range g.particles {
		g.particles[i].MaxDistance = maxDistance
	}
	return nil
}

func (g *LineGenerator) setDistances(minDistance, maxDistance float64) {
	g.minDistance, g.maxDistance = minDistance, maxDistance
	g.minDistance2 = minDistance * minDistance
	g.maxDistance2 = maxDistance * maxDistance
}

func (g *LineGenerator) SetColors(particleColor, lineColor color.NRGBA) {
	g.particleColor = particleColor
	g.linePaint.Color = lineColor
}

func (g *LineGenerator) SetLineWidth(width float64) error {
	if width < 0 {
		return fmt.Errorf("%w: line width %.2f is negative", ErrInvalidOptions, width)
	}
	g.linePaint.StrokeWidth = width
	return nil
}

func (g *LineGenerator) SetRadius(radius float64) error {
	if radius < 0 {
		return fmt.Errorf("%w: particle radius %.2f is negative", ErrInvalidOptions, radius)
	}
	for i := range g.particles {
		g.particles[i].Radius = radius
	}
	return nil
}

func (g *LineGenerator) SetSpeed(speed float64) {
	for i := range g.particles {
		g.particles[i].Speed = speed
	}
}
