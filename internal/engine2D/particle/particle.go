// Package particle implements the dust and line-network particle effects:
// the particles, their physics step, and the generators that own and draw
// them.
package particle

import "linux-wallpaperparticles/internal/engine2D"

const (
	velocityJitter  = 0.2
	velocityDamping = 0.01
)

// Particle is a single physical entity of an effect.
type Particle interface {
	// Advance moves the particle one tick inside a view of the given size.
	Advance(viewWidth, viewHeight float64)
	Render(c engine2D.Canvas, p *engine2D.Paint)
}

// Body is the kinematic state shared by every particle kind.
type Body struct {
	X, Y   float64
	VX, VY float64
	Speed  float64
}

func (b *Body) integrate() {
	b.X += b.VX * b.Speed
	b.Y += b.VY * b.Speed
}

// outside reports whether the center has left [-r, w+r] x [-r, h+r].
func (b *Body) outside(r, w, h float64) bool {
	return b.X < -r || b.X > w+r || b.Y < -r || b.Y > h+r
}

func (b *Body) reseed(rng *Random, w, h float64) {
	b.X = rng.Float64() * w
	b.Y = rng.Float64() * h
}

// perturb applies a bounded random impulse damped toward zero, which keeps
// long-run velocity bounded.
func (b *Body) perturb(rng *Random) {
	b.VX += velocityJitter*(rng.Float64()-0.5) - velocityDamping*b.VX
	b.VY += velocityJitter*(rng.Float64()-0.5) - velocityDamping*b.VY
}
