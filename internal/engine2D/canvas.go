package engine2D

import (
	"image/color"
)

// Paint carries the style of a single draw call. Alpha multiplies the alpha
// channel of Color, the way a paint's alpha overrides its color's alpha.
type Paint struct {
	Color       color.NRGBA
	Alpha       uint8
	StrokeWidth float64
	Gradient    *RadialGradient
}

// NewPaint returns an opaque paint of the given color.
func NewPaint(c color.NRGBA) *Paint {
	return &Paint{Color: c, Alpha: 255, StrokeWidth: 1}
}

// Effective returns Color with Alpha applied.
func (p *Paint) Effective() color.NRGBA {
	return ApplyAlpha(p.Color, p.Alpha)
}

// ApplyAlpha scales the alpha of c by a/255.
func ApplyAlpha(c color.NRGBA, a uint8) color.NRGBA {
	c.A = uint8((uint32(c.A)*uint32(a) + 127) / 255)
	return c
}

type GradientStop struct {
	Offset float64
	Color  color.NRGBA
}

// RadialGradient is centered on the local origin of the shape being filled,
// so a translate+scale transform keeps its normalized profile.
type RadialGradient struct {
	Radius float64
	Stops  []GradientStop
}

func NewRadialGradient(radius float64, stops ...GradientStop) *RadialGradient {
	return &RadialGradient{Radius: radius, Stops: stops}
}

// Canvas is the 2D drawing capability the particle core renders through.
// Implementations are not safe for concurrent use.
type Canvas interface {
	Width() int
	Height() int

	// Clear replaces every pixel with c, ignoring the transform.
	Clear(c color.Color)

	Save()
	Restore()
	Translate(x, y float64)
	Scale(sx, sy float64)

	FillCircle(cx, cy, r float64, p *Paint)
	StrokeLine(x1, y1, x2, y2 float64, p *Paint)

	// DrawBitmap composites b at (x, y) with the given alpha.
	DrawBitmap(b Bitmap, x, y float64, alpha uint8)

	// NewBitmap allocates an offscreen bitmap compatible with this canvas.
	NewBitmap(width, height int) Bitmap
}

// Bitmap is an offscreen canvas whose pixels persist across frames.
type Bitmap interface {
	Canvas

	// Erase resets every pixel to transparent.
	Erase()
}
