package engine2D

import "math"

const (
	ScalingFill = "fill"
	ScalingFit  = "fit"
)

// Viewport maps a scene of SceneWidth x SceneHeight pixels onto a screen.
type Viewport struct {
	SceneWidth  int
	SceneHeight int
	RenderScale float64
	OffsetX     float64
	OffsetY     float64
}

// Update calculates render scale and scene offsets based on screen size.
func (v *Viewport) Update(screenWidth, screenHeight int, scalingMode string) {
	if v.SceneWidth <= 0 || v.SceneHeight <= 0 {
		v.RenderScale, v.OffsetX, v.OffsetY = 1, 0, 0
		return
	}

	scaleW := float64(screenWidth) / float64(v.SceneWidth)
	scaleH := float64(screenHeight) / float64(v.SceneHeight)

	if scalingMode == ScalingFit {
		v.RenderScale = math.Min(scaleW, scaleH)
	} else {
		v.RenderScale = math.Max(scaleW, scaleH)
	}

	v.OffsetX = (float64(screenWidth) - float64(v.SceneWidth)*v.RenderScale) / 2
	v.OffsetY = (float64(screenHeight) - float64(v.SceneHeight)*v.RenderScale) / 2
}

// Dest returns the destination rectangle of the scene on screen.
func (v *Viewport) Dest() (x, y, w, h float64) {
	return v.OffsetX, v.OffsetY, float64(v.SceneWidth) * v.RenderScale, float64(v.SceneHeight) * v.RenderScale
}

// ScaledSize returns the surface size used when rendering a screen of the
// given size at a fractional resolution. Both sides are at least 1 unless
// the screen side itself is 0.
func ScaledSize(screenWidth, screenHeight int, renderScale float64) (int, int) {
	if renderScale <= 0 || renderScale > 1 {
		renderScale = 1
	}
	scale := func(n int) int {
		if n <= 0 {
			return 0
		}
		return max(1, int(math.Round(float64(n)*renderScale)))
	}
	return scale(screenWidth), scale(screenHeight)
}
