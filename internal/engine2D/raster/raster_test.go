package raster

import (
	"image/color"
	"testing"

	"linux-wallpaperparticles/internal/engine2D"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func rgbaAt(c *Canvas, x, y int) color.RGBA {
	return c.Image().RGBAAt(x, y)
}

func TestClearFillsEveryPixel(t *testing.T) {
	c := NewCanvas(8, 4)
	assert.Equal(t, 8, c.Width())
	assert.Equal(t, 4, c.Height())

	c.Clear(white)
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			require.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(c, x, y))
		}
	}
}

func TestFillCircleUsesTransform(t *testing.T) {
	c := NewCanvas(100, 100)
	c.Clear(white)

	c.Save()
	c.Translate(50, 50)
	c.Scale(0.5, 0.5)
	c.FillCircle(0, 0, 20, engine2D.NewPaint(black))
	c.Restore()

	// radius 20 scaled by 0.5 is 10 device pixels around (50, 50)
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgbaAt(c, 50, 50))
	assert.Equal(t, color.RGBA{0, 0, 0, 255}, rgbaAt(c, 55, 50))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(c, 65, 50))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(c, 50, 35))
}

func TestFillCircleAlpha(t *testing.T) {
	c := NewCanvas(20, 20)
	p := engine2D.NewPaint(black)
	p.Alpha = 0
	c.FillCircle(10, 10, 5, p)
	assert.Equal(t, color.RGBA{}, rgbaAt(c, 10, 10))

	p.Alpha = 128
	c.FillCircle(10, 10, 5, p)
	a := rgbaAt(c, 10, 10).A
	assert.InDelta(t, 128, int(a), 2)
}

func TestGradientFollowsScale(t *testing.T) {
	grad := engine2D.NewRadialGradient(10,
		engine2D.GradientStop{Offset: 0, Color: blue},
		engine2D.GradientStop{Offset: 1, Color: color.NRGBA{B: 255}},
	)
	p := engine2D.NewPaint(black)
	p.Gradient = grad

	draw := func(scale float64) *Canvas {
		c := NewCanvas(60, 60)
		c.Save()
		c.Translate(30, 30)
		c.Scale(scale, scale)
		c.FillCircle(0, 0, 10, p)
		c.Restore()
		return c
	}

	big, small := draw(2), draw(1)

	// same normalized position (half the radius) gives the same color
	assert.InDelta(t, int(rgbaAt(big, 40, 30).A), int(rgbaAt(small, 35, 30).A), 8)
	assert.Greater(t, rgbaAt(big, 30, 30).A, rgbaAt(big, 45, 30).A)
	assert.Equal(t, uint8(0), rgbaAt(big, 30, 30).R)
}

func TestStrokeLine(t *testing.T) {
	c := NewCanvas(20, 20)
	c.Clear(white)
	p := engine2D.NewPaint(black)
	p.StrokeWidth = 2
	c.StrokeLine(0, 10, 20, 10, p)

	assert.Equal(t, uint8(0), rgbaAt(c, 10, 10).R)
	assert.Equal(t, uint8(255), rgbaAt(c, 10, 2).R)
}

func TestBitmapBlitAndErase(t *testing.T) {
	b := NewBitmap(10, 10)
	b.FillCircle(5, 5, 3, engine2D.NewPaint(blue))

	dst := NewCanvas(20, 20)
	dst.Clear(white)
	dst.DrawBitmap(b, 10, 10, 255)

	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgbaAt(dst, 15, 15))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(dst, 5, 5))
	// transparent bitmap pixels leave the destination untouched
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(dst, 10, 10))

	b.Erase()
	assert.Equal(t, color.RGBA{}, b.Image().RGBAAt(5, 5))

	var _ engine2D.Bitmap = b
	var _ engine2D.Canvas = dst
}

func TestBitmapBlitPartialAlpha(t *testing.T) {
	b := NewBitmap(4, 4)
	b.Clear(black)

	dst := NewCanvas(4, 4)
	dst.Clear(white)
	dst.DrawBitmap(b, 0, 0, 128)

	r := rgbaAt(dst, 1, 1).R
	assert.InDelta(t, 127, int(r), 2)
}
