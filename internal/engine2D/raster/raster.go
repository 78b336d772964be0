// Package raster implements engine2D.Canvas in software over image.RGBA.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"linux-wallpaperparticles/internal/engine2D"

	"github.com/fogleman/gg"
)

// Canvas draws into an owned *image.RGBA. The gg context always works in
// device space; the Save/Restore transform is applied here so gradients can
// be placed in the shape's local space.
type Canvas struct {
	engine2D.TransformStack
	img *image.RGBA
	dc  *gg.Context
}

func NewCanvas(width, height int) *Canvas {
	img := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	return &Canvas{img: img, dc: gg.NewContextForRGBA(img)}
}

func (c *Canvas) Width() int  { return c.img.Bounds().Dx() }
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Image exposes the backing pixels. The caller must not retain it across
// frames while the canvas is being drawn.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Clear(col color.Color) {
	c.dc.SetColor(col)
	c.dc.Clear()
}

func (c *Canvas) FillCircle(cx, cy, r float64, p *engine2D.Paint) {
	t := c.Current()
	x, y := t.Apply(cx, cy)
	rx, ry := r*math.Abs(t.SX), r*math.Abs(t.SY)
	if rx <= 0 || ry <= 0 {
		return
	}

	if p.Gradient != nil && p.Gradient.Radius > 0 && len(p.Gradient.Stops) > 0 {
		g := gg.NewRadialGradient(x, y, 0, x, y, p.Gradient.Radius*math.Abs(t.SX))
		for _, stop := range p.Gradient.Stops {
			g.AddColorStop(stop.Offset, engine2D.ApplyAlpha(stop.Color, p.Alpha))
		}
		c.dc.SetFillStyle(g)
	} else {
		c.dc.SetColor(p.Effective())
	}

	c.dc.DrawEllipse(x, y, rx, ry)
	c.dc.Fill()
}

func (c *Canvas) StrokeLine(x1, y1, x2, y2 float64, p *engine2D.Paint) {
	t := c.Current()
	ax, ay := t.Apply(x1, y1)
	bx, by := t.Apply(x2, y2)

	width := p.StrokeWidth * math.Abs(t.SX)
	if width <= 0 {
		width = 1
	}

	c.dc.SetColor(p.Effective())
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(ax, ay, bx, by)
	c.dc.Stroke()
}

// DrawBitmap composites b over the canvas. Only the translation part of the
// current transform applies to blits.
func (c *Canvas) DrawBitmap(b engine2D.Bitmap, x, y float64, alpha uint8) {
	src, ok := b.(interface{ Image() *image.RGBA })
	if !ok || alpha == 0 {
		return
	}

	dx, dy := c.Current().Apply(x, y)
	srcImg := src.Image()
	r := srcImg.Bounds().Sub(srcImg.Bounds().Min).Add(image.Pt(int(math.Round(dx)), int(math.Round(dy))))

	if alpha == 255 {
		draw.Draw(c.img, r, srcImg, srcImg.Bounds().Min, draw.Over)
		return
	}
	mask := image.NewUniform(color.Alpha{A: alpha})
	draw.DrawMask(c.img, r, srcImg, srcImg.Bounds().Min, mask, image.Point{}, draw.Over)
}

func (c *Canvas) NewBitmap(width, height int) engine2D.Bitmap {
	return NewBitmap(width, height)
}

// Bitmap is an offscreen raster canvas.
type Bitmap struct {
	*Canvas
}

func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{Canvas: NewCanvas(width, height)}
}

func (b *Bitmap) Erase() {
	draw.Draw(b.img, b.img.Bounds(), image.Transparent, image.Point{}, draw.Src)
}
