// Package recording provides a Canvas that captures drawing operations as
// commands instead of rasterizing them.
package recording

import (
	"image/color"
	"math"

	"linux-wallpaperparticles/internal/engine2D"
)

type OpKind int

const (
	OpClear OpKind = iota
	OpFillCircle
	OpStrokeLine
	OpDrawBitmap
	OpErase
)

func (k OpKind) String() string {
	switch k {
	case OpClear:
		return "clear"
	case OpFillCircle:
		return "fill-circle"
	case OpStrokeLine:
		return "stroke-line"
	case OpDrawBitmap:
		return "draw-bitmap"
	case OpErase:
		return "erase"
	}
	return "unknown"
}

// Op is one recorded command. Coordinates and radii are in device space,
// with the transform active at record time already applied.
type Op struct {
	Kind     OpKind
	X, Y     float64
	X2, Y2   float64
	Radius   float64
	Scale    float64
	Width    float64
	Color    color.NRGBA
	Alpha    uint8
	Gradient *engine2D.RadialGradient
	Bitmap   *Recorder
}

// Recorder implements engine2D.Bitmap.
type Recorder struct {
	engine2D.TransformStack
	width, height int
	Ops           []Op
	Bitmaps       []*Recorder
}

func NewRecorder(width, height int) *Recorder {
	return &Recorder{width: width, height: height}
}

func (r *Recorder) Width() int  { return r.width }
func (r *Recorder) Height() int { return r.height }

func (r *Recorder) Clear(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: color.NRGBAModel.Convert(c).(color.NRGBA)})
}

func (r *Recorder) FillCircle(cx, cy, radius float64, p *engine2D.Paint) {
	t := r.Current()
	x, y := t.Apply(cx, cy)
	r.Ops = append(r.Ops, Op{
		Kind:     OpFillCircle,
		X:        x,
		Y:        y,
		Radius:   radius * math.Abs(t.SX),
		Scale:    t.SX,
		Color:    p.Effective(),
		Alpha:    p.Alpha,
		Gradient: p.Gradient,
	})
}

func (r *Recorder) StrokeLine(x1, y1, x2, y2 float64, p *engine2D.Paint) {
	t := r.Current()
	ax, ay := t.Apply(x1, y1)
	bx, by := t.Apply(x2, y2)
	r.Ops = append(r.Ops, Op{
		Kind:  OpStrokeLine,
		X:     ax,
		Y:     ay,
		X2:    bx,
		Y2:    by,
		Width: p.StrokeWidth,
		Color: p.Effective(),
		Alpha: p.Alpha,
	})
}

func (r *Recorder) DrawBitmap(b engine2D.Bitmap, x, y float64, alpha uint8) {
	src, _ := b.(*Recorder)
	dx, dy := r.Current().Apply(x, y)
	r.Ops = append(r.Ops, Op{Kind: OpDrawBitmap, X: dx, Y: dy, Alpha: alpha, Bitmap: src})
}

func (r *Recorder) NewBitmap(width, height int) engine2D.Bitmap {
	b := NewRecorder(width, height)
	r.Bitmaps = append(r.Bitmaps, b)
	return b
}

func (r *Recorder) Erase() {
	r.Ops = append(r.Ops, Op{Kind: OpErase})
}

// Reset drops recorded commands and restores the identity transform.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.TransformStack.Reset()
}

// Filter returns the recorded commands of the given kind, in order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var ops []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			ops = append(ops, op)
		}
	}
	return ops
}

func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}
