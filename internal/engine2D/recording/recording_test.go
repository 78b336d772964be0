package recording

import (
	"image/color"
	"testing"

	"linux-wallpaperparticles/internal/engine2D"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCapturesDeviceSpace(t *testing.T) {
	r := NewRecorder(100, 50)
	assert.Equal(t, 100, r.Width())
	assert.Equal(t, 50, r.Height())

	p := engine2D.NewPaint(color.NRGBA{R: 9, A: 255})
	p.Alpha = 40

	r.Clear(color.White)
	r.Save()
	r.Translate(10, 20)
	r.Scale(0.5, 0.5)
	r.FillCircle(0, 0, 8, p)
	r.Restore()
	r.StrokeLine(1, 2, 3, 4, p)

	require.Len(t, r.Ops, 3)
	assert.Equal(t, OpClear, r.Ops[0].Kind)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, r.Ops[0].Color)

	c := r.Ops[1]
	assert.Equal(t, OpFillCircle, c.Kind)
	assert.Equal(t, 10.0, c.X)
	assert.Equal(t, 20.0, c.Y)
	assert.Equal(t, 4.0, c.Radius)
	assert.Equal(t, 0.5, c.Scale)
	assert.Equal(t, uint8(40), c.Alpha)
	assert.Equal(t, uint8(40), c.Color.A)

	l := r.Ops[2]
	assert.Equal(t, OpStrokeLine, l.Kind)
	assert.Equal(t, []float64{1, 2, 3, 4}, []float64{l.X, l.Y, l.X2, l.Y2})
}

func TestRecorderBitmaps(t *testing.T) {
	r := NewRecorder(10, 10)
	b := r.NewBitmap(10, 10)
	b.Erase()
	r.DrawBitmap(b, 0, 0, 255)

	require.Len(t, r.Bitmaps, 1)
	assert.Same(t, r.Bitmaps[0], r.Filter(OpDrawBitmap)[0].Bitmap)
	assert.Equal(t, 1, r.Bitmaps[0].Count(OpErase))

	r.Reset()
	assert.Empty(t, r.Ops)
	assert.Equal(t, "draw-bitmap", OpDrawBitmap.String())
}
