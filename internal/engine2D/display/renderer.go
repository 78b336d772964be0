// Package display puts presented frames on the raylib window. Everything
// here must run on the thread that owns the GL context.
package display

import (
	"image"
	"image/color"
	"unsafe"

	"linux-wallpaperparticles/internal/engine2D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer owns the texture frames are uploaded to and the mapping of the
// scene onto the window.
type Renderer struct {
	Viewport    engine2D.Viewport
	ScalingMode string

	texture rl.Texture2D
	loaded  bool
	seq     uint64
}

func NewRenderer(scalingMode string) *Renderer {
	return &Renderer{ScalingMode: scalingMode}
}

// UpdateViewport calculates render scale and scene offsets based on window
// size.
func (r *Renderer) UpdateViewport(screenWidth, screenHeight, sceneWidth, sceneHeight int) {
	r.Viewport.SceneWidth = sceneWidth
	r.Viewport.SceneHeight = sceneHeight
	r.Viewport.Update(screenWidth, screenHeight, r.ScalingMode)
}

// Upload copies img into the frame texture unless seq was already
// uploaded. The texture is recreated when the frame size changes.
func (r *Renderer) Upload(img *image.RGBA, seq uint64) {
	if r.loaded && seq == r.seq {
		return
	}
	r.seq = seq

	b := img.Bounds()
	if !r.loaded || int(r.texture.Width) != b.Dx() || int(r.texture.Height) != b.Dy() {
		r.unload()
		frame := rl.NewImageFromImage(img)
		r.texture = rl.LoadTextureFromImage(frame)
		rl.UnloadImage(frame)
		rl.SetTextureFilter(r.texture, rl.FilterBilinear)
		r.loaded = true
		return
	}

	rl.UpdateTexture(r.texture, pixels(img))
}

// pixels views the RGBA bytes of img as raylib colors without copying.
func pixels(img *image.RGBA) []color.RGBA {
	if len(img.Pix) == 0 {
		return nil
	}
	return unsafe.Slice((*color.RGBA)(unsafe.Pointer(&img.Pix[0])), len(img.Pix)/4)
}

// Render draws the last uploaded frame into the scene rectangle; the rest
// of the window stays black.
func (r *Renderer) Render() {
	rl.ClearBackground(rl.Black)
	if !r.loaded {
		return
	}

	x, y, w, h := r.Viewport.Dest()
	rl.BeginScissorMode(int32(x), int32(y), int32(w), int32(h))

	sourceRec := rl.NewRectangle(0, 0, float32(r.texture.Width), float32(r.texture.Height))
	destRec := rl.NewRectangle(float32(x), float32(y), float32(w), float32(h))
	rl.DrawTexturePro(r.texture, sourceRec, destRec, rl.NewVector2(0, 0), 0, rl.White)

	rl.EndScissorMode()
}

func (r *Renderer) unload() {
	if r.loaded {
		rl.UnloadTexture(r.texture)
		r.loaded = false
	}
}

func (r *Renderer) Close() {
	r.unload()
}
