// Package debug draws the F8 diagnostics overlay.
package debug

import (
	"math"
	"os"
	"runtime"
	"time"

	"linux-wallpaperparticles/internal/engine2D"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Action reports overlay controls clicked this frame.
type Action struct {
	ToggleClearEachFrame bool
}

type DebugOverlay struct {
	ShowSceneBounds bool

	fontHeight int
	lineHeight int
	panelWidth int
	font       rl.Font

	prevLeftMouseButton bool
	mouseX, mouseY      int
	clicked             bool

	lastMemRead time.Time
	memStats    runtime.MemStats
}

func NewDebugOverlay() *DebugOverlay {
	d := &DebugOverlay{}
	d.updateLayout()

	fontPaths := []string{
		"/usr/share/fonts/TTF/DejaVuSans.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
		"/usr/share/fonts/liberation/LiberationSans-Regular.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationSans-Regular.ttf",
	}
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err == nil {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			break
		}
	}

	return d
}

func (d *DebugOverlay) Close() {
	if d.font.BaseSize > 0 {
		rl.UnloadFont(d.font)
	}
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1.0, float64(rl.GetScreenHeight())/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(26 * scale)
	d.panelWidth = int(360 * scale)
}

// Update samples input and memory; call it once per displayed frame while
// the overlay is shown.
func (d *DebugOverlay) Update(report *Report) {
	d.updateLayout()

	if now := time.Now(); now.Sub(d.lastMemRead) >= time.Second {
		runtime.ReadMemStats(&d.memStats)
		d.lastMemRead = now
	}
	report.Mem = d.memStats
	report.Goroutines = runtime.NumGoroutine()

	mPos := rl.GetMousePosition()
	d.mouseX, d.mouseY = int(mPos.X), int(mPos.Y)

	leftPressed := rl.IsMouseButtonDown(rl.MouseLeftButton)
	d.clicked = leftPressed && !d.prevLeftMouseButton
	d.prevLeftMouseButton = leftPressed
}

// Draw renders the panel over the presented frame.
func (d *DebugOverlay) Draw(report Report) Action {
	var action Action

	if d.ShowSceneBounds {
		drawSceneBounds(report.Viewport)
	}

	sh := rl.GetScreenHeight()
	rl.DrawRectangle(0, 0, int32(d.panelWidth), int32(sh), rl.NewColor(0, 0, 0, 200))

	x, y := 10, 10
	for _, section := range report.Sections() {
		d.text(section.Title, x, y, rl.White)
		y += d.lineHeight
		for _, line := range section.Lines {
			d.text(line, x+10, y, rl.LightGray)
			y += d.lineHeight
		}
		y += d.lineHeight / 2
	}

	if d.checkbox("Clear each frame", report.ClearEachFrame, x, y) {
		action.ToggleClearEachFrame = true
	}
	y += d.lineHeight
	if d.checkbox("Show scene bounds", d.ShowSceneBounds, x, y) {
		d.ShowSceneBounds = !d.ShowSceneBounds
	}

	return action
}

func (d *DebugOverlay) text(s string, x, y int, color rl.Color) {
	if d.font.BaseSize > 0 {
		rl.DrawTextEx(d.font, s, rl.NewVector2(float32(x), float32(y)), float32(d.fontHeight), 1, color)
		return
	}
	rl.DrawText(s, int32(x), int32(y), int32(d.fontHeight), color)
}

// checkbox draws a labelled box and reports whether it was clicked.
func (d *DebugOverlay) checkbox(label string, checked bool, x, y int) bool {
	boxSize := int(float64(d.fontHeight) * 0.8)
	boxX, boxY := x+5, y+2

	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxSize), int32(boxSize), rl.NewColor(150, 150, 150, 255))
	if checked {
		rl.DrawRectangle(int32(boxX+2), int32(boxY+2), int32(boxSize-4), int32(boxSize-4), rl.NewColor(100, 255, 100, 255))
	}
	d.text(label, boxX+boxSize+5, y, rl.White)

	return d.clicked &&
		d.mouseX >= boxX && d.mouseX <= d.panelWidth &&
		d.mouseY >= boxY && d.mouseY <= boxY+boxSize
}

// drawSceneBounds outlines where the scene lands on screen and marks its
// center.
func drawSceneBounds(vp engine2D.Viewport) {
	x, y, w, h := vp.Dest()
	if w <= 0 || h <= 0 {
		return
	}
	rl.DrawRectangleLines(int32(x), int32(y), int32(w), int32(h), rl.NewColor(0, 255, 0, 255))

	cx, cy := x+w/2, y+h/2
	rl.DrawRectangle(int32(cx-2), int32(cy-2), 4, 4, rl.Red)
}
