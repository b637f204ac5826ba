// Package viewer shows an accumulated density map in a raylib window
// with interactive display controls.
package viewer

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sphmap/render"
	"github.com/pthm-cable/sphmap/sph"
)

const panelWidth = 260

// Viewer owns the map texture and the control panel state. Create it
// after rl.InitWindow and Close it before rl.CloseWindow.
type Viewer struct {
	grid    *sph.Grid
	texture rl.Texture2D
	pixels  []color.RGBA

	logScale bool
	clip     float32 // saturation quantile

	dirty bool
}

// New creates a viewer for the grid and uploads the initial texture.
func New(g *sph.Grid) *Viewer {
	img := rl.GenImageColor(g.NPix, g.NPix, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)

	v := &Viewer{
		grid:     g,
		texture:  tex,
		pixels:   make([]color.RGBA, g.NPix*g.NPix),
		logScale: true,
		clip:     0.998,
	}
	v.Refresh()
	return v
}

// Close releases the GPU texture.
func (v *Viewer) Close() {
	rl.UnloadTexture(v.texture)
}

// MarkDirty forces a texture rebuild on the next Draw, for callers that
// mutate the grid between frames.
func (v *Viewer) MarkDirty() { v.dirty = true }

// Refresh rebuilds the texture from the grid values.
func (v *Viewer) Refresh() {
	scale := render.NewScale(v.grid.Z, v.logScale, float64(v.clip))
	npix := v.grid.NPix
	for i := 0; i < npix; i++ {
		for j := 0; j < npix; j++ {
			// Texture row 0 is the top of the window; grid row 0 is
			// y = -HalfExtent, so flip vertically.
			u := scale.Intensity(v.grid.Z[i*npix+j])
			v.pixels[(npix-1-i)*npix+j] = heatColor(u)
		}
	}
	rl.UpdateTexture(v.texture, v.pixels)
	v.dirty = false
}

// Draw renders the map and the control panel, refreshing the texture
// if a control changed or the grid was marked dirty.
func (v *Viewer) Draw(stats sph.Stats) {
	screenH := float32(rl.GetScreenHeight())
	screenW := float32(rl.GetScreenWidth())
	side := min(screenH-20, screenW-panelWidth-30)

	if v.dirty {
		v.Refresh()
	}

	npix := float32(v.grid.NPix)
	rl.DrawTexturePro(
		v.texture,
		rl.Rectangle{X: 0, Y: 0, Width: npix, Height: npix},
		rl.Rectangle{X: 10, Y: 10, Width: side, Height: side},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
	rl.DrawRectangleLines(10, 10, int32(side), int32(side), rl.DarkGray)

	v.drawPanel(side+20, stats)
}

// drawPanel renders the display controls on the right.
func (v *Viewer) drawPanel(panelX float32, stats sph.Stats) {
	panelY := float32(10)

	rl.DrawText("Density Map", int32(panelX), int32(panelY), 20, rl.DarkGray)
	panelY += 35

	rl.DrawText("Saturation quantile", int32(panelX), int32(panelY), 14, rl.Gray)
	panelY += 18
	newClip := gui.SliderBar(
		rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
		"0.90", "1.00",
		v.clip, 0.90, 1.0,
	)
	rl.DrawText(fmt.Sprintf("%.3f", v.clip), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
	if newClip != v.clip {
		v.clip = newClip
		v.dirty = true
	}
	panelY += 35

	newLog := gui.CheckBox(
		rl.Rectangle{X: panelX, Y: panelY, Width: 20, Height: 20},
		"log scale", v.logScale,
	)
	if newLog != v.logScale {
		v.logScale = newLog
		v.dirty = true
	}
	panelY += 35

	rl.DrawLine(int32(panelX), int32(panelY), int32(panelX+panelWidth-20), int32(panelY), rl.LightGray)
	panelY += 15

	rl.DrawText(fmt.Sprintf("splatted: %d", stats.Splatted), int32(panelX), int32(panelY), 14, rl.DarkGray)
	panelY += 20
	rl.DrawText(fmt.Sprintf("skipped:  %d", stats.Skipped), int32(panelX), int32(panelY), 14, rl.DarkGray)
	panelY += 20
	rl.DrawText(fmt.Sprintf("culled:   %d", stats.Culled), int32(panelX), int32(panelY), 14, rl.DarkGray)
}

// heatColor maps an intensity in [0, 1] to a black-red-yellow-white
// ramp for on-screen display (the PNG export path uses a proper
// palette).
func heatColor(u float64) color.RGBA {
	if u < 0 {
		u = 0
	}
	if u > 1 {
		u = 1
	}
	r := clampByte(u * 3)
	g := clampByte(u*3 - 1)
	b := clampByte(u*3 - 2)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func clampByte(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v * 255)
}
