package app

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/version"
)

var spinnerChars = []string{"|", "/", "-", "\\"}

// drawUI draws the overlay: model info, key help, loading state and the slice panel
func (app *App) drawUI() {
	y := float32(10)
	lineHeight := float32(20)

	// === MODEL ===
	rl.DrawTextEx(app.UI.font, "Model:", rl.Vector2{X: 10, Y: y}, 16, 1, rl.Yellow)
	y += lineHeight
	rl.DrawTextEx(app.UI.font, "  "+app.Model.source.Path(), rl.Vector2{X: 10, Y: y}, 14, 1, rl.White)
	y += lineHeight
	if app.Model.staged != nil {
		stats := app.Model.staged.Stats()
		rl.DrawTextEx(app.UI.font, fmt.Sprintf("  Meshes: %d | Triangles: %d", stats.Meshes, stats.Triangles), rl.Vector2{X: 10, Y: y}, 14, 1, rl.White)
		y += lineHeight
	}

	slice := "  Slice: none"
	if app.Slice.plane != anatomy.Unknown {
		slice = fmt.Sprintf("  Slice: %s %+.2f", app.Slice.plane.Label(), app.Slice.offset)
	}
	rl.DrawTextEx(app.UI.font, slice, rl.Vector2{X: 10, Y: y}, 14, 1, planeColors[app.Slice.plane])
	y += lineHeight * 2

	if app.View.showHelp {
		app.drawHelp(y, lineHeight)
	} else {
		rl.DrawTextEx(app.UI.font, "F1: Help", rl.Vector2{X: 10, Y: y}, 14, 1, rl.LightGray)
	}

	app.drawLoading()

	// Version and FPS in bottom-left corner
	bottomY := float32(rl.GetScreenHeight()) - 30
	versionText := fmt.Sprintf("v%s", version.GetVersion())
	rl.DrawTextEx(app.UI.font, versionText, rl.Vector2{X: 10, Y: bottomY}, 12, 1, rl.Gray)
	versionWidth := rl.MeasureTextEx(app.UI.font, versionText, 12, 1).X
	rl.DrawTextEx(app.UI.font, fmt.Sprintf("FPS: %d", rl.GetFPS()), rl.Vector2{X: 10 + versionWidth + 15, Y: bottomY}, 12, 1, rl.Lime)

	app.drawSlicingPanel()
}

func (app *App) drawHelp(y, lineHeight float32) {
	section := func(title string, lines ...string) {
		rl.DrawTextEx(app.UI.font, title, rl.Vector2{X: 10, Y: y}, 16, 1, rl.Yellow)
		y += lineHeight
		for _, line := range lines {
			rl.DrawTextEx(app.UI.font, "  "+line, rl.Vector2{X: 10, Y: y}, 14, 1, rl.LightGray)
			y += lineHeight
		}
		y += lineHeight
	}

	b := app.Camera.view.Controls().Buttons
	section("Navigate:",
		fmt.Sprintf("Left: %s | Right: %s | Middle: %s", b.Primary, b.Secondary, b.Auxiliary),
		"Mouse Wheel: Zoom",
		"Home / R: Reset view",
	)
	section("Slice:",
		"1: Sagittal | 2: Horizontal | 3: Coronal | 0: None",
		"Up/Down: Offset (Shift: x10)",
		"H: Heatmap | [ ]: Intensity",
	)
	section("Display:",
		"W: Wireframe | C: Contour",
	)
}

// drawLoading shows a spinner while the model loads and the error if it failed
func (app *App) drawLoading() {
	var text string
	color := rl.Yellow
	switch {
	case app.Loading.active:
		elapsed := time.Since(app.Loading.startTime).Seconds()
		text = fmt.Sprintf("%s Loading... (%.1fs)", spinnerChars[int(elapsed*10)%len(spinnerChars)], elapsed)
	case app.Model.source.Err() != nil:
		text = fmt.Sprintf("Load failed: %v", app.Model.source.Err())
		color = rl.Red
	default:
		return
	}

	textSize := rl.MeasureTextEx(app.UI.font, text, 18, 1)
	boxWidth := max(320, textSize.X+30)
	boxHeight := float32(40)
	boxX := float32(rl.GetScreenWidth()) - boxWidth - 20
	boxY := float32(20)

	rl.DrawRectangle(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), rl.NewColor(0, 0, 0, 180))
	rl.DrawRectangleLines(int32(boxX), int32(boxY), int32(boxWidth), int32(boxHeight), color)
	rl.DrawTextEx(app.UI.font, text, rl.Vector2{X: boxX + (boxWidth-textSize.X)/2, Y: boxY + (boxHeight-textSize.Y)/2}, 18, 1, color)
}
