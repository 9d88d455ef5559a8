package app

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/geometry"
	"github.com/philipparndt/neurosight/pkg/isolate"
)

const (
	sliderWidth        = 200.0
	sliderHeight       = 8.0
	sliderHandleRadius = 6.0
	panelPadding       = 15.0
	panelTitleHeight   = 30.0
	panelWidth         = 320.0
	panelHeight        = 150.0
	planeButtonHeight  = 24.0
)

// Colors per plane, matching the usual axis colors of their normals
var planeColors = map[anatomy.Plane]rl.Color{
	anatomy.Sagittal:   rl.NewColor(255, 80, 80, 255),
	anatomy.Horizontal: rl.NewColor(80, 255, 80, 255),
	anatomy.Coronal:    rl.NewColor(80, 120, 255, 255),
	anatomy.Unknown:    rl.NewColor(160, 160, 160, 255),
}

// setPlane switches the cutting plane and starts again from the center
func (app *App) setPlane(plane anatomy.Plane) {
	if app.Slice.plane == plane {
		return
	}
	app.Slice.plane = plane
	app.Slice.offset = 0
}

func (app *App) nudgeOffset(delta float64) {
	app.setOffset(app.Slice.offset + delta)
}

// setOffset snaps to the slider step and clamps to the slider range
func (app *App) setOffset(offset float64) {
	offset = math.Round(offset/anatomy.OffsetStep) * anatomy.OffsetStep
	app.Slice.offset = anatomy.ClampOffset(offset)
}

func (app *App) nudgeIntensity(delta float64) {
	app.Slice.heatmap = true
	app.Slice.intensity = max(0, min(1, app.Slice.intensity+delta))
}

func (app *App) clipPlanes() []geometry.Plane {
	return anatomy.Resolve(app.Slice.plane, app.Slice.offset)
}

func (app *App) tint() isolate.Tint {
	if !app.Slice.heatmap {
		return isolate.NoTint
	}
	return isolate.Heat(app.Slice.intensity)
}

// drawSlicingPanel renders the plane buttons and the offset slider
func (app *App) drawSlicingPanel() {
	screenWidth := float32(rl.GetScreenWidth())
	screenHeight := float32(rl.GetScreenHeight())

	panelX := screenWidth - panelWidth - 20
	panelY := screenHeight - panelHeight - 50 // above version/FPS
	app.Slider.panelBounds = rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth, Height: panelHeight}

	rl.DrawRectangleRounded(app.Slider.panelBounds, 0.08, 8, rl.NewColor(20, 25, 35, 220))
	rl.DrawRectangleRoundedLines(app.Slider.panelBounds, 0.08, 8, rl.NewColor(60, 80, 120, 255))

	titleColor := rl.NewColor(180, 200, 255, 255)
	rl.DrawTextEx(app.UI.font, "Slice", rl.Vector2{X: panelX + panelPadding, Y: panelY + 8}, 16, 1, titleColor)

	// Plane buttons
	planes := append(anatomy.Planes(), anatomy.Unknown)
	buttonWidth := (panelWidth - panelPadding*2 - float32(len(planes)-1)*6) / float32(len(planes))
	y := panelY + panelTitleHeight
	app.Slider.planeButtons = app.Slider.planeButtons[:0]
	for i, plane := range planes {
		bounds := rl.Rectangle{
			X:      panelX + panelPadding + float32(i)*(buttonWidth+6),
			Y:      y,
			Width:  buttonWidth,
			Height: planeButtonHeight,
		}
		app.Slider.planeButtons = append(app.Slider.planeButtons, planeButton{plane: plane, bounds: bounds})

		bg := rl.NewColor(40, 45, 55, 255)
		if plane == app.Slice.plane {
			bg = planeColors[plane]
			bg.A = 120
		}
		rl.DrawRectangleRounded(bounds, 0.3, 6, bg)

		label := "None"
		if plane != anatomy.Unknown {
			label = plane.Label()
		}
		size := rl.MeasureTextEx(app.UI.font, label, 12, 1)
		rl.DrawTextEx(app.UI.font, label,
			rl.Vector2{X: bounds.X + (bounds.Width-size.X)/2, Y: bounds.Y + (bounds.Height-size.Y)/2},
			12, 1, rl.White)
	}

	// Offset slider
	y += planeButtonHeight + 20
	app.drawSlider(rl.Vector2{X: panelX + panelPadding, Y: y}, "Offset", app.Slice.offset,
		[2]float64{anatomy.OffsetMin, anatomy.OffsetMax}, planeColors[app.Slice.plane])

	// Heatmap state
	y += 28
	heat := "Heatmap: off [H]"
	if app.Slice.heatmap {
		heat = fmt.Sprintf("Heatmap: %.1f [H, [ ]]", app.Slice.intensity)
	}
	rl.DrawTextEx(app.UI.font, heat, rl.Vector2{X: panelX + panelPadding, Y: y}, 12, 1, rl.LightGray)

	helpY := panelY + panelHeight - 20
	helpText := "1-3: Plane | 0: None | Up/Down: Offset"
	rl.DrawTextEx(app.UI.font, helpText, rl.Vector2{X: panelX + panelPadding, Y: helpY}, 10, 1, rl.NewColor(120, 140, 180, 255))
}

// drawSlider renders a single slider
func (app *App) drawSlider(pos rl.Vector2, label string, value float64, valueRange [2]float64, color rl.Color) {
	rl.DrawTextEx(app.UI.font, label, rl.Vector2{X: pos.X, Y: pos.Y - 2}, 11, 1, rl.LightGray)

	trackX := pos.X + 50
	trackY := pos.Y + 2
	trackBounds := rl.Rectangle{X: trackX, Y: trackY, Width: sliderWidth, Height: sliderHeight}
	app.Slider.trackBounds = rl.Rectangle{
		X:      trackX - sliderHandleRadius,
		Y:      trackY - sliderHandleRadius,
		Width:  sliderWidth + sliderHandleRadius*2,
		Height: sliderHeight + sliderHandleRadius*2,
	}

	trackBg := rl.NewColor(40, 45, 55, 255)
	if app.Slider.hovered {
		trackBg = rl.NewColor(50, 55, 65, 255)
	}
	rl.DrawRectangleRounded(trackBounds, 0.5, 8, trackBg)

	normalized := float32((value - valueRange[0]) / (valueRange[1] - valueRange[0]))
	if math.IsNaN(float64(normalized)) {
		normalized = 0.5
	}
	normalized = max(0, min(1, normalized))
	handleX := trackX + normalized*sliderWidth

	fillColor := color
	fillColor.A = 100
	rl.DrawRectangleRounded(rl.Rectangle{X: trackX, Y: trackY, Width: handleX - trackX, Height: sliderHeight}, 0.5, 8, fillColor)

	handleColor := color
	if app.Slider.isDragging {
		handleColor = rl.White
	} else if app.Slider.hovered {
		handleColor.R = uint8(min(int(handleColor.R)+30, 255))
		handleColor.G = uint8(min(int(handleColor.G)+30, 255))
		handleColor.B = uint8(min(int(handleColor.B)+30, 255))
	}
	handleY := trackY + sliderHeight/2
	rl.DrawCircleV(rl.Vector2{X: handleX, Y: handleY}, sliderHandleRadius, handleColor)
	rl.DrawCircleLines(int32(handleX), int32(handleY), sliderHandleRadius, rl.NewColor(255, 255, 255, 150))

	rl.DrawTextEx(app.UI.font, fmt.Sprintf("%+.2f", value), rl.Vector2{X: trackX + sliderWidth + 10, Y: pos.Y - 2}, 11, 1, rl.LightGray)
}

// handleSliderInput handles clicks on the slice panel. It returns true when
// the panel consumed the mouse this frame.
func (app *App) handleSliderInput() bool {
	mouse := rl.GetMousePosition()
	app.Interaction.overPanel = rl.CheckCollisionPointRec(mouse, app.Slider.panelBounds)
	app.Slider.hovered = rl.CheckCollisionPointRec(mouse, app.Slider.trackBounds)

	if app.Slider.isDragging {
		if rl.IsMouseButtonDown(rl.MouseLeftButton) {
			app.setOffset(app.offsetAt(mouse.X))
			return true
		}
		app.Slider.isDragging = false
		return true
	}

	if !app.Interaction.overPanel || !rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		return false
	}
	for _, b := range app.Slider.planeButtons {
		if rl.CheckCollisionPointRec(mouse, b.bounds) {
			app.setPlane(b.plane)
			return true
		}
	}
	if app.Slider.hovered {
		app.Slider.isDragging = true
		app.setOffset(app.offsetAt(mouse.X))
	}
	return true
}

// offsetAt converts a screen x coordinate on the slider track into an offset
func (app *App) offsetAt(x float32) float64 {
	trackX := app.Slider.trackBounds.X + sliderHandleRadius
	t := float64((x - trackX) / sliderWidth)
	return anatomy.OffsetMin + t*(anatomy.OffsetMax-anatomy.OffsetMin)
}
