package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/viewer"
)

// raylib mouse buttons in the order of the controller's buttons
var mouseButtons = map[viewer.Button]rl.MouseButton{
	viewer.ButtonPrimary:   rl.MouseLeftButton,
	viewer.ButtonSecondary: rl.MouseRightButton,
	viewer.ButtonAuxiliary: rl.MouseMiddleButton,
}

// handleInput processes user input
func (app *App) handleInput() {
	app.handleKeys()
	if app.handleSliderInput() {
		return
	}
	app.handleMouse()
}

func (app *App) handleKeys() {
	if rl.IsKeyPressed(rl.KeyHome) || rl.IsKeyPressed(rl.KeyR) {
		app.resetCameraView()
	}

	planeKeys := []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree}
	for i, plane := range anatomy.Planes() {
		if rl.IsKeyPressed(planeKeys[i]) {
			app.setPlane(plane)
		}
	}
	if rl.IsKeyPressed(rl.KeyZero) {
		app.setPlane(anatomy.Unknown)
	}

	step := anatomy.OffsetStep
	if rl.IsKeyDown(rl.KeyLeftShift) || rl.IsKeyDown(rl.KeyRightShift) {
		step *= 10
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressedRepeat(rl.KeyUp) {
		app.nudgeOffset(step)
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressedRepeat(rl.KeyDown) {
		app.nudgeOffset(-step)
	}

	if rl.IsKeyPressed(rl.KeyH) {
		app.Slice.heatmap = !app.Slice.heatmap
	}
	if rl.IsKeyPressed(rl.KeyRightBracket) {
		app.nudgeIntensity(0.1)
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		app.nudgeIntensity(-0.1)
	}

	if rl.IsKeyPressed(rl.KeyW) {
		app.View.showWireframe = !app.View.showWireframe
	}
	if rl.IsKeyPressed(rl.KeyC) && !ctrlDown() {
		app.View.showContour = !app.View.showContour
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		app.View.showHelp = !app.View.showHelp
	}
}

// handleMouse forwards mouse buttons and the wheel to the orbit controls
func (app *App) handleMouse() {
	controls := app.Camera.view.Controls()
	controls.SetViewport(float64(rl.GetScreenWidth()), float64(rl.GetScreenHeight()))

	pos := rl.GetMousePosition()
	x, y := float64(pos.X), float64(pos.Y)

	for button, mb := range mouseButtons {
		if rl.IsMouseButtonPressed(mb) && !app.Interaction.overPanel {
			app.Interaction.held[button] = true
			controls.PointerDown(button, x, y)
		}
		if rl.IsMouseButtonReleased(mb) && app.Interaction.held[button] {
			delete(app.Interaction.held, button)
			controls.PointerUp(button)
		}
	}
	controls.PointerMove(x, y)

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !app.Interaction.overPanel {
		// Scrolling up moves closer.
		controls.Wheel(-float64(wheel))
	}
}

func ctrlDown() bool {
	return rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyRightControl)
}
