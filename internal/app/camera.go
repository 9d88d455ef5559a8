package app

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/neurosight/pkg/geometry"
)

func toRaylib(v geometry.Vector3) rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// syncCamera copies the controller's camera into the raylib camera
func (app *App) syncCamera() {
	cam := app.Camera.view.Camera()
	controls := app.Camera.view.Controls()

	app.Camera.camera.Position = toRaylib(cam.Position)
	app.Camera.camera.Target = toRaylib(controls.Target)
	app.Camera.camera.Up = toRaylib(cam.Up)
	app.Camera.camera.Fovy = float32(cam.FOV)
	app.Camera.camera.Projection = rl.CameraPerspective
}

// resetCameraView moves the camera back to the captured home pose
func (app *App) resetCameraView() {
	app.Camera.view.Controls().Cancel()
	app.Camera.view.Reset()
}
