package app

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/neurosight/pkg/anatomy"
	"github.com/philipparndt/neurosight/pkg/asset"
	"github.com/philipparndt/neurosight/pkg/isolate"
	"github.com/philipparndt/neurosight/pkg/scene"
	"github.com/philipparndt/neurosight/pkg/viewer"
)

// CameraState holds the controller driving the raylib camera
type CameraState struct {
	camera rl.Camera3D
	view   *viewer.ViewController
}

// ModelData holds the loaded model and the triangles prepared for drawing
type ModelData struct {
	source  *asset.Source
	staged  *scene.Node // model wrapped with the display scale
	version int         // source version staged was taken from

	cache    *isolate.Cache
	prepared *preparedMesh
}

// SliceState holds the active cutting plane and heatmap settings
type SliceState struct {
	plane     anatomy.Plane
	offset    float64
	heatmap   bool
	intensity float64
}

// ViewSettings holds display toggles
type ViewSettings struct {
	showWireframe bool
	showContour   bool
	showHelp      bool
}

// InteractionState tracks which mouse buttons are held over the canvas
type InteractionState struct {
	held      map[viewer.Button]bool
	overPanel bool
}

// LoadingState drives the loading overlay
type LoadingState struct {
	startTime time.Time
	active    bool
}

// SliderState holds the offset slider of the slice panel
type SliderState struct {
	panelBounds  rl.Rectangle
	trackBounds  rl.Rectangle
	hovered      bool
	isDragging   bool
	planeButtons []planeButton
}

type planeButton struct {
	plane  anatomy.Plane
	bounds rl.Rectangle
}
