package viewer

import (
	"errors"
	"fmt"

	"github.com/philipparndt/neurosight/pkg/geometry"
)

// ErrInvalidBounds is returned when the distance limits are inverted or negative
var ErrInvalidBounds = errors.New("invalid camera bounds")

// Defaults matching the initial view of the brain model
var (
	DefaultHomePosition = geometry.NewVector3(2, 2, 2)
	DefaultHomeTarget   = geometry.Vector3{}
)

const (
	DefaultFOV         = 45.0
	DefaultMinDistance = 1.5
	DefaultMaxDistance = 5.0
)

// HomePose is the camera placement restored by Reset
type HomePose struct {
	Position geometry.Vector3
	Target   geometry.Vector3
}

// Bounds is the interaction envelope applied to the orbit controls
type Bounds struct {
	MinDistance  float64
	MaxDistance  float64
	EnableRotate bool
	EnablePan    bool
	EnableZoom   bool
	Buttons      ButtonMapping
}

// DefaultBounds allows every interaction between 1.5 and 5 units from the target
func DefaultBounds() Bounds {
	return Bounds{
		MinDistance:  DefaultMinDistance,
		MaxDistance:  DefaultMaxDistance,
		EnableRotate: true,
		EnablePan:    true,
		EnableZoom:   true,
		Buttons:      DefaultButtonMapping(),
	}
}

// Validate checks the distance limits and the button mapping
func (b Bounds) Validate() error {
	if b.MinDistance < 0 || b.MinDistance > b.MaxDistance {
		return fmt.Errorf("%w: min distance %.3f, max distance %.3f", ErrInvalidBounds, b.MinDistance, b.MaxDistance)
	}
	return b.Buttons.Validate()
}

// ViewController owns the camera and orbit controls of one view and restores
// the captured home pose on request. Until Attach is called every operation
// is a silent no-op.
type ViewController struct {
	camera   *Camera
	controls *OrbitControls
	home     *HomePose
}

// NewViewController returns a controller with nothing attached
func NewViewController() *ViewController {
	return &ViewController{}
}

// Attach hands the camera and controls to the controller. Attaching again
// replaces them but keeps a captured home pose.
func (v *ViewController) Attach(camera *Camera, controls *OrbitControls) {
	v.camera = camera
	v.controls = controls
}

// Attached reports whether both camera and controls are present
func (v *ViewController) Attached() bool {
	return v.camera != nil && v.controls != nil
}

// Camera returns the attached camera or nil
func (v *ViewController) Camera() *Camera {
	return v.camera
}

// Controls returns the attached orbit controls or nil
func (v *ViewController) Controls() *OrbitControls {
	return v.controls
}

// CaptureHome records the current camera position and target. Only the first
// successful call has an effect; it returns false otherwise.
func (v *ViewController) CaptureHome() bool {
	if !v.Attached() || v.home != nil {
		return false
	}
	v.home = &HomePose{
		Position: v.camera.Position,
		Target:   v.controls.Target,
	}
	return true
}

// Home returns the captured pose
func (v *ViewController) Home() (HomePose, bool) {
	if v.home == nil {
		return HomePose{}, false
	}
	return *v.home, true
}

// ConfigureBounds applies the interaction envelope. Invalid bounds are
// rejected without touching the controls.
func (v *ViewController) ConfigureBounds(b Bounds) error {
	if !v.Attached() {
		return nil
	}
	if err := b.Validate(); err != nil {
		return err
	}

	c := v.controls
	c.MinDistance = b.MinDistance
	c.MaxDistance = b.MaxDistance
	c.EnableRotate = b.EnableRotate
	c.EnablePan = b.EnablePan
	c.EnableZoom = b.EnableZoom
	c.Buttons = b.Buttons
	c.Update()
	return nil
}

// Reset moves the camera and target back to the home pose and lets the
// controls recompute their cached state. It overrides any drag in progress.
func (v *ViewController) Reset() {
	if !v.Attached() || v.home == nil {
		return
	}
	v.camera.Position = v.home.Position
	v.controls.Target = v.home.Target
	v.controls.Update()
}

// ResetView returns Reset as a callback for buttons and key bindings
func (v *ViewController) ResetView() func() {
	return v.Reset
}

// NewView builds a camera and orbit controls from cfg, attaches them to a new
// controller, applies the bounds and captures the home pose.
func NewView(cfg Config) (*ViewController, error) {
	camera := NewCamera(cfg.Camera.position(), cfg.Camera.FOV)
	controls := NewOrbitControls(camera)
	controls.Target = cfg.Camera.target()
	controls.Update()

	v := NewViewController()
	v.Attach(camera, controls)
	if err := v.ConfigureBounds(cfg.bounds()); err != nil {
		return nil, fmt.Errorf("failed to configure camera: %w", err)
	}
	v.CaptureHome()
	return v, nil
}
