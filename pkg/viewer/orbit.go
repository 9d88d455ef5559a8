package viewer

import (
	"math"

	"github.com/philipparndt/neurosight/pkg/geometry"
)

// Polar angles closer than this to either pole are clamped
const polarEpsilon = 1e-3

// spherical caches the camera offset from the target. Y is up; theta is the
// azimuth measured from +Z towards +X and phi the polar angle from +Y.
type spherical struct {
	radius float64
	theta  float64
	phi    float64
}

func sphericalFrom(offset geometry.Vector3) spherical {
	radius := offset.Length()
	if radius == 0 {
		return spherical{}
	}
	return spherical{
		radius: radius,
		theta:  math.Atan2(offset.X, offset.Z),
		phi:    math.Acos(max(-1, min(1, offset.Y/radius))),
	}
}

func (s spherical) offset() geometry.Vector3 {
	sinPhi := math.Sin(s.phi)
	return geometry.NewVector3(
		s.radius*sinPhi*math.Sin(s.theta),
		s.radius*math.Cos(s.phi),
		s.radius*sinPhi*math.Cos(s.theta),
	)
}

// OrbitControls moves a camera around a target point from pointer input.
// The camera offset is cached in spherical form; call Update after changing
// Camera.Position or Target directly so the cache follows.
type OrbitControls struct {
	Target geometry.Vector3

	MinDistance  float64
	MaxDistance  float64
	EnableRotate bool
	EnablePan    bool
	EnableZoom   bool
	Buttons      ButtonMapping

	RotateSpeed float64
	PanSpeed    float64
	ZoomSpeed   float64

	camera    *Camera
	spherical spherical

	viewportHeight float64

	active       Action
	activeButton Button
	lastX, lastY float64
}

// NewOrbitControls attaches controls to camera, orbiting the origin
func NewOrbitControls(camera *Camera) *OrbitControls {
	o := &OrbitControls{
		MinDistance:    0,
		MaxDistance:    math.Inf(1),
		EnableRotate:   true,
		EnablePan:      true,
		EnableZoom:     true,
		Buttons:        DefaultButtonMapping(),
		RotateSpeed:    1,
		PanSpeed:       1,
		ZoomSpeed:      1,
		camera:         camera,
		viewportHeight: 600,
	}
	o.Update()
	return o
}

// Camera returns the controlled camera
func (o *OrbitControls) Camera() *Camera {
	return o.camera
}

// SetViewport tells the controls how tall the drawing surface is in pixels.
// Rotation and pan speeds are relative to it.
func (o *OrbitControls) SetViewport(width, height float64) {
	if height > 0 {
		o.viewportHeight = height
	}
}

// Update recomputes the cached spherical state from the camera position and
// target, applies the distance and polar limits and aims the camera. The
// position is only rewritten when a limit moved it.
func (o *OrbitControls) Update() {
	offset := o.camera.Position.Sub(o.Target)
	o.spherical = sphericalFrom(offset)

	clamped := o.clamp(o.spherical)
	if clamped != o.spherical {
		o.spherical = clamped
		o.camera.Position = o.Target.Add(clamped.offset())
	}
	o.camera.LookAt(o.Target)
}

// Distance returns the cached camera distance from the target
func (o *OrbitControls) Distance() float64 {
	return o.spherical.radius
}

// Angles returns the cached azimuth and polar angle in radians
func (o *OrbitControls) Angles() (theta, phi float64) {
	return o.spherical.theta, o.spherical.phi
}

func (o *OrbitControls) clamp(s spherical) spherical {
	if s.radius == 0 {
		return s
	}
	s.radius = max(o.MinDistance, min(o.MaxDistance, s.radius))
	s.phi = max(polarEpsilon, min(math.Pi-polarEpsilon, s.phi))
	return s
}

func (o *OrbitControls) apply() {
	o.spherical = o.clamp(o.spherical)
	o.camera.Position = o.Target.Add(o.spherical.offset())
	o.camera.LookAt(o.Target)
}

// Dragging reports whether a button drag is in progress
func (o *OrbitControls) Dragging() bool {
	return o.active != ActionNone
}

// PointerDown starts the drag bound to button. A second button pressed
// during a drag is ignored.
func (o *OrbitControls) PointerDown(button Button, x, y float64) {
	if o.active != ActionNone {
		return
	}
	action := o.Buttons.ActionFor(button)
	if !o.enabled(action) {
		return
	}
	o.active = action
	o.activeButton = button
	o.lastX, o.lastY = x, y
}

// PointerMove applies the active drag using the movement since the previous event
func (o *OrbitControls) PointerMove(x, y float64) {
	if o.active == ActionNone {
		return
	}
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}

	switch o.active {
	case ActionRotate:
		o.rotate(dx, dy)
	case ActionPan:
		o.pan(dx, dy)
	case ActionDolly:
		o.dollyBy(dy)
	}
}

// PointerUp ends the drag started by button
func (o *OrbitControls) PointerUp(button Button) {
	if o.active != ActionNone && button == o.activeButton {
		o.active = ActionNone
	}
}

// Cancel ends any drag in progress
func (o *OrbitControls) Cancel() {
	o.active = ActionNone
}

// Wheel dollies the camera; positive delta moves away from the target
func (o *OrbitControls) Wheel(delta float64) {
	if !o.EnableZoom || delta == 0 {
		return
	}
	scale := o.zoomScale()
	if delta > 0 {
		o.spherical.radius /= scale
	} else {
		o.spherical.radius *= scale
	}
	o.apply()
}

func (o *OrbitControls) enabled(a Action) bool {
	switch a {
	case ActionRotate:
		return o.EnableRotate
	case ActionPan:
		return o.EnablePan
	case ActionDolly:
		return o.EnableZoom
	default:
		return false
	}
}

func (o *OrbitControls) rotate(dx, dy float64) {
	o.spherical.theta -= 2 * math.Pi * dx / o.viewportHeight * o.RotateSpeed
	o.spherical.phi -= 2 * math.Pi * dy / o.viewportHeight * o.RotateSpeed
	o.apply()
}

func (o *OrbitControls) pan(dx, dy float64) {
	forward := o.Target.Sub(o.camera.Position).Normalize()
	right := forward.Cross(o.camera.Up).Normalize()
	up := right.Cross(forward).Normalize()

	// Pan so the point under the cursor follows it at the target's depth.
	visibleHeight := 2 * o.spherical.radius * math.Tan(o.camera.FOV*math.Pi/360)
	perPixel := visibleHeight / o.viewportHeight * o.PanSpeed
	move := right.Mul(-dx * perPixel).Add(up.Mul(dy * perPixel))

	o.Target = o.Target.Add(move)
	o.apply()
}

func (o *OrbitControls) dollyBy(dy float64) {
	scale := math.Pow(o.zoomScale(), math.Abs(dy)/10)
	if dy > 0 {
		o.spherical.radius *= scale
	} else {
		o.spherical.radius /= scale
	}
	o.apply()
}

func (o *OrbitControls) zoomScale() float64 {
	return math.Pow(0.95, o.ZoomSpeed)
}
