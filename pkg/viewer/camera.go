package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/philipparndt/neurosight/pkg/geometry"
)

// Camera is a perspective camera. Its orientation is set by LookAt, which
// OrbitControls calls on every update.
type Camera struct {
	Position geometry.Vector3
	Up       geometry.Vector3
	FOV      float64 // vertical field of view in degrees
	Near     float64
	Far      float64

	lookAt geometry.Vector3
}

// NewCamera creates a camera at position looking at the origin
func NewCamera(position geometry.Vector3, fov float64) *Camera {
	return &Camera{
		Position: position,
		Up:       geometry.UnitY,
		FOV:      fov,
		Near:     0.01,
		Far:      100,
	}
}

// LookAt points the camera at target
func (c *Camera) LookAt(target geometry.Vector3) {
	c.lookAt = target
}

// Direction returns the normalized viewing direction
func (c *Camera) Direction() geometry.Vector3 {
	return c.lookAt.Sub(c.Position).Normalize()
}

// View returns the world-to-camera matrix
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(toVec3(c.Position), toVec3(c.lookAt), toVec3(c.Up))
}

// Projection returns the perspective matrix for the given aspect ratio
func (c *Camera) Projection(aspect float64) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Projector maps world points to pixel coordinates for one frame
type Projector struct {
	matrix        mgl64.Mat4
	width, height float64
	near          float64
}

// Projector captures the current view for a viewport of width x height pixels
func (c *Camera) Projector(width, height int) Projector {
	aspect := float64(width) / math.Max(1, float64(height))
	return Projector{
		matrix: c.Projection(aspect).Mul4(c.View()),
		width:  float64(width),
		height: float64(height),
		near:   c.Near,
	}
}

// Project returns pixel coordinates and view depth of point. ok is false
// when the point lies behind the near plane.
func (p Projector) Project(point geometry.Vector3) (x, y, depth float64, ok bool) {
	clip := p.matrix.Mul4x1(mgl64.Vec4{point.X, point.Y, point.Z, 1})
	w := clip.W()
	if w < p.near {
		return 0, 0, 0, false
	}
	x = (clip.X()/w + 1) / 2 * p.width
	y = (1 - clip.Y()/w) / 2 * p.height
	return x, y, w, true
}

func toVec3(v geometry.Vector3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}
