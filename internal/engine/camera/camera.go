// Package camera provides the perspective camera and controllers that move it.
package camera

import (
	gomath "math"

	"github.com/Faultbox/facet/internal/config"
	"github.com/Faultbox/facet/pkg/math"
)

// Pitch is kept inside ±MaxPitch degrees so the view never aligns with Up.
const MaxPitch = 89.0

// Defaults match an 800x600 window.
const (
	DefaultFOV    = 60.0
	DefaultAspect = 800.0 / 600.0
	DefaultNear   = 0.1
	DefaultFar    = 100.0
)

// Camera is a perspective camera oriented by yaw and pitch. The view and
// projection matrices are recomputed on every change, so reads never see
// stale state.
type Camera struct {
	origin math.Vec3
	yaw    float64 // degrees
	pitch  float64 // degrees

	fov    float64
	aspect float64
	near   float64
	far    float64

	front      math.Vec3
	transform  math.Mat4
	view       math.Mat4
	projection math.Mat4
}

// New creates a camera at the origin looking down -Z.
func New() *Camera {
	c := &Camera{
		yaw:    -90,
		fov:    DefaultFOV,
		aspect: DefaultAspect,
		near:   DefaultNear,
		far:    DefaultFar,
	}
	c.updateOrientation()
	c.updateProjection()
	return c
}

// FromConfig creates a camera from the camera section.
func FromConfig(cfg config.CameraConfig, aspect float64) *Camera {
	c := New()
	c.origin = math.V3(cfg.Position[0], cfg.Position[1], cfg.Position[2])
	c.yaw = cfg.Yaw
	c.pitch = math.Clamp(cfg.Pitch, -MaxPitch, MaxPitch)
	if cfg.FOV > 0 {
		c.fov = cfg.FOV
	}
	if cfg.Near > 0 && cfg.Far > cfg.Near {
		c.near, c.far = cfg.Near, cfg.Far
	}
	if aspect > 0 {
		c.aspect = aspect
	}
	c.updateOrientation()
	c.updateProjection()
	return c
}

// Origin returns the eye position.
func (c *Camera) Origin() math.Vec3 {
	return c.origin
}

// SetOrigin moves the eye to p.
func (c *Camera) SetOrigin(p math.Vec3) {
	c.origin = p
	c.updateView()
}

// Move translates the eye in world space.
func (c *Camera) Move(delta math.Vec3) {
	c.SetOrigin(c.origin.Add(delta))
}

// Yaw returns the yaw in degrees. -90 looks down -Z.
func (c *Camera) Yaw() float64 {
	return c.yaw
}

// Pitch returns the pitch in degrees.
func (c *Camera) Pitch() float64 {
	return c.pitch
}

// SetRotation sets yaw and pitch in degrees.
func (c *Camera) SetRotation(yaw, pitch float64) {
	c.yaw = yaw
	c.pitch = math.Clamp(pitch, -MaxPitch, MaxPitch)
	c.updateOrientation()
}

// Rotate adds to yaw and pitch, in degrees.
func (c *Camera) Rotate(dYaw, dPitch float64) {
	c.SetRotation(c.yaw+dYaw, c.pitch+dPitch)
}

// LookAt turns the camera toward target. No-op when target is the eye.
func (c *Camera) LookAt(target math.Vec3) {
	dir := target.Sub(c.origin)
	if dir.LengthSquared() == 0 {
		return
	}
	dir.Normalize()
	c.SetRotation(
		math.RadToDeg(gomath.Atan2(dir.Z, dir.X)),
		math.RadToDeg(gomath.Asin(math.Clamp(dir.Y, -1, 1))),
	)
}

// FOV returns the vertical field of view in degrees.
func (c *Camera) FOV() float64 {
	return c.fov
}

// SetFOV sets the vertical field of view in degrees.
func (c *Camera) SetFOV(fov float64) {
	c.fov = fov
	c.updateProjection()
}

// Aspect returns width / height.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// SetAspect sets width / height. Non-positive values are ignored.
func (c *Camera) SetAspect(aspect float64) {
	if aspect <= 0 {
		return
	}
	c.aspect = aspect
	c.updateProjection()
}

// Near returns the near plane distance.
func (c *Camera) Near() float64 {
	return c.near
}

// Far returns the far plane distance.
func (c *Camera) Far() float64 {
	return c.far
}

// SetPlanes sets the clip plane distances.
func (c *Camera) SetPlanes(near, far float64) {
	c.near, c.far = near, far
	c.updateProjection()
}

// Front returns the unit view direction.
func (c *Camera) Front() math.Vec3 {
	return c.front
}

// Right returns the unit right vector.
func (c *Camera) Right() math.Vec3 {
	return c.transform.X()
}

// Up returns the unit up vector of the view.
func (c *Camera) Up() math.Vec3 {
	return c.transform.Y()
}

// Transform returns the camera frame: X right, Y up, Z front, origin eye.
func (c *Camera) Transform() math.Mat4 {
	return c.transform
}

// View returns the world-to-view matrix.
func (c *Camera) View() math.Mat4 {
	return c.view
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() math.Mat4 {
	return c.projection
}

// ViewProjection returns Projection × View.
func (c *Camera) ViewProjection() math.Mat4 {
	return c.projection.Mul(c.view)
}

func (c *Camera) updateOrientation() {
	yaw, pitch := math.DegToRad(c.yaw), math.DegToRad(c.pitch)
	c.front = math.Vec3{
		X: gomath.Cos(yaw) * gomath.Cos(pitch),
		Y: gomath.Sin(pitch),
		Z: gomath.Sin(yaw) * gomath.Cos(pitch),
	}.Normalized()

	x := c.front.Cross(math.Up).Normalized()
	y := x.Cross(c.front)

	c.transform = math.Identity()
	c.transform.SetX(x)
	c.transform.SetY(y)
	c.transform.SetZ(c.front)
	c.updateView()
}

func (c *Camera) updateView() {
	c.transform.SetOrigin(c.origin)
	c.view = math.LookAt(c.origin, c.origin.Add(c.front), math.Up)
}

func (c *Camera) updateProjection() {
	c.projection = math.Perspective(c.fov, c.aspect, c.near, c.far)
}
