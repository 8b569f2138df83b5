package camera

import (
	"github.com/Faultbox/facet/internal/config"
	"github.com/Faultbox/facet/internal/engine/input"
	"github.com/Faultbox/facet/pkg/math"
)

// Fly speed limits, in units per second.
const (
	MinSpeed  = 0.0
	MaxSpeed  = 30.0
	SpeedStep = 0.1
)

// Fly is a free-flight controller: WASD moves along the view, Space and Q
// move along world Y, the mouse turns, LeftShift and LeftCtrl change speed
// and R returns to the start pose.
type Fly struct {
	Camera *Camera

	// Speed is the movement speed in units per second.
	Speed float64
	// Sensitivity is degrees of rotation per pixel of mouse motion.
	Sensitivity float64

	home      math.Vec3
	homeYaw   float64
	homePitch float64
	homeSpeed float64
}

// NewFly attaches a controller to cam. The current pose becomes the reset pose.
func NewFly(cam *Camera, cfg config.CameraConfig) *Fly {
	f := &Fly{
		Camera:      cam,
		Speed:       cfg.MoveSpeed,
		Sensitivity: cfg.MouseSensitivity,
	}
	if f.Speed <= 0 {
		f.Speed = 2.5
	}
	if f.Sensitivity <= 0 {
		f.Sensitivity = 0.1
	}
	f.home, f.homeYaw, f.homePitch, f.homeSpeed = cam.Origin(), cam.Yaw(), cam.Pitch(), f.Speed
	return f
}

// Update applies one frame of input. delta is in seconds.
func (f *Fly) Update(in *input.State, delta float64) {
	if in.IsKeyPressed(input.KeyR) {
		f.Reset()
		return
	}

	if in.IsKeyDown(input.KeyLeftShift) {
		f.Speed += SpeedStep
	}
	if in.IsKeyDown(input.KeyLeftCtrl) {
		f.Speed -= SpeedStep
	}
	f.Speed = math.Clamp(f.Speed, MinSpeed, MaxSpeed)

	dx, dy := in.MouseDelta()
	if dx != 0 || dy != 0 {
		f.Camera.Rotate(dx*f.Sensitivity, -dy*f.Sensitivity)
	}

	var dir math.Vec3
	if in.IsKeyDown(input.KeyW) {
		dir.Translate(f.Camera.Front())
	}
	if in.IsKeyDown(input.KeyS) {
		dir.Translate(f.Camera.Front().Negate())
	}
	if in.IsKeyDown(input.KeyD) {
		dir.Translate(f.Camera.Right())
	}
	if in.IsKeyDown(input.KeyA) {
		dir.Translate(f.Camera.Right().Negate())
	}
	if in.IsKeyDown(input.KeySpace) {
		dir.Translate(math.Up)
	}
	if in.IsKeyDown(input.KeyQ) {
		dir.Translate(math.Up.Negate())
	}
	if dir.LengthSquared() == 0 {
		return
	}
	f.Camera.Move(dir.Normalized().Scale(f.Speed * delta))
}

// Reset restores the pose and speed the controller started with.
func (f *Fly) Reset() {
	f.Camera.SetOrigin(f.home)
	f.Camera.SetRotation(f.homeYaw, f.homePitch)
	f.Speed = f.homeSpeed
}
