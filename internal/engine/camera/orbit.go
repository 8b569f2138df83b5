package camera

import (
	gomath "math"

	"github.com/Faultbox/facet/pkg/math"
)

// Orbit places a camera on a sphere around a center point.
type Orbit struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance float64 // Distance from center
	Pitch    float64 // Vertical angle, radians
	Yaw      float64 // Horizontal angle, radians

	// Constraints
	MinDistance float64
	MaxDistance float64
	MinPitch    float64
	MaxPitch    float64

	// Sensitivity
	DragSensitivity float64
	ZoomSensitivity float64
}

// NewOrbit creates an orbit with default settings.
func NewOrbit() *Orbit {
	return &Orbit{
		Distance:        5,
		Pitch:           0.4,
		Yaw:             0.6,
		MinDistance:     0.1,
		MaxDistance:     500,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the eye position in world space.
func (o *Orbit) Position() math.Vec3 {
	sinP, cosP := gomath.Sincos(o.Pitch)
	sinY, cosY := gomath.Sincos(o.Yaw)
	return o.Center.Add(math.Vec3{
		X: o.Distance * cosP * sinY,
		Y: o.Distance * sinP,
		Z: o.Distance * cosP * cosY,
	})
}

// Apply moves cam to the orbit position looking at the center.
func (o *Orbit) Apply(cam *Camera) {
	cam.SetOrigin(o.Position())
	cam.LookAt(o.Center)
}

// HandleDrag updates rotation based on mouse drag delta.
func (o *Orbit) HandleDrag(dx, dy float64) {
	o.Yaw -= dx * o.DragSensitivity
	o.Pitch = math.Clamp(o.Pitch+dy*o.DragSensitivity, o.MinPitch, o.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (o *Orbit) HandleZoom(delta float64) {
	o.Distance = math.Clamp(o.Distance-delta*o.Distance*o.ZoomSensitivity, o.MinDistance, o.MaxDistance)
}

// FitToBounds centers the orbit on a box and backs off until its bounding
// sphere fits a vertical field of view of fovDeg.
func (o *Orbit) FitToBounds(minP, maxP math.Vec3, fovDeg float64) {
	o.Center = minP.Add(maxP).Scale(0.5)
	radius := maxP.Distance(minP) / 2
	if radius == 0 {
		radius = 1
	}
	half := math.DegToRad(fovDeg) / 2
	o.Distance = math.Clamp(radius/gomath.Sin(half)*1.1, o.MinDistance, o.MaxDistance)
}
