// Package camera provides the free-fly viewer camera.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/terrainview/pkg/math"
)

// Pitch is clamped just short of straight up/down so LookAt keeps a valid basis.
const maxPitch = 89.0

// FlyCamera moves freely along its view direction. Angles are in degrees.
type FlyCamera struct {
	Position math.Vec3
	Yaw      float32
	Pitch    float32

	// Starting pose restored by Reset.
	Home      math.Vec3
	HomeYaw   float32
	HomePitch float32

	MoveSpeed   float32 // world units per second
	Sensitivity float32 // degrees per pixel of drag
}

// New creates a camera at home, looking down -Z.
func New(home math.Vec3, moveSpeed, sensitivity float32) *FlyCamera {
	c := &FlyCamera{
		Home:        home,
		HomeYaw:     -90,
		MoveSpeed:   moveSpeed,
		Sensitivity: sensitivity,
	}
	c.Reset()
	return c
}

// Reset restores the starting position and orientation.
func (c *FlyCamera) Reset() {
	c.Position = c.Home
	c.Yaw = c.HomeYaw
	c.Pitch = c.HomePitch
}

// Forward returns the unit view direction.
func (c *FlyCamera) Forward() math.Vec3 {
	yaw := math.Radians(c.Yaw)
	pitch := math.Radians(c.Pitch)
	return math.Vec3{
		X: math32.Cos(yaw) * math32.Cos(pitch),
		Y: math32.Sin(pitch),
		Z: math32.Sin(yaw) * math32.Cos(pitch),
	}.Normalize()
}

// Right returns the unit direction to the camera's right, parallel to the ground.
func (c *FlyCamera) Right() math.Vec3 {
	return c.Forward().Cross(math.Vec3{Y: 1}).Normalize()
}

// Move displaces the camera. forward and right are -1, 0 or 1 per axis; dt is in seconds.
func (c *FlyCamera) Move(forward, right, dt float32) {
	step := c.MoveSpeed * dt
	c.Position = c.Position.
		Add(c.Forward().Scale(forward * step)).
		Add(c.Right().Scale(right * step))
}

// HandleDrag turns the camera by a mouse delta in pixels. Screen Y grows
// downward, so dragging up pitches up.
func (c *FlyCamera) HandleDrag(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.Sensitivity
	c.Pitch = math.Clamp(c.Pitch-deltaY*c.Sensitivity, -maxPitch, maxPitch)
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Position, c.Position.Add(c.Forward()), math.Vec3{Y: 1})
}
