package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	assert.Equal(t, Vec3{0, 0, 1}, x.Cross(y))
	assert.Equal(t, Vec3{0, 0, -1}, y.Cross(x))
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}

	assert.Equal(t, Vec3{5, 7, 9}, a.Add(b))
	assert.Equal(t, Vec3{-3, -3, -3}, a.Sub(b))
	assert.Equal(t, Vec3{2, 4, 6}, a.Scale(2))
	assert.Equal(t, float32(32), a.Dot(b))
}

func TestVec3Normalize(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalize()
	assert.InDelta(t, 1, n.Length(), 1e-6)
	assert.InDelta(t, 0.6, n.X, 1e-6)
	assert.InDelta(t, 0.8, n.Z, 1e-6)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestRadiansAndClamp(t *testing.T) {
	assert.InDelta(t, 3.14159265, Radians(180), 1e-5)
	assert.InDelta(t, 0.78539816, Radians(45), 1e-6)

	assert.Equal(t, float32(89), Clamp(120, -89, 89))
	assert.Equal(t, float32(-89), Clamp(-100, -89, 89))
	assert.Equal(t, float32(10), Clamp(10, -89, 89))
}
