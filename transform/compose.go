package transform

import "math"

// Translation returns the elementary matrix moving points by (tx, ty, tz).
func Translation(tx, ty, tz float64) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		tx, ty, tz, 1,
	}
}

// XRotation returns the elementary rotation of angle radians about X.
func XRotation(angle float64) Mat4 {
	sin, cos := math.Sincos(angle)
	return Mat4{
		1, 0, 0, 0,
		0, cos, sin, 0,
		0, -sin, cos, 0,
		0, 0, 0, 1,
	}
}

// YRotation returns the elementary rotation of angle radians about Y.
func YRotation(angle float64) Mat4 {
	sin, cos := math.Sincos(angle)
	return Mat4{
		cos, 0, -sin, 0,
		0, 1, 0, 0,
		sin, 0, cos, 0,
		0, 0, 0, 1,
	}
}

// ZRotation returns the elementary rotation of angle radians about Z.
func ZRotation(angle float64) Mat4 {
	sin, cos := math.Sincos(angle)
	return Mat4{
		cos, sin, 0, 0,
		-sin, cos, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Scaling returns the elementary matrix scaling each axis independently.
func Scaling(sx, sy, sz float64) Mat4 {
	return Mat4{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
		0, 0, 0, 1,
	}
}

// Translate returns Multiply(m, Translation(tx, ty, tz)).
func (m Mat4) Translate(tx, ty, tz float64) Mat4 {
	return Multiply(m, Translation(tx, ty, tz))
}

// XRotate returns Multiply(m, XRotation(angle)).
func (m Mat4) XRotate(angle float64) Mat4 {
	return Multiply(m, XRotation(angle))
}

// YRotate returns Multiply(m, YRotation(angle)).
func (m Mat4) YRotate(angle float64) Mat4 {
	return Multiply(m, YRotation(angle))
}

// ZRotate returns Multiply(m, ZRotation(angle)).
func (m Mat4) ZRotate(angle float64) Mat4 {
	return Multiply(m, ZRotation(angle))
}

// Scale returns Multiply(m, Scaling(sx, sy, sz)).
func (m Mat4) Scale(sx, sy, sz float64) Mat4 {
	return Multiply(m, Scaling(sx, sy, sz))
}

// Compose appends the per-frame object chain to base: translate, rotate
// about X, Y and Z, then scale. Each step post-multiplies, so a vertex is
// scaled first, then rotated about Z, Y and X, then translated, and finally
// transformed by base.
func Compose(base Mat4, translation, rotation, scale Vec3) Mat4 {
	return base.
		Translate(translation[0], translation[1], translation[2]).
		XRotate(rotation[0]).
		YRotate(rotation[1]).
		ZRotate(rotation[2]).
		Scale(scale[0], scale[1], scale[2])
}
