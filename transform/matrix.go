// Package transform composes the 4x4 world, view and projection matrices
// the demos hand to their shaders every frame.
//
// A Mat4 is a flat array of 16 values indexed [row*4+col]. The first three
// rows hold the transformed X, Y and Z axes and the fourth row holds the
// translation, so the memory layout is the column-major storage of the
// usual column-vector matrix. That is the layout mgl64.Mat4 uses and the
// layout glUniformMatrix4fv expects with transpose set to false.
//
// Every function returns a new value; no input is ever modified.
package transform

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

var (
	// ErrDegenerateTransform is returned when a transform has no meaningful
	// result, such as inverting a singular matrix or looking at the eye point.
	ErrDegenerateTransform = errors.New("degenerate transform")

	// ErrInvalidParameter is returned when a projection parameter would
	// divide by zero or is not a finite number.
	ErrInvalidParameter = errors.New("invalid transform parameter")
)

// Vec3 is a position, direction or per-axis factor.
type Vec3 = mgl64.Vec3

type Mat4 [16]float64

func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Multiply returns the product of a and b such that applying the result to
// a point applies b first and then a. Chained calls of the form
// m = Multiply(m, T) therefore apply T in the object's local space.
func Multiply(a, b Mat4) Mat4 {
	var out Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += b[i*4+k] * a[k*4+j]
			}
			out[i*4+j] = sum
		}
	}
	return out
}

// Mul is Multiply(m, b).
func (m Mat4) Mul(b Mat4) Mat4 {
	return Multiply(m, b)
}

func Transpose(m Mat4) Mat4 {
	return Mat4{
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	}
}

// Determinant returns the determinant of m.
func (m Mat4) Determinant() float64 {
	s, c := m.minors()
	return s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
}

// minors returns the 2x2 determinants of the top two and bottom two rows
// used by both Determinant and Inverse.
func (m Mat4) minors() (s, c [6]float64) {
	s[0] = m[0]*m[5] - m[1]*m[4]
	s[1] = m[0]*m[6] - m[2]*m[4]
	s[2] = m[0]*m[7] - m[3]*m[4]
	s[3] = m[1]*m[6] - m[2]*m[5]
	s[4] = m[1]*m[7] - m[3]*m[5]
	s[5] = m[2]*m[7] - m[3]*m[6]

	c[0] = m[8]*m[13] - m[9]*m[12]
	c[1] = m[8]*m[14] - m[10]*m[12]
	c[2] = m[8]*m[15] - m[11]*m[12]
	c[3] = m[9]*m[14] - m[10]*m[13]
	c[4] = m[9]*m[15] - m[11]*m[13]
	c[5] = m[10]*m[15] - m[11]*m[14]
	return s, c
}

// Inverse returns the inverse of m by cofactor expansion.
//
// A singular matrix has no inverse; ErrDegenerateTransform is returned
// instead of a matrix full of infinities.
func Inverse(m Mat4) (Mat4, error) {
	s, c := m.minors()
	det := s[0]*c[5] - s[1]*c[4] + s[2]*c[3] + s[3]*c[2] - s[4]*c[1] + s[5]*c[0]
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Mat4{}, fmt.Errorf("inverse of matrix with determinant %v: %w", det, ErrDegenerateTransform)
	}
	inv := 1 / det

	return Mat4{
		(m[5]*c[5] - m[6]*c[4] + m[7]*c[3]) * inv,
		(-m[1]*c[5] + m[2]*c[4] - m[3]*c[3]) * inv,
		(m[13]*s[5] - m[14]*s[4] + m[15]*s[3]) * inv,
		(-m[9]*s[5] + m[10]*s[4] - m[11]*s[3]) * inv,

		(-m[4]*c[5] + m[6]*c[2] - m[7]*c[1]) * inv,
		(m[0]*c[5] - m[2]*c[2] + m[3]*c[1]) * inv,
		(-m[12]*s[5] + m[14]*s[2] - m[15]*s[1]) * inv,
		(m[8]*s[5] - m[10]*s[2] + m[11]*s[1]) * inv,

		(m[4]*c[4] - m[5]*c[2] + m[7]*c[0]) * inv,
		(-m[0]*c[4] + m[1]*c[2] - m[3]*c[0]) * inv,
		(m[12]*s[4] - m[13]*s[2] + m[15]*s[0]) * inv,
		(-m[8]*s[4] + m[9]*s[2] - m[11]*s[0]) * inv,

		(-m[4]*c[3] + m[5]*c[1] - m[6]*c[0]) * inv,
		(m[0]*c[3] - m[1]*c[1] + m[2]*c[0]) * inv,
		(-m[12]*s[3] + m[13]*s[1] - m[14]*s[0]) * inv,
		(m[8]*s[3] - m[9]*s[1] + m[10]*s[0]) * inv,
	}, nil
}

// NormalMatrix returns the inverse-transpose of world, which keeps surface
// normals perpendicular to their surfaces under non-uniform scale.
func NormalMatrix(world Mat4) (Mat4, error) {
	inv, err := Inverse(world)
	if err != nil {
		return Mat4{}, fmt.Errorf("normal matrix: %w", err)
	}
	return Transpose(inv), nil
}

// TransformVec4 applies m to the homogeneous vector v.
func (m Mat4) TransformVec4(v mgl64.Vec4) mgl64.Vec4 {
	return mgl64.Vec4{
		m[0]*v[0] + m[4]*v[1] + m[8]*v[2] + m[12]*v[3],
		m[1]*v[0] + m[5]*v[1] + m[9]*v[2] + m[13]*v[3],
		m[2]*v[0] + m[6]*v[1] + m[10]*v[2] + m[14]*v[3],
		m[3]*v[0] + m[7]*v[1] + m[11]*v[2] + m[15]*v[3],
	}
}

// TransformPoint applies m to the point p (w = 1) without the perspective
// divide.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return m.TransformVec4(p.Vec4(1)).Vec3()
}

// TransformDirection applies m to the direction d (w = 0), ignoring
// translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return m.TransformVec4(d.Vec4(0)).Vec3()
}

// ApproxEqual reports whether every element of m is within epsilon of the
// matching element of other.
func (m Mat4) ApproxEqual(other Mat4, epsilon float64) bool {
	for i := range m {
		if math.Abs(m[i]-other[i]) > epsilon {
			return false
		}
	}
	return true
}

// Mgl returns m as an mgl64.Mat4. The element order is unchanged.
func (m Mat4) Mgl() mgl64.Mat4 {
	return mgl64.Mat4(m)
}

// Float32 narrows m for upload as a GLSL mat4 uniform.
func (m Mat4) Float32() mgl32.Mat4 {
	var out mgl32.Mat4
	for i, v := range m {
		out[i] = float32(v)
	}
	return out
}
