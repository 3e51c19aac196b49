package transform

import (
	"fmt"
	"math"
)

// Projection maps pixel coordinates with a top-left origin and a depth
// range of [-depth/2, depth/2] onto clip space.
func Projection(width, height, depth float64) (Mat4, error) {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"width", width},
		{"height", height},
		{"depth", depth},
	} {
		if p.value == 0 || !finite(p.value) {
			return Mat4{}, fmt.Errorf("projection %s %v: %w", p.name, p.value, ErrInvalidParameter)
		}
	}

	return Mat4{
		2 / width, 0, 0, 0,
		0, -2 / height, 0, 0,
		0, 0, 2 / depth, 0,
		-1, 1, 0, 1,
	}, nil
}

// Perspective returns a symmetric perspective projection. fov is the
// vertical field of view in radians and aspect is width over height.
func Perspective(fov, aspect, near, far float64) (Mat4, error) {
	switch {
	case !finite(fov) || fov <= 0 || fov >= math.Pi:
		return Mat4{}, fmt.Errorf("perspective field of view %v: %w", fov, ErrInvalidParameter)
	case aspect == 0 || !finite(aspect):
		return Mat4{}, fmt.Errorf("perspective aspect ratio %v: %w", aspect, ErrInvalidParameter)
	case !finite(near) || !finite(far) || near == far:
		return Mat4{}, fmt.Errorf("perspective clip planes near %v far %v: %w", near, far, ErrInvalidParameter)
	}

	f := math.Tan(math.Pi/2 - fov/2)
	rangeInv := 1 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (near + far) * rangeInv, -1,
		0, 0, near * far * rangeInv * 2, 0,
	}, nil
}

// parallelLimit is the length below which the cross product of up and the
// view direction is treated as zero.
const parallelLimit = 1e-9

// LookAt returns the world matrix of a camera at eye looking at target.
// The camera looks down its local -Z axis; invert the result to get the
// view matrix.
//
// When up is zero or parallel to the view direction the world axis least
// aligned with the view direction is used in its place.
func LookAt(eye, target, up Vec3) (Mat4, error) {
	z := eye.Sub(target)
	if z.Len() < parallelLimit || !finite(z.Len()) {
		return Mat4{}, fmt.Errorf("look at %v from %v: %w", target, eye, ErrDegenerateTransform)
	}
	z = z.Normalize()

	x := up.Cross(z)
	if x.Len() < parallelLimit {
		x = fallbackUp(z).Cross(z)
	}
	x = x.Normalize()
	y := z.Cross(x).Normalize()

	return Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		eye[0], eye[1], eye[2], 1,
	}, nil
}

func fallbackUp(z Vec3) Vec3 {
	axes := [...]Vec3{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}}
	best := axes[0]
	for _, axis := range axes[1:] {
		if math.Abs(axis.Dot(z)) < math.Abs(best.Dot(z)) {
			best = axis
		}
	}
	return best
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
