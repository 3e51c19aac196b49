package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-9

// sample is an invertible matrix with no zero elements in its upper 3x3.
var sample = Compose(Identity(), Vec3{1, -2, 3}, Vec3{0.3, 0.5, 0.7}, Vec3{2, 3, 4})

func TestMultiplyIdentity(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"identity", Identity()},
		{"zero", Mat4{}},
		{"sequence", Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}},
		{"composed", sample},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Multiply(Identity(), tt.m); got != tt.m {
				t.Errorf("Multiply(Identity(), m) = %v, want %v", got, tt.m)
			}
			if got := Multiply(tt.m, Identity()); got != tt.m {
				t.Errorf("Multiply(m, Identity()) = %v, want %v", got, tt.m)
			}
		})
	}
}

func TestMultiplyMatchesMgl(t *testing.T) {
	a := Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	b := sample

	got := Multiply(a, b)
	want := a.Mgl().Mul4(b.Mgl())
	if !got.ApproxEqual(Mat4(want), epsilon) {
		t.Errorf("Multiply(a, b) = %v, want %v", got, want)
	}
	if a.Mul(b) != got {
		t.Errorf("a.Mul(b) = %v, want %v", a.Mul(b), got)
	}
}

func TestMultiplyDoesNotModifyInputs(t *testing.T) {
	a := sample
	b := Translation(4, 5, 6)
	aCopy, bCopy := a, b

	_ = Multiply(a, b)
	_ = a.Translate(1, 1, 1).XRotate(1).Scale(2, 2, 2)
	_, _ = Inverse(a)
	_ = Transpose(a)

	if a != aCopy || b != bCopy {
		t.Errorf("inputs modified: a = %v, b = %v", a, b)
	}
}

func TestTransposeTwice(t *testing.T) {
	for _, m := range []Mat4{Identity(), sample, {1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}} {
		if got := Transpose(Transpose(m)); got != m {
			t.Errorf("Transpose(Transpose(%v)) = %v", m, got)
		}
	}

	m := Mat4{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}
	want := Mat4{1, 5, 9, 13, 2, 6, 10, 14, 3, 7, 11, 15, 4, 8, 12, 16}
	if got := Transpose(m); got != want {
		t.Errorf("Transpose(%v) = %v, want %v", m, got, want)
	}
}

func TestInverse(t *testing.T) {
	perspective, err := Perspective(math.Pi/3, 1.5, 1, 2000)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		m    Mat4
	}{
		{"identity", Identity()},
		{"translation", Translation(3, -4, 5)},
		{"non-uniform scale", Scaling(2, 0.5, -3)},
		{"rotation", XRotation(0.4).YRotate(1.1).ZRotate(-0.3)},
		{"composed", sample},
		{"perspective", perspective},
		{"view projection", perspective.Mul(sample)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := Inverse(tt.m)
			if err != nil {
				t.Fatalf("Inverse() error = %v", err)
			}
			if got := Multiply(tt.m, inv); !got.ApproxEqual(Identity(), epsilon) {
				t.Errorf("m * Inverse(m) = %v, want identity", got)
			}
			if want := tt.m.Mgl().Inv(); !inv.ApproxEqual(Mat4(want), 1e-6) {
				t.Errorf("Inverse() = %v, mgl64 Inv() = %v", inv, want)
			}

			back, err := Inverse(inv)
			if err != nil {
				t.Fatalf("Inverse(Inverse()) error = %v", err)
			}
			if !back.ApproxEqual(tt.m, 1e-6) {
				t.Errorf("Inverse(Inverse(m)) = %v, want %v", back, tt.m)
			}
		})
	}
}

func TestInverseSingular(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
	}{
		{"zero", Mat4{}},
		{"flattened axis", Scaling(1, 0, 1)},
		{"repeated rows", Mat4{1, 2, 3, 4, 2, 4, 6, 8, 0, 0, 1, 0, 0, 0, 0, 1}},
		{"nan", Mat4{math.NaN(), 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Inverse(tt.m)
			if !errors.Is(err, ErrDegenerateTransform) {
				t.Errorf("Inverse() error = %v, want %v", err, ErrDegenerateTransform)
			}
		})
	}
}

func TestDeterminant(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		want float64
	}{
		{"identity", Identity(), 1},
		{"scale", Scaling(2, 3, 4), 24},
		{"translation", Translation(7, 8, 9), 1},
		{"rotation", YRotation(0.8), 1},
		{"singular", Scaling(1, 0, 1), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.Determinant(); math.Abs(got-tt.want) > epsilon {
				t.Errorf("Determinant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNormalMatrix(t *testing.T) {
	got, err := NormalMatrix(Scaling(2, 1, 4))
	if err != nil {
		t.Fatal(err)
	}
	if want := Scaling(0.5, 1, 0.25); !got.ApproxEqual(want, epsilon) {
		t.Errorf("NormalMatrix(scale) = %v, want %v", got, want)
	}

	rotation := XRotation(0.3).YRotate(0.9)
	got, err = NormalMatrix(rotation)
	if err != nil {
		t.Fatal(err)
	}
	if !got.ApproxEqual(rotation, epsilon) {
		t.Errorf("NormalMatrix(rotation) = %v, want %v", got, rotation)
	}

	// A normal of a surface squashed along X stays perpendicular to it.
	world := Scaling(3, 1, 1)
	normals, err := NormalMatrix(world)
	if err != nil {
		t.Fatal(err)
	}
	tangent := world.TransformDirection(Vec3{1, -1, 0})
	normal := normals.TransformDirection(Vec3{1, 1, 0})
	if d := tangent.Dot(normal); math.Abs(d) > epsilon {
		t.Errorf("transformed normal . tangent = %v, want 0", d)
	}

	if _, err := NormalMatrix(Mat4{}); !errors.Is(err, ErrDegenerateTransform) {
		t.Errorf("NormalMatrix(zero) error = %v, want %v", err, ErrDegenerateTransform)
	}
}

func TestTransformPoint(t *testing.T) {
	m := Translation(1, 2, 3).Scale(2, 2, 2)

	if got, want := m.TransformPoint(Vec3{1, 1, 1}), (Vec3{3, 4, 5}); !approxVec3(got, want) {
		t.Errorf("TransformPoint() = %v, want %v", got, want)
	}
	if got, want := m.TransformDirection(Vec3{1, 1, 1}), (Vec3{2, 2, 2}); !approxVec3(got, want) {
		t.Errorf("TransformDirection() = %v, want %v", got, want)
	}

	v := mgl64.Vec4{0.5, -1, 2, 1}
	if got, want := sample.TransformVec4(v), sample.Mgl().Mul4x1(v); !approxVec4(got, want) {
		t.Errorf("TransformVec4() = %v, want %v", got, want)
	}
}

func TestFloat32(t *testing.T) {
	got := sample.Float32()
	for i := range sample {
		if got[i] != float32(sample[i]) {
			t.Errorf("Float32()[%d] = %v, want %v", i, got[i], float32(sample[i]))
		}
	}
}

func approxVec3(a, b Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}

func approxVec4(a, b mgl64.Vec4) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > epsilon {
			return false
		}
	}
	return true
}
