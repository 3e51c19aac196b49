package programs

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Scene holds the parameters a program reads once per frame. Angles are in
// radians.
type Scene struct {
	Translation mgl64.Vec3
	Rotation    mgl64.Vec3
	Scale       mgl64.Vec3

	// Light is the extra rotation of the spot light about X and Y.
	Light mgl64.Vec2
	// Limit is the half angle of the spot light cone.
	Limit float64
}

// Field names one scalar of a Scene.
type Field int

const (
	TranslationX Field = iota
	TranslationY
	TranslationZ
	RotationX
	RotationY
	RotationZ
	ScaleX
	ScaleY
	ScaleZ
	LightX
	LightY
	LightLimit
)

// Field returns a pointer to the scalar named by f, or nil if f is unknown.
func (s *Scene) Field(f Field) *float64 {
	switch f {
	case TranslationX, TranslationY, TranslationZ:
		return &s.Translation[f-TranslationX]
	case RotationX, RotationY, RotationZ:
		return &s.Rotation[f-RotationX]
	case ScaleX, ScaleY, ScaleZ:
		return &s.Scale[f-ScaleX]
	case LightX, LightY:
		return &s.Light[f-LightX]
	case LightLimit:
		return &s.Limit
	}
	return nil
}

// Slider describes one config window control bound to a scene field.
type Slider struct {
	Label          string
	Field          Field
	Min, Max, Step float64

	// Degrees sliders show degrees while the scene stores radians.
	Degrees bool
}

// Value returns the field's current value in slider units.
func (s Slider) Value(scene *Scene) float64 {
	p := scene.Field(s.Field)
	if p == nil {
		return 0
	}
	if s.Degrees {
		return mgl64.RadToDeg(*p)
	}
	return *p
}

// Set stores a value given in slider units, clamped to the slider's range.
func (s Slider) Set(scene *Scene, value float64) {
	p := scene.Field(s.Field)
	if p == nil {
		return
	}
	value = mgl64.Clamp(value, s.Min, s.Max)
	if s.Degrees {
		value = mgl64.DegToRad(value)
	}
	*p = value
}

// Input is the keyboard state sampled once per frame.
type Input struct {
	Forward, Backward bool
	Left, Right       bool
	RollLeft          bool
	RollRight         bool
	Up, Down          bool
}
