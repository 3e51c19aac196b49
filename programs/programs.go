package programs

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownProgram = errors.New("unknown program")
	ErrInvalidMesh    = errors.New("invalid mesh")
)

func NumPrograms() int {
	return len(programs)
}

func GetProgram(i int) Program {
	return programs[i]
}

// FindProgram returns the index of the program with the given name.
func FindProgram(name string) (int, error) {
	for i, p := range programs {
		if p.Name == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w %q", ErrUnknownProgram, name)
}

// Names returns the names of the registered programs in registration order.
func Names() []string {
	names := make([]string, len(programs))
	for i, p := range programs {
		names[i] = p.Name
	}
	return names
}

func NewProgram(p Program) error {
	if err := p.Mesh.Validate(); err != nil {
		return fmt.Errorf("program %v: %w", p.Name, err)
	}
	if p.Frame == nil {
		return fmt.Errorf("program %v has no frame function", p.Name)
	}
	if _, err := FindProgram(p.Name); err == nil {
		return fmt.Errorf("program %v registered twice", p.Name)
	}
	programs = append(programs, p)
	return nil
}

func mustRegister(p Program) {
	if err := NewProgram(p); err != nil {
		panic(err)
	}
}

var programs []Program

// Viewport is the size of the drawable area in pixels.
type Viewport struct {
	Width, Height int
}

func (v Viewport) Aspect() float64 {
	return float64(v.Width) / float64(v.Height)
}

// Draw is one glDrawArrays call over the program's mesh.
// Uniforms points to a struct whose fields carry `uniform:"name"` tags.
type Draw struct {
	First, Count int32
	Uniforms     any
}

// FrameFunc turns the scene into the draw calls for one frame.
type FrameFunc func(scene Scene, viewport Viewport) ([]Draw, error)

// StepFunc advances animated or keyboard driven scene state by dt seconds.
// It reports whether the scene changed.
type StepFunc func(scene *Scene, input Input, dt float64) bool

type Program struct {
	Name           string
	VertexShader   string
	FragmentShader string
	Mesh           Mesh
	Defaults       Scene
	Sliders        []Slider

	// Textured programs sample the six texture units bound by the host.
	Textured bool

	// DepthTest and CullFace are the fixed function state the program
	// draws with.
	DepthTest, CullFace bool

	Frame FrameFunc
	Step  StepFunc
}
