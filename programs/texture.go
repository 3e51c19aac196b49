package programs

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/gldemos/transform"
)

//go:embed shaders/texture.vert
var textureVertex string

//go:embed shaders/texture.frag
var textureFragment string

const (
	textureFieldOfView = 60
	textureNear        = 1
	textureFar         = 2000

	// Spin rates in radians per second.
	textureSpinX = -0.4
	textureSpinY = -0.7

	// TextureUnits is the number of texture units a textured program samples.
	TextureUnits = cubeFaces
)

var textureCamera = mgl64.Vec3{0, 0, 3}

type textureUniforms struct {
	Matrix    mgl32.Mat4          `uniform:"u_matrix"`
	Textures  [TextureUnits]int32 `uniform:"u_texture"`
	FaceIndex int32               `uniform:"u_faceIndex"`
}

func init() {
	positions, _, texcoords := cube(0.5)

	mustRegister(Program{
		Name:           "texture",
		VertexShader:   textureVertex,
		FragmentShader: textureFragment,
		Mesh: Mesh{
			Count: cubeVertexCount,
			Attributes: []Attribute{
				{Name: "a_position", Size: 3, Data: positions},
				{Name: "a_texcoord", Size: 2, Data: texcoords},
			},
		},
		Defaults: Scene{Scale: mgl64.Vec3{1, 1, 1}},
		Sliders: []Slider{
			{Label: "Rotation X", Field: RotationX, Min: -360, Max: 360, Step: 1, Degrees: true},
			{Label: "Rotation Y", Field: RotationY, Min: -360, Max: 360, Step: 1, Degrees: true},
		},
		Textured:  true,
		DepthTest: true,
		CullFace:  true,
		Frame:     textureFrame,
		Step:      textureStep,
	})
}

func textureFrame(scene Scene, viewport Viewport) ([]Draw, error) {
	projection, err := transform.Perspective(mgl64.DegToRad(textureFieldOfView), viewport.Aspect(), textureNear, textureFar)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}

	camera, err := transform.LookAt(textureCamera, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0})
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	view, err := transform.Inverse(camera)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}

	matrix := transform.Multiply(projection, view).
		XRotate(scene.Rotation[0]).
		YRotate(scene.Rotation[1]).
		Float32()

	var units [TextureUnits]int32
	for i := range units {
		units[i] = int32(i)
	}

	draws := make([]Draw, cubeFaces)
	for face := range draws {
		draws[face] = Draw{
			First: int32(face * verticesPerFace),
			Count: verticesPerFace,
			Uniforms: &textureUniforms{
				Matrix:    matrix,
				Textures:  units,
				FaceIndex: int32(face),
			},
		}
	}
	return draws, nil
}

func textureStep(scene *Scene, input Input, dt float64) bool {
	if dt <= 0 {
		return false
	}
	scene.Rotation[0] += textureSpinX * dt
	scene.Rotation[1] += textureSpinY * dt
	return true
}
