package programs

import (
	_ "embed"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/gldemos/transform"
)

//go:embed shaders/color.vert
var colorVertex string

//go:embed shaders/color.frag
var colorFragment string

// scalingDepth is the pixel-space depth range of the scaling projection.
const scalingDepth = 500

type colorUniforms struct {
	Matrix mgl32.Mat4 `uniform:"u_matrix"`
}

func init() {
	positions, _, _ := cube(1)

	mustRegister(Program{
		Name:           "scaling",
		VertexShader:   colorVertex,
		FragmentShader: colorFragment,
		Mesh: Mesh{
			Count: cubeVertexCount,
			Attributes: []Attribute{
				{Name: "a_position", Size: 3, Data: positions},
				{Name: "a_color", Size: 3, Data: faceColors([cubeFaces][3]uint8{
					{255, 182, 193},
					{173, 216, 230},
					{255, 240, 245},
					{144, 238, 144},
					{255, 255, 224},
					{216, 191, 216},
				})},
			},
		},
		Defaults: Scene{
			Translation: mgl64.Vec3{250, 300, 0},
			Rotation:    mgl64.Vec3{mgl64.DegToRad(40), mgl64.DegToRad(25), mgl64.DegToRad(325)},
			Scale:       mgl64.Vec3{100, 100, 100},
		},
		Sliders: []Slider{
			{Label: "Translation X", Field: TranslationX, Min: 0, Max: 1200, Step: 1},
			{Label: "Translation Y", Field: TranslationY, Min: 0, Max: 800, Step: 1},
			{Label: "Translation Z", Field: TranslationZ, Min: 0, Max: 800, Step: 1},
			{Label: "Rotation X", Field: RotationX, Min: 0, Max: 360, Step: 1, Degrees: true},
			{Label: "Rotation Y", Field: RotationY, Min: 0, Max: 360, Step: 1, Degrees: true},
			{Label: "Rotation Z", Field: RotationZ, Min: 0, Max: 360, Step: 1, Degrees: true},
			{Label: "Scale X", Field: ScaleX, Min: -100, Max: 100, Step: 0.01},
			{Label: "Scale Y", Field: ScaleY, Min: -100, Max: 100, Step: 0.01},
			{Label: "Scale Z", Field: ScaleZ, Min: -100, Max: 100, Step: 0.01},
		},
		DepthTest: true,
		Frame:     scalingFrame,
	})
}

func scalingFrame(scene Scene, viewport Viewport) ([]Draw, error) {
	projection, err := transform.Projection(float64(viewport.Width), float64(viewport.Height), scalingDepth)
	if err != nil {
		return nil, fmt.Errorf("scaling: %w", err)
	}

	matrix := transform.Compose(projection, scene.Translation, scene.Rotation, scene.Scale)

	return []Draw{{
		First:    0,
		Count:    cubeVertexCount,
		Uniforms: &colorUniforms{Matrix: matrix.Float32()},
	}}, nil
}
