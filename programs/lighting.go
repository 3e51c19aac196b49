package programs

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/gldemos/transform"
)

//go:embed shaders/lighting.vert
var lightingVertex string

//go:embed shaders/lighting.frag
var lightingFragment string

const (
	lightingFieldOfView = 75
	lightingNear        = 1
	lightingFar         = 2000
	lightingCubeSize    = 10
	lightingShininess   = 150
)

var (
	lightingCamera   = mgl64.Vec3{15, 17, 25}
	lightingPosition = mgl64.Vec3{40, 60, 120}
	lightingTarget   = mgl64.Vec3{0, 0, 0}
	lightingUp       = mgl64.Vec3{0, 1, 0}

	lightPink   = mgl32.Vec4{0.9, 0.7, 0.9, 1}
	softPurple  = mgl32.Vec4{0.6, 0.4, 0.8, 1}
	lightColors = [cubeFaces]mgl32.Vec4{lightPink, softPurple, lightPink, softPurple, softPurple, lightPink}
)

type lightingUniforms struct {
	WorldViewProjection   mgl32.Mat4            `uniform:"u_worldViewProjection"`
	WorldInverseTranspose mgl32.Mat4            `uniform:"u_worldInverseTranspose"`
	World                 mgl32.Mat4            `uniform:"u_world"`
	FaceColors            [cubeFaces]mgl32.Vec4 `uniform:"u_faceColors"`
	LightWorldPosition    mgl32.Vec3            `uniform:"u_lightWorldPosition"`
	ViewWorldPosition     mgl32.Vec3            `uniform:"u_viewWorldPosition"`
	Shininess             float32               `uniform:"u_shininess"`
	LightDirection        mgl32.Vec3            `uniform:"u_lightDirection"`
	Limit                 float32               `uniform:"u_limit"`
}

func init() {
	positions, normals, _ := cube(lightingCubeSize)

	mustRegister(Program{
		Name:           "lighting",
		VertexShader:   lightingVertex,
		FragmentShader: lightingFragment,
		Mesh: Mesh{
			Count: cubeVertexCount,
			Attributes: []Attribute{
				{Name: "a_position", Size: 3, Data: positions},
				{Name: "a_normal", Size: 3, Data: normals},
			},
		},
		Defaults: Scene{
			Scale: mgl64.Vec3{1, 1, 1},
			Limit: mgl64.DegToRad(10),
		},
		Sliders: []Slider{
			{Label: "Limit", Field: LightLimit, Min: 0, Max: 180, Step: 1, Degrees: true},
			{Label: "Light Rotation X", Field: LightX, Min: -2, Max: 2, Step: 0.001},
			{Label: "Light Rotation Y", Field: LightY, Min: -2, Max: 2, Step: 0.001},
			{Label: "Cube Rotation", Field: RotationY, Min: -360, Max: 360, Step: 1, Degrees: true},
		},
		DepthTest: true,
		CullFace:  true,
		Frame:     lightingFrame,
	})
}

// spotDirection points the spot light from its position at the target and
// then swings it by the scene's light rotation.
func spotDirection(light mgl64.Vec2) (mgl64.Vec3, error) {
	m, err := transform.LookAt(lightingPosition, lightingTarget, lightingUp)
	if err != nil {
		return mgl64.Vec3{}, err
	}
	m = transform.Multiply(transform.XRotation(light[0]), m)
	m = transform.Multiply(transform.YRotation(light[1]), m)
	return mgl64.Vec3{-m[8], -m[9], -m[10]}, nil
}

func lightingFrame(scene Scene, viewport Viewport) ([]Draw, error) {
	projection, err := transform.Perspective(mgl64.DegToRad(lightingFieldOfView), viewport.Aspect(), lightingNear, lightingFar)
	if err != nil {
		return nil, fmt.Errorf("lighting: %w", err)
	}

	camera, err := transform.LookAt(lightingCamera, lightingTarget, lightingUp)
	if err != nil {
		return nil, fmt.Errorf("lighting: %w", err)
	}
	view, err := transform.Inverse(camera)
	if err != nil {
		return nil, fmt.Errorf("lighting: %w", err)
	}
	viewProjection := transform.Multiply(projection, view)

	world := transform.YRotation(scene.Rotation[1])
	normals, err := transform.NormalMatrix(world)
	if err != nil {
		return nil, fmt.Errorf("lighting: %w", err)
	}

	direction, err := spotDirection(scene.Light)
	if err != nil {
		return nil, fmt.Errorf("lighting: %w", err)
	}

	return []Draw{{
		First: 0,
		Count: cubeVertexCount,
		Uniforms: &lightingUniforms{
			WorldViewProjection:   transform.Multiply(viewProjection, world).Float32(),
			WorldInverseTranspose: normals.Float32(),
			World:                 world.Float32(),
			FaceColors:            lightColors,
			LightWorldPosition:    vec3f(lightingPosition),
			ViewWorldPosition:     vec3f(lightingCamera),
			Shininess:             lightingShininess,
			LightDirection:        vec3f(direction),
			Limit:                 float32(math.Cos(scene.Limit)),
		},
	}}, nil
}
