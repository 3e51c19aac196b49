package programs

import (
	_ "embed"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/gldemos/transform"
)

//go:embed shaders/camera.vert
var cameraVertex string

//go:embed shaders/camera.frag
var cameraFragment string

const (
	cameraFieldOfView = 90
	cameraNear        = 0.1
	cameraFar         = 100

	// flySpeed is in units per second, turnSpeed in radians per second.
	flySpeed  = 1
	turnSpeed = math.Pi / 2

	// latticeSpacing separates the spheres of the 3x3x3 lattice.
	latticeSpacing = 3
)

var cameraLightDirection = mgl64.Vec3{1, 2, 3}.Normalize()

type cameraUniforms struct {
	WorldViewProjection   mgl32.Mat4 `uniform:"u_worldViewProjection"`
	WorldInverseTranspose mgl32.Mat4 `uniform:"u_worldInverseTranspose"`
	Color                 mgl32.Vec4 `uniform:"u_color"`
	LightDirection        mgl32.Vec3 `uniform:"u_lightDir"`
}

func init() {
	positions, normals := sphere(sphereRadius, sphereSlices, sphereStacks)

	mustRegister(Program{
		Name:           "camera",
		VertexShader:   cameraVertex,
		FragmentShader: cameraFragment,
		Mesh: Mesh{
			Count: sphereVertexCount,
			Attributes: []Attribute{
				{Name: "a_position", Size: 3, Data: positions},
				{Name: "a_normal", Size: 3, Data: normals},
			},
		},
		Defaults: Scene{Scale: mgl64.Vec3{1, 1, 1}},
		Sliders: []Slider{
			{Label: "Position X", Field: TranslationX, Min: -10, Max: 10, Step: 0.1},
			{Label: "Position Y", Field: TranslationY, Min: -10, Max: 10, Step: 0.1},
			{Label: "Position Z", Field: TranslationZ, Min: -10, Max: 10, Step: 0.1},
			{Label: "Elevation", Field: RotationX, Min: -360, Max: 360, Step: 1, Degrees: true},
			{Label: "Heading", Field: RotationY, Min: -360, Max: 360, Step: 1, Degrees: true},
			{Label: "Roll", Field: RotationZ, Min: -360, Max: 360, Step: 1, Degrees: true},
		},
		DepthTest: true,
		CullFace:  true,
		Frame:     cameraFrame,
		Step:      cameraStep,
	})
}

// flyingCamera returns the world matrix of the camera: positioned at the
// scene translation, pitched by RotationX, turned by RotationY and rolled by
// RotationZ. A positive heading turns right.
func flyingCamera(scene Scene) transform.Mat4 {
	p, r := scene.Translation, scene.Rotation
	return transform.Identity().
		Translate(p[0], p[1], p[2]).
		XRotate(r[0]).
		YRotate(-r[1]).
		ZRotate(r[2])
}

func cameraFrame(scene Scene, viewport Viewport) ([]Draw, error) {
	projection, err := transform.Perspective(mgl64.DegToRad(cameraFieldOfView), viewport.Aspect(), cameraNear, cameraFar)
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	view, err := transform.Inverse(flyingCamera(scene))
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}
	viewProjection := transform.Multiply(projection, view)

	draws := make([]Draw, 0, 26)
	for z := -1; z <= 1; z++ {
		for y := -1; y <= 1; y++ {
			for x := -1; x <= 1; x++ {
				if x == 0 && y == 0 && z == 0 {
					continue
				}

				world := transform.Translation(float64(x*latticeSpacing), float64(y*latticeSpacing), float64(z*latticeSpacing))
				normals, err := transform.NormalMatrix(world)
				if err != nil {
					return nil, fmt.Errorf("camera: %w", err)
				}

				draws = append(draws, Draw{
					First: 0,
					Count: sphereVertexCount,
					Uniforms: &cameraUniforms{
						WorldViewProjection:   transform.Multiply(viewProjection, world).Float32(),
						WorldInverseTranspose: normals.Float32(),
						Color: mgl32.Vec4{
							float32(x+2) / 3,
							float32(y+2) / 3,
							float32(z+2) / 3,
							1,
						},
						LightDirection: vec3f(cameraLightDirection),
					},
				})
			}
		}
	}
	return draws, nil
}

// cameraStep flies the camera along its own Z axis and turns it about its
// local axes.
func cameraStep(scene *Scene, input Input, dt float64) bool {
	changed := false

	if dir := axis(input.Forward, input.Backward); dir != 0 {
		camera := flyingCamera(*scene)
		step := dt * flySpeed * dir
		scene.Translation[0] -= camera[8] * step
		scene.Translation[1] -= camera[9] * step
		scene.Translation[2] -= camera[10] * step
		changed = true
	}
	if dir := axis(input.Right, input.Left); dir != 0 {
		scene.Rotation[1] += dt * turnSpeed * dir
		changed = true
	}
	if dir := axis(input.RollRight, input.RollLeft); dir != 0 {
		scene.Rotation[2] += dt * turnSpeed * dir
		changed = true
	}
	if dir := axis(input.Up, input.Down); dir != 0 {
		scene.Rotation[0] += dt * turnSpeed * dir
		changed = true
	}

	return changed
}

// axis returns 1 when only positive is held, -1 when only negative is held
// and 0 otherwise.
func axis(positive, negative bool) float64 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	}
	return 0
}

func vec3f(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v[0]), float32(v[1]), float32(v[2])}
}
