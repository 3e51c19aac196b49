package programs

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/gldemos/transform"
)

func program(t *testing.T, name string) Program {
	t.Helper()
	i, err := FindProgram(name)
	if err != nil {
		t.Fatal(err)
	}
	return GetProgram(i)
}

func TestScalingFrame(t *testing.T) {
	p := program(t, "scaling")
	viewport := Viewport{Width: 400, Height: 300}

	draws, err := p.Frame(p.Defaults, viewport)
	if err != nil {
		t.Fatal(err)
	}
	if len(draws) != 1 || draws[0].Count != cubeVertexCount {
		t.Fatalf("draws = %+v, want one draw of the whole cube", draws)
	}

	projection, err := transform.Projection(400, 300, scalingDepth)
	if err != nil {
		t.Fatal(err)
	}
	want := projection.
		Translate(250, 300, 0).
		XRotate(mgl64.DegToRad(40)).
		YRotate(mgl64.DegToRad(25)).
		ZRotate(mgl64.DegToRad(325)).
		Scale(100, 100, 100)

	u, ok := draws[0].Uniforms.(*colorUniforms)
	if !ok {
		t.Fatalf("uniforms are %T", draws[0].Uniforms)
	}
	if u.Matrix != want.Float32() {
		t.Errorf("u_matrix = %v, want %v", u.Matrix, want.Float32())
	}
}

func TestCameraFrame(t *testing.T) {
	p := program(t, "camera")
	viewport := Viewport{Width: 640, Height: 480}

	draws, err := p.Frame(p.Defaults, viewport)
	if err != nil {
		t.Fatal(err)
	}
	if len(draws) != 26 {
		t.Fatalf("len(draws) = %d, want 26", len(draws))
	}

	projection, err := transform.Perspective(mgl64.DegToRad(90), 640.0/480, 0.1, 100)
	if err != nil {
		t.Fatal(err)
	}

	// The first sphere sits at (-3, -3, -3) and the camera is at the origin.
	first := draws[0].Uniforms.(*cameraUniforms)
	want := projection.Translate(-3, -3, -3).Float32()
	if !first.WorldViewProjection.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("u_worldViewProjection = %v, want %v", first.WorldViewProjection, want)
	}
	if c := (mgl32.Vec4{1.0 / 3, 1.0 / 3, 1.0 / 3, 1}); !first.Color.ApproxEqualThreshold(c, 1e-6) {
		t.Errorf("u_color = %v, want %v", first.Color, c)
	}
	if l := first.LightDirection.Len(); math.Abs(float64(l)-1) > 1e-6 {
		t.Errorf("u_lightDir has length %v, want 1", l)
	}

	// Pure translations leave normals untouched.
	for i, d := range draws {
		u := d.Uniforms.(*cameraUniforms)
		normals := u.WorldInverseTranspose
		for row := 0; row < 3; row++ {
			for col := 0; col < 3; col++ {
				want := float32(0)
				if row == col {
					want = 1
				}
				if normals[row*4+col] != want {
					t.Errorf("draw %d u_worldInverseTranspose = %v", i, normals)
				}
			}
		}
	}
}

func TestCameraFrameFollowsCamera(t *testing.T) {
	p := program(t, "camera")
	scene := p.Defaults
	scene.Translation = mgl64.Vec3{0, 0, 9}

	draws, err := p.Frame(scene, Viewport{Width: 100, Height: 100})
	if err != nil {
		t.Fatal(err)
	}

	// The sphere at (0, 0, 3) is straight ahead of a camera at z = 9 looking
	// down -Z, so it projects onto the centre of the screen.
	for _, d := range draws {
		u := d.Uniforms.(*cameraUniforms)
		if u.Color != (mgl32.Vec4{2.0 / 3, 2.0 / 3, 1, 1}) {
			continue
		}
		clip := u.WorldViewProjection.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
		if math.Abs(float64(clip[0]/clip[3])) > 1e-5 || math.Abs(float64(clip[1]/clip[3])) > 1e-5 || clip[3] <= 0 {
			t.Errorf("sphere ahead projects to %v", clip)
		}
		return
	}
	t.Error("no sphere at (0, 0, 3)")
}

func TestCameraStep(t *testing.T) {
	tests := []struct {
		name    string
		scene   Scene
		input   Input
		changed bool
		want    Scene
	}{
		{
			name:  "idle",
			scene: Scene{Translation: mgl64.Vec3{1, 2, 3}},
			want:  Scene{Translation: mgl64.Vec3{1, 2, 3}},
		},
		{
			name:    "forward",
			input:   Input{Forward: true},
			changed: true,
			want:    Scene{Translation: mgl64.Vec3{0, 0, -0.5}},
		},
		{
			name:    "backward",
			input:   Input{Backward: true},
			changed: true,
			want:    Scene{Translation: mgl64.Vec3{0, 0, 0.5}},
		},
		{
			name:  "forward and backward cancel",
			input: Input{Forward: true, Backward: true},
		},
		{
			name:    "forward after turning right",
			scene:   Scene{Rotation: mgl64.Vec3{0, math.Pi / 2, 0}},
			input:   Input{Forward: true},
			changed: true,
			want:    Scene{Translation: mgl64.Vec3{0.5, 0, 0}, Rotation: mgl64.Vec3{0, math.Pi / 2, 0}},
		},
		{
			name:    "turn right",
			input:   Input{Right: true},
			changed: true,
			want:    Scene{Rotation: mgl64.Vec3{0, turnSpeed * 0.5, 0}},
		},
		{
			name:    "roll left",
			input:   Input{RollLeft: true},
			changed: true,
			want:    Scene{Rotation: mgl64.Vec3{0, 0, -turnSpeed * 0.5}},
		},
		{
			name:    "pitch up",
			input:   Input{Up: true},
			changed: true,
			want:    Scene{Rotation: mgl64.Vec3{turnSpeed * 0.5, 0, 0}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scene := tt.scene
			if changed := cameraStep(&scene, tt.input, 0.5); changed != tt.changed {
				t.Errorf("cameraStep() = %v, want %v", changed, tt.changed)
			}
			for i := 0; i < 3; i++ {
				if math.Abs(scene.Translation[i]-tt.want.Translation[i]) > 1e-9 {
					t.Errorf("translation = %v, want %v", scene.Translation, tt.want.Translation)
					break
				}
			}
			if !scene.Rotation.ApproxEqualThreshold(tt.want.Rotation, 1e-9) && scene.Rotation != tt.want.Rotation {
				t.Errorf("rotation = %v, want %v", scene.Rotation, tt.want.Rotation)
			}
		})
	}
}

func TestLightingFrame(t *testing.T) {
	p := program(t, "lighting")
	scene := p.Defaults
	scene.Rotation[1] = math.Pi / 2

	draws, err := p.Frame(scene, Viewport{Width: 800, Height: 600})
	if err != nil {
		t.Fatal(err)
	}
	if len(draws) != 1 {
		t.Fatalf("len(draws) = %d, want 1", len(draws))
	}
	u := draws[0].Uniforms.(*lightingUniforms)

	if want := transform.YRotation(math.Pi / 2).Float32(); u.World != want {
		t.Errorf("u_world = %v, want %v", u.World, want)
	}
	// A rotation is its own inverse-transpose.
	if !u.WorldInverseTranspose.ApproxEqualThreshold(u.World, 1e-6) {
		t.Errorf("u_worldInverseTranspose = %v, want %v", u.WorldInverseTranspose, u.World)
	}

	// Unrotated, the spot light points from (40, 60, 120) at the origin.
	if want := (mgl32.Vec3{-2.0 / 7, -3.0 / 7, -6.0 / 7}); !u.LightDirection.ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("u_lightDirection = %v, want %v", u.LightDirection, want)
	}
	if want := float32(math.Cos(mgl64.DegToRad(10))); math.Abs(float64(u.Limit-want)) > 1e-7 {
		t.Errorf("u_limit = %v, want %v", u.Limit, want)
	}
	if u.Shininess != lightingShininess {
		t.Errorf("u_shininess = %v, want %v", u.Shininess, lightingShininess)
	}
	if u.FaceColors[0] != lightPink || u.FaceColors[1] != softPurple {
		t.Errorf("u_faceColors = %v", u.FaceColors)
	}
}

func TestSpotDirectionRotates(t *testing.T) {
	still, err := spotDirection(mgl64.Vec2{})
	if err != nil {
		t.Fatal(err)
	}
	swung, err := spotDirection(mgl64.Vec2{0, 0.5})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(swung.Len()-1) > 1e-9 {
		t.Errorf("swung direction has length %v", swung.Len())
	}
	// A swing about Y keeps the vertical component.
	if math.Abs(swung[1]-still[1]) > 1e-9 {
		t.Errorf("swung y = %v, want %v", swung[1], still[1])
	}
	if math.Abs(swung[0]-still[0]) < 1e-3 {
		t.Errorf("swung direction %v did not move from %v", swung, still)
	}
}

func TestTextureFrame(t *testing.T) {
	p := program(t, "texture")
	if !p.Textured {
		t.Error("texture program is not textured")
	}

	draws, err := p.Frame(p.Defaults, Viewport{Width: 300, Height: 300})
	if err != nil {
		t.Fatal(err)
	}
	if len(draws) != cubeFaces {
		t.Fatalf("len(draws) = %d, want %d", len(draws), cubeFaces)
	}

	projection, err := transform.Perspective(mgl64.DegToRad(60), 1, 1, 2000)
	if err != nil {
		t.Fatal(err)
	}
	want := projection.Translate(0, 0, -3).Float32()

	for face, d := range draws {
		u := d.Uniforms.(*textureUniforms)
		if d.First != int32(face*verticesPerFace) || d.Count != verticesPerFace {
			t.Errorf("face %d draws [%d, %d)", face, d.First, d.First+d.Count)
		}
		if u.FaceIndex != int32(face) {
			t.Errorf("face %d u_faceIndex = %d", face, u.FaceIndex)
		}
		if u.Textures != [TextureUnits]int32{0, 1, 2, 3, 4, 5} {
			t.Errorf("face %d u_texture = %v", face, u.Textures)
		}
		if !u.Matrix.ApproxEqualThreshold(want, 1e-6) {
			t.Errorf("face %d u_matrix = %v, want %v", face, u.Matrix, want)
		}
	}
}

func TestTextureStep(t *testing.T) {
	scene := Scene{}
	if !textureStep(&scene, Input{}, 2) {
		t.Error("textureStep() = false, want true")
	}
	if want := (mgl64.Vec3{-0.8, -1.4, 0}); !scene.Rotation.ApproxEqualThreshold(want, 1e-12) {
		t.Errorf("rotation = %v, want %v", scene.Rotation, want)
	}

	if textureStep(&scene, Input{}, 0) {
		t.Error("textureStep(dt = 0) = true, want false")
	}
}
