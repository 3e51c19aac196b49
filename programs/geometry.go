package programs

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Attribute is one per-vertex input of a vertex shader.
type Attribute struct {
	Name string
	Size int32
	Data []float32
}

// Mesh is a non-indexed triangle list.
type Mesh struct {
	Count      int32
	Attributes []Attribute
}

func (m Mesh) Validate() error {
	if m.Count <= 0 || m.Count%3 != 0 {
		return fmt.Errorf("%w: %v vertices is not a triangle list", ErrInvalidMesh, m.Count)
	}
	for _, a := range m.Attributes {
		if a.Size < 1 || a.Size > 4 {
			return fmt.Errorf("%w: attribute %v has %v components", ErrInvalidMesh, a.Name, a.Size)
		}
		if want := int(m.Count * a.Size); len(a.Data) != want {
			return fmt.Errorf("%w: attribute %v has %v values, want %v", ErrInvalidMesh, a.Name, len(a.Data), want)
		}
	}
	return nil
}

// Attribute returns the attribute with the given name.
func (m Mesh) Attribute(name string) (Attribute, bool) {
	for _, a := range m.Attributes {
		if a.Name == name {
			return a, true
		}
	}
	return Attribute{}, false
}

const (
	cubeFaces         = 6
	verticesPerFace   = 6
	cubeVertexCount   = cubeFaces * verticesPerFace
	sphereSlices      = 32
	sphereStacks      = 24
	sphereRadius      = 0.5
	sphereVertexCount = sphereSlices * sphereStacks * 6
)

// cubeFace is the outward normal of a face and two in-plane axes with
// u x v == normal, so corners listed in (u, v) order wind counter-clockwise
// seen from outside.
type cubeFace struct {
	normal, u, v mgl32.Vec3
}

// Faces in front, back, top, bottom, right, left order.
var faces = [cubeFaces]cubeFace{
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
}

// Two triangles per face in (u, v) coordinates.
var faceCorners = [verticesPerFace][2]float32{
	{-1, -1}, {1, -1}, {1, 1},
	{-1, -1}, {1, 1}, {-1, 1},
}

// cube returns positions, normals and texture coordinates of an axis
// aligned cube centred on the origin.
func cube(half float32) (positions, normals, texcoords []float32) {
	positions = make([]float32, 0, cubeVertexCount*3)
	normals = make([]float32, 0, cubeVertexCount*3)
	texcoords = make([]float32, 0, cubeVertexCount*2)

	for _, f := range faces {
		for _, c := range faceCorners {
			p := f.normal.Add(f.u.Mul(c[0])).Add(f.v.Mul(c[1])).Mul(half)
			positions = append(positions, p[0], p[1], p[2])
			normals = append(normals, f.normal[0], f.normal[1], f.normal[2])
			// Images are uploaded top row first, so t grows downwards.
			texcoords = append(texcoords, (c[0]+1)/2, (1-c[1])/2)
		}
	}
	return positions, normals, texcoords
}

// faceColors expands one RGB byte triple per face to normalized per-vertex
// colors.
func faceColors(rgb [cubeFaces][3]uint8) []float32 {
	colors := make([]float32, 0, cubeVertexCount*3)
	for _, c := range rgb {
		for i := 0; i < verticesPerFace; i++ {
			colors = append(colors, float32(c[0])/255, float32(c[1])/255, float32(c[2])/255)
		}
	}
	return colors
}

// sphere returns positions and normals of a UV sphere centred on the origin.
// Triangles wind counter-clockwise seen from outside.
func sphere(radius float32, slices, stacks int) (positions, normals []float32) {
	point := func(slice, stack int) mgl32.Vec3 {
		theta := 2 * math.Pi * float64(slice) / float64(slices)
		phi := math.Pi * float64(stack) / float64(stacks)
		sinTheta, cosTheta := math.Sincos(theta)
		sinPhi, cosPhi := math.Sincos(phi)
		return mgl32.Vec3{
			float32(cosTheta * sinPhi),
			float32(cosPhi),
			float32(sinTheta * sinPhi),
		}
	}

	positions = make([]float32, 0, slices*stacks*18)
	normals = make([]float32, 0, slices*stacks*18)
	add := func(n mgl32.Vec3) {
		p := n.Mul(radius)
		positions = append(positions, p[0], p[1], p[2])
		normals = append(normals, n[0], n[1], n[2])
	}

	for y := 0; y < stacks; y++ {
		for x := 0; x < slices; x++ {
			a, b := point(x, y), point(x+1, y)
			c, d := point(x, y+1), point(x+1, y+1)
			add(a)
			add(b)
			add(c)
			add(b)
			add(d)
			add(c)
		}
	}
	return positions, normals
}
