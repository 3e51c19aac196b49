package main

import (
	"errors"
	"fmt"
	"image"
	"log"
	"reflect"
	"runtime"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stewi1014/gldemos/programs"
)

var ErrNotLoaded = errors.New("no program loaded")

// Renderer owns the GL objects of the running demo. All methods must be
// called with the GL context current.
type Renderer struct {
	program  programs.Program
	loaded   bool
	glProg   uint32
	vao      uint32
	vbos     []uint32
	textures []uint32

	uniformLocations map[string]int32
}

func glDebugMessage(
	source,
	gltype,
	id,
	severity uint32,
	length int32,
	message string,
	user unsafe.Pointer,
) {
	severityStr := "unknown"
	switch severity {
	case gl.DEBUG_SEVERITY_HIGH:
		severityStr = "high"
	case gl.DEBUG_SEVERITY_LOW:
		severityStr = "low"
	case gl.DEBUG_SEVERITY_MEDIUM:
		severityStr = "medium"
	case gl.DEBUG_SEVERITY_NOTIFICATION:
		severityStr = "notification"
	}

	sourceStr := "unknownSource"
	switch source {
	case gl.DEBUG_SOURCE_API:
		sourceStr = "api"
	case gl.DEBUG_SOURCE_APPLICATION:
		sourceStr = "application"
	case gl.DEBUG_SOURCE_OTHER:
		sourceStr = "other"
	case gl.DEBUG_SOURCE_SHADER_COMPILER:
		sourceStr = "shaderCompiler"
	case gl.DEBUG_SOURCE_THIRD_PARTY:
		sourceStr = "thirdParty"
	case gl.DEBUG_SOURCE_WINDOW_SYSTEM:
		sourceStr = "windowSystem"
	}

	typeStr := "unknownType"
	switch gltype {
	case gl.DEBUG_TYPE_ERROR:
		typeStr = "error"
	case gl.DEBUG_TYPE_DEPRECATED_BEHAVIOR:
		typeStr = "deprecatedBehavior"
	case gl.DEBUG_TYPE_OTHER:
		typeStr = "other"
	case gl.DEBUG_TYPE_PERFORMANCE:
		typeStr = "performance"
	case gl.DEBUG_TYPE_PORTABILITY:
		typeStr = "portability"
	case gl.DEBUG_TYPE_UNDEFINED_BEHAVIOR:
		typeStr = "undefinedBehavior"
	}

	log.Printf("%v(%v): %v; %v\n", sourceStr, severityStr, typeStr, message)
}

// initGL loads GL function pointers for the current context.
func initGL() error {
	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init: %w", err)
	}
	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	if *debugFlag {
		gl.DebugMessageCallback(glDebugMessage, nil)
		gl.Enable(gl.DEBUG_OUTPUT)
	}
	return nil
}

// Load compiles program, uploads its mesh and, for textured programs, one
// texture per unit. Missing textures repeat the last one given, or the
// placeholder when none are.
func (r *Renderer) Load(program programs.Program, textures []*image.NRGBA) error {
	r.Delete()

	vertexShader, err := compileShader(program.VertexShader+"\x00", gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("%v: %w", program.Name, err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(program.FragmentShader+"\x00", gl.FRAGMENT_SHADER)
	if err != nil {
		return fmt.Errorf("%v: %w", program.Name, err)
	}
	defer gl.DeleteShader(fragmentShader)

	r.glProg = gl.CreateProgram()
	gl.AttachShader(r.glProg, vertexShader)
	gl.AttachShader(r.glProg, fragmentShader)
	gl.BindFragDataLocation(r.glProg, 0, gl.Str("outputColor\x00"))
	gl.LinkProgram(r.glProg)

	var status int32
	gl.GetProgramiv(r.glProg, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(r.glProg, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetProgramInfoLog(r.glProg, l, nil, gl.Str(log))
		gl.DeleteProgram(r.glProg)
		r.glProg = 0
		return fmt.Errorf("%v: failed to link program: %v", program.Name, log)
	}
	gl.UseProgram(r.glProg)

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)

	r.vbos = make([]uint32, len(program.Mesh.Attributes))
	if len(r.vbos) > 0 {
		gl.GenBuffers(int32(len(r.vbos)), &r.vbos[0])
	}
	for i, a := range program.Mesh.Attributes {
		gl.BindBuffer(gl.ARRAY_BUFFER, r.vbos[i])
		gl.BufferData(gl.ARRAY_BUFFER, len(a.Data)*4, gl.Ptr(a.Data), gl.STATIC_DRAW)

		loc := gl.GetAttribLocation(r.glProg, gl.Str(a.Name+"\x00"))
		if loc < 0 {
			// Compilers drop attributes a shader never reads.
			log.Printf("%v: attribute %v is unused", program.Name, a.Name)
			continue
		}
		gl.EnableVertexAttribArray(uint32(loc))
		gl.VertexAttribPointerWithOffset(uint32(loc), a.Size, gl.FLOAT, false, a.Size*4, 0)
	}

	if program.Textured {
		if len(textures) == 0 {
			textures = []*image.NRGBA{programs.PlaceholderTexture()}
		}
		r.textures = make([]uint32, programs.TextureUnits)
		gl.GenTextures(int32(len(r.textures)), &r.textures[0])
		for unit, tex := range r.textures {
			img := textures[min(unit, len(textures)-1)]
			gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
			gl.BindTexture(gl.TEXTURE_2D, tex)
			uploadTexture(img)
		}
	}

	r.uniformLocations = make(map[string]int32)
	r.program = program
	r.loaded = true
	return nil
}

func uploadTexture(img *image.NRGBA) {
	size := img.Bounds().Size()
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D, 0, gl.RGBA,
		int32(size.X), int32(size.Y), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
}

// Draw renders scene into the bound framebuffer.
func (r *Renderer) Draw(scene programs.Scene, viewport programs.Viewport) error {
	if !r.loaded {
		return ErrNotLoaded
	}

	draws, err := r.program.Frame(scene, viewport)
	if err != nil {
		return err
	}

	gl.Viewport(0, 0, int32(viewport.Width), int32(viewport.Height))
	setCapability(gl.DEPTH_TEST, r.program.DepthTest)
	setCapability(gl.CULL_FACE, r.program.CullFace)

	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.glProg)
	gl.BindVertexArray(r.vao)
	for unit, tex := range r.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}

	for _, d := range draws {
		r.loadUniforms(d.Uniforms)
		gl.DrawArrays(gl.TRIANGLES, d.First, d.Count)
	}
	return nil
}

func setCapability(capability uint32, enabled bool) {
	if enabled {
		gl.Enable(capability)
	} else {
		gl.Disable(capability)
	}
}

// Capture reads back the bound framebuffer.
func (r *Renderer) Capture(viewport programs.Viewport) (*image.NRGBA, error) {
	pix := make([]uint8, viewport.Width*viewport.Height*4)
	if len(pix) == 0 {
		return nil, fmt.Errorf("capture: %w", programs.ErrFramebufferSize)
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(viewport.Width), int32(viewport.Height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
	return programs.FramebufferImage(pix, viewport.Width, viewport.Height)
}

// Delete frees every GL object held by r.
func (r *Renderer) Delete() {
	if len(r.textures) > 0 {
		gl.DeleteTextures(int32(len(r.textures)), &r.textures[0])
		r.textures = nil
	}
	if len(r.vbos) > 0 {
		gl.DeleteBuffers(int32(len(r.vbos)), &r.vbos[0])
		r.vbos = nil
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
		r.vao = 0
	}
	if r.glProg != 0 {
		gl.DeleteProgram(r.glProg)
		r.glProg = 0
	}
	r.loaded = false
}

func (r *Renderer) uniformLocation(name string) int32 {
	loc, ok := r.uniformLocations[name]
	if !ok {
		loc = gl.GetUniformLocation(r.glProg, gl.Str(name+"\x00"))
		r.uniformLocations[name] = loc
	}
	return loc
}

// loadUniforms uploads every field of the struct pointed to by uniforms to
// the uniform named by its `uniform` tag.
func (r *Renderer) loadUniforms(uniforms any) {
	v := reflect.ValueOf(uniforms)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		log.Printf("uniforms must be a pointer to a struct, not %T", uniforms)
		return
	}
	v = v.Elem()

	for i := 0; i < v.NumField(); i++ {
		name := v.Type().Field(i).Tag.Get("uniform")
		if name == "" {
			continue
		}

		f := v.Field(i)
		ptr := f.Addr().UnsafePointer()
		loc := r.uniformLocation(name)

		count := int32(1)

	SwitchElem:
		switch f.Type() {
		case reflect.TypeOf(mgl32.Vec2{}):
			gl.Uniform2fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl32.Vec3{}):
			gl.Uniform3fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl32.Vec4{}):
			gl.Uniform4fv(loc, count, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl64.Vec2{}):
			gl.Uniform2dv(loc, count, (*float64)(ptr))
			continue
		case reflect.TypeOf(mgl64.Vec3{}):
			gl.Uniform3dv(loc, count, (*float64)(ptr))
			continue
		case reflect.TypeOf(mgl64.Vec4{}):
			gl.Uniform4dv(loc, count, (*float64)(ptr))
			continue
		case reflect.TypeOf(mgl32.Mat3{}):
			gl.UniformMatrix3fv(loc, count, false, (*float32)(ptr))
			continue
		case reflect.TypeOf(mgl32.Mat4{}):
			gl.UniformMatrix4fv(loc, count, false, (*float32)(ptr))
			continue
		case reflect.TypeOf(int32(0)):
			gl.Uniform1iv(loc, count, (*int32)(ptr))
			continue
		case reflect.TypeOf(uint32(0)):
			gl.Uniform1uiv(loc, count, (*uint32)(ptr))
			continue
		case reflect.TypeOf(float32(0)):
			gl.Uniform1fv(loc, count, (*float32)(ptr))
			continue
		}

		if f.Kind() == reflect.Array && f.Len() > 0 {
			count = int32(f.Len())
			f = f.Index(0)
			goto SwitchElem
		}

		log.Printf("unsupported uniform type %v", f.Type())
	}
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source)
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)

		log := strings.Repeat("\x00", int(l+1))
		gl.GetShaderInfoLog(shader, l, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("shader\n\"\n%v\n\"\nfailed to compile: %v", source, log)
	}

	return shader, nil
}
