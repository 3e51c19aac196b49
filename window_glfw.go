package main

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/gldemos/programs"
)

// GLFWWindow shows the demos in a single window without a config window.
// Tab cycles through the demos and P saves a frame.
type GLFWWindow struct {
	*glfw.Window
	renderer Renderer
	textures []*image.NRGBA

	current int
	scene   programs.Scene
	input   programs.Input
	next    bool
	save    bool
}

func NewGLFWWindow(width, height int, program int, textures []*image.NRGBA) (*GLFWWindow, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)
	window, err := glfw.CreateWindow(
		width,
		height,
		appName,
		nil,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow failed: %w", err)
	}

	w := &GLFWWindow{
		Window:   window,
		textures: textures,
	}

	w.MakeContextCurrent()
	glfw.SwapInterval(1)
	if err := initGL(); err != nil {
		w.Destroy()
		return nil, err
	}

	if err := w.load(program); err != nil {
		w.Destroy()
		return nil, err
	}

	w.SetKeyCallback(w.key)
	return w, nil
}

func (w *GLFWWindow) load(i int) error {
	program := programs.GetProgram(i)
	if err := w.renderer.Load(program, w.textures); err != nil {
		return err
	}
	w.current = i
	w.scene = program.Defaults
	w.SetTitle(fmt.Sprintf("%v - %v", appName, program.Name))
	return nil
}

func (w *GLFWWindow) key(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	pressed := action == glfw.Press

	switch key {
	case glfw.KeyF:
		w.input.Forward = pressed
	case glfw.KeyB:
		w.input.Backward = pressed
	case glfw.KeyL:
		w.input.Left = pressed
	case glfw.KeyR:
		w.input.Right = pressed
	case glfw.KeyX:
		w.input.RollRight = pressed
	case glfw.KeyY:
		w.input.RollLeft = pressed
	case glfw.KeyUp:
		w.input.Up = pressed
	case glfw.KeyDown:
		w.input.Down = pressed
	case glfw.KeyTab:
		w.next = w.next || pressed
	case glfw.KeyP:
		w.save = w.save || pressed
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	}
}

// Run draws frames until the window is closed or ctx ends.
func (w *GLFWWindow) Run(ctx context.Context) error {
	defer w.renderer.Delete()

	last := glfw.GetTime()
	for !w.ShouldClose() {
		if ctx.Err() != nil {
			return context.Cause(ctx)
		}
		glfw.PollEvents()

		if w.next {
			w.next = false
			if err := w.load((w.current + 1) % programs.NumPrograms()); err != nil {
				return err
			}
		}

		now := glfw.GetTime()
		if step := programs.GetProgram(w.current).Step; step != nil {
			step(&w.scene, w.input, now-last)
		}
		last = now

		width, height := w.GetFramebufferSize()
		viewport := programs.Viewport{Width: width, Height: height}
		if width == 0 || height == 0 {
			// Minimised.
			glfw.WaitEventsTimeout(0.1)
			continue
		}
		if err := w.renderer.Draw(w.scene, viewport); err != nil {
			return err
		}

		if w.save {
			w.save = false
			img, err := w.renderer.Capture(viewport)
			if err != nil {
				log.Println(err)
			} else {
				path := defaultFrameName(programs.GetProgram(w.current).Name)
				go func() {
					if err := saveFrame(ctx, img, path); err != nil {
						log.Println(err)
					}
				}()
			}
		}

		w.SwapBuffers()
	}
	return nil
}

func glfwMain(ctx context.Context, program int, textures []*image.NRGBA) error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init failed: %w", err)
	}
	defer glfw.Terminate()

	width, height := *widthFlag, *heightFlag
	if width <= 0 || height <= 0 {
		width, height = 1200, 800
	}

	w, err := NewGLFWWindow(width, height, program, textures)
	if err != nil {
		return err
	}
	defer w.Destroy()

	return w.Run(ctx)
}
