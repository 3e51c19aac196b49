package main

import (
	"context"
	"fmt"
	"image"
	"log"
	"net"
	"reflect"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldemos/programs"
)

// frameInterval paces Step for animated demos.
const frameInterval = time.Second / 60

func NewRenderWindow(
	app *gtk.Application,
	conn net.Conn,
	ctx context.Context,
	quit context.CancelCauseFunc,
	program int,
	textures []*image.NRGBA,
) *RenderWindow {
	var err error
	w := &RenderWindow{
		ctx:      ctx,
		quit:     quit,
		textures: textures,
		current:  program,
		scene:    programs.GetProgram(program).Defaults,
		msg:      newMessenger(conn, quit),
	}

	go w.msg.run(ctx.Done())

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(getWindowSize())

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.SetHasDepthBuffer(true)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)
	w.gla.Connect("resize", w.resize)

	w.SetEvents(int(gdk.KEY_PRESS_MASK) | int(gdk.KEY_RELEASE_MASK))
	w.Connect("key-press-event", func(win *gtk.ApplicationWindow, event *gdk.Event) bool {
		return w.key(event, true)
	})
	w.Connect("key-release-event", func(win *gtk.ApplicationWindow, event *gdk.Event) bool {
		return w.key(event, false)
	})

	w.Add(w.gla)
	w.ShowAll()

	w.lastStep = time.Now()
	glib.TimeoutAdd(uint(frameInterval/time.Millisecond), w.tick)

	go w.msg.receive(w.handleMessage)

	return w
}

// getWindowSize sizes the window to 60% of the primary monitor, or
// -width by -height when those are given.
func getWindowSize() (width, height int) {
	width, height = *widthFlag, *heightFlag
	if width > 0 && height > 0 {
		return
	}
	width, height = 1200, 800

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil {
		return
	}

	width = int(float32(monitor.GetGeometry().GetWidth()) * .6)
	height = int(float32(monitor.GetGeometry().GetHeight()) * .6)
	return
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	gla      *gtk.GLArea
	renderer Renderer
	viewport programs.Viewport
	textures []*image.NRGBA

	ctx  context.Context
	quit context.CancelCauseFunc
	msg  *messenger

	current  int
	scene    programs.Scene
	input    programs.Input
	lastStep time.Time

	// pendingSave is written after the next frame is drawn.
	pendingSave string
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	if err := initGL(); err != nil {
		w.quit(err)
		return
	}

	if err := w.load(w.current, w.scene); err != nil {
		w.quit(err)
	}
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) bool {
	if err := w.renderer.Draw(w.scene, w.viewport); err != nil {
		log.Println(err)
		return true
	}

	if w.pendingSave != "" {
		path := w.pendingSave
		w.pendingSave = ""
		img, err := w.renderer.Capture(w.viewport)
		go WrapErrorDialog(w.ApplicationWindow, func() error {
			if err != nil {
				return err
			}
			return saveFrame(w.ctx, img, path)
		})()
	}
	return true
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	w.renderer.Delete()
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	w.viewport = programs.Viewport{Width: width, Height: height}
}

// load switches to program i, starting from scene, and tells the config
// window.
func (w *RenderWindow) load(i int, scene programs.Scene) error {
	w.gla.MakeCurrent()
	if err := w.renderer.Load(programs.GetProgram(i), w.textures); err != nil {
		return err
	}
	w.current = i
	w.scene = scene
	w.SetTitle(fmt.Sprintf("%v - %v", appName, programs.GetProgram(i).Name))
	w.msg.Send(&Select{Program: i, Scene: scene})
	w.gla.QueueRender()
	return nil
}

// tick advances the current demo by the time since the last tick.
func (w *RenderWindow) tick() bool {
	if w.ctx.Err() != nil {
		return false
	}

	now := time.Now()
	dt := now.Sub(w.lastStep).Seconds()
	w.lastStep = now

	step := programs.GetProgram(w.current).Step
	if step == nil {
		return true
	}
	if step(&w.scene, w.input, dt) {
		scene := w.scene
		w.msg.Send(&scene)
		w.gla.QueueRender()
	}
	return true
}

// key maps the flying keys onto the demo input.
func (w *RenderWindow) key(event *gdk.Event, pressed bool) bool {
	switch gdk.EventKeyNewFromEvent(event).KeyVal() {
	case gdk.KEY_f, gdk.KEY_F:
		w.input.Forward = pressed
	case gdk.KEY_b, gdk.KEY_B:
		w.input.Backward = pressed
	case gdk.KEY_l, gdk.KEY_L:
		w.input.Left = pressed
	case gdk.KEY_r, gdk.KEY_R:
		w.input.Right = pressed
	case gdk.KEY_x, gdk.KEY_X:
		w.input.RollRight = pressed
	case gdk.KEY_y, gdk.KEY_Y:
		w.input.RollLeft = pressed
	case gdk.KEY_Up:
		w.input.Up = pressed
	case gdk.KEY_Down:
		w.input.Down = pressed
	default:
		return false
	}
	return true
}

func (w *RenderWindow) handleMessage(v any) {
	switch msg := v.(type) {
	case *Select:
		if msg.Program < 0 || msg.Program >= programs.NumPrograms() {
			log.Printf("%v: program %v", programs.ErrUnknownProgram, msg.Program)
			return
		}
		glib.IdleAdd(func() {
			if err := w.load(msg.Program, msg.Scene); err != nil {
				log.Println(err)
				NewErrorDialog(w.ApplicationWindow, err)
			}
		})

	case *programs.Scene:
		glib.IdleAdd(func() {
			w.scene = *msg
			w.gla.QueueRender()
		})

	case *SaveFrame:
		glib.IdleAdd(func() {
			w.pendingSave = msg.Path
			w.gla.QueueRender()
		})

	default:
		log.Println("unknown message received", reflect.TypeOf(v))
	}
}
