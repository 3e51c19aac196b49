package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"net"
	"reflect"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldemos/programs"
)

func NewConfigWindow(
	app *gtk.Application,
	listener net.Listener,
	ctx context.Context,
	quit context.CancelCauseFunc,
) *ConfigWindow {
	var err error
	w := &ConfigWindow{
		ctx:     ctx,
		quit:    quit,
		current: -1,
	}

	conn, err := listener.Accept()
	if err != nil {
		quit(fmt.Errorf("accept render connection: %w", err))
		return nil
	}
	w.msg = newMessenger(conn, quit)
	go w.msg.run(ctx.Done())

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(320, 600)

	box, err := gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 6)
	if err != nil {
		quit(fmt.Errorf("gtk.BoxNew: %w", err))
		return nil
	}
	box.SetMarginStart(8)
	box.SetMarginEnd(8)
	box.SetMarginTop(8)
	box.SetMarginBottom(8)

	w.selector, err = gtk.ComboBoxTextNew()
	if err != nil {
		quit(fmt.Errorf("gtk.ComboBoxTextNew: %w", err))
		return nil
	}
	for _, name := range programs.Names() {
		w.selector.AppendText(name)
	}
	w.selector.Connect("changed", w.selectProgram)
	box.PackStart(w.selector, false, false, 0)

	w.sliders, err = gtk.BoxNew(gtk.ORIENTATION_VERTICAL, 2)
	if err != nil {
		quit(fmt.Errorf("gtk.BoxNew: %w", err))
		return nil
	}
	box.PackStart(w.sliders, true, true, 0)

	save, err := gtk.ButtonNewWithLabel("Save frame")
	if err != nil {
		quit(fmt.Errorf("gtk.ButtonNewWithLabel: %w", err))
		return nil
	}
	save.Connect("clicked", w.saveFrame)
	box.PackEnd(save, false, false, 0)

	w.Add(box)
	w.ShowAll()

	go w.msg.receive(w.handleMessage)

	return w
}

type ConfigWindow struct {
	*gtk.ApplicationWindow
	selector *gtk.ComboBoxText
	sliders  *gtk.Box
	rows     []*gtk.Box
	scales   []*gtk.Scale

	ctx  context.Context
	quit context.CancelCauseFunc
	msg  *messenger

	current int
	scene   programs.Scene

	// updating is set while widgets are changed to match the render window,
	// so their change signals are not echoed back.
	updating bool
}

func (w *ConfigWindow) selectProgram(combo *gtk.ComboBoxText) {
	if w.updating {
		return
	}
	i := combo.GetActive()
	if i < 0 || i == w.current {
		return
	}
	w.msg.Send(&Select{Program: i, Scene: programs.GetProgram(i).Defaults})
}

// showProgram rebuilds the sliders for program i.
func (w *ConfigWindow) showProgram(i int) {
	for _, row := range w.rows {
		row.Destroy()
	}
	w.rows, w.scales = nil, nil

	program := programs.GetProgram(i)
	for _, slider := range program.Sliders {
		slider := slider
		row, err := gtk.BoxNew(gtk.ORIENTATION_HORIZONTAL, 6)
		if err != nil {
			log.Println(err)
			continue
		}

		label, err := gtk.LabelNew(slider.Label)
		if err != nil {
			log.Println(err)
			continue
		}
		label.SetWidthChars(16)
		label.SetXAlign(0)
		row.PackStart(label, false, false, 0)

		scale, err := gtk.ScaleNewWithRange(gtk.ORIENTATION_HORIZONTAL, slider.Min, slider.Max, slider.Step)
		if err != nil {
			log.Println(err)
			continue
		}
		scale.SetDigits(stepDigits(slider.Step))
		scale.SetHExpand(true)
		scale.Connect("value-changed", func(scale *gtk.Scale) {
			if w.updating {
				return
			}
			slider.Set(&w.scene, scale.GetValue())
			scene := w.scene
			w.msg.Send(&scene)
		})
		row.PackStart(scale, true, true, 0)

		w.sliders.PackStart(row, false, false, 0)
		w.rows = append(w.rows, row)
		w.scales = append(w.scales, scale)
	}

	w.current = i
	w.selector.SetActive(i)
	w.SetTitle(fmt.Sprintf("%v - %v", appName, program.Name))
	w.sliders.ShowAll()
}

// showScene moves the sliders to match scene.
func (w *ConfigWindow) showScene(scene programs.Scene) {
	w.scene = scene
	if w.current < 0 {
		return
	}
	for i, slider := range programs.GetProgram(w.current).Sliders {
		if i < len(w.scales) {
			w.scales[i].SetValue(slider.Value(&scene))
		}
	}
}

// stepDigits returns the number of decimals shown for a slider step.
func stepDigits(step float64) int {
	if step <= 0 || step >= 1 {
		return 0
	}
	return int(math.Ceil(-math.Log10(step) - 1e-9))
}

func (w *ConfigWindow) saveFrame() {
	dialog, err := gtk.FileChooserDialogNewWith2Buttons(
		"Save frame",
		w.ApplicationWindow,
		gtk.FILE_CHOOSER_ACTION_SAVE,
		"Cancel", gtk.RESPONSE_CANCEL,
		"Save", gtk.RESPONSE_ACCEPT,
	)
	if err != nil {
		NewErrorDialog(w.ApplicationWindow, err)
		return
	}
	defer dialog.Destroy()

	dialog.SetDoOverwriteConfirmation(true)
	dialog.SetCurrentName(defaultFrameName(programs.GetProgram(max(w.current, 0)).Name))

	if dialog.Run() == gtk.RESPONSE_ACCEPT {
		w.msg.Send(&SaveFrame{Path: dialog.GetFilename()})
	}
}

func (w *ConfigWindow) handleMessage(v any) {
	switch msg := v.(type) {
	case *Select:
		if msg.Program < 0 || msg.Program >= programs.NumPrograms() {
			log.Printf("%v: program %v", programs.ErrUnknownProgram, msg.Program)
			return
		}
		glib.IdleAdd(func() {
			w.updating = true
			defer func() { w.updating = false }()

			if msg.Program != w.current {
				w.showProgram(msg.Program)
			}
			w.showScene(msg.Scene)
		})

	case *programs.Scene:
		glib.IdleAdd(func() {
			w.updating = true
			defer func() { w.updating = false }()

			w.showScene(*msg)
		})

	default:
		log.Println("unknown message received", reflect.TypeOf(v))
	}
}
