package main

import (
	"context"
	"fmt"
	"image"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

const (
	appName = "GL Demos"
	appID   = "com.github.stewi1014.gldemos"
)

func NewApplication(program int, textures []*image.NRGBA) (*Application, error) {
	app, err := gtk.ApplicationNew(appID, glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	a := &Application{
		Application: app,
		program:     program,
		textures:    textures,
	}

	return a, nil
}

// Application opens a render window and a config window joined by an
// in-process connection.
type Application struct {
	*gtk.Application
	program  int
	textures []*image.NRGBA
}

// Run blocks until the application quits or ctx ends, returning the cause.
func (a *Application) Run(ctx context.Context) error {
	appContext, appQuit := context.WithCancelCause(ctx)

	a.Connect("activate", func() {
		defer CatchPanicToContext(appQuit)

		client, listener := NewPipeListener()
		context.AfterFunc(appContext, func() {
			listener.Close()
			client.Close()
		})

		renderWindow := NewRenderWindow(a.Application, client, appContext, appQuit, a.program, a.textures)
		if renderWindow == nil {
			return
		}
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		AttachErrorDialog(renderWindow.ApplicationWindow, appContext)

		configWindow := NewConfigWindow(a.Application, listener, appContext, appQuit)
		if configWindow == nil {
			return
		}
		configWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		configWindow.SetTitle(appName + " Config")
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(a.Quit)
	}()
	a.Application.Run(nil)
	return context.Cause(appContext)
}
