package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"runtime/debug"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

// CatchPanicToContext turns a panic in the calling goroutine into the cause
// of ctxCancel. It must be deferred.
func CatchPanicToContext(ctxCancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		err = fmt.Errorf("%w\n%v", err, string(debug.Stack()))
		if ctxCancel != nil {
			ctxCancel(err)
		}
	}
}

// WrapErrorDialog returns a func that runs failable and reports its error in
// a dialog over parent. It may be called from any goroutine.
func WrapErrorDialog(parent gtk.IWindow, failable func() error) func() {
	return func() {
		err := failable()
		if err != nil {
			log.Println(err)
			glib.IdleAdd(func() {
				NewErrorDialog(parent, err)
			})
		}
	}
}

// AttachErrorDialog shows the cause of ctx over parent once ctx ends, unless
// it ended normally.
func AttachErrorDialog(parent gtk.IWindow, ctx context.Context) {
	go func() {
		<-ctx.Done()
		err := context.Cause(ctx)
		if quietCause(err) {
			return
		}
		log.Println(err)
		glib.IdleAdd(func() {
			NewErrorDialog(parent, err)
		})
	}()
}

// quietCause reports whether err is the normal end of a window or its
// connection.
func quietCause(err error) bool {
	return err == nil ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrClosedPipe) ||
		errors.Is(err, net.ErrClosed)
}

func NewErrorDialog(parent gtk.IWindow, err error) {
	dialog := gtk.MessageDialogNew(
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"%s",
		err.Error(),
	)
	dialog.SetTitle("Error")
	dialog.Connect("response", dialog.Destroy)

	messageArea, aerr := dialog.GetMessageArea()
	if aerr != nil {
		log.Println(aerr)
	} else {
		messageArea.GetChildren().Foreach(func(item interface{}) {
			if widget, ok := item.(*gtk.Widget); ok {
				l, err := gtk.WidgetToLabel(widget)
				if err != nil {
					return
				}

				l.SetSelectable(true)
			}
		})
	}

	dialog.SetKeepAbove(true)
	dialog.Show()
}
