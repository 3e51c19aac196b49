package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldemos/programs"
)

var (
	programFlag = flag.String("program", "scaling", "demo to start with: "+strings.Join(programs.Names(), ", "))
	textureFlag = flag.String("texture", "", "comma separated images for the faces of the texture demo")
	windowFlag  = flag.String("window", "gtk", "window system, gtk or glfw")
	widthFlag   = flag.Int("width", 0, "window width, 0 for the default")
	heightFlag  = flag.Int("height", 0, "window height, 0 for the default")
	debugFlag   = flag.Bool("debug", false, "log OpenGL debug messages")
)

func main() {
	flag.Parse()

	mainContext, mainQuit := context.WithCancelCause(context.Background())

	go func() {
		defer CatchPanicToContext(mainQuit)
		mainQuit(run(mainContext))
	}()

	<-mainContext.Done()
	if err := context.Cause(mainContext); !quietCause(err) {
		log.Println(err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	program, err := programs.FindProgram(*programFlag)
	if err != nil {
		return err
	}

	textures, err := loadTextures(*textureFlag)
	if err != nil {
		return err
	}

	runtime.LockOSThread()
	switch *windowFlag {
	case "gtk":
		return gtkMain(ctx, program, textures)
	case "glfw":
		return glfwMain(ctx, program, textures)
	default:
		return fmt.Errorf("unknown window system %q", *windowFlag)
	}
}

func gtkMain(ctx context.Context, program int, textures []*image.NRGBA) error {
	gtk.Init(&os.Args)

	app, err := NewApplication(program, textures)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}
