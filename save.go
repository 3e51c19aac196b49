package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"time"
)

// defaultFrameName names a saved frame after the demo and the current time.
func defaultFrameName(program string) string {
	return fmt.Sprintf("%v-%v.png", program, time.Now().Format("20060102-150405"))
}

// saveFrame encodes img as PNG to path. A partially written file is removed
// on failure or if ctx ends first.
func saveFrame(ctx context.Context, img image.Image, path string) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(path)
		}
	}()

	stop := context.AfterFunc(ctx, func() {
		file.Close()
	})

	if err := png.Encode(file, img); err != nil {
		if !stop() {
			return context.Cause(ctx)
		}
		file.Close()
		return fmt.Errorf("save %v: %w", path, err)
	}

	if !stop() {
		return context.Cause(ctx)
	}
	if err := file.Close(); err != nil {
		return err
	}

	log.Println("saved", path)
	return nil
}
