package main

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/stewi1014/gldemos/programs"
)

// loadTextures reads a comma separated list of image files, ready for upload.
func loadTextures(list string) ([]*image.NRGBA, error) {
	var textures []*image.NRGBA
	for _, name := range strings.Split(list, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		img, err := loadTexture(name)
		if err != nil {
			return nil, err
		}
		textures = append(textures, img)
	}

	if len(textures) > programs.TextureUnits {
		return nil, fmt.Errorf("%v textures given, at most %v can be shown", len(textures), programs.TextureUnits)
	}
	return textures, nil
}

func loadTexture(name string) (*image.NRGBA, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := programs.DecodeTexture(file)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", name, err)
	}
	return programs.PrepareTexture(img), nil
}
