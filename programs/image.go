package programs

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/nfnt/resize"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var ErrFramebufferSize = errors.New("framebuffer size mismatch")

// DecodeTexture decodes a png, jpeg, gif, bmp, tiff or webp image.
func DecodeTexture(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode texture: empty %v image", format)
	}
	return img, nil
}

// PrepareTexture converts img to NRGBA with its origin at (0, 0). Images
// whose sides are not powers of two are stretched up to the next power of
// two so every texture can be mipmapped.
func PrepareTexture(img image.Image) *image.NRGBA {
	b := img.Bounds()
	width, height := NextPowerOfTwo(b.Dx()), NextPowerOfTwo(b.Dy())
	if width != b.Dx() || height != b.Dy() {
		img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
		b = img.Bounds()
	}

	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// PlaceholderTexture is the single opaque blue texel shown while no image
// is available.
func PlaceholderTexture() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 0, G: 0, B: 255, A: 255})
	return img
}

func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// NextPowerOfTwo returns the smallest power of two not less than n.
func NextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// FramebufferImage turns RGBA pixels read back from GL, whose first row is
// the bottom of the image, into an image whose first row is the top.
func FramebufferImage(pix []uint8, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 || len(pix) != width*height*4 {
		return nil, fmt.Errorf("%w: %v bytes for %vx%v", ErrFramebufferSize, len(pix), width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	stride := width * 4
	for y := 0; y < height; y++ {
		src := pix[(height-1-y)*stride : (height-y)*stride]
		copy(img.Pix[y*img.Stride:y*img.Stride+stride], src)
	}
	return img, nil
}
