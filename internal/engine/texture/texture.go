// Package texture decodes terrain layer images into uploadable RGBA pixels.
//
// PNG, JPEG and GIF come from the standard decoders; BMP and TIFF are
// registered from golang.org/x/image. Missing layers are replaced with a
// procedural placeholder so the viewer always has four layers to blend.
package texture

import (
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"math/rand"
	"os"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// DefaultSize is the edge length layers are resampled to.
const DefaultSize = 512

// layerColors are the placeholder base colors, lowest layer first.
var layerColors = []color.RGBA{
	{R: 194, G: 178, B: 128, A: 255}, // sand
	{R: 86, G: 125, B: 70, A: 255},   // grass
	{R: 120, G: 112, B: 104, A: 255}, // rock
	{R: 240, G: 240, B: 245, A: 255}, // snow
}

// Load decodes the image at path and resamples it to a size×size RGBA image.
func Load(path string, size int) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return Resample(src, size), nil
}

// Resample scales src to size×size with bilinear filtering. An image that
// already has the right size and layout is copied unchanged.
func Resample(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	if b := src.Bounds(); b.Dx() == size && b.Dy() == size {
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}
	draw.BiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// Procedural returns a noisy placeholder for layer (0 is the lowest).
func Procedural(layer, size int) *image.RGBA {
	base := layerColors[layer%len(layerColors)]
	rng := rand.New(rand.NewSource(int64(layer) + 1))

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			n := rng.Intn(31) - 15
			img.SetRGBA(x, y, color.RGBA{
				R: shade(base.R, n),
				G: shade(base.G, n),
				B: shade(base.B, n),
				A: 255,
			})
		}
	}
	return img
}

func shade(c uint8, n int) uint8 {
	v := int(c) + n
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// LoadLayers loads count layers from paths. A layer with no path, or one that
// fails to load, gets its procedural placeholder and a warning.
func LoadLayers(paths []string, count, size int, log *zap.Logger) []*image.RGBA {
	layers := make([]*image.RGBA, count)
	for i := range layers {
		if i < len(paths) && paths[i] != "" {
			img, err := Load(paths[i], size)
			if err == nil {
				log.Debug("texture loaded", zap.Int("layer", i), zap.String("path", paths[i]))
				layers[i] = img
				continue
			}
			log.Warn("texture load failed, using placeholder", zap.Int("layer", i), zap.Error(err))
		}
		layers[i] = Procedural(i, size)
	}
	return layers
}
