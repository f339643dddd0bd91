package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/Faultbox/geomip/internal/engine/terrain"
)

// HeightmapImage renders hf as 16-bit grayscale, black at the lowest sample
// and white at the highest. Row z of the field is image row z.
func HeightmapImage(hf *terrain.HeightField) *image.Gray16 {
	size := hf.Size()
	img := image.NewGray16(image.Rect(0, 0, size, size))

	lo, hi := hf.MinMax()
	span := hi - lo
	for z := 0; z < size; z++ {
		for x := 0; x < size; x++ {
			var v float32
			if span > 0 {
				v = (hf.Get(x, z) - lo) / span
			}
			img.SetGray16(x, z, color.Gray16{Y: uint16(v*65535 + 0.5)})
		}
	}
	return img
}

// LodImage renders the selector's current core levels, one cell of
// cellSize pixels per patch, colored with LodColor. Patch row 0 is at the
// bottom so the picture matches a top-down view with +Z up.
func LodImage(sel *terrain.LodSelector, cellSize int) *image.RGBA {
	nx, nz := sel.NumPatches()
	small := image.NewRGBA(image.Rect(0, 0, nx, nz))
	for pz := 0; pz < nz; pz++ {
		for px := 0; px < nx; px++ {
			small.SetRGBA(px, nz-1-pz, LodColor(sel.PatchLod(px, pz).Core))
		}
	}
	if cellSize <= 1 {
		return small
	}

	big := image.NewRGBA(image.Rect(0, 0, nx*cellSize, nz*cellSize))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)
	return big
}

// WritePNG encodes img to path, creating parent directories.
func WritePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding PNG: %w", err)
	}
	return f.Close()
}
