// Package hud rasterizes the viewer's status panel into an image that the
// renderer draws over the frame.
package hud

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/Faultbox/geomip/internal/engine/terrain"
)

// Panel colors.
var (
	ColorPanelBg = color.RGBA{R: 12, G: 14, B: 20, A: 170}
	ColorText    = color.RGBA{R: 230, G: 232, B: 235, A: 255}
)

const padding = 6

// Stats is everything the panel shows.
type Stats struct {
	FPS       float64
	Seed      int64
	Camera    mgl32.Vec3
	Flying    bool
	LodCounts []int // Patches per core LOD

	Wireframe bool
	FreezeLOD bool
	Shadows   bool
	LodTint   bool
	PatchGrid bool
}

// LodHistogram counts patches per core LOD level.
func LodHistogram(sel *terrain.LodSelector) []int {
	if sel == nil {
		return nil
	}
	counts := make([]int, sel.MaxLOD()+1)
	nx, nz := sel.NumPatches()
	for pz := 0; pz < nz; pz++ {
		for px := 0; px < nx; px++ {
			counts[sel.PatchLod(px, pz).Core]++
		}
	}
	return counts
}

// Lines formats stats as panel rows.
func Lines(s Stats) []string {
	mode := "orbit"
	if s.Flying {
		mode = "fly"
	}

	lods := make([]string, len(s.LodCounts))
	for i, n := range s.LodCounts {
		lods[i] = fmt.Sprintf("%d:%d", i, n)
	}

	return []string{
		fmt.Sprintf("%.0f fps  seed %d", s.FPS, s.Seed),
		fmt.Sprintf("%s  %.0f %.0f %.0f", mode, s.Camera[0], s.Camera[1], s.Camera[2]),
		"lod " + strings.Join(lods, " "),
		"F1 wire " + onOff(s.Wireframe) + "  F2 freeze " + onOff(s.FreezeLOD),
		"F3 shadow " + onOff(s.Shadows) + "  F4 tint " + onOff(s.LodTint),
		"F5 grid " + onOff(s.PatchGrid),
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Render draws lines on a translucent panel sized to fit them.
func Render(lines []string) *image.RGBA {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()

	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	w := width + 2*padding
	h := len(lines)*lineHeight + 2*padding

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(ColorPanelBg), image.Point{}, draw.Src)

	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(ColorText),
		Face: face,
	}
	for i, l := range lines {
		d.Dot = fixed.P(padding, padding+i*lineHeight+face.Metrics().Ascent.Ceil())
		d.DrawString(l)
	}
	return img
}
