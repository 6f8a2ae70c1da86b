package styles

import (
	"bytes"
	"fmt"
	"hash/fnv"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	PaletteName = "palette"

	paletteChroma = 0.4
	// Heavy labels are drawn darker: lightness runs from paletteLightMax for
	// the lightest label down to paletteLightMin for the heaviest.
	paletteLightMin = 0.35
	paletteLightMax = 0.75
)

// Palette colors each label with a hue derived from its text and the palette
// seed, and a lightness derived from its normalized weight. The same text,
// weight and seed always produce the same color.
type Palette struct {
	seed uint64
	base float64
}

// NewPalette returns a palette whose hues are rotated by seed.
func NewPalette(seed uint64) *Palette {
	return &Palette{seed: seed, base: float64(seed%360) * goldenHue}
}

// goldenHue spreads successive seeds around the color wheel.
const goldenHue = 137.50776405003785

func (p *Palette) Name() string { return PaletteName }

func (p *Palette) RenderDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, "  <style>text.label { font-family: %s; font-weight: 600; }</style>\n", fontFamily)
}

func (p *Palette) RenderBox(buf *bytes.Buffer, l Label) {
	writeRect(buf, l, p.Color(l.Text, 0))
}

func (p *Palette) RenderLabel(buf *bytes.Buffer, l Label) {
	writeText(buf, l, p.Color(l.Text, l.Norm))
}

// Color returns the hex color for text at normalized weight norm.
func (p *Palette) Color(text string, norm float64) string {
	norm = max(0, min(1, norm))
	hue := math.Mod(p.base+float64(hash(text)%360), 360)
	light := paletteLightMax - norm*(paletteLightMax-paletteLightMin)
	return colorful.Hcl(hue, paletteChroma, light).Clamped().Hex()
}

func hash(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}
