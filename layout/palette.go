package layout

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// category10 is the ten-colour categorical scheme the scenes colour words with.
var category10 = []drawing.Color{
	drawing.ColorFromHex("1f77b4"),
	drawing.ColorFromHex("ff7f0e"),
	drawing.ColorFromHex("2ca02c"),
	drawing.ColorFromHex("d62728"),
	drawing.ColorFromHex("9467bd"),
	drawing.ColorFromHex("8c564b"),
	drawing.ColorFromHex("e377c2"),
	drawing.ColorFromHex("7f7f7f"),
	drawing.ColorFromHex("bcbd22"),
	drawing.ColorFromHex("17becf"),
}

// Palette is an ordinal scale from name to colour. The domain is fixed at
// construction; unknown names are appended on first use.
type Palette struct {
	index map[string]int
}

// NewPalette builds the ordinal scale over names in order. Duplicate names
// keep their first slot.
func NewPalette(names []string) *Palette {
	p := &Palette{index: make(map[string]int, len(names))}
	for _, n := range names {
		if _, ok := p.index[n]; !ok {
			p.index[n] = len(p.index)
		}
	}
	return p
}

// Color returns the opaque colour for name.
func (p *Palette) Color(name string) drawing.Color {
	i, ok := p.index[name]
	if !ok {
		i = len(p.index)
		p.index[name] = i
	}
	return category10[i%len(category10)]
}

// Hex formats the RGB channels of c as a CSS hex colour. Alpha is dropped,
// SVG carries it separately, see Opacity.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns the alpha channel of c in [0,1], rounded to two decimals.
func Opacity(c drawing.Color) float64 {
	return math.Round(float64(c.A)/255*100) / 100
}
