package font8x8

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Fonter exposes the font to tinyfont renderers such as tinyfont.WriteLine.
//
// As with every tinyfont font, y is the baseline: the glyph cell spans rows
// y-7 to y. Concurrent use is not safe because the returned glyph is reused.
var Fonter tinyfont.Fonter = &fonter{}

type fonter struct {
	g glyph
}

func (f *fonter) GetYAdvance() uint8 { return Height }

func (f *fonter) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	for row, bits := range Glyph(g.r) {
		for col := 0; col < Width; col++ {
			if bits&(1<<col) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(Height-1-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Width,
		Height:   Height,
		XAdvance: Width,
		XOffset:  0,
		YOffset:  -(Height - 1),
	}
}
