package ssd1327

import (
	"image/color"

	"github.com/flavioheleno/ssd1327/image4bit"
	"tinygo.org/x/drivers"
)

// Displayer returns a TinyGo drivers.Displayer drawing on the frame buffer,
// so tinyfont and other TinyGo renderers can be used with the display.
// Colors are converted to 4-bit gray and Display calls Show.
func (d *Dev) Displayer() drivers.Displayer {
	return &tinyDisplay{d: d}
}

type tinyDisplay struct {
	d *Dev
}

func (t *tinyDisplay) Size() (x, y int16) {
	return int16(t.d.rect.Dx()), int16(t.d.rect.Dy())
}

func (t *tinyDisplay) SetPixel(x, y int16, c color.RGBA) {
	t.d.buffer.SetGray4(int(x), int(y), image4bit.Gray4Model.Convert(c).(image4bit.Gray4))
}

func (t *tinyDisplay) Display() error {
	return t.d.Show()
}
