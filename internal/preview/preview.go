// Package preview paints a frame on an ANSI terminal, one colored block per
// pixel, so the status screen can be checked without a panel attached.
package preview

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for the terminal.
type Opts struct {
	// Out defaults to a colorable stdout.
	Out io.Writer
	// Palette defaults to ansi256.Default.
	Palette *ansi256.Palette
	// Scale keeps one pixel out of Scale in both directions. 0 means 1.
	Scale int
}

// Terminal repaints frames in place on a terminal.
type Terminal struct {
	w       io.Writer
	palette *ansi256.Palette
	scale   int

	buf bytes.Buffer
}

// New returns a Terminal.
func New(opts *Opts) *Terminal {
	if opts == nil {
		opts = &Opts{}
	}
	t := &Terminal{w: opts.Out, palette: opts.Palette, scale: opts.Scale}
	if t.w == nil {
		t.w = colorable.NewColorableStdout()
	}
	if t.palette == nil {
		t.palette = ansi256.Default
	}
	if t.scale <= 0 {
		t.scale = 1
	}
	return t
}

func (t *Terminal) String() string {
	return "Terminal"
}

// Render writes img, homing the cursor first so successive frames overwrite
// each other.
func (t *Terminal) Render(img image.Image) error {
	if img == nil {
		return errors.New("preview: nil image")
	}
	r := img.Bounds()
	t.buf.Reset()
	_, _ = t.buf.WriteString("\033[H\033[0m")
	for y := r.Min.Y; y < r.Max.Y; y += t.scale {
		for x := r.Min.X; x < r.Max.X; x += t.scale {
			_, _ = io.WriteString(&t.buf, t.palette.Block(color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)))
		}
		_, _ = t.buf.WriteString("\033[0m\n")
	}
	_, err := t.buf.WriteTo(t.w)
	return err
}

// Halt resets the terminal colors.
func (t *Terminal) Halt() error {
	_, err := t.w.Write([]byte("\033[0m\n"))
	return err
}
