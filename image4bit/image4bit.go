// Package image4bit provides a 4-bit grayscale image format optimized for the SSD1327 display.
//
// The SSD1327 stores pixels in horizontal nibble packing where each byte contains 2 pixels.
// High nibble represents the left pixel, low nibble represents the right pixel.
// This package provides the Gray4 color type and HorizontalNibble image implementation.
package image4bit

import (
	"image"
	"image/color"

	"github.com/flavioheleno/ssd1327/font8x8"
)

// Gray4 represents a 4-bit grayscale color (0-15 intensity levels).
// Only the lower 4 bits of Y are used.
type Gray4 struct {
	Y uint8
}

// Black and White are the two ends of the gray scale.
var (
	Black = Gray4{Y: 0}
	White = Gray4{Y: 15}
)

// RGBA converts the Gray4 color to standard RGBA.
// The 4-bit gray value (0-15) is scaled to 16-bit (0-65535).
func (c Gray4) RGBA() (r, g, b, a uint32) {
	// 0xF * 0x1111 = 0xFFFF, 0x5 * 0x1111 = 0x5555, etc.
	y := uint32(c.Y&0x0F) * 0x1111
	return y, y, y, 0xFFFF
}

// toGray4 converts any color.Color to Gray4.
func toGray4(c color.Color) color.Color {
	if g, ok := c.(Gray4); ok {
		return g
	}
	r, g, b, _ := c.RGBA()
	// Standard grayscale conversion: 0.299R + 0.587G + 0.114B
	y := (299*r + 587*g + 114*b + 500) / 1000
	return Gray4{Y: uint8(y >> 12)}
}

// Gray4Model converts colors to Gray4.
var Gray4Model = color.ModelFunc(toGray4)

// HorizontalNibble is a 4-bit grayscale image where pixels are stored in horizontal nibble packing.
// Each byte contains 2 pixels: high nibble = left pixel, low nibble = right pixel.
//
// Pixels are packed row after row with no padding, so the byte holding
// pixel (x, y) is (y*width + x) / 2.
type HorizontalNibble struct {
	Pix    []byte          // Pixel data (2 pixels per byte)
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewHorizontalNibble creates a new HorizontalNibble image with the specified bounds.
// The width must be even (since 2 pixels per byte).
func NewHorizontalNibble(r image.Rectangle) *HorizontalNibble {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &HorizontalNibble{Rect: r}
	}
	if w%2 != 0 {
		panic("image4bit: width must be even")
	}

	stride := w / 2
	return &HorizontalNibble{
		Pix:    make([]byte, stride*h),
		Stride: stride,
		Rect:   r,
	}
}

// ColorModel returns the color model of the image.
func (p *HorizontalNibble) ColorModel() color.Model {
	return Gray4Model
}

// Bounds returns the image bounds.
func (p *HorizontalNibble) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *HorizontalNibble) At(x, y int) color.Color {
	return p.Gray4At(x, y)
}

// Gray4At returns the Gray4 color of the pixel at (x, y).
func (p *HorizontalNibble) Gray4At(x, y int) Gray4 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Gray4{}
	}
	offset, shift := p.pixOffset(x, y)
	return Gray4{Y: (p.Pix[offset] >> shift) & 0x0F}
}

// Set sets the color of the pixel at (x, y).
func (p *HorizontalNibble) Set(x, y int, c color.Color) {
	p.SetGray4(x, y, Gray4Model.Convert(c).(Gray4))
}

// SetGray4 sets the Gray4 color of the pixel at (x, y).
// Coordinates outside the image are ignored and the other pixel sharing the
// byte is left untouched.
func (p *HorizontalNibble) SetGray4(x, y int, c Gray4) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	offset, shift := p.pixOffset(x, y)
	p.Pix[offset] = (p.Pix[offset] &^ (0x0F << shift)) | ((c.Y & 0x0F) << shift)
}

// Fill sets every pixel to c.
func (p *HorizontalNibble) Fill(c Gray4) {
	v := c.Y & 0x0F
	b := v<<4 | v
	for i := range p.Pix {
		p.Pix[i] = b
	}
}

// DrawText paints s with the 8x8 font, starting with the top left corner of
// the first glyph at (x, y). Only the set bits of each glyph are painted, so
// the background shows through. Glyphs are laid out left to right and
// anything past the image edge is clipped; text never wraps.
func (p *HorizontalNibble) DrawText(s string, x, y int, c Gray4) {
	for _, r := range s {
		if x >= p.Rect.Max.X {
			return
		}
		if x+font8x8.Width > p.Rect.Min.X {
			p.drawGlyph(font8x8.Glyph(r), x, y, c)
		}
		x += font8x8.Width
	}
}

func (p *HorizontalNibble) drawGlyph(g [font8x8.Height]byte, x, y int, c Gray4) {
	for row, bits := range g {
		if bits == 0 {
			continue
		}
		for col := 0; col < font8x8.Width; col++ {
			if bits&(1<<col) != 0 {
				p.SetGray4(x+col, y+row, c)
			}
		}
	}
}

// Scroll shifts the whole image content by (dx, dy). Pixels moved past the
// edges are dropped and the uncovered area is cleared to black.
func (p *HorizontalNibble) Scroll(dx, dy int) {
	r := p.Rect
	if dx == 0 && dy == 0 {
		return
	}
	if dx >= r.Dx() || -dx >= r.Dx() || dy >= r.Dy() || -dy >= r.Dy() {
		p.Fill(Black)
		return
	}
	// Walk destinations so that every source pixel is read before it is
	// overwritten.
	y0, y1, ys := r.Min.Y, r.Max.Y, 1
	if dy > 0 {
		y0, y1, ys = r.Max.Y-1, r.Min.Y-1, -1
	}
	x0, x1, xs := r.Min.X, r.Max.X, 1
	if dx > 0 {
		x0, x1, xs = r.Max.X-1, r.Min.X-1, -1
	}
	for y := y0; y != y1; y += ys {
		for x := x0; x != x1; x += xs {
			p.SetGray4(x, y, p.Gray4At(x-dx, y-dy))
		}
	}
}

// pixOffset returns the byte offset and bit shift for the pixel at (x, y).
// Even x uses the high nibble (shift 4), odd x the low nibble (shift 0).
func (p *HorizontalNibble) pixOffset(x, y int) (offset int, shift uint) {
	offset = (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/2
	shift = uint(4 * (1 - ((x - p.Rect.Min.X) & 1)))
	return
}
