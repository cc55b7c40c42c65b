// Package ssd1327 controls a SSD1327 OLED display via I²C.
//
// The SSD1327 is a 4-bit grayscale OLED controller supporting up to 128x128 pixels.
// Common display resolutions are 128x128 and 96x96.
//
// See the examples for how to use this package.
package ssd1327

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/flavioheleno/ssd1327/image4bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/i2c"
)

// SSD1327 command registers.
const (
	_SET_COL_ADDR          = 0x15
	_SET_SCROLL_DEACTIVATE = 0x2E
	_SET_ROW_ADDR          = 0x75
	_SET_CONTRAST          = 0x81
	_SET_SEG_REMAP         = 0xA0
	_SET_DISP_START_LINE   = 0xA1
	_SET_DISP_OFFSET       = 0xA2
	_SET_DISP_MODE         = 0xA4 // 0xA4 normal, 0xA5 all on, 0xA6 all off, 0xA7 inverse
	_SET_MUX_RATIO         = 0xA8
	_SET_FN_SELECT_A       = 0xAB
	_SET_DISP              = 0xAE // 0xAE off, 0xAF on
	_SET_PHASE_LEN         = 0xB1
	_SET_DISP_CLK_DIV      = 0xB3
	_SET_SECOND_PRECHARGE  = 0xB6
	_SET_GRAYSCALE_TABLE   = 0xB8
	_SET_GRAYSCALE_LINEAR  = 0xB9
	_SET_PRECHARGE         = 0xBC
	_SET_VCOM_DESEL        = 0xBE
	_SET_FN_SELECT_B       = 0xD5
	_SET_COMMAND_LOCK      = 0xFD
)

// I²C control bytes, sent first in every transaction.
const (
	i2cCmd  = 0x80 // Co=1, D/C#=0: one command byte follows
	i2cData = 0x40 // Co=0, D/C#=1: a stream of GDDRAM bytes follows
)

// The controller RAM is 128 pixels wide, 2 pixels per column address.
const ramWidth = 128

// DefaultOpts is the recommended default options.
var DefaultOpts = Opts{
	W:    128,
	H:    128,
	Addr: 0x3C,
}

// Opts is the configuration for the SSD1327 display.
type Opts struct {
	// Display dimensions in pixels
	W int // Width (must be even and ≤128)
	H int // Height (must be ≤128)

	// The I²C address of the display. Defaults to 0x3C.
	Addr uint16

	// ExternalPower selects the external VDD supply instead of the internal
	// regulator.
	ExternalPower bool

	// MaxTxSize caps the length of a single bus write, control byte
	// included. 0 means no cap unless the bus reports one through
	// conn.Limits. Frame data larger than the cap is sent as several
	// consecutive data writes.
	MaxTxSize int
}

// Dev is the device handle for the SSD1327 display.
//
// Drawing methods only change the in-memory frame; nothing reaches the panel
// until Show is called. Dev is not safe for concurrent use.
type Dev struct {
	// Communication
	c         conn.Conn
	addr      uint16
	maxTxSize int

	// Display geometry
	rect         image.Rectangle
	columnOffset int // First column address, (128 - W) / 4

	// Pixel buffer
	buffer *image4bit.HorizontalNibble

	// State
	state         State
	contrast      byte
	inverted      bool
	externalPower bool
}

// NewI2C creates a new SSD1327 device connected via I²C.
//
// The display is powered on, initialized, cleared and refreshed before
// returning. opts can be nil to use DefaultOpts.
func NewI2C(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		o := DefaultOpts
		opts = &o
	}
	if opts.W <= 0 || opts.W%2 != 0 || opts.W > ramWidth {
		return nil, errors.New("ssd1327: width must be even and between 2 and 128")
	}
	if opts.H <= 0 || opts.H > 128 {
		return nil, errors.New("ssd1327: height must be between 1 and 128")
	}
	if opts.MaxTxSize < 0 || opts.MaxTxSize == 1 {
		return nil, fmt.Errorf("ssd1327: invalid max transaction size %d", opts.MaxTxSize)
	}
	addr := opts.Addr
	if addr == 0 {
		addr = DefaultOpts.Addr
	}
	if addr > 0x7F {
		return nil, fmt.Errorf("ssd1327: invalid I²C address %#x", addr)
	}

	maxTxSize := opts.MaxTxSize
	if l, ok := b.(conn.Limits); ok && maxTxSize == 0 {
		maxTxSize = l.MaxTxSize()
	}

	d := &Dev{
		c:             &i2c.Dev{Bus: b, Addr: addr},
		addr:          addr,
		maxTxSize:     maxTxSize,
		rect:          image.Rect(0, 0, opts.W, opts.H),
		columnOffset:  (ramWidth - opts.W) / 4,
		buffer:        image4bit.NewHorizontalNibble(image.Rect(0, 0, opts.W, opts.H)),
		contrast:      0x7F,
		externalPower: opts.ExternalPower,
	}

	d.state = StatePoweringOn
	if err := d.powerOn(); err != nil {
		return nil, err
	}
	if err := d.Init(); err != nil {
		return nil, err
	}
	return d, nil
}

// Init sends the full initialization sequence, clears the frame and shows
// it. Calling it again on a running display repeats the whole sequence.
func (d *Dev) Init() error {
	for _, cmd := range d.initSequence() {
		if err := d.WriteCommand(cmd); err != nil {
			return err
		}
	}
	d.contrast = 0x7F
	d.inverted = false
	d.buffer.Fill(image4bit.Black)
	if err := d.Show(); err != nil {
		return err
	}
	d.state = StateInitialized
	return nil
}

// initSequence returns the initialization commands, one byte per command
// write. The order matters to the controller.
func (d *Dev) initSequence() []byte {
	h := byte(d.rect.Dy() - 1)
	colStart, colEnd := d.columnWindow()
	return []byte{
		_SET_COMMAND_LOCK, 0x12, // Unlock
		_SET_DISP, // Display off
		// Resolution and layout
		_SET_DISP_START_LINE, 0x00,
		_SET_DISP_OFFSET, 0x00,
		// Column address remap, horizontal address increment, COM remap and
		// COM split odd even
		_SET_SEG_REMAP, 0x51,
		_SET_MUX_RATIO, h,
		// Timing and driving scheme
		_SET_FN_SELECT_A, d.regulator(),
		_SET_PHASE_LEN, 0x51, // Phase 1: 1 DCLK, Phase 2: 5 DCLKs
		_SET_DISP_CLK_DIV, 0x01, // Divide ratio 1, oscillator frequency 0
		_SET_PRECHARGE, 0x08, // Pre-charge voltage: VCOMH
		_SET_VCOM_DESEL, 0x07, // VCOMH: 0.86*Vcc
		_SET_SECOND_PRECHARGE, 0x01, // 1 DCLK
		_SET_FN_SELECT_B, 0x62, // External VSL, second precharge
		// Display
		_SET_GRAYSCALE_LINEAR,
		_SET_CONTRAST, 0x7F,
		_SET_DISP_MODE, // Normal, not inverted
		_SET_ROW_ADDR, 0x00, h,
		_SET_COL_ADDR, colStart, colEnd,
		_SET_SCROLL_DEACTIVATE,
		_SET_DISP | 0x01, // Display on
	}
}

// columnWindow returns the first and last column address. Each address
// covers two pixels and the panel is centered in the 128 pixel RAM: 96x96
// panels use 8..55, 128x128 panels use 0..63.
func (d *Dev) columnWindow() (start, end byte) {
	return byte(d.columnOffset), byte(63 - d.columnOffset)
}

// regulator is the function selection A operand.
func (d *Dev) regulator() byte {
	if d.externalPower {
		return 0x00
	}
	return 0x01
}

// WriteCommand sends a single command byte.
func (d *Dev) WriteCommand(cmd byte) error {
	if err := d.c.Tx([]byte{i2cCmd, cmd}, nil); err != nil {
		return &TransportError{Op: "command", Err: err}
	}
	return nil
}

// WriteData sends a stream of GDDRAM bytes.
//
// When a maximum transaction size applies, the stream is split in
// consecutive writes each starting with the data control byte. The RAM
// address pointer keeps advancing across them so the result is the same as a
// single write.
func (d *Dev) WriteData(p []byte) error {
	chunk := len(p)
	if d.maxTxSize > 1 && chunk+1 > d.maxTxSize {
		chunk = d.maxTxSize - 1
	}
	buf := make([]byte, 1, chunk+1)
	buf[0] = i2cData
	for {
		n := min(chunk, len(p))
		if err := d.c.Tx(append(buf[:1], p[:n]...), nil); err != nil {
			return &TransportError{Op: "data", Err: err}
		}
		p = p[n:]
		if len(p) == 0 {
			return nil
		}
	}
}

// Show sends the whole frame to the display.
//
// The addressing window is set again first, then the frame goes out as one
// data stream.
func (d *Dev) Show() error {
	colStart, colEnd := d.columnWindow()
	for _, cmd := range []byte{
		_SET_COL_ADDR, colStart, colEnd,
		_SET_ROW_ADDR, 0x00, byte(d.rect.Dy() - 1),
	} {
		if err := d.WriteCommand(cmd); err != nil {
			return err
		}
	}
	return d.WriteData(d.buffer.Pix)
}

// PowerOn enables the VDD regulator then turns the panel on. On failure the
// state is left as it was.
func (d *Dev) PowerOn() error {
	prev := d.state
	d.state = StatePoweringOn
	if err := d.powerOn(); err != nil {
		d.state = prev
		return err
	}
	if prev != StateUninitialized {
		d.state = StateInitialized
	}
	return nil
}

func (d *Dev) powerOn() error {
	for _, cmd := range []byte{_SET_FN_SELECT_A, d.regulator(), _SET_DISP | 0x01} {
		if err := d.WriteCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// PowerOff disables the internal VDD regulator then turns the panel off.
//
// The frame buffer is kept; PowerOn followed by Show restores the picture.
// The state moves to StatePoweringOff once the first command went out, even
// if a later one fails, since the regulator may already be off.
func (d *Dev) PowerOff() error {
	for i, cmd := range []byte{_SET_FN_SELECT_A, 0x00, _SET_DISP} {
		if err := d.WriteCommand(cmd); err != nil {
			return err
		}
		if i == 0 {
			d.state = StatePoweringOff
		}
	}
	return nil
}

// SetContrast sets the display contrast (0-255).
func (d *Dev) SetContrast(level byte) error {
	if err := d.WriteCommand(_SET_CONTRAST); err != nil {
		return err
	}
	if err := d.WriteCommand(level); err != nil {
		return err
	}
	d.contrast = level
	return nil
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	mode := byte(_SET_DISP_MODE) // Normal display
	if invert {
		mode |= 0x03 // Inverted display
	}
	if err := d.WriteCommand(mode); err != nil {
		return err
	}
	d.inverted = invert
	return nil
}

// State returns the power state of the display.
func (d *Dev) State() State {
	return d.state
}

// Contrast returns the last contrast level sent to the display.
func (d *Dev) Contrast() byte {
	return d.contrast
}

// Inverted reports whether the display colors are inverted.
func (d *Dev) Inverted() bool {
	return d.inverted
}

// Fill sets every pixel to color. Only the lower 4 bits of color are used.
func (d *Dev) Fill(color byte) {
	d.buffer.Fill(image4bit.Gray4{Y: color})
}

// SetPixel sets the pixel at (x, y). Coordinates outside the display are
// ignored and only the lower 4 bits of color are used.
func (d *Dev) SetPixel(x, y int, color byte) {
	d.buffer.SetGray4(x, y, image4bit.Gray4{Y: color})
}

// Pixel returns the gray level of the pixel at (x, y), 0 outside the display.
func (d *Dev) Pixel(x, y int) byte {
	return d.buffer.Gray4At(x, y).Y
}

// Text draws s with the 8x8 font, the first glyph's top left corner at
// (x, y). The background is left untouched and text past the display edge
// is clipped.
func (d *Dev) Text(s string, x, y int, color byte) {
	d.buffer.DrawText(s, x, y, image4bit.Gray4{Y: color})
}

// Scroll shifts the frame by (dx, dy), clearing the uncovered area.
func (d *Dev) Scroll(dx, dy int) {
	d.buffer.Scroll(dx, dy)
}

// ColorModel implements display.Drawer.
func (d *Dev) ColorModel() color.Model {
	return image4bit.Gray4Model
}

// Bounds implements display.Drawer. Min is guaranteed to be {0, 0}.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// At returns the color of the pixel at (x, y) in the frame buffer, so a Dev
// can be used as an image.Image.
func (d *Dev) At(x, y int) color.Color {
	return d.buffer.Gray4At(x, y)
}

// Draw implements display.Drawer.
//
// src is composed into the frame buffer, then the whole frame is shown.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	dst = dst.Intersect(d.rect)
	if !dst.Empty() {
		draw.Draw(d.buffer, dst, src, sp, draw.Src)
	}
	return d.Show()
}

// Write writes raw pixel data to the display in HorizontalNibble format.
// The data must be exactly d.Bounds().Dx() * d.Bounds().Dy() / 2 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if len(pixels) != len(d.buffer.Pix) {
		return 0, fmt.Errorf("ssd1327: invalid pixel stream length; expected %d bytes, got %d bytes", len(d.buffer.Pix), len(pixels))
	}
	copy(d.buffer.Pix, pixels)
	if err := d.Show(); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Halt implements conn.Resource. It powers the display off.
func (d *Dev) Halt() error {
	return d.PowerOff()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("ssd1327.Dev{%#x, %dx%d}", d.addr, d.rect.Dx(), d.rect.Dy())
}

var _ display.Drawer = &Dev{}
var _ image.Image = &Dev{}
