// Package ssd1327 controls a SSD1327 OLED display via I²C.
//
// The SSD1327 is a 4-bit grayscale OLED controller with a 128×128 pixel RAM.
// This driver implements the display.Drawer interface from periph.io.
//
// # Display Characteristics
//
// - 4-bit grayscale with 16 intensity levels (0-15)
// - Support for 128×128 and 96×96 panels (any even width up to 128)
// - Adjustable contrast (0-255)
// - Display inversion
// - Internal or external VDD supply
//
// # Hardware Connection
//
// Connect the SSD1327 display to your system via I²C:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL         → I²C Clock (SCL)
//	SDA         → I²C Data (SDA)
//
// Most modules answer at address 0x3C.
//
// # Basic Usage
//
//	package main
//
//	import (
//		"log"
//
//		"github.com/flavioheleno/ssd1327"
//		"periph.io/x/conn/v3/i2c/i2creg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		if _, err := host.Init(); err != nil {
//			log.Fatal(err)
//		}
//		b, err := i2creg.Open("")
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer b.Close()
//
//		dev, err := ssd1327.NewI2C(b, &ssd1327.DefaultOpts)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer dev.Halt()
//
//		dev.Fill(0)
//		dev.Text("Hello", 0, 0, 15)
//		dev.SetPixel(64, 64, 8)
//		if err := dev.Show(); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// # Frame Buffer
//
// The driver keeps the whole frame in memory, 2 pixels per byte with the left
// pixel in the high nibble. Fill, SetPixel, Text and Scroll only change that
// buffer; Show sends it to the display in one data write. Coordinates outside
// the display are clipped and gray levels are masked to 4 bits, so drawing
// never fails.
//
// Draw and Write update the buffer and show it right away:
//
//	dev.Draw(dev.Bounds(), myImage, image.Point{})
//
// # Text
//
// Text uses a built-in 8×8 font. Glyphs are drawn transparently: only the set
// pixels are painted. The same font is available to TinyGo renderers through
// font8x8.Fonter and Dev.Displayer:
//
//	tinyfont.WriteLine(dev.Displayer(), font8x8.Fonter, 0, 7, "Hello", white)
//
// # Bus Transactions
//
// Every command byte is sent in its own I²C write prefixed with 0x80. Frame
// data is prefixed with 0x40. Adapters limiting the transaction length can be
// served by setting Opts.MaxTxSize (or implementing conn.Limits); the frame is
// then split in consecutive data writes.
//
// Bus errors are returned as *TransportError and never retried.
//
// # Datasheet
//
// https://www.crystalfontz.com/controllers/SolomonSystech/SSD1327/
package ssd1327
