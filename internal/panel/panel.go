// Package panel draws the board status screen: a title line, the state of
// both push buttons and the ADC input voltage.
package panel

import (
	"context"
	"fmt"
	"time"

	"github.com/flavioheleno/ssd1327/internal/board"
	"github.com/flavioheleno/ssd1327/internal/log"
)

// Title is the first line of the screen.
const Title = "OLED-OmnixriJack"

const (
	lineTitle = 0
	lineLeft  = 20
	lineRight = 40
	lineVolts = 60

	foreground = 15
)

// Canvas is the drawing surface Render needs.
type Canvas interface {
	Fill(color byte)
	Text(s string, x, y int, color byte)
}

// Display is a Canvas that can be pushed to the panel.
type Display interface {
	Canvas
	Show() error
}

// Snapshot is one reading of the board inputs.
type Snapshot struct {
	Left  bool
	Right bool
	Volts float64
}

// Render clears c and draws s.
func Render(c Canvas, s Snapshot) {
	c.Fill(0)
	c.Text(Title, 0, lineTitle, foreground)
	c.Text("L  Press : "+onOff(s.Left), 0, lineLeft, foreground)
	c.Text("R  Press : "+onOff(s.Right), 0, lineRight, foreground)
	c.Text(fmt.Sprintf("ADC Volt : %.3f", s.Volts), 0, lineVolts, foreground)
}

func onOff(b bool) string {
	if b {
		return "On"
	}
	return "Off"
}

// Board groups the inputs and outputs the panel reflects. Nil members are
// skipped.
type Board struct {
	Left     *board.Button
	Right    *board.Button
	LeftLED  *board.LED
	RightLED *board.LED
	Volts    *board.Voltmeter
	// Dimmer, when set, mirrors the ADC on a PWM output each frame.
	Dimmer *board.Dimmer
}

// Sample reads the inputs and lights each LED while its button is held.
func (b *Board) Sample() (Snapshot, error) {
	var s Snapshot
	if b.Left != nil {
		s.Left = b.Left.Pressed()
	}
	if b.Right != nil {
		s.Right = b.Right.Pressed()
	}
	if b.LeftLED != nil {
		if err := b.LeftLED.Set(s.Left); err != nil {
			return s, fmt.Errorf("panel: left led: %w", err)
		}
	}
	if b.RightLED != nil {
		if err := b.RightLED.Set(s.Right); err != nil {
			return s, fmt.Errorf("panel: right led: %w", err)
		}
	}
	if b.Volts != nil {
		v, err := b.Volts.Volts()
		if err != nil {
			return s, fmt.Errorf("panel: voltmeter: %w", err)
		}
		s.Volts = v
	}
	if b.Dimmer != nil {
		if _, err := b.Dimmer.Update(); err != nil {
			return s, fmt.Errorf("panel: dimmer: %w", err)
		}
	}
	return s, nil
}

// Run samples b, renders and shows a frame every interval until ctx is
// cancelled. A failed sample or Show ends the loop with the error.
func Run(ctx context.Context, d Display, b *Board, every time.Duration) error {
	if every <= 0 {
		return fmt.Errorf("panel: refresh interval must be positive, got %s", every)
	}

	ticker := time.NewTicker(every)
	defer ticker.Stop()

	var last Snapshot
	for frame := 0; ; frame++ {
		s, err := b.Sample()
		if err != nil {
			return err
		}
		if frame == 0 || s != last {
			log.Debug("panel state", "left", s.Left, "right", s.Right, "volts", fmt.Sprintf("%.3f", s.Volts))
		}
		last = s

		Render(d, s)
		if err := d.Show(); err != nil {
			return fmt.Errorf("panel: show: %w", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
