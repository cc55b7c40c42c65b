// Package board wraps the push buttons, LEDs and analog input of the demo
// board around periph.io pins.
package board

import (
	"fmt"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
)

// FullScale is the largest raw ADC reading. Samples are expected as 16-bit
// unsigned values.
const FullScale = 65535

// PWMFrequency is the frequency the Dimmer drives its output at.
const PWMFrequency = 1 * physic.KiloHertz

// Button is a push button between the pin and ground, read with the internal
// pull-up enabled.
type Button struct {
	pin gpio.PinIn
}

// NewButton configures p as an input with pull-up.
func NewButton(p gpio.PinIn) (*Button, error) {
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("board: button %s: %w", p, err)
	}
	return &Button{pin: p}, nil
}

// Pressed reports whether the button is held down (pin pulled low).
func (b *Button) Pressed() bool {
	return b.pin.Read() == gpio.Low
}

// LED is an LED driven high to light.
type LED struct {
	pin gpio.PinOut
}

// NewLED configures p as an output, initially off.
func NewLED(p gpio.PinOut) (*LED, error) {
	if err := p.Out(gpio.Low); err != nil {
		return nil, fmt.Errorf("board: led %s: %w", p, err)
	}
	return &LED{pin: p}, nil
}

// Set turns the LED on or off.
func (l *LED) Set(on bool) error {
	return l.pin.Out(gpio.Level(on))
}

// Sampler is the part of analog.PinADC used here.
type Sampler interface {
	Read() (analog.Sample, error)
}

// Voltmeter converts raw ADC readings to volts.
type Voltmeter struct {
	adc  Sampler
	vref float64
}

// NewVoltmeter returns a Voltmeter whose full scale reading is vref volts.
func NewVoltmeter(adc Sampler, vref float64) *Voltmeter {
	return &Voltmeter{adc: adc, vref: vref}
}

// Read returns the raw reading, clamped to [0, FullScale].
func (v *Voltmeter) Read() (uint16, error) {
	return read(v.adc)
}

// Volts returns the current input voltage.
func (v *Voltmeter) Volts() (float64, error) {
	raw, err := read(v.adc)
	if err != nil {
		return 0, err
	}
	return Volts(raw, v.vref), nil
}

// Volts converts a raw reading to volts.
func Volts(raw uint16, vref float64) float64 {
	return float64(raw) * vref / FullScale
}

// Dimmer copies the ADC reading to a PWM output, so a potentiometer sets an
// LED's brightness.
type Dimmer struct {
	adc Sampler
	out gpio.PinOut
}

// NewDimmer returns a Dimmer reading adc and driving out.
func NewDimmer(adc Sampler, out gpio.PinOut) *Dimmer {
	return &Dimmer{adc: adc, out: out}
}

// Update samples the input once and sets the output duty cycle. It returns
// the raw reading.
func (d *Dimmer) Update() (uint16, error) {
	raw, err := read(d.adc)
	if err != nil {
		return 0, err
	}
	if err := d.out.PWM(Duty(raw), PWMFrequency); err != nil {
		return raw, fmt.Errorf("board: pwm %s: %w", d.out, err)
	}
	return raw, nil
}

// Duty scales a raw reading to a PWM duty cycle.
func Duty(raw uint16) gpio.Duty {
	return gpio.Duty(uint64(raw) * uint64(gpio.DutyMax) / FullScale)
}

func read(adc Sampler) (uint16, error) {
	s, err := adc.Read()
	if err != nil {
		return 0, fmt.Errorf("board: adc: %w", err)
	}
	switch {
	case s.Raw < 0:
		return 0, nil
	case s.Raw > FullScale:
		return FullScale, nil
	}
	return uint16(s.Raw), nil
}
