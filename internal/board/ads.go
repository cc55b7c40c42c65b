package board

import (
	"fmt"
	"strings"

	"periph.io/x/conn/v3/analog"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/ads1x15"
)

// ADCRate is the conversion rate requested from the ADS1115.
const ADCRate = 10 * physic.Hertz

// ADCChannel maps "A0" to "A3" (any case) to a single-ended ADS1115 channel.
func ADCChannel(name string) (ads1x15.Channel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "A0":
		return ads1x15.Channel0, nil
	case "A1":
		return ads1x15.Channel1, nil
	case "A2":
		return ads1x15.Channel2, nil
	case "A3":
		return ads1x15.Channel3, nil
	}
	return 0, fmt.Errorf("board: unknown ADC channel %q, want A0 to A3", name)
}

// OpenADS1115 returns a Sampler for one channel of an ADS1115 at addr on bus
// (0 selects the default 0x48). Readings are rescaled so that vref volts is
// FullScale.
func OpenADS1115(bus i2c.Bus, addr uint16, channel string, vref float64) (Sampler, error) {
	ch, err := ADCChannel(channel)
	if err != nil {
		return nil, err
	}
	if vref <= 0 {
		return nil, fmt.Errorf("board: invalid reference voltage %g", vref)
	}
	opts := ads1x15.DefaultOpts
	if addr != 0 {
		opts.I2cAddress = addr
	}
	dev, err := ads1x15.NewADS1115(bus, &opts)
	if err != nil {
		return nil, fmt.Errorf("board: ads1115: %w", err)
	}
	pin, err := dev.PinForChannel(ch, volts(vref), ADCRate, ads1x15.SaveEnergy)
	if err != nil {
		return nil, fmt.Errorf("board: ads1115 %s: %w", channel, err)
	}
	return Rescale(pin, vref), nil
}

// Rescale returns a Sampler whose Raw value is the measured voltage scaled so
// that vref is FullScale. Converters report Raw in their own range, which
// depends on resolution and gain; V is always in volts.
func Rescale(adc Sampler, vref float64) Sampler {
	return &rescaled{adc: adc, vref: vref}
}

type rescaled struct {
	adc  Sampler
	vref float64
}

func (r *rescaled) Read() (analog.Sample, error) {
	s, err := r.adc.Read()
	if err != nil {
		return s, err
	}
	v := float64(s.V) / float64(physic.Volt)
	raw := v / r.vref * FullScale
	switch {
	case raw < 0:
		raw = 0
	case raw > FullScale:
		raw = FullScale
	}
	s.Raw = int32(raw + 0.5)
	return s, nil
}

func volts(v float64) physic.ElectricPotential {
	return physic.ElectricPotential(v * float64(physic.Volt))
}
