package device

import (
	"strconv"
	"sync/atomic"
	"time"

	"picocli-go/errcode"
	"picocli-go/pinmap"
)

// Device is the claimed board state handed to every command.
type Device struct {
	Pins  *pinmap.Map
	Clock func() time.Time

	b    backend
	outs map[int]OutPin
	ins  map[int]InPin
	pwms map[int]PWMPin
	adc  ADCBank
}

// New claims every assigned pin in the table and builds its handle.
// The walk is table-driven: adding a pin to the board map is all it
// takes to get it claimed and surfaced here.
func New(pins *pinmap.Map) (*Device, error) {
	d := &Device{
		Pins:  pins,
		Clock: time.Now,
		b:     newBackend(),
		outs:  make(map[int]OutPin),
		ins:   make(map[int]InPin),
		pwms:  make(map[int]PWMPin),
	}
	d.adc = d.b.ADC()

	for _, def := range pins.Defs() {
		if def.ID == pinmap.NA {
			continue
		}
		switch def.Group {
		case pinmap.GroupOutput, pinmap.GroupCore1Output:
			if err := pins.Claim(def.ID); err != nil {
				return nil, err
			}
			d.outs[def.ID] = d.b.Output(def.ID)
		case pinmap.GroupInput, pinmap.GroupCore1Input:
			if err := pins.Claim(def.ID); err != nil {
				return nil, err
			}
			d.ins[def.ID] = d.b.Input(def.ID)
		case pinmap.GroupADC:
			if err := pins.Claim(def.ID); err != nil {
				return nil, err
			}
		case pinmap.GroupPWM:
			if err := pins.Claim(def.ID); err != nil {
				return nil, err
			}
			h, err := d.b.PWM(def.ID)
			if err != nil {
				return nil, err
			}
			d.pwms[def.ID] = h
		}
	}
	return d, nil
}

var opened atomic.Bool

// Open builds the singleton device for the firmware entry point.
// A second call is a wiring bug and fails loudly.
func Open() (*Device, error) {
	if !opened.CompareAndSwap(false, true) {
		return nil, errcode.New(errcode.Failed, "device already initialised")
	}
	return New(pinmap.Board())
}

// Output returns the handle for a claimed output pin.
func (d *Device) Output(id int) (OutPin, error) {
	if p, ok := d.outs[id]; ok {
		return p, nil
	}
	return nil, errcode.New(errcode.UnknownPin, "gpio "+strconv.Itoa(id)+" is not an output")
}

// Input returns the handle for a claimed input pin.
func (d *Device) Input(id int) (InPin, error) {
	if p, ok := d.ins[id]; ok {
		return p, nil
	}
	return nil, errcode.New(errcode.UnknownPin, "gpio "+strconv.Itoa(id)+" is not an input")
}

// PWM returns the handle for a claimed PWM pin.
func (d *Device) PWM(id int) (PWMPin, error) {
	if p, ok := d.pwms[id]; ok {
		return p, nil
	}
	return nil, errcode.New(errcode.UnknownPin, "gpio "+strconv.Itoa(id)+" is not a pwm pin")
}

// ADC exposes the analog bank.
func (d *Device) ADC() ADCBank { return d.adc }

// LED is the status output used by the boot sequence.
func (d *Device) LED() (OutPin, error) {
	id, err := d.Pins.GPIO("LED")
	if err != nil {
		return nil, err
	}
	return d.Output(id)
}

// Reset restarts the firmware.
func (d *Device) Reset() { d.b.Reset() }

// ResetToBootloader reboots into the mass-storage bootloader.
func (d *Device) ResetToBootloader() { d.b.ResetToBootloader() }
