// Package device owns the board context: claimed pins, ADC access and
// PWM handles, behind interfaces so the console logic runs unchanged on
// a workstation.
package device

// OutPin drives a claimed output.
type OutPin interface {
	High()
	Low()
	Set(on bool)
	Toggle()
	IsHigh() bool
}

// InPin reads a claimed input.
type InPin interface {
	Get() bool
}

// ADC channel numbering: 0..3 are the muxed pins (GPIO 26..29), channel
// 4 is the internal temperature sensor.
const (
	ADCChannels = 4
	TempChannel = 4
)

// ADCBank samples the analog frontend. Readings are 16-bit full scale.
type ADCBank interface {
	ReadChannel(ch int) (uint16, error)
}

// PWMPin is one channel of a PWM slice.
type PWMPin interface {
	// Configure sets the slice frequency and this channel's logical
	// resolution. Fails with SliceBusy when the other channel of the
	// slice already runs at a different frequency.
	Configure(freqHz uint64, top uint16) error
	// SetLevel drives a duty of level/top.
	SetLevel(level uint16)
	// SetMicros drives a pulse width, for servo style loads.
	SetMicros(us uint32) error
	// SetPhaseCorrect switches to centre-aligned counting where the
	// hardware supports it.
	SetPhaseCorrect(on bool) error
	Disable()
	Top() uint16
	Freq() uint64
	// Info identifies the slice, channel letter and pin.
	Info() (slice int, ch rune, pin int)
}

// backend is the platform half: pin factories and reset hooks.
type backend interface {
	Output(pin int) OutPin
	Input(pin int) InPin
	ADC() ADCBank
	PWM(pin int) (PWMPin, error)
	Reset()
	ResetToBootloader()
}
