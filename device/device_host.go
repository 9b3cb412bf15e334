//go:build !rp2040

package device

import (
	"sync"

	"picocli-go/errcode"
	"picocli-go/x/timex"
)

// Sim is the workstation backend: every handle is an inspectable,
// settable stand-in so command logic can run under go test.
type Sim struct {
	mu     sync.Mutex
	pins   map[int]*SimPin
	pwms   map[int]*SimPWM
	adc    *SimADC
	slices map[int]*simSlice

	Resets      int
	Bootloaders int
}

func NewSim() *Sim {
	return &Sim{
		pins:   make(map[int]*SimPin),
		pwms:   make(map[int]*SimPWM),
		adc:    &SimADC{},
		slices: make(map[int]*simSlice),
	}
}

func newBackend() backend { return NewSim() }

// Sim exposes the backend for tests and the host build.
func (d *Device) Sim() *Sim { return d.b.(*Sim) }

func (s *Sim) pin(n int) *SimPin {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pins[n]; ok {
		return p
	}
	p := &SimPin{}
	s.pins[n] = p
	return p
}

func (s *Sim) Output(pin int) OutPin { return s.pin(pin) }
func (s *Sim) Input(pin int) InPin   { return s.pin(pin) }
func (s *Sim) ADC() ADCBank          { return s.adc }

func (s *Sim) PWM(pin int) (PWMPin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pwms[pin]; ok {
		return p, nil
	}
	slice := (pin >> 1) & 7
	sc, ok := s.slices[slice]
	if !ok {
		sc = &simSlice{}
		s.slices[slice] = sc
	}
	p := &SimPWM{pin: pin, slice: sc, sliceNum: slice}
	s.pwms[pin] = p
	return p, nil
}

func (s *Sim) Reset()             { s.mu.Lock(); s.Resets++; s.mu.Unlock() }
func (s *Sim) ResetToBootloader() { s.mu.Lock(); s.Bootloaders++; s.mu.Unlock() }

// Pin gives tests direct access to a pin's simulated state.
func (s *Sim) Pin(n int) *SimPin { return s.pin(n) }

// SimPin is both an output and an input; tests flip inputs with Set.
type SimPin struct {
	mu      sync.Mutex
	high    bool
	Toggles int
}

func (p *SimPin) High()     { p.Set(true) }
func (p *SimPin) Low()      { p.Set(false) }
func (p *SimPin) Get() bool { return p.IsHigh() }

func (p *SimPin) Set(on bool) {
	p.mu.Lock()
	p.high = on
	p.mu.Unlock()
}

func (p *SimPin) Toggle() {
	p.mu.Lock()
	p.high = !p.high
	p.Toggles++
	p.mu.Unlock()
}

func (p *SimPin) IsHigh() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.high
}

// SimADC returns whatever the test loaded per channel.
type SimADC struct {
	mu      sync.Mutex
	samples [TempChannel + 1]uint16
}

func (a *SimADC) SetSample(ch int, raw uint16) {
	a.mu.Lock()
	if ch >= 0 && ch < len(a.samples) {
		a.samples[ch] = raw
	}
	a.mu.Unlock()
}

func (a *SimADC) ReadChannel(ch int) (uint16, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if ch < 0 || ch >= len(a.samples) {
		return 0, errcode.New(errcode.UnknownPin, "adc channel out of range")
	}
	return a.samples[ch], nil
}

type simSlice struct {
	freqHz uint64
	users  int
}

// SimPWM mirrors the hardware's slice frequency policy: both channels
// of a slice share one frequency; the second user must match.
type SimPWM struct {
	mu       sync.Mutex
	pin      int
	sliceNum int
	slice    *simSlice

	freqHz     uint64
	top        uint16
	level      uint16
	phase      bool
	disabled   bool
	registered bool
}

func (p *SimPWM) Configure(freqHz uint64, top uint16) error {
	if freqHz == 0 {
		freqHz = 1
	}
	if top == 0 {
		top = 1
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	sc := p.slice
	switch {
	case sc.users == 0:
		sc.freqHz = freqHz
		sc.users = 1
		p.registered = true
	case !p.registered:
		if sc.freqHz != freqHz {
			return errcode.SliceBusy
		}
		sc.users++
		p.registered = true
	case sc.users == 1:
		sc.freqHz = freqHz
	case sc.freqHz != freqHz:
		return errcode.SliceBusy
	}
	p.freqHz = freqHz
	p.top = top
	p.disabled = false
	return nil
}

func (p *SimPWM) SetLevel(level uint16) {
	p.mu.Lock()
	if level > p.top {
		level = p.top
	}
	p.level = level
	p.disabled = false
	p.mu.Unlock()
}

func (p *SimPWM) SetMicros(us uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.freqHz == 0 || p.top == 0 {
		return errcode.New(errcode.Failed, "pwm not configured")
	}
	periodUs := timex.PeriodFromHz(uint32(p.freqHz)) / 1000
	lvl := uint64(p.top) * uint64(us) / periodUs
	if lvl > uint64(p.top) {
		lvl = uint64(p.top)
	}
	p.level = uint16(lvl)
	return nil
}

func (p *SimPWM) SetPhaseCorrect(on bool) error {
	p.mu.Lock()
	p.phase = on
	p.mu.Unlock()
	return nil
}

func (p *SimPWM) Disable() {
	p.mu.Lock()
	p.level = 0
	p.disabled = true
	p.mu.Unlock()
}

func (p *SimPWM) Top() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.top
}

func (p *SimPWM) Freq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freqHz
}

func (p *SimPWM) Info() (int, rune, int) {
	ch := 'A'
	if p.pin&1 == 1 {
		ch = 'B'
	}
	return p.sliceNum, ch, p.pin
}

// Level exposes the driven duty for assertions.
func (p *SimPWM) Level() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

// Disabled reports whether the channel was switched off.
func (p *SimPWM) Disabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.disabled
}

// PhaseCorrect reports the simulated counting mode.
func (p *SimPWM) PhaseCorrect() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}
