//go:build rp2040

package device

import (
	"machine"
	"sync"
	"time"

	"picocli-go/errcode"
	"picocli-go/x/mathx"
	"picocli-go/x/timex"
)

type mcu struct {
	adcOnce sync.Once
	adc     *mcuADC
}

func newBackend() backend { return &mcu{} }

func (m *mcu) Output(pin int) OutPin {
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &mcuOut{p: p}
}

func (m *mcu) Input(pin int) InPin {
	p := machine.Pin(pin)
	p.Configure(machine.PinConfig{Mode: machine.PinInputPulldown})
	return &mcuIn{p: p}
}

func (m *mcu) ADC() ADCBank {
	m.adcOnce.Do(func() {
		machine.InitADC()
		a := &mcuADC{}
		for ch := 0; ch < ADCChannels; ch++ {
			a.ch[ch] = machine.ADC{Pin: machine.Pin(26 + ch)}
			a.ch[ch].Configure(machine.ADCConfig{})
		}
		m.adc = a
	})
	return m.adc
}

func (m *mcu) PWM(pin int) (PWMPin, error) {
	sliceNum, err := machine.PWMPeripheral(machine.Pin(pin))
	if err != nil {
		return nil, &errcode.E{C: errcode.Unsupported, Op: "pwm", Err: err}
	}
	return &mcuPWM{
		pin:   pin,
		ctrl:  pwmForSlice(int(sliceNum)),
		chIdx: uint8(pin) & 1,
		slice: int(sliceNum),
	}, nil
}

// Watchdog reset re-enumerates USB more reliably than SYSRESETREQ.
func (m *mcu) Reset() {
	machine.Watchdog.Configure(machine.WatchdogConfig{TimeoutMillis: 1})
	machine.Watchdog.Start()
	for {
		time.Sleep(time.Millisecond)
	}
}

func (m *mcu) ResetToBootloader() {
	machine.EnterBootloader()
}

type mcuOut struct{ p machine.Pin }

func (o *mcuOut) High()        { o.p.High() }
func (o *mcuOut) Low()         { o.p.Low() }
func (o *mcuOut) Set(on bool)  { o.p.Set(on) }
func (o *mcuOut) IsHigh() bool { return o.p.Get() }
func (o *mcuOut) Toggle()      { o.p.Set(!o.p.Get()) }

type mcuIn struct{ p machine.Pin }

func (i *mcuIn) Get() bool { return i.p.Get() }

type mcuADC struct {
	ch [ADCChannels]machine.ADC
}

func (a *mcuADC) ReadChannel(ch int) (uint16, error) {
	switch {
	case ch >= 0 && ch < ADCChannels:
		return a.ch[ch].Get(), nil
	case ch == TempChannel:
		return tempToRaw(machine.ReadTemperature()), nil
	}
	return 0, errcode.New(errcode.UnknownPin, "adc channel out of range")
}

// tempToRaw folds a millidegree reading back into sensor counts so the
// shared conversion path applies everywhere.
func tempToRaw(milliC int32) uint16 {
	v := 0.706 - (float32(milliC)/1000-27)*0.001721
	raw := v / 3.3 * 65535
	if raw < 0 {
		return 0
	}
	if raw > 65535 {
		return 65535
	}
	return uint16(raw)
}

// pwmCtrl is the slice controller surface of machine.PWM0..PWM7.
type pwmCtrl interface {
	Configure(cfg machine.PWMConfig) error
	Top() uint32
	Set(ch uint8, value uint32)
}

func pwmForSlice(slice int) pwmCtrl {
	switch slice {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	default:
		return machine.PWM7
	}
}

type sliceCfg struct {
	freqHz uint64
	users  int
}

var pwmSlices struct {
	mu    sync.Mutex
	slice [8]*sliceCfg
}

// mcuPWM is one channel of a slice. Levels are logical [0..reqTop] and
// scale onto the hardware top chosen by Configure.
type mcuPWM struct {
	mu    sync.Mutex
	pin   int
	ctrl  pwmCtrl
	chIdx uint8
	slice int

	reqTop uint16
	freqHz uint64
	hwTop  uint32
	level  uint16

	registered bool
}

func (p *mcuPWM) Configure(freqHz uint64, top uint16) error {
	top = mathx.Max(top, 1)
	freqHz = mathx.Max(freqHz, 1)

	pwmSlices.mu.Lock()
	defer pwmSlices.mu.Unlock()

	sc := pwmSlices.slice[p.slice]
	if sc == nil {
		sc = &sliceCfg{}
		pwmSlices.slice[p.slice] = sc
	}

	switch {
	case sc.users == 0:
		if err := p.configureSlice(freqHz); err != nil {
			return err
		}
		sc.freqHz = freqHz
		sc.users = 1
		p.registered = true
	case !p.registered:
		if sc.freqHz != freqHz {
			return errcode.SliceBusy
		}
		sc.users++
		p.registered = true
	case sc.users == 1 && sc.freqHz != freqHz:
		// sole user may retune the slice
		if err := p.configureSlice(freqHz); err != nil {
			return err
		}
		sc.freqHz = freqHz
	case sc.freqHz != freqHz:
		return errcode.SliceBusy
	}

	machine.Pin(p.pin).Configure(machine.PinConfig{Mode: machine.PinPWM})

	p.mu.Lock()
	p.freqHz = freqHz
	p.reqTop = top
	p.hwTop = p.ctrl.Top()
	p.mu.Unlock()
	return nil
}

func (p *mcuPWM) configureSlice(freqHz uint64) error {
	period := timex.PeriodFromHz(uint32(freqHz))
	if err := p.ctrl.Configure(machine.PWMConfig{Period: period}); err != nil {
		return &errcode.E{C: errcode.Failed, Op: "pwm configure", Err: err}
	}
	return nil
}

// caller holds no lock
func (p *mcuPWM) SetLevel(level uint16) {
	p.mu.Lock()
	p.setHW(level)
	p.mu.Unlock()
}

// caller holds p.mu
func (p *mcuPWM) setHW(logical uint16) {
	if p.hwTop == 0 || p.reqTop == 0 {
		return
	}
	logical = mathx.Min(logical, p.reqTop)
	hw := (uint32(logical) * p.hwTop) / uint32(p.reqTop)
	p.ctrl.Set(p.chIdx, hw)
	p.level = logical
}

func (p *mcuPWM) SetMicros(us uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.freqHz == 0 || p.reqTop == 0 {
		return errcode.New(errcode.Failed, "pwm not configured")
	}
	periodUs := timex.PeriodFromHz(uint32(p.freqHz)) / 1000
	lvl := uint64(p.reqTop) * uint64(us) / periodUs
	if lvl > uint64(p.reqTop) {
		lvl = uint64(p.reqTop)
	}
	p.setHW(uint16(lvl))
	return nil
}

func (p *mcuPWM) SetPhaseCorrect(bool) error {
	return errcode.New(errcode.Unsupported, "phase correct counting is not exposed on this target")
}

func (p *mcuPWM) Disable() {
	p.mu.Lock()
	p.setHW(0)
	p.mu.Unlock()
}

func (p *mcuPWM) Top() uint16 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reqTop
}

func (p *mcuPWM) Freq() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.freqHz
}

func (p *mcuPWM) Info() (int, rune, int) {
	ch := 'A'
	if p.chIdx == 1 {
		ch = 'B'
	}
	return p.slice, ch, p.pin
}
