package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"picocli-go/cli"
	"picocli-go/config"
	"picocli-go/core1"
	"picocli-go/device"
	"picocli-go/errcode"
	"picocli-go/pinmap"
	"picocli-go/serialio"
)

type testEnv struct {
	deps Deps
	cli  *cli.CLI
	port *serialio.LoopbackPort
	tr   *serialio.Transport
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dev, err := device.New(pinmap.Board())
	if err != nil {
		t.Fatalf("device.New: %v", err)
	}
	port := serialio.NewLoopbackPort()
	tr := serialio.New(port)
	deps := Deps{
		Dev:     dev,
		Console: tr,
		Queue:   core1.NewQueue(),
		Settings: config.Settings{
			Product:      "test",
			BreakChar:    '~',
			DefaultPWMHz: 50,
			StatusRefRes: 10000,
		},
	}
	reg := cli.NewRegistry()
	Register(reg, deps)
	return &testEnv{deps: deps, cli: cli.New(reg), port: port, tr: tr}
}

func (e *testEnv) run(t *testing.T, line string) string {
	t.Helper()
	var out bytes.Buffer
	if err := e.cli.Execute(line, &out); err != nil {
		t.Fatalf("Execute(%q): %v", line, err)
	}
	return out.String()
}

// runCancellable executes a long-running command and sends the break
// character once started.
func (e *testEnv) runCancellable(t *testing.T, line string, after time.Duration) string {
	t.Helper()
	var out bytes.Buffer
	var err error
	done := make(chan struct{})
	go func() {
		err = e.cli.Execute(line, &out)
		close(done)
	}()

	time.Sleep(after)
	e.port.PushInput([]byte{'~'})
	deadline := time.After(2 * time.Second)
	for {
		e.tr.Poll()
		select {
		case <-done:
			if err != nil {
				t.Fatalf("Execute(%q): %v", line, err)
			}
			return out.String()
		case <-deadline:
			t.Fatalf("Execute(%q) never returned after break", line)
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestPinDriveAndRead(t *testing.T) {
	e := newTestEnv(t)

	out := e.run(t, "pin alias=LED high")
	if !strings.Contains(out, "LED (GPIO25) is high") {
		t.Fatalf("output = %q", out)
	}
	if !e.deps.Dev.Sim().Pin(25).IsHigh() {
		t.Fatal("LED not driven")
	}

	out = e.run(t, "pin gpio=25 toggle")
	if !strings.Contains(out, "is low") {
		t.Fatalf("toggle output = %q", out)
	}

	// input pins read back
	e.deps.Dev.Sim().Pin(9).Set(true)
	out = e.run(t, "pin alias=IN_A")
	if !strings.Contains(out, "IN_A (GPIO9) reads high") {
		t.Fatalf("input output = %q", out)
	}

	// driving an input is refused
	var buf bytes.Buffer
	if err := e.cli.Execute("pin alias=IN_A high", &buf); !errcode.Is(err, errcode.Unsupported) {
		t.Fatalf("drive input err = %v", err)
	}
}

func TestPinRequiresTarget(t *testing.T) {
	e := newTestEnv(t)
	err := e.cli.Execute("pin high", new(bytes.Buffer))
	if !errcode.Is(err, errcode.MissingArg) {
		t.Fatalf("err = %v, want MissingArg", err)
	}
}

func TestReadADC(t *testing.T) {
	e := newTestEnv(t)
	sim := e.deps.Dev.Sim()
	adc, _ := sim.ADC().(*device.SimADC)
	adc.SetSample(0, 32768)
	adc.SetSample(device.TempChannel, 14021) // about 0.706 V

	out := e.run(t, "read_adc")
	if !strings.Contains(out, "ADC0 (GPIO26) raw=32768") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, "Temp sensor: 27.0 C") {
		t.Fatalf("temp line missing: %q", out)
	}
}

func TestSetPWM(t *testing.T) {
	e := newTestEnv(t)

	out := e.run(t, "set_pwm alias=PWM4_A freq=100 top=2000 duty=25")
	if !strings.Contains(out, "PWM4_A (GPIO8)") || !strings.Contains(out, "freq=100Hz top=2000") {
		t.Fatalf("output = %q", out)
	}
	p, err := e.deps.Dev.PWM(8)
	if err != nil {
		t.Fatal(err)
	}
	if lvl := p.(*device.SimPWM).Level(); lvl != 500 {
		t.Fatalf("level = %d, want 500", lvl)
	}

	e.run(t, "set_pwm gpio=8 duty_us=1500 freq=100 top=2000")
	// 100 Hz is 10000 us period; 1500 us of 2000 top is 300
	if lvl := p.(*device.SimPWM).Level(); lvl != 300 {
		t.Fatalf("duty_us level = %d, want 300", lvl)
	}

	e.run(t, "set_pwm gpio=8 disable")
	if !p.(*device.SimPWM).Disabled() {
		t.Fatal("disable did not reach the channel")
	}
}

func TestSetPWMPhaseOnSim(t *testing.T) {
	e := newTestEnv(t)
	e.run(t, "set_pwm alias=PWM3_A freq=50 phase")
	p, _ := e.deps.Dev.PWM(6)
	if !p.(*device.SimPWM).PhaseCorrect() {
		t.Fatal("phase flag lost")
	}
}

func TestServoPosition(t *testing.T) {
	e := newTestEnv(t)
	out := e.run(t, "servo alias=PWM4_A us=1200")
	if !strings.Contains(out, "pulse=1200us") {
		t.Fatalf("output = %q", out)
	}
	p, _ := e.deps.Dev.PWM(8)
	if lvl := p.(*device.SimPWM).Level(); lvl != 1200 {
		t.Fatalf("level = %d, want 1200", lvl)
	}
}

func TestBlinkCompletes(t *testing.T) {
	e := newTestEnv(t)
	out := e.run(t, "blink times=2 interval=1")
	if !strings.Contains(out, "Blinked 2 times") {
		t.Fatalf("output = %q", out)
	}
	pin := e.deps.Dev.Sim().Pin(25)
	if pin.Toggles != 4 {
		t.Fatalf("toggles = %d, want 4", pin.Toggles)
	}
	if pin.IsHigh() {
		t.Fatal("LED should end low")
	}
}

func TestBlinkRejectsOverflowCount(t *testing.T) {
	e := newTestEnv(t)
	// a count past uint32 must fail the parse, not wrap to an
	// unbounded run
	err := e.cli.Execute("blink times=4294967296 interval=1", new(bytes.Buffer))
	if !errcode.Is(err, errcode.Parse) {
		t.Fatalf("err = %v, want Parse", err)
	}
	if got := e.deps.Dev.Sim().Pin(25).Toggles; got != 0 {
		t.Fatalf("LED toggled %d times on a rejected command", got)
	}
}

func TestBlinkBgQueue(t *testing.T) {
	e := newTestEnv(t)
	for i := 0; i < core1.QueueDepth; i++ {
		out := e.run(t, "blink_bg times=1")
		if !strings.Contains(out, "Queued 1 blinks") {
			t.Fatalf("output = %q", out)
		}
	}
	err := e.cli.Execute("blink_bg times=1", new(bytes.Buffer))
	if !errcode.Is(err, errcode.WouldBlock) {
		t.Fatalf("full queue err = %v, want WouldBlock", err)
	}
}

func TestSampleADCCancellation(t *testing.T) {
	e := newTestEnv(t)
	adc, _ := e.deps.Dev.Sim().ADC().(*device.SimADC)
	adc.SetSample(1, 1000)

	out := e.runCancellable(t, "sample_adc channel=1 interval=5", 20*time.Millisecond)
	if !strings.Contains(out, "ADC1 raw=1000") {
		t.Fatalf("no samples seen: %q", out)
	}
	if !strings.Contains(out, "Sampling Interrupted") {
		t.Fatalf("no interrupt trailer: %q", out)
	}
}

func TestTestGPIOMirror(t *testing.T) {
	e := newTestEnv(t)
	sim := e.deps.Dev.Sim()

	go func() {
		time.Sleep(15 * time.Millisecond)
		sim.Pin(9).Set(true)
	}()

	out := e.runCancellable(t, "test_gpio", 60*time.Millisecond)
	if !strings.Contains(out, "Mirroring IN_A (GPIO9) -> OUT_A (GPIO0)") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, "Mirror Interrupted") {
		t.Fatalf("no interrupt trailer: %q", out)
	}
}

func TestTestAnalogFollower(t *testing.T) {
	e := newTestEnv(t)
	adc, _ := e.deps.Dev.Sim().ADC().(*device.SimADC)
	adc.SetSample(0, 65535)

	out := e.runCancellable(t, "test_analog", 80*time.Millisecond)
	if !strings.Contains(out, "Follower Interrupted") {
		t.Fatalf("output = %q", out)
	}
	p, _ := e.deps.Dev.PWM(8)
	if lvl := p.(*device.SimPWM).Level(); lvl != 2000 {
		t.Fatalf("level = %d, want max_us 2000", lvl)
	}
}

func TestLogCommand(t *testing.T) {
	e := newTestEnv(t)
	out := e.run(t, "log level=debug")
	if !strings.Contains(out, "Log level: DEBUG") {
		t.Fatalf("output = %q", out)
	}
	// values keep their case on the wire; the level name must not
	out = e.run(t, "log level=Trace")
	if !strings.Contains(out, "Log level: TRACE") {
		t.Fatalf("mixed case output = %q", out)
	}
	err := e.cli.Execute("log level=loud", new(bytes.Buffer))
	if !errcode.Is(err, errcode.Parse) {
		t.Fatalf("bad level err = %v", err)
	}
}

func TestExampleCommand(t *testing.T) {
	e := newTestEnv(t)
	out := e.run(t, `example text="ping pong" n=2 loud`)
	if strings.Count(out, "PING PONG") != 2 {
		t.Fatalf("output = %q", out)
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	e := newTestEnv(t)
	out := e.run(t, "")
	for _, name := range []string{
		"help", "reset", "flash", "pin", "read_adc", "sample_adc",
		"set_pwm", "servo", "blink", "blink_bg", "test_gpio",
		"test_analog", "log", "example",
	} {
		if !strings.Contains(out, name) {
			t.Fatalf("help missing %q: %q", name, out)
		}
	}
}

func TestResetCountsOnSim(t *testing.T) {
	e := newTestEnv(t)
	e.run(t, "reset")
	e.run(t, "flash")
	sim := e.deps.Dev.Sim()
	if sim.Resets != 1 || sim.Bootloaders != 1 {
		t.Fatalf("resets=%d bootloaders=%d", sim.Resets, sim.Bootloaders)
	}
}
