// Package program runs the console: boot, greet, then the
// read-dispatch loop.
package program

import (
	"time"

	"picocli-go/cli"
	"picocli-go/config"
	"picocli-go/device"
	"picocli-go/errcode"
	"picocli-go/fifo"
	"picocli-go/logx"
	"picocli-go/serialio"
	"picocli-go/x/fmtx"
	"picocli-go/x/timex"
)

// lineBufferSize bounds one typed command line.
const lineBufferSize = 192

type Program struct {
	Dev      *device.Device
	Tr       *serialio.Transport
	CLI      *cli.CLI
	Settings config.Settings

	started time.Time
}

func New(dev *device.Device, tr *serialio.Transport, c *cli.CLI, s config.Settings) *Program {
	return &Program{Dev: dev, Tr: tr, CLI: c, Settings: s}
}

// Init wires the ambient plumbing and starts the transport service.
func (p *Program) Init(stop <-chan struct{}) {
	p.started = p.Dev.Clock()
	fmtx.DefaultOutput = p.Tr
	logx.SetOutput(p.Tr)
	if lvl, ok := logx.ParseLevel(p.Settings.LogLevel); ok {
		logx.SetLevel(lvl)
	}
	p.Tr.SetBreakChar(p.Settings.BreakChar)
	go p.Tr.Serve(stop)
}

// Run blocks until stop closes. A dropped connection sends the loop
// back to the waiting blink.
func (p *Program) Run(stop <-chan struct{}) {
	for {
		if !p.waitForConnection(stop) {
			return
		}
		p.greet()
		if !p.console(stop) {
			return
		}
	}
}

// waitForConnection blinks the LED until a terminal attaches. Returns
// false when stopped.
func (p *Program) waitForConnection(stop <-chan struct{}) bool {
	led, _ := p.Dev.LED()
	for !p.Tr.IsConnected() {
		select {
		case <-stop:
			return false
		default:
		}
		if led != nil {
			led.Toggle()
		}
		time.Sleep(100 * time.Millisecond)
	}
	if led != nil {
		led.Low()
	}
	// give the terminal a beat to finish opening
	time.Sleep(50 * time.Millisecond)
	return true
}

func (p *Program) greet() {
	p.Tr.Printf("\r\n%s %s\r\n", p.Settings.Product, p.Settings.Version)
	p.Tr.Printf("Up %s. Type 'help' for commands; '%s' breaks a running command.\r\n",
		timex.Uptime(p.Dev.Clock().Sub(p.started)), string(p.Settings.BreakChar))
}

// console runs the prompt loop for one connection. Returns false when
// stopped, true when the terminal went away.
func (p *Program) console(stop <-chan struct{}) bool {
	line := fifo.NewBytes(lineBufferSize)
	for {
		select {
		case <-stop:
			return false
		default:
		}

		if p.Settings.PromptStatus {
			p.statusLine()
		}
		p.Tr.Printf("> ")

		line.Clear()
		if err := p.Tr.ReadLineBlocking(line); err != nil {
			if errcode.Is(err, errcode.InvalidEndpoint) {
				return true
			}
			p.Tr.Printf("Err: %s\r\n", err.Error())
			continue
		}

		input := string(line.Data())
		p.Tr.Printf("%s\r\n", input)

		start := p.Dev.Clock()
		err := p.CLI.Execute(input, p.Tr)
		elapsed := p.Dev.Clock().Sub(start)
		if err != nil {
			p.Tr.Printf("Err: %s\r\n", err.Error())
		}
		p.Tr.Printf("DONE in %sms\r\n", timex.FormatMs(elapsed))
	}
}

// statusLine shows the onboard temperature and the spare analog input.
func (p *Program) statusLine() {
	tempRaw, err := p.Dev.ADC().ReadChannel(device.TempChannel)
	if err != nil {
		return
	}
	ch3, err := p.Dev.ADC().ReadChannel(3)
	if err != nil {
		return
	}
	p.Tr.Printf("[%.1fC %.2fV] ", device.TempC(tempRaw), device.Voltage(ch3))
}
