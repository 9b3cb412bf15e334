// Package commands builds the console's verb table. Each command closes
// over the board context so the cli package stays hardware-free.
package commands

import (
	"io"
	"time"

	"picocli-go/cli"
	"picocli-go/config"
	"picocli-go/core1"
	"picocli-go/device"
	"picocli-go/pinmap"
	"picocli-go/tasklet"
)

// Console is the slice of the transport the command bodies need: break
// handling and raw pass-through reads.
type Console interface {
	ClearInterrupt()
	Interrupted() bool
	BreakChar() byte
	TryReadByte() (byte, bool)
}

// Deps carries everything a command body can touch.
type Deps struct {
	Dev      *device.Device
	Console  Console
	Queue    *core1.Queue
	Settings config.Settings
}

// Register fills the table. Order is the help listing order.
func Register(reg *cli.Registry, d Deps) {
	reg.Register(cli.Command{
		Name: "help", Desc: "list commands, or 'help <command>' for details",
		// dispatched by the cli layer before the table is consulted
		Run: func(io.Writer, cli.Args) error { return nil },
	})
	reg.Register(d.resetCmd())
	reg.Register(d.flashCmd())
	reg.Register(d.pinCmd())
	reg.Register(d.readADCCmd())
	reg.Register(d.sampleADCCmd())
	reg.Register(d.setPWMCmd())
	reg.Register(d.servoCmd())
	reg.Register(d.blinkCmd())
	reg.Register(d.blinkBgCmd())
	reg.Register(d.testGPIOCmd())
	reg.Register(d.testAnalogCmd())
	reg.Register(d.logCmd())
	reg.Register(d.exampleCmd())
	registerPlatform(reg, d)
}

// resolveTarget turns gpio=/alias= arguments into a pin and its alias.
func (d Deps) resolveTarget(args cli.Args) (int, string, error) {
	gpio, err := cli.Number(args, "gpio", pinmap.NA)
	if err != nil {
		return pinmap.NA, "", err
	}
	alias, _ := args.Str("alias")
	return d.Dev.Pins.Pair(gpio, alias)
}

// waitCancellable sleeps in small steps so the break character is seen
// promptly. Returns false once interrupted.
func (d Deps) waitCancellable(dur time.Duration) bool {
	deadline := d.Dev.Clock().Add(dur)
	for {
		if d.Console.Interrupted() {
			return false
		}
		if !d.Dev.Clock().Before(deadline) {
			return true
		}
		time.Sleep(time.Millisecond)
	}
}

// runLoop polls a tasklet until it exhausts or the console interrupts.
// fire returns an error to abort the loop early. The bool reports
// whether the break character ended the loop.
func (d Deps) runLoop(tk *tasklet.Tasklet, fire func() error) (bool, error) {
	d.Console.ClearInterrupt()
	for {
		if d.Console.Interrupted() {
			return true, nil
		}
		if tk.Exhausted() {
			return false, nil
		}
		if tk.Ready() {
			if err := fire(); err != nil {
				return false, err
			}
			continue
		}
		time.Sleep(time.Millisecond)
	}
}
