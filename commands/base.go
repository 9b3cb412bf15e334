package commands

import (
	"io"
	"time"

	"picocli-go/cli"
	"picocli-go/core1"
	"picocli-go/device"
	"picocli-go/errcode"
	"picocli-go/logx"
	"picocli-go/pinmap"
	"picocli-go/tasklet"
	"picocli-go/x/fmtx"
	"picocli-go/x/mathx"
	"picocli-go/x/ramp"
)

func (d Deps) resetCmd() cli.Command {
	return cli.Command{
		Name: "reset",
		Desc: "restart the firmware",
		Help: "reset\r\nRestarts the board; the USB connection drops and re-enumerates.",
		Run: func(w io.Writer, _ cli.Args) error {
			fmtx.Fprintf(w, "Resetting...\r\n")
			d.Dev.Reset()
			return nil
		},
	}
}

func (d Deps) flashCmd() cli.Command {
	return cli.Command{
		Name: "flash",
		Desc: "reboot into the USB bootloader",
		Help: "flash\r\nReboots into the mass-storage bootloader for a new firmware image.",
		Run: func(w io.Writer, _ cli.Args) error {
			fmtx.Fprintf(w, "Rebooting to bootloader...\r\n")
			d.Dev.ResetToBootloader()
			return nil
		},
	}
}

func (d Deps) pinCmd() cli.Command {
	return cli.Command{
		Name: "pin",
		Desc: "drive or read a digital pin",
		Help: "pin [alias=LED|gpio=25] [high|low|toggle]\r\n" +
			"Without a drive flag the current state is read back.",
		Run: func(w io.Writer, args cli.Args) error {
			id, alias, err := d.resolveTarget(args)
			if err != nil {
				return err
			}
			if out, err := d.Dev.Output(id); err == nil {
				switch {
				case args.Has("high"):
					out.High()
				case args.Has("low"):
					out.Low()
				case args.Has("toggle"):
					out.Toggle()
				}
				fmtx.Fprintf(w, "%s (GPIO%d) is %s\r\n", alias, id, levelName(out.IsHigh()))
				return nil
			}
			in, err := d.Dev.Input(id)
			if err != nil {
				return err
			}
			if args.Has("high") || args.Has("low") || args.Has("toggle") {
				return errcode.New(errcode.Unsupported, alias+" is an input")
			}
			fmtx.Fprintf(w, "%s (GPIO%d) reads %s\r\n", alias, id, levelName(in.Get()))
			return nil
		},
	}
}

func levelName(high bool) string {
	if high {
		return "high"
	}
	return "low"
}

func (d Deps) readADCCmd() cli.Command {
	return cli.Command{
		Name: "read_adc",
		Desc: "read all analog channels once",
		Help: "read_adc [ref_res=10000]\r\n" +
			"ref_res is the pull-up used for the resistance column.",
		Run: func(w io.Writer, args cli.Args) error {
			refRes, err := cli.Number(args, "ref_res", d.Settings.StatusRefRes)
			if err != nil {
				return err
			}
			for ch := 0; ch < device.ADCChannels; ch++ {
				raw, err := d.Dev.ADC().ReadChannel(ch)
				if err != nil {
					return err
				}
				fmtx.Fprintf(w, "ADC%d (GPIO%d) raw=%d voltage=%.3fV res=%.0f ohm\r\n",
					ch, 26+ch, raw, device.Voltage(raw), device.Resistance(raw, refRes))
			}
			raw, err := d.Dev.ADC().ReadChannel(device.TempChannel)
			if err != nil {
				return err
			}
			fmtx.Fprintf(w, "Temp sensor: %.1f C\r\n", device.TempC(raw))
			return nil
		},
	}
}

func (d Deps) sampleADCCmd() cli.Command {
	return cli.Command{
		Name: "sample_adc",
		Desc: "sample one analog channel until interrupted",
		Help: "sample_adc [channel=0|gpio=26|alias=ADC0] [ref_res=10000] [interval=200]\r\n" +
			"Prints one line per sample; send the break character to stop.",
		Run: func(w io.Writer, args cli.Args) error {
			ch, err := d.resolveADCChannel(args)
			if err != nil {
				return err
			}
			refRes, err := cli.Number(args, "ref_res", d.Settings.StatusRefRes)
			if err != nil {
				return err
			}
			intervalMs, err := cli.Number(args, "interval", uint32(200))
			if err != nil {
				return err
			}

			tk := tasklet.New(time.Duration(intervalMs)*time.Millisecond, 0, d.Dev.Clock)
			interrupted, err := d.runLoop(tk, func() error {
				raw, err := d.Dev.ADC().ReadChannel(ch)
				if err != nil {
					return err
				}
				fmtx.Fprintf(w, "ADC%d raw=%d voltage=%.3fV res=%.0f ohm\r\n",
					ch, raw, device.Voltage(raw), device.Resistance(raw, refRes))
				return nil
			})
			if interrupted {
				fmtx.Fprintf(w, "Sampling Interrupted\r\n")
			}
			return err
		},
	}
}

// resolveADCChannel accepts channel=, gpio= or alias= forms.
func (d Deps) resolveADCChannel(args cli.Args) (int, error) {
	if ch, err := cli.Number(args, "channel", -1); err != nil {
		return 0, err
	} else if ch != -1 {
		if ch < 0 || ch > device.TempChannel {
			return 0, errcode.New(errcode.UnknownPin, "adc channel out of range")
		}
		return ch, nil
	}
	if !args.Has("gpio") && !args.Has("alias") {
		return 0, nil
	}
	id, _, err := d.resolveTarget(args)
	if err != nil {
		return 0, err
	}
	if g, ok := d.Dev.Pins.GroupOf(id); !ok || g != pinmap.GroupADC {
		return 0, errcode.New(errcode.UnknownPin, "not an adc pin")
	}
	return id - 26, nil
}

func (d Deps) setPWMCmd() cli.Command {
	return cli.Command{
		Name: "set_pwm",
		Desc: "configure and drive a pwm channel",
		Help: "set_pwm [alias=PWM4_A|gpio=8] [freq=50] [top=1000] [duty=50|duty_us=1500] [phase] [disable]\r\n" +
			"duty is percent of top; duty_us is an absolute pulse width.",
		Run: func(w io.Writer, args cli.Args) error {
			id, alias, err := d.resolveTarget(args)
			if err != nil {
				return err
			}
			p, err := d.Dev.PWM(id)
			if err != nil {
				return err
			}
			if args.Has("disable") {
				p.Disable()
				fmtx.Fprintf(w, "%s (GPIO%d) disabled\r\n", alias, id)
				return nil
			}

			freq, err := cli.Number(args, "freq", uint64(d.Settings.DefaultPWMHz))
			if err != nil {
				return err
			}
			top, err := cli.Number(args, "top", uint16(1000))
			if err != nil {
				return err
			}
			if err := p.Configure(freq, top); err != nil {
				return err
			}
			if args.Has("phase") {
				if err := p.SetPhaseCorrect(true); err != nil {
					return err
				}
			}

			if args.Has("duty_us") {
				us, err := cli.Number(args, "duty_us", uint32(0))
				if err != nil {
					return err
				}
				if err := p.SetMicros(us); err != nil {
					return err
				}
			} else {
				duty, err := cli.Number(args, "duty", uint16(50))
				if err != nil {
					return err
				}
				duty = mathx.Min(duty, 100)
				p.SetLevel(uint16(uint32(duty) * uint32(top) / 100))
			}

			slice, ch, pin := p.Info()
			fmtx.Fprintf(w, "%s (GPIO%d) slice=%d ch=%s freq=%dHz top=%d\r\n",
				alias, pin, slice, string(ch), p.Freq(), p.Top())
			return nil
		},
	}
}

const (
	servoFreqHz = 50
	servoTop    = 20000 // one tick per microsecond at 50 Hz
)

func (d Deps) servoCmd() cli.Command {
	return cli.Command{
		Name: "servo",
		Desc: "position a hobby servo, optionally sweeping",
		Help: "servo [alias=PWM4_A|gpio=8] [us=1500] [sweep] [min_us=1000] [max_us=2000] [pause=1000]\r\n" +
			"sweep ramps between min_us and max_us until interrupted.",
		Run: func(w io.Writer, args cli.Args) error {
			id, alias, err := d.resolveTarget(args)
			if err != nil {
				return err
			}
			p, err := d.Dev.PWM(id)
			if err != nil {
				return err
			}
			if err := p.Configure(servoFreqHz, servoTop); err != nil {
				return err
			}

			if !args.Has("sweep") {
				us, err := cli.Number(args, "us", uint32(1500))
				if err != nil {
					return err
				}
				if err := p.SetMicros(us); err != nil {
					return err
				}
				fmtx.Fprintf(w, "%s (GPIO%d) pulse=%dus\r\n", alias, id, us)
				return nil
			}

			minUs, err := cli.Number(args, "min_us", uint32(1000))
			if err != nil {
				return err
			}
			maxUs, err := cli.Number(args, "max_us", uint32(2000))
			if err != nil {
				return err
			}
			pauseMs, err := cli.Number(args, "pause", uint32(1000))
			if err != nil {
				return err
			}

			fmtx.Fprintf(w, "Sweeping %s (GPIO%d) %d-%dus; break to stop\r\n", alias, id, minUs, maxUs)
			d.Console.ClearInterrupt()
			for !d.Console.Interrupted() {
				d.sweepOnce(p, uint16(minUs), uint16(maxUs), pauseMs)
			}
			fmtx.Fprintf(w, "Sweep Interrupted\r\n")
			return nil
		},
	}
}

func (d Deps) blinkCmd() cli.Command {
	return cli.Command{
		Name: "blink",
		Desc: "blink the onboard LED",
		Help: "blink [times=10] [interval=200]",
		Run: func(w io.Writer, args cli.Args) error {
			times, err := cli.Number(args, "times", uint32(10))
			if err != nil {
				return err
			}
			intervalMs, err := cli.Number(args, "interval", uint32(200))
			if err != nil {
				return err
			}
			led, err := d.Dev.LED()
			if err != nil {
				return err
			}

			// two toggles per blink
			tk := tasklet.New(time.Duration(intervalMs)*time.Millisecond, times*2, d.Dev.Clock)
			interrupted, err := d.runLoop(tk, func() error {
				led.Toggle()
				return nil
			})
			led.Low()
			if interrupted {
				fmtx.Fprintf(w, "Blink Interrupted\r\n")
				return err
			}
			fmtx.Fprintf(w, "Blinked %d times\r\n", times)
			return err
		},
	}
}

func (d Deps) blinkBgCmd() cli.Command {
	return cli.Command{
		Name: "blink_bg",
		Desc: "blink the background worker's LED",
		Help: "blink_bg [times=10] [interval=200]\r\n" +
			"Queues the job; the console stays responsive while it runs.",
		Run: func(w io.Writer, args cli.Args) error {
			times, err := cli.Number(args, "times", uint32(10))
			if err != nil {
				return err
			}
			intervalMs, err := cli.Number(args, "interval", uint32(200))
			if err != nil {
				return err
			}
			ok := d.Queue.TryEnqueue(core1.Event{
				Times:    times,
				Interval: time.Duration(intervalMs) * time.Millisecond,
			})
			if !ok {
				return errcode.New(errcode.WouldBlock, "background queue is full")
			}
			fmtx.Fprintf(w, "Queued %d blinks\r\n", times)
			return nil
		},
	}
}

func (d Deps) testGPIOCmd() cli.Command {
	return cli.Command{
		Name: "test_gpio",
		Desc: "mirror an input pin onto an output pin",
		Help: "test_gpio [input=IN_A] [output=OUT_A]\r\n" +
			"Copies the input level to the output until interrupted.",
		Run: func(w io.Writer, args cli.Args) error {
			inAlias := strOr(args, "input", "IN_A")
			outAlias := strOr(args, "output", "OUT_A")

			inID, err := d.Dev.Pins.GPIO(inAlias)
			if err != nil {
				return err
			}
			outID, err := d.Dev.Pins.GPIO(outAlias)
			if err != nil {
				return err
			}
			in, err := d.Dev.Input(inID)
			if err != nil {
				return err
			}
			out, err := d.Dev.Output(outID)
			if err != nil {
				return err
			}

			fmtx.Fprintf(w, "Mirroring %s (GPIO%d) -> %s (GPIO%d); break to stop\r\n",
				inAlias, inID, outAlias, outID)
			tk := tasklet.New(10*time.Millisecond, 0, d.Dev.Clock)
			interrupted, err := d.runLoop(tk, func() error {
				out.Set(in.Get())
				return nil
			})
			out.Low()
			if interrupted {
				fmtx.Fprintf(w, "Mirror Interrupted\r\n")
			}
			return err
		},
	}
}

func (d Deps) testAnalogCmd() cli.Command {
	return cli.Command{
		Name: "test_analog",
		Desc: "drive a servo from an analog input",
		Help: "test_analog [input=ADC0] [output=PWM4_A] [min_us=1000] [max_us=2000]\r\n" +
			"Maps the input reading onto the pulse range until interrupted.",
		Run: func(w io.Writer, args cli.Args) error {
			inAlias := strOr(args, "input", "ADC0")
			outAlias := strOr(args, "output", "PWM4_A")

			inID, err := d.Dev.Pins.GPIO(inAlias)
			if err != nil {
				return err
			}
			if g, ok := d.Dev.Pins.GroupOf(inID); !ok || g != pinmap.GroupADC {
				return errcode.New(errcode.UnknownPin, inAlias+" is not an adc pin")
			}
			ch := inID - 26

			outID, err := d.Dev.Pins.GPIO(outAlias)
			if err != nil {
				return err
			}
			p, err := d.Dev.PWM(outID)
			if err != nil {
				return err
			}
			if err := p.Configure(servoFreqHz, servoTop); err != nil {
				return err
			}

			minUs, err := cli.Number(args, "min_us", uint32(1000))
			if err != nil {
				return err
			}
			maxUs, err := cli.Number(args, "max_us", uint32(2000))
			if err != nil {
				return err
			}

			fmtx.Fprintf(w, "Following %s on %s (GPIO%d); break to stop\r\n", inAlias, outAlias, outID)
			tk := tasklet.New(50*time.Millisecond, 0, d.Dev.Clock)
			interrupted, err := d.runLoop(tk, func() error {
				raw, err := d.Dev.ADC().ReadChannel(ch)
				if err != nil {
					return err
				}
				us := mathx.MapU32(uint32(raw), 0, 65535, minUs, maxUs)
				return p.SetMicros(us)
			})
			if interrupted {
				fmtx.Fprintf(w, "Follower Interrupted\r\n")
			}
			return err
		},
	}
}

func (d Deps) logCmd() cli.Command {
	return cli.Command{
		Name: "log",
		Desc: "get or set the log level",
		Help: "log [level=off|error|warn|info|debug|trace]",
		Run: func(w io.Writer, args cli.Args) error {
			if raw, ok := args.Str("level"); ok {
				lvl, valid := logx.ParseLevel(raw)
				if !valid {
					return errcode.New(errcode.Parse, "bad level: "+raw)
				}
				logx.SetLevel(lvl)
			}
			fmtx.Fprintf(w, "Log level: %s\r\n", logx.Current().String())
			return nil
		},
	}
}

func strOr(args cli.Args, name, def string) string {
	if v, ok := args.Str(name); ok && v != "" {
		return v
	}
	return def
}

// sweepOnce ramps min -> max -> min with a pause at each end. Each leg
// takes a second; the tick aborts promptly on break.
func (d Deps) sweepOnce(p device.PWMPin, minUs, maxUs uint16, pauseMs uint32) {
	tick := func(dur time.Duration) bool { return d.waitCancellable(dur) }
	set := func(level uint16) { _ = p.SetMicros(uint32(level)) }
	pause := time.Duration(pauseMs) * time.Millisecond

	ramp.Linear(minUs, maxUs, servoTop, 1000, 50, tick, set)
	if !d.waitCancellable(pause) {
		return
	}
	ramp.Linear(maxUs, minUs, servoTop, 1000, 50, tick, set)
	d.waitCancellable(pause)
}
