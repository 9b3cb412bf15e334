//go:build rp2040

package commands

import (
	"context"
	"io"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/dht"

	"picocli-go/cli"
	"picocli-go/errcode"
	"picocli-go/x/fmtx"
)

func registerPlatform(reg *cli.Registry, d Deps) {
	reg.Register(d.uartBridgeCmd())
	reg.Register(d.readDHTCmd())
}

// uartBridgeCmd patches the console through to UART0. Bytes flow both
// ways until the break character arrives on the console side.
func (d Deps) uartBridgeCmd() cli.Command {
	return cli.Command{
		Name: "uart_bridge",
		Desc: "pass console bytes through to UART0",
		Help: "uart_bridge [baud=115200]\r\n" +
			"Send the break character to leave the bridge.",
		Run: func(w io.Writer, args cli.Args) error {
			baud, err := cli.Number(args, "baud", uint32(115200))
			if err != nil {
				return err
			}

			// Unassigned aliases fall back to the uartx pin defaults.
			cfg := uartx.UARTConfig{BaudRate: baud}
			if txID, err := d.Dev.Pins.GPIO("UART0_TX"); err == nil {
				if err := d.Dev.Pins.Claim(txID); err != nil {
					return err
				}
				cfg.TX = machine.Pin(txID)
			}
			if rxID, err := d.Dev.Pins.GPIO("UART0_RX"); err == nil {
				if err := d.Dev.Pins.Claim(rxID); err != nil {
					return err
				}
				cfg.RX = machine.Pin(rxID)
			}

			hw := uartx.UART0
			if err := hw.Configure(cfg); err != nil {
				return &errcode.E{C: errcode.Failed, Op: "uart configure", Err: err}
			}

			fmtx.Fprintf(w, "Bridged to UART0 at %d baud; break char leaves\r\n", baud)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				buf := make([]byte, 64)
				for {
					n, err := hw.RecvSomeContext(ctx, buf)
					if err != nil {
						return
					}
					if n > 0 {
						w.Write(buf[:n])
					}
				}
			}()

			brk := d.Console.BreakChar()
			for {
				c, ok := d.Console.TryReadByte()
				if !ok {
					time.Sleep(time.Millisecond)
					continue
				}
				if c == brk {
					fmtx.Fprintf(w, "\r\nBridge closed\r\n")
					return nil
				}
				if _, err := hw.Write([]byte{c}); err != nil {
					return &errcode.E{C: errcode.Failed, Op: "uart write", Err: err}
				}
			}
		},
	}
}

func (d Deps) readDHTCmd() cli.Command {
	return cli.Command{
		Name: "read_dht",
		Desc: "read the DHT22 temperature/humidity sensor",
		Help: "read_dht [alias=DHT22|gpio=16]",
		Run: func(w io.Writer, args cli.Args) error {
			id, alias, err := d.resolveTarget(argsOrDHT(args))
			if err != nil {
				return err
			}
			sensor := dht.New(machine.Pin(id), dht.DHT22)
			temp, err := sensor.TemperatureFloat(dht.C)
			if err != nil {
				return &errcode.E{C: errcode.Failed, Op: "dht read", Err: err}
			}
			hum, err := sensor.HumidityFloat()
			if err != nil {
				return &errcode.E{C: errcode.Failed, Op: "dht read", Err: err}
			}
			fmtx.Fprintf(w, "%s (GPIO%d): %.1f C, %.1f%% RH\r\n", alias, id, temp, hum)
			return nil
		},
	}
}

// argsOrDHT defaults the target to the DHT22 alias.
func argsOrDHT(args cli.Args) cli.Args {
	if args.Has("gpio") || args.Has("alias") {
		return args
	}
	return append(cli.Args{{Name: "alias", Value: "DHT22"}}, args...)
}
