// usbterm: minimal raw terminal for the console firmware, talking
// straight to the CDC bulk endpoints. Handy when a full terminal
// emulator gets in the way of testing the break character.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/google/gousb"
)

func main() {
	vid := flag.Uint("vid", 0x2e8a, "USB vendor ID")
	pid := flag.Uint("pid", 0x000a, "USB product ID")
	cfgNum := flag.Int("config", 1, "USB configuration number")
	ifaceNum := flag.Int("iface", 1, "CDC data interface number")
	flag.Parse()

	if err := run(uint16(*vid), uint16(*pid), *cfgNum, *ifaceNum); err != nil {
		fmt.Fprintf(os.Stderr, "usbterm: %v\n", err)
		os.Exit(1)
	}
}

func run(vid, pid uint16, cfgNum, ifaceNum int) error {
	ctx := gousb.NewContext()
	defer ctx.Close()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	if dev == nil {
		return fmt.Errorf("no device %04x:%04x found", vid, pid)
	}
	defer dev.Close()

	// the kernel CDC-ACM driver usually holds the interface
	if err := dev.SetAutoDetach(true); err != nil {
		return fmt.Errorf("auto detach: %w", err)
	}

	cfg, err := dev.Config(cfgNum)
	if err != nil {
		return fmt.Errorf("claim config %d: %w", cfgNum, err)
	}
	defer cfg.Close()

	iface, err := cfg.Interface(ifaceNum, 0)
	if err != nil {
		return fmt.Errorf("claim interface %d: %w", ifaceNum, err)
	}
	defer iface.Close()

	epIn, epOut, err := bulkEndpoints(iface)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "usbterm: connected to %04x:%04x (ctrl-c to quit)\n", vid, pid)

	errs := make(chan error, 2)

	// device -> stdout
	go func() {
		buf := make([]byte, epIn.Desc.MaxPacketSize)
		for {
			n, err := epIn.Read(buf)
			if err != nil {
				errs <- fmt.Errorf("read: %w", err)
				return
			}
			if n > 0 {
				os.Stdout.Write(buf[:n])
			}
		}
	}()

	// stdin -> device
	go func() {
		buf := make([]byte, 64)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				if err == io.EOF {
					errs <- nil
				} else {
					errs <- fmt.Errorf("stdin: %w", err)
				}
				return
			}
			if _, err := epOut.Write(buf[:n]); err != nil {
				errs <- fmt.Errorf("write: %w", err)
				return
			}
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt)

	select {
	case err := <-errs:
		return err
	case <-sig:
		fmt.Fprintln(os.Stderr, "\nusbterm: bye")
		return nil
	}
}

// bulkEndpoints picks the first IN/OUT bulk pair on the interface.
func bulkEndpoints(iface *gousb.Interface) (*gousb.InEndpoint, *gousb.OutEndpoint, error) {
	var in *gousb.InEndpoint
	var out *gousb.OutEndpoint
	for _, desc := range iface.Setting.Endpoints {
		if desc.TransferType != gousb.TransferTypeBulk {
			continue
		}
		if desc.Direction == gousb.EndpointDirectionIn && in == nil {
			ep, err := iface.InEndpoint(desc.Number)
			if err != nil {
				return nil, nil, fmt.Errorf("in endpoint %d: %w", desc.Number, err)
			}
			in = ep
		}
		if desc.Direction == gousb.EndpointDirectionOut && out == nil {
			ep, err := iface.OutEndpoint(desc.Number)
			if err != nil {
				return nil, nil, fmt.Errorf("out endpoint %d: %w", desc.Number, err)
			}
			out = ep
		}
	}
	if in == nil || out == nil {
		return nil, nil, fmt.Errorf("no bulk endpoint pair on interface")
	}
	return in, out, nil
}
