//go:build rp2040

package serialio

import (
	"machine"

	"picocli-go/errcode"
)

// usbPort adapts the USB CDC serial. machine.Serial on this target
// exposes DTR through an unexported type, so the check goes through an
// interface assertion.
type usbPort struct {
	s machine.Serialer
}

func (p *usbPort) ReadByte() (byte, error) {
	if p.s.Buffered() == 0 {
		return 0, errcode.WouldBlock
	}
	c, err := p.s.ReadByte()
	if err != nil {
		return 0, errcode.WouldBlock
	}
	return c, nil
}

func (p *usbPort) WriteByte(b byte) error {
	if err := p.s.WriteByte(b); err != nil {
		return errcode.WouldBlock
	}
	return nil
}

func (p *usbPort) Poll() {}

func (p *usbPort) Connected() bool {
	if d, ok := p.s.(interface{ DTR() bool }); ok {
		return d.DTR()
	}
	return true
}

// OpenPort returns the default console endpoint for this platform.
func OpenPort() Port { return &usbPort{s: machine.Serial} }
