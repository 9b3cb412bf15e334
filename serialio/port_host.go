//go:build !rp2040

package serialio

import (
	"sync"

	"picocli-go/errcode"
)

// LoopbackPort is the workstation stand-in for the USB endpoint. Tests
// and the host build feed input with PushInput and harvest output with
// TakeOutput; Connected is a settable flag.
type LoopbackPort struct {
	mu        sync.Mutex
	in        []byte
	out       []byte
	connected bool
}

func NewLoopbackPort() *LoopbackPort {
	return &LoopbackPort{connected: true}
}

func (p *LoopbackPort) ReadByte() (byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.in) == 0 {
		return 0, errcode.WouldBlock
	}
	c := p.in[0]
	p.in = p.in[1:]
	return c, nil
}

func (p *LoopbackPort) WriteByte(b byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.connected {
		return errcode.Disconnected
	}
	p.out = append(p.out, b)
	return nil
}

func (p *LoopbackPort) Poll() {}

func (p *LoopbackPort) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.connected
}

// SetConnected flips the simulated DTR line.
func (p *LoopbackPort) SetConnected(ok bool) {
	p.mu.Lock()
	p.connected = ok
	p.mu.Unlock()
}

// PushInput queues bytes as if typed by the host terminal.
func (p *LoopbackPort) PushInput(b []byte) {
	p.mu.Lock()
	p.in = append(p.in, b...)
	p.mu.Unlock()
}

// TakeOutput returns and clears everything written so far.
func (p *LoopbackPort) TakeOutput() []byte {
	p.mu.Lock()
	out := p.out
	p.out = nil
	p.mu.Unlock()
	return out
}

// OpenPort returns the default console endpoint for this platform.
func OpenPort() Port { return NewLoopbackPort() }
