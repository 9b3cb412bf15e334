// Package serialio owns the console byte transport: buffered, polled,
// safe to touch from the program loop and the service tick at once.
package serialio

import (
	"sync"
	"sync/atomic"
	"time"

	"picocli-go/errcode"
	"picocli-go/fifo"
	"picocli-go/x/fmtx"
)

const (
	// ReadBufferSize bounds one pending line plus echo slack.
	ReadBufferSize  = 192
	WriteBufferSize = 256

	// DefaultBreakChar cancels long-running commands.
	DefaultBreakChar = '~'

	// PollInterval is the service cadence standing in for the USB IRQ.
	PollInterval = 10 * time.Millisecond
)

// Transport multiplexes a Port between the program loop and the service
// goroutine. All port access happens under mu; lock hold time is one
// buffer exchange.
type Transport struct {
	mu   sync.Mutex
	port Port
	rx   *fifo.Bytes
	tx   *fifo.Bytes

	breakChar byte
	scanning  bool
	interrupt atomic.Bool
}

func New(port Port) *Transport {
	return &Transport{
		port:      port,
		rx:        fifo.NewBytes(ReadBufferSize),
		tx:        fifo.NewBytes(WriteBufferSize),
		breakChar: DefaultBreakChar,
	}
}

// SetBreakChar replaces the cancel character (config override).
func (t *Transport) SetBreakChar(c byte) {
	t.mu.Lock()
	t.breakChar = c
	t.mu.Unlock()
}

// Poll services the endpoint once: pushes pending output, pulls pending
// input. While the break scanner is armed, input bytes are consumed here
// and only the latch survives.
func (t *Transport) Poll() {
	t.mu.Lock()
	t.pollLocked()
	t.mu.Unlock()
}

func (t *Transport) pollLocked() {
	t.port.Poll()
	for t.tx.Len() > 0 {
		if err := t.port.WriteByte(t.tx.Data()[0]); err != nil {
			break
		}
		t.tx.Pop(1)
	}
	for {
		c, err := t.port.ReadByte()
		if err != nil {
			break
		}
		if t.scanning {
			if c == t.breakChar {
				t.interrupt.Store(true)
			}
			continue
		}
		if !t.rx.AppendOne(c) {
			// input buffer full; drop until the reader catches up
			break
		}
	}
}

// Serve runs the poll loop until stop closes. The program starts this on
// its own goroutine; it is the stand-in for the USB interrupt.
func (t *Transport) Serve(stop <-chan struct{}) {
	ticker := time.NewTicker(PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.Poll()
		}
	}
}

// IsConnected reports whether a terminal is attached.
func (t *Transport) IsConnected() bool {
	t.mu.Lock()
	ok := t.port.Connected()
	t.mu.Unlock()
	return ok
}

// ClearInterrupt drops the break latch and arms the scanner, so bytes
// arriving during a long command are checked rather than queued.
func (t *Transport) ClearInterrupt() {
	t.mu.Lock()
	t.interrupt.Store(false)
	t.scanning = true
	t.mu.Unlock()
}

// Interrupted reports whether the break character arrived since the last
// ClearInterrupt.
func (t *Transport) Interrupted() bool { return t.interrupt.Load() }

// Write queues p and drains until everything is on the wire. Fails with
// Disconnected if the terminal goes away mid-flush.
func (t *Transport) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		t.mu.Lock()
		if !t.port.Connected() {
			t.mu.Unlock()
			return written, errcode.Disconnected
		}
		n := t.tx.Append(p[written:])
		written += n
		t.pollLocked()
		full := t.tx.IsFull()
		t.mu.Unlock()
		if n == 0 && full {
			time.Sleep(time.Millisecond)
		}
	}
	// flush the tail
	for {
		t.mu.Lock()
		if !t.port.Connected() {
			t.mu.Unlock()
			return written, errcode.Disconnected
		}
		t.pollLocked()
		empty := t.tx.IsEmpty()
		t.mu.Unlock()
		if empty {
			return written, nil
		}
		time.Sleep(time.Millisecond)
	}
}

func (t *Transport) WriteString(s string) (int, error) { return t.Write([]byte(s)) }

// Print and Printf render through fmtx and push through Write.
func (t *Transport) Print(a ...any) { _, _ = fmtx.Fprint(t, a...) }

func (t *Transport) Printf(format string, a ...any) {
	_, _ = t.WriteString(fmtx.Sprintf(format, a...))
}

// BreakChar returns the configured cancel character.
func (t *Transport) BreakChar() byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.breakChar
}

// TryReadByte pulls one raw input byte if available. Used by pass-through
// commands that speak bytes rather than lines; the caller owns break
// detection while doing so.
func (t *Transport) TryReadByte() (byte, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.scanning = false
	t.pollLocked()
	return t.rx.ReadOne()
}

// ReadLineBlocking fills out with one line of input. Carriage returns are
// dropped; the newline terminates the line and is not stored. When out
// fills before the newline, the rest of the line is discarded and the
// call fails with BufferOverflow. Losing the connection fails with
// InvalidEndpoint. The break scanner is disarmed for the duration.
func (t *Transport) ReadLineBlocking(out *fifo.Bytes) error {
	t.mu.Lock()
	t.scanning = false
	t.mu.Unlock()

	discarding := false
	for {
		t.mu.Lock()
		if !t.port.Connected() {
			t.mu.Unlock()
			return errcode.InvalidEndpoint
		}
		t.pollLocked()
		for t.rx.Len() > 0 {
			c, _ := t.rx.ReadOne()
			if c == '\r' {
				continue
			}
			if c == '\n' {
				t.mu.Unlock()
				if discarding {
					return errcode.BufferOverflow
				}
				return nil
			}
			if discarding {
				continue
			}
			if !out.AppendOne(c) {
				discarding = true
			}
		}
		t.mu.Unlock()
		time.Sleep(time.Millisecond)
	}
}
