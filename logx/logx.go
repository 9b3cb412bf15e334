// Package logx is a tiny leveled logger for console firmware. The level
// lives in an atomic so the service goroutine and command bodies can
// consult it without locking.
package logx

import (
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"picocli-go/x/fmtx"
)

type Level uint8

const (
	Off Level = iota
	Error
	Warn
	Info
	Debug
	Trace
)

var names = [...]string{"OFF", "ERROR", "WARN", "INFO", "DEBUG", "TRACE"}

func (l Level) String() string {
	if int(l) < len(names) {
		return names[l]
	}
	return "TRACE"
}

// ParseLevel accepts either a name (any case) or a digit 0..5.
func ParseLevel(s string) (Level, bool) {
	switch strings.ToLower(s) {
	case "off", "0":
		return Off, true
	case "error", "1":
		return Error, true
	case "warn", "2":
		return Warn, true
	case "info", "3":
		return Info, true
	case "debug", "4":
		return Debug, true
	case "trace", "5":
		return Trace, true
	}
	return Off, false
}

var level atomic.Uint32

var outMu sync.Mutex
var out io.Writer = io.Discard

// SetOutput points the logger at the console transport. Safe to call
// while other goroutines are logging.
func SetOutput(w io.Writer) {
	if w != nil {
		outMu.Lock()
		out = w
		outMu.Unlock()
	}
}

func SetLevel(l Level) {
	if l > Trace {
		l = Trace
	}
	level.Store(uint32(l))
}

func Current() Level { return Level(level.Load()) }

func logf(l Level, format string, a ...any) {
	if Current() < l {
		return
	}
	outMu.Lock()
	w := out
	outMu.Unlock()
	_, _ = fmtx.Fprintf(w, "[%s] "+format+"\r\n", append([]any{l.String()}, a...)...)
}

func Errorf(format string, a ...any) { logf(Error, format, a...) }
func Warnf(format string, a ...any)  { logf(Warn, format, a...) }
func Infof(format string, a ...any)  { logf(Info, format, a...) }
func Debugf(format string, a ...any) { logf(Debug, format, a...) }
func Tracef(format string, a ...any) { logf(Trace, format, a...) }
