//go:build rp2040

package fmtx

import (
	"io"
	"strconv"
	"unicode/utf8"
)

// DefaultOutput receives Print/Printf output; the bootstrap points it at
// the console transport.
var DefaultOutput io.Writer = discard{}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// --- Public API (signatures match fmt) ---

func Sprintf(format string, a ...any) string {
	var b builder
	b.format(format, a...)
	return string(b.buf)
}

func Printf(format string, a ...any) (int, error) {
	return io.WriteString(DefaultOutput, Sprintf(format, a...))
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return io.WriteString(w, Sprintf(format, a...))
}

func Errorf(format string, a ...any) error {
	return &stringError{Sprintf(format, a...)}
}

func Sprint(a ...any) string {
	var b builder
	for i, v := range a {
		if i > 0 {
			b.byte(' ')
		}
		b.any(v, 'v', -1)
	}
	return string(b.buf)
}

func Fprint(w io.Writer, a ...any) (int, error) {
	return io.WriteString(w, Sprint(a...))
}

func Print(a ...any) (int, error) { return Fprint(DefaultOutput, a...) }

// --- Internals: tiny formatter subset ---
// Supports %s %q %d %x %X %v %t %f and %% with basic width/precision.
// No +, space, or # flags; keep MCU cost low.

type stringError struct{ s string }

func (e *stringError) Error() string { return e.s }

type builder struct{ buf []byte }

func (b *builder) byte(c byte)  { b.buf = append(b.buf, c) }
func (b *builder) str(s string) { b.buf = append(b.buf, s...) }

func (b *builder) any(v any, verb rune, prec int) {
	switch x := v.(type) {
	case string:
		if verb == 'q' {
			b.str(strconv.Quote(x))
		} else {
			b.str(x)
		}
	case []byte:
		if verb == 'q' {
			b.str(strconv.Quote(string(x)))
		} else {
			b.buf = append(b.buf, x...)
		}
	case error:
		b.str(x.Error())
	case bool:
		b.str(strconv.FormatBool(x))
	case float32:
		b.float(float64(x), prec)
	case float64:
		b.float(x, prec)
	case int, int8, int16, int32, int64:
		b.str(strconv.FormatInt(toI64(v), 10))
	case uint, uint8, uint16, uint32, uint64, uintptr:
		b.str(strconv.FormatUint(toU64(v), 10))
	default:
		b.str("<unk>")
	}
}

func (b *builder) float(f float64, prec int) {
	if prec < 0 {
		prec = 3
	}
	b.str(strconv.FormatFloat(f, 'f', prec, 64))
}

func (b *builder) format(format string, args ...any) {
	ai := 0
	for i := 0; i < len(format); {
		if format[i] != '%' {
			b.byte(format[i])
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			b.byte('%')
			i += 2
			continue
		}
		i++
		width, prec := 0, -1
		i = parseNum(format, i, &width)
		if i < len(format) && format[i] == '.' {
			i++
			prec = 0
			i = parseNum(format, i, &prec)
		}
		if i >= len(format) || ai >= len(args) {
			return
		}
		verb := rune(format[i])
		arg := args[ai]
		ai++
		i++

		switch verb {
		case 's', 'q':
			var s string
			switch v := arg.(type) {
			case string:
				s = v
			case []byte:
				s = string(v)
			case error:
				s = v.Error()
			default:
				b.any(arg, 'v', prec)
				continue
			}
			if prec >= 0 && prec < len(s) {
				s = s[:prec]
			}
			if verb == 'q' {
				s = strconv.Quote(s)
			}
			for pad := width - utf8.RuneCountInString(s); pad > 0; pad-- {
				b.byte(' ')
			}
			b.str(s)
		case 'd':
			var s string
			switch arg.(type) {
			case uint, uint8, uint16, uint32, uint64, uintptr:
				s = strconv.FormatUint(toU64(arg), 10)
			default:
				s = strconv.FormatInt(toI64(arg), 10)
			}
			b.pad(s, width)
		case 'x', 'X':
			h := strconv.FormatUint(toU64(arg), 16)
			if verb == 'X' {
				h = upperHex(h)
			}
			b.pad(h, width)
		case 'f':
			var f float64
			switch v := arg.(type) {
			case float32:
				f = float64(v)
			case float64:
				f = v
			default:
				f = float64(toI64(arg))
			}
			b.float(f, prec)
		case 't':
			v, _ := arg.(bool)
			b.str(strconv.FormatBool(v))
		case 'v':
			b.any(arg, 'v', prec)
		default:
			// unknown verb: keep it visible
			b.byte('%')
			b.byte(byte(verb))
		}
	}
}

func (b *builder) pad(s string, width int) {
	for pad := width - len(s); pad > 0; pad-- {
		b.byte(' ')
	}
	b.str(s)
}

func upperHex(h string) string {
	out := []byte(h)
	for i, c := range out {
		if 'a' <= c && c <= 'f' {
			out[i] = c - ('a' - 'A')
		}
	}
	return string(out)
}

func toI64(v any) int64 {
	switch t := v.(type) {
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case int64:
		return t
	case uint, uint8, uint16, uint32, uint64, uintptr:
		return int64(toU64(t))
	default:
		return 0
	}
}

func toU64(v any) uint64 {
	switch t := v.(type) {
	case uint:
		return uint64(t)
	case uint8:
		return uint64(t)
	case uint16:
		return uint64(t)
	case uint32:
		return uint64(t)
	case uint64:
		return t
	case uintptr:
		return uint64(t)
	case int:
		return uint64(t)
	case int8:
		return uint64(t)
	case int16:
		return uint64(t)
	case int32:
		return uint64(t)
	case int64:
		return uint64(t)
	default:
		return 0
	}
}

func parseNum(s string, i int, out *int) int {
	n := 0
	for i < len(s) && '0' <= s[i] && s[i] <= '9' {
		n = n*10 + int(s[i]-'0')
		i++
	}
	*out = n
	return i
}
