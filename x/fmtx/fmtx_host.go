//go:build !rp2040

package fmtx

import (
	"fmt"
	"io"
	"os"
)

// DefaultOutput receives Print/Printf output; the bootstrap points it at
// the console transport.
var DefaultOutput io.Writer = os.Stdout

func Sprintf(format string, a ...any) string { return fmt.Sprintf(format, a...) }

func Printf(format string, a ...any) (int, error) {
	return fmt.Fprintf(DefaultOutput, format, a...)
}

func Fprintf(w io.Writer, format string, a ...any) (int, error) {
	return fmt.Fprintf(w, format, a...)
}

func Errorf(format string, a ...any) error { return fmt.Errorf(format, a...) }

func Sprint(a ...any) string { return joinSprint(a) }

func Fprint(w io.Writer, a ...any) (int, error) {
	return io.WriteString(w, joinSprint(a))
}

func Print(a ...any) (int, error) { return Fprint(DefaultOutput, a...) }

// joinSprint always separates operands with a space, unlike fmt.Sprint
// which only does so between non-strings. Console output wants the
// predictable form.
func joinSprint(a []any) string {
	s := ""
	for i, v := range a {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprint(v)
	}
	return s
}
