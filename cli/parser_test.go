package cli

import (
	"strings"
	"testing"

	"picocli-go/errcode"
)

func TestParseSimple(t *testing.T) {
	p, err := Parse("blink times=3 interval=100")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "blink" || len(p.Args) != 2 {
		t.Fatalf("parsed = %+v", p)
	}
	if p.Args[0] != (Arg{"times", "3"}) || p.Args[1] != (Arg{"interval", "100"}) {
		t.Fatalf("args = %+v", p.Args)
	}
}

func TestParseFoldsNamesKeepsValues(t *testing.T) {
	p, err := Parse("PIN Alias=LED HIGH")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if p.Name != "pin" {
		t.Fatalf("name = %q", p.Name)
	}
	if p.Args[0].Name != "alias" || p.Args[0].Value != "LED" {
		t.Fatalf("arg0 = %+v", p.Args[0])
	}
	if p.Args[1].Name != "high" || p.Args[1].Value != "" {
		t.Fatalf("flag = %+v", p.Args[1])
	}
}

func TestParseQuotedValue(t *testing.T) {
	p, err := Parse(`example text="Hello World" n=1`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, _ := Args(p.Args).Str("text"); v != "Hello World" {
		t.Fatalf("text = %q", v)
	}
}

func TestParseEscapedQuote(t *testing.T) {
	p, err := Parse(`example text="say \"hi\""`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if v, _ := Args(p.Args).Str("text"); v != `say "hi"` {
		t.Fatalf("text = %q", v)
	}
}

func TestParseEmptyLineDefaultsToHelp(t *testing.T) {
	for _, line := range []string{"", "   ", "\t"} {
		p, err := Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q): %v", line, err)
		}
		if p.Name != "help" || len(p.Args) != 0 {
			t.Fatalf("Parse(%q) = %+v", line, p)
		}
	}
}

func TestParseUnmatchedQuote(t *testing.T) {
	_, err := Parse(`example text="unterminated`)
	if !errcode.Is(err, errcode.Parse) {
		t.Fatalf("err = %v, want Parse", err)
	}
}

func TestParseDanglingEscape(t *testing.T) {
	_, err := Parse(`example text=abc\`)
	if !errcode.Is(err, errcode.Parse) {
		t.Fatalf("err = %v, want Parse", err)
	}
}

func TestParseEqualsSpacing(t *testing.T) {
	for _, line := range []string{
		"set_pwm freq =50",
		"set_pwm freq= 50",
		"set_pwm freq = 50",
		"set_pwm =50",
	} {
		_, err := Parse(line)
		if !errcode.Is(err, errcode.Parse) {
			t.Fatalf("Parse(%q) err = %v, want Parse", line, err)
		}
	}
}

func TestParseTooManyArgs(t *testing.T) {
	_, err := Parse("cmd a=1 b=2 c=3 d=4 e=5 f=6")
	if err != errcode.TooManyArgs {
		t.Fatalf("err = %v, want TooManyArgs", err)
	}
	if _, err := Parse("cmd a=1 b=2 c=3 d=4 e=5"); err != nil {
		t.Fatalf("five args should be fine: %v", err)
	}
}

func TestParseLengthBounds(t *testing.T) {
	if _, err := Parse(strings.Repeat("x", MaxNameLen+1)); err != errcode.CmdTooLong {
		t.Fatalf("long name err = %v", err)
	}
	if _, err := Parse("cmd " + strings.Repeat("p", MaxParamLen+1) + "=1"); err != errcode.ArgTooLong {
		t.Fatalf("long param err = %v", err)
	}
	if _, err := Parse("cmd v=" + strings.Repeat("y", MaxValueLen+1)); err != errcode.ArgTooLong {
		t.Fatalf("long value err = %v", err)
	}
	if _, err := Parse("cmd v=" + strings.Repeat("y", MaxValueLen)); err != nil {
		t.Fatalf("max-length value should pass: %v", err)
	}
}

func TestArgsLookups(t *testing.T) {
	a := Args{{"times", "3"}, {"sweep", ""}, {"times", "9"}}

	if v, ok := a.Str("TIMES"); !ok || v != "3" {
		t.Fatalf("first match should win, got %q %v", v, ok)
	}
	if !a.Has("sweep") || a.Has("missing") {
		t.Fatal("Has")
	}

	n, err := Number(a, "times", 10)
	if err != nil || n != 3 {
		t.Fatalf("Number = %d, %v", n, err)
	}
	n, err = Number(a, "absent", 42)
	if err != nil || n != 42 {
		t.Fatalf("default = %d, %v", n, err)
	}
	f, err := Number(a, "absent", 1.5)
	if err != nil || f != 1.5 {
		t.Fatalf("float default = %v, %v", f, err)
	}
}

func TestNumberRejectsGarbage(t *testing.T) {
	a := Args{{"freq", "fifty"}}
	if _, err := Number(a, "freq", uint32(50)); !errcode.Is(err, errcode.Parse) {
		t.Fatalf("err = %v, want Parse", err)
	}
}

func TestNumberRejectsOutOfRange(t *testing.T) {
	// one past the type's max must fail, never wrap to 0
	a := Args{{"times", "4294967296"}}
	if _, err := Number(a, "times", uint32(10)); !errcode.Is(err, errcode.Parse) {
		t.Fatalf("uint32 overflow err = %v, want Parse", err)
	}

	a = Args{{"top", "70000"}}
	if _, err := Number(a, "top", uint16(1000)); !errcode.Is(err, errcode.Parse) {
		t.Fatalf("uint16 overflow err = %v, want Parse", err)
	}

	a = Args{{"times", "-1"}}
	if _, err := Number(a, "times", uint32(10)); !errcode.Is(err, errcode.Parse) {
		t.Fatalf("negative into unsigned err = %v, want Parse", err)
	}

	a = Args{{"off", "-129"}}
	if _, err := Number(a, "off", int8(0)); !errcode.Is(err, errcode.Parse) {
		t.Fatalf("int8 underflow err = %v, want Parse", err)
	}

	// the type's max itself still parses
	a = Args{{"times", "4294967295"}}
	n, err := Number(a, "times", uint32(0))
	if err != nil || n != 4294967295 {
		t.Fatalf("max uint32 = %d, %v", n, err)
	}
}

func TestBool(t *testing.T) {
	a := Args{{"sweep", ""}, {"echo", "off"}}
	if v, err := a.Bool("sweep", false); err != nil || !v {
		t.Fatalf("bare flag = %v, %v", v, err)
	}
	if v, err := a.Bool("echo", true); err != nil || v {
		t.Fatalf("off = %v, %v", v, err)
	}
	if v, err := a.Bool("absent", true); err != nil || !v {
		t.Fatalf("default = %v, %v", v, err)
	}
}
