package cli

import (
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"

	"picocli-go/errcode"
)

// Args is the parameter list of one parsed line. Lookups are by folded
// name; the first match wins.
type Args []Arg

// Str returns the raw value of a parameter and whether it was present.
func (a Args) Str(name string) (string, bool) {
	name = strings.ToLower(name)
	for _, arg := range a {
		if arg.Name == name {
			return arg.Value, true
		}
	}
	return "", false
}

// Has reports whether a flag or parameter appeared on the line.
func (a Args) Has(name string) bool {
	_, ok := a.Str(name)
	return ok
}

// Number parses a numeric parameter, falling back to def when absent.
// A present-but-malformed or out-of-range value is a parse failure, not
// a silent default: parsing uses the bit size of T so overflow never
// wraps into a small type.
func Number[T constraints.Integer | constraints.Float](a Args, name string, def T) (T, error) {
	raw, ok := a.Str(name)
	if !ok || raw == "" {
		return def, nil
	}
	var zero T
	switch any(zero).(type) {
	case float32:
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return def, badValue(name, raw)
		}
		return T(f), nil
	case float64:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return def, badValue(name, raw)
		}
		return T(f), nil
	case uint, uint8, uint16, uint32, uint64, uintptr:
		u, err := strconv.ParseUint(raw, 0, numBits(zero))
		if err != nil {
			return def, badValue(name, raw)
		}
		return T(u), nil
	default:
		i, err := strconv.ParseInt(raw, 0, numBits(zero))
		if err != nil {
			return def, badValue(name, raw)
		}
		return T(i), nil
	}
}

// numBits is the ParseInt/ParseUint bitSize for a concrete integer type.
func numBits(v any) int {
	switch v.(type) {
	case int8, uint8:
		return 8
	case int16, uint16:
		return 16
	case int32, uint32:
		return 32
	case int, uint:
		return strconv.IntSize
	}
	return 64
}

// Bool parses on/off style values; a bare flag counts as true.
func (a Args) Bool(name string, def bool) (bool, error) {
	raw, ok := a.Str(name)
	if !ok {
		return def, nil
	}
	switch strings.ToLower(raw) {
	case "", "1", "true", "on", "yes":
		return true, nil
	case "0", "false", "off", "no":
		return false, nil
	}
	return def, badValue(name, raw)
}

func badValue(name, raw string) error {
	return errcode.New(errcode.Parse, "bad value for "+name+": "+raw)
}
