// Package pinmap is the board's pin resource table: a compile-time list
// of alias/GPIO/group definitions plus run-time ownership claims.
package pinmap

import (
	"strconv"
	"strings"
	"sync/atomic"

	"picocli-go/errcode"
)

// Group classifies what a pin is wired for.
type Group uint8

const (
	GroupADC Group = iota
	GroupPWM
	GroupI2C
	GroupSPI
	GroupUART
	GroupInput
	GroupOutput
	GroupOther
	GroupCore1Input
	GroupCore1Output
)

func (g Group) String() string {
	switch g {
	case GroupADC:
		return "adc"
	case GroupPWM:
		return "pwm"
	case GroupI2C:
		return "i2c"
	case GroupSPI:
		return "spi"
	case GroupUART:
		return "uart"
	case GroupInput:
		return "input"
	case GroupOutput:
		return "output"
	case GroupOther:
		return "other"
	case GroupCore1Input:
		return "c1_input"
	case GroupCore1Output:
		return "c1_output"
	}
	return "unknown"
}

// NA marks an alias that exists on the board but is not mapped to a pin.
const NA = -1

// MaxGPIO is the highest user pin on this package.
const MaxGPIO = 29

// Def binds an alias to a GPIO number within a group.
type Def struct {
	Alias string
	ID    int
	Group Group
}

// Map is an immutable definition table with per-pin ownership flags.
type Map struct {
	defs  []Def
	taken [MaxGPIO + 1]atomic.Bool
}

// New validates the table. A duplicate or out-of-range pin is a build
// mistake, so it panics rather than limping along with a bad board map.
func New(defs []Def) *Map {
	var seen [MaxGPIO + 1]bool
	for _, d := range defs {
		if d.ID == NA {
			continue
		}
		if d.ID < 0 || d.ID > MaxGPIO {
			panic("pinmap: pin out of range: " + d.Alias + "=" + strconv.Itoa(d.ID))
		}
		if seen[d.ID] {
			panic("pinmap: duplicate pin: " + d.Alias + "=" + strconv.Itoa(d.ID))
		}
		seen[d.ID] = true
	}
	return &Map{defs: defs}
}

// GPIO resolves an alias (case-insensitive) to its pin number.
func (m *Map) GPIO(alias string) (int, error) {
	for _, d := range m.defs {
		if strings.EqualFold(d.Alias, alias) {
			if d.ID == NA {
				return NA, errcode.New(errcode.UnknownAlias, alias+" has no pin assigned")
			}
			return d.ID, nil
		}
	}
	return NA, errcode.New(errcode.UnknownAlias, alias)
}

// Alias returns the name bound to a pin.
func (m *Map) Alias(id int) (string, error) {
	for _, d := range m.defs {
		if d.ID == id {
			return d.Alias, nil
		}
	}
	return "", errcode.New(errcode.UnknownPin, "gpio "+strconv.Itoa(id))
}

// GroupOf returns a pin's group.
func (m *Map) GroupOf(id int) (Group, bool) {
	for _, d := range m.defs {
		if d.ID == id {
			return d.Group, true
		}
	}
	return GroupOther, false
}

// IDsInGroup lists the assigned pins of a group in table order.
func (m *Map) IDsInGroup(g Group) []int {
	var ids []int
	for _, d := range m.defs {
		if d.Group == g && d.ID != NA {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// Pair resolves a gpio/alias argument pair to a concrete pin and its
// alias. When both are given the gpio number wins; when neither is
// given it fails with MissingArg.
func (m *Map) Pair(gpio int, alias string) (int, string, error) {
	if gpio != NA {
		a, err := m.Alias(gpio)
		if err != nil {
			return NA, "", err
		}
		return gpio, a, nil
	}
	if alias != "" {
		id, err := m.GPIO(alias)
		if err != nil {
			return NA, "", err
		}
		return id, alias, nil
	}
	return NA, "", errcode.New(errcode.MissingArg, "need gpio= or alias=")
}

// Claim takes exclusive ownership of a pin for the rest of the boot.
// There is no release: reconfiguring a peripheral means resetting.
func (m *Map) Claim(id int) error {
	if id < 0 || id > MaxGPIO {
		return errcode.New(errcode.UnknownPin, "gpio "+strconv.Itoa(id))
	}
	if !m.taken[id].CompareAndSwap(false, true) {
		return errcode.New(errcode.PinConfigured, "gpio "+strconv.Itoa(id))
	}
	return nil
}

// ClaimByAlias resolves and claims in one step.
func (m *Map) ClaimByAlias(alias string) (int, error) {
	id, err := m.GPIO(alias)
	if err != nil {
		return NA, err
	}
	return id, m.Claim(id)
}

// Taken reports whether a pin is already owned.
func (m *Map) Taken(id int) bool {
	if id < 0 || id > MaxGPIO {
		return false
	}
	return m.taken[id].Load()
}

// Defs exposes the table for status listings.
func (m *Map) Defs() []Def { return m.defs }
