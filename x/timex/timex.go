// Package timex carries timing helpers shared by the PWM layer and the
// console loop.
package timex

import (
	"strconv"
	"time"
)

// NowMs returns Unix milliseconds as int64.
func NowMs() int64 { return time.Now().UnixMilli() }

// PeriodFromHz returns a nanosecond period for a requested frequency.
// freqHz==0 is coerced to 1 to avoid division by zero.
func PeriodFromHz(freqHz uint32) uint64 {
	if freqHz == 0 {
		freqHz = 1
	}
	return uint64(1_000_000_000 / uint64(freqHz))
}

// FormatMs renders d as milliseconds with three decimals ("1.234").
// Integer math only so it stays cheap on the target.
func FormatMs(d time.Duration) string {
	us := d.Microseconds()
	if us < 0 {
		us = 0
	}
	whole := us / 1000
	frac := us % 1000
	s := strconv.FormatInt(whole, 10) + "."
	switch {
	case frac < 10:
		s += "00"
	case frac < 100:
		s += "0"
	}
	return s + strconv.FormatInt(frac, 10)
}

// Uptime renders a duration as "h:mm:ss".
func Uptime(d time.Duration) string {
	sec := int64(d / time.Second)
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	return strconv.FormatInt(h, 10) + ":" + pad2(m) + ":" + pad2(s)
}

func pad2(v int64) string {
	if v < 10 {
		return "0" + strconv.FormatInt(v, 10)
	}
	return strconv.FormatInt(v, 10)
}
