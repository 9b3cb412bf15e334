package mathx

// CeilDiv returns ceil(a/b) for unsigned integers; b==0 yields 0.
func CeilDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b - 1) / b
}

// RoundDiv returns floor((a + b/2)/b), classic rounding for positives.
func RoundDiv[T ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64](a, b T) T {
	if b == 0 {
		return 0
	}
	return (a + b/2) / b
}

// MapU16 maps x from [inMin,inMax] to [outMin,outMax] with 32-bit
// intermediates. Inputs outside the range clamp to the output ends.
func MapU16(x, inMin, inMax, outMin, outMax uint16) uint16 {
	if inMax == inMin {
		return outMin
	}
	if x < inMin {
		return outMin
	}
	if x > inMax {
		return outMax
	}
	num := uint32(x-inMin) * uint32(outMax-outMin)
	den := uint32(inMax - inMin)
	return uint16(uint32(outMin) + num/den)
}

// MapU32 is MapU16's wide cousin for microsecond and tick ranges.
func MapU32(x, inMin, inMax, outMin, outMax uint32) uint32 {
	if inMax == inMin {
		return outMin
	}
	if x < inMin {
		return outMin
	}
	if x > inMax {
		return outMax
	}
	num := uint64(x-inMin) * uint64(outMax-outMin)
	den := uint64(inMax - inMin)
	return uint32(uint64(outMin) + num/den)
}

// LerpU16 interpolates between a and b with t in Q16 ([0..65535]).
func LerpU16(a, b, t uint16) uint16 {
	da := int32(b) - int32(a)
	res := int32(a) + (da*int32(t))/65535
	if res < 0 {
		return 0
	}
	if res > 65535 {
		return 65535
	}
	return uint16(res)
}
