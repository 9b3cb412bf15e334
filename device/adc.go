package device

// Analog conversions. Samples are 16-bit full scale against the 3.3 V
// reference.

const (
	adcVRef      = 3.3
	adcFullScale = 65535
)

// Voltage converts a raw sample to volts.
func Voltage(raw uint16) float32 {
	return adcVRef * float32(raw) / float32(adcFullScale)
}

// Resistance solves the pull-up divider for the resistance to ground:
// refRes between the pin and the rail, unknown between pin and ground.
// A zero sample (nothing connected, or a dead short of the rail side)
// reads as -1.
func Resistance(raw uint16, refRes float32) float32 {
	if raw == 0 {
		return -1
	}
	return refRes * (float32(adcFullScale)/float32(raw) - 1)
}

// TempC converts a temperature-sensor sample using the RP2040 datasheet
// formula: 27 °C at 0.706 V, -1.721 mV per degree.
func TempC(raw uint16) float32 {
	v := Voltage(raw)
	return 27.0 - (v-0.706)/0.001721
}
