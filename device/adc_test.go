package device

import "testing"

func closeTo(a, b, eps float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d <= eps
}

func TestVoltage(t *testing.T) {
	if Voltage(0) != 0 {
		t.Fatal("zero sample")
	}
	if !closeTo(Voltage(65535), 3.3, 0.0001) {
		t.Fatalf("full scale = %v", Voltage(65535))
	}
	if !closeTo(Voltage(32768), 1.65, 0.001) {
		t.Fatalf("midpoint = %v", Voltage(32768))
	}
}

func TestResistance(t *testing.T) {
	// half scale means the unknown equals the reference
	if !closeTo(Resistance(32768, 10000), 10000, 10) {
		t.Fatalf("half scale = %v", Resistance(32768, 10000))
	}
	// full scale means no drop over the reference
	if !closeTo(Resistance(65535, 10000), 0, 0.01) {
		t.Fatalf("full scale = %v", Resistance(65535, 10000))
	}
	if Resistance(0, 10000) != -1 {
		t.Fatal("zero sample should read -1")
	}
}

func TestTempC(t *testing.T) {
	// 0.706 V is the 27 degree point
	v := float32(0.706) / 3.3 * 65535
	raw := uint16(v)
	if got := TempC(raw); !closeTo(got, 27, 0.05) {
		t.Fatalf("TempC = %v, want about 27", got)
	}
	// lower voltage reads hotter
	if TempC(raw-100) <= TempC(raw) {
		t.Fatal("temperature slope should be negative in voltage")
	}
}
