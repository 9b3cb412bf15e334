package config

import "testing"

func TestParsePicoBlob(t *testing.T) {
	s := parse("pico")
	if s.Product != "RPi Pico USB-Serial CLI" {
		t.Fatalf("Product = %q", s.Product)
	}
	if s.BreakChar != '~' || s.DefaultPWMHz != 50 || !s.PromptStatus {
		t.Fatalf("settings = %+v", s)
	}
	if s.StatusRefRes != 10000 {
		t.Fatalf("StatusRefRes = %v", s.StatusRefRes)
	}
}

func TestUnknownBoardFallsBack(t *testing.T) {
	s := parse("mystery-board")
	d := defaults()
	if s != d {
		t.Fatalf("parse = %+v, want defaults %+v", s, d)
	}
}

func TestPartialBlobKeepsDefaults(t *testing.T) {
	old := EmbeddedConfigLookup
	defer func() { EmbeddedConfigLookup = old }()
	EmbeddedConfigLookup = func(string) ([]byte, bool) {
		return []byte(`{"product": "partial", "default_pwm_hz": 100}`), true
	}

	s := parse("whatever")
	if s.Product != "partial" || s.DefaultPWMHz != 100 {
		t.Fatalf("overridden fields wrong: %+v", s)
	}
	if s.BreakChar != '~' || s.LogLevel != "warn" {
		t.Fatalf("defaults lost: %+v", s)
	}
}

func TestGarbageBlobFallsBack(t *testing.T) {
	old := EmbeddedConfigLookup
	defer func() { EmbeddedConfigLookup = old }()
	EmbeddedConfigLookup = func(string) ([]byte, bool) {
		return []byte(`[1, 2, 3]`), true
	}
	if s := parse("x"); s != defaults() {
		t.Fatalf("garbage should fall back, got %+v", s)
	}
}

func TestLoadIsOnceOnly(t *testing.T) {
	first := Load("pico")
	second := Load("some-other-board")
	if first != second {
		t.Fatal("Load must latch the first resolution")
	}
}
