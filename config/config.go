// Package config resolves the board's embedded settings blob. Settings
// ride in flash as JSON so a board variant is a new blob, not new code.
package config

import (
	"errors"
	"sync"

	"github.com/andreyvit/tinyjson"
)

// Settings is everything the console needs to know about this build.
type Settings struct {
	Product      string
	Version      string
	BreakChar    byte
	PromptStatus bool
	DefaultPWMHz uint32
	LogLevel     string
	StatusRefRes float32
}

func defaults() Settings {
	return Settings{
		Product:      "pico-console",
		Version:      "dev",
		BreakChar:    '~',
		PromptStatus: true,
		DefaultPWMHz: 50,
		LogLevel:     "warn",
		StatusRefRes: 10000,
	}
}

// EmbeddedConfigLookup allows overriding how blobs are resolved.
var EmbeddedConfigLookup = func(board string) ([]byte, bool) {
	b, ok := embeddedConfigs[board]
	return b, ok
}

var loadOnce sync.Once
var loaded Settings

// Load resolves the settings for a board, falling back to defaults for
// an unknown board or a missing key. The first call wins; the blob does
// not change underneath a running console.
func Load(board string) Settings {
	loadOnce.Do(func() {
		loaded = parse(board)
	})
	return loaded
}

func parse(board string) Settings {
	s := defaults()
	raw, ok := EmbeddedConfigLookup(board)
	if !ok || len(raw) == 0 {
		return s
	}
	m, err := decodeObject(raw)
	if err != nil {
		return s
	}
	if v, ok := m["product"].(string); ok {
		s.Product = v
	}
	if v, ok := m["version"].(string); ok {
		s.Version = v
	}
	if v, ok := m["break_char"].(string); ok && len(v) == 1 {
		s.BreakChar = v[0]
	}
	if v, ok := m["prompt_status"].(bool); ok {
		s.PromptStatus = v
	}
	if v, ok := m["default_pwm_hz"].(float64); ok && v > 0 {
		s.DefaultPWMHz = uint32(v)
	}
	if v, ok := m["log_level"].(string); ok {
		s.LogLevel = v
	}
	if v, ok := m["status_ref_res"].(float64); ok && v > 0 {
		s.StatusRefRes = float32(v)
	}
	return s
}

func decodeObject(raw []byte) (map[string]any, error) {
	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()
	m, ok := val.(map[string]any)
	if !ok {
		return nil, errors.New("embedded config is not a JSON object")
	}
	return m, nil
}
