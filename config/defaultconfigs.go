package config

// Embedded configuration blobs, keyed by board name. Regenerate or edit
// by hand when cutting a board variant.

const cfgPico = `{
  "product": "RPi Pico USB-Serial CLI",
  "version": "0.2.0",
  "break_char": "~",
  "prompt_status": true,
  "default_pwm_hz": 50,
  "log_level": "warn",
  "status_ref_res": 10000
}`

var embeddedConfigs = map[string][]byte{
	"pico": []byte(cfgPico),
}
