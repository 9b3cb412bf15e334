package errcode

// Code is a stable console-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK Code = "ok"

	// Parse
	Parse       Code = "parse"
	CmdTooLong  Code = "command_too_long"
	ArgTooLong  Code = "argument_too_long"
	TooManyArgs Code = "too_many_arguments"

	// Lookup
	CmdNotFound  Code = "command_not_found"
	MissingArg   Code = "missing_argument"
	UnknownPin   Code = "unknown_pin"
	UnknownAlias Code = "unknown_alias"

	// Resources
	PinConfigured Code = "pin_already_configured"
	SliceBusy     Code = "pwm_slice_busy"
	Unsupported   Code = "unsupported"

	// Transport
	WouldBlock      Code = "would_block"
	Disconnected    Code = "disconnected"
	BufferOverflow  Code = "buffer_overflow"
	InvalidEndpoint Code = "invalid_endpoint"

	Failed Code = "command_failed" // generic fallback
)

// E keeps a code together with context and an optional cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// New returns a code annotated with a message.
func New(c Code, msg string) error { return &E{C: c, Msg: msg} }

// Of extracts a Code from an error, defaulting to Failed.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Failed
}

// Is reports whether err carries the given code.
func Is(err error, c Code) bool { return Of(err) == c }
