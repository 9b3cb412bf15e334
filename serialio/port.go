package serialio

// Port is the raw console endpoint underneath the transport. On hardware
// this is the USB CDC serial; on a workstation it is an in-memory pipe.
//
// Read and write never block: both report errcode.WouldBlock when the
// endpoint cannot take or give a byte right now.
type Port interface {
	ReadByte() (byte, error)
	WriteByte(b byte) error
	// Poll gives the endpoint a chance to move data. Called with the
	// transport lock held, so it must not block.
	Poll()
	// Connected reports whether a host terminal is attached (DTR).
	Connected() bool
}
