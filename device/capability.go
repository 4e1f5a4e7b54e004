package device

// Capability tags what a device on a shared shaft can do. Composites use
// the tag to decide how to drive the device.
type Capability int

const (
	// Read produces State only, a pure sensor.
	Read Capability = iota
	// ReadWrite accepts Command and produces State, a closed-loop
	// actuator such as a smart servo.
	ReadWrite
	// ImpreciseWrite accepts raw effort with no internal closed loop, a
	// plain motor. A composite driving it must supply the control loop.
	ImpreciseWrite
	// PreciseWrite accepts Command and closes the loop internally
	// without reporting State.
	PreciseWrite
)

// String implements fmt.Stringer.
func (c Capability) String() string {
	switch c {
	case Read:
		return "read"
	case ReadWrite:
		return "read-write"
	case ImpreciseWrite:
		return "imprecise-write"
	case PreciseWrite:
		return "precise-write"
	default:
		return "unknown"
	}
}

// CanRead reports whether the capability produces State.
func (c Capability) CanRead() bool {
	return c == Read || c == ReadWrite
}

// CanWrite reports whether the capability accepts any kind of drive
// signal.
func (c Capability) CanWrite() bool {
	return c != Read
}
