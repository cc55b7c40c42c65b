package ssd1327

// State is the power state of the display.
type State int

// Power states. A Dev goes from StateUninitialized to StateInitialized
// through StatePoweringOn during NewI2C; PowerOff moves it to
// StatePoweringOff and PowerOn back to StateInitialized.
const (
	StateUninitialized State = iota
	StatePoweringOn
	StateInitialized
	StatePoweringOff
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StatePoweringOn:
		return "PoweringOn"
	case StateInitialized:
		return "Initialized"
	case StatePoweringOff:
		return "PoweringOff"
	default:
		return "State(?)"
	}
}

// TransportError is returned when a bus write fails. The write is not
// retried.
type TransportError struct {
	// Op is "command" or "data".
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return "ssd1327: " + e.Op + " write failed: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
