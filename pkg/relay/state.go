package relay

// State is a relay session state.
type State int

const (
	StateNegotiating State = iota
	StateStreaming
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNegotiating:
		return "negotiating"
	case StateStreaming:
		return "streaming"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
