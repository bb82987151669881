package domain

// CallState tracks one 1:1 call attempt from ring to teardown.
type CallState int

const (
	CallIdle CallState = iota
	CallRinging
	CallAccepted
	CallRejected
	CallNegotiating
	CallConnected
	CallEnded
)

func (s CallState) String() string {
	switch s {
	case CallIdle:
		return "idle"
	case CallRinging:
		return "ringing"
	case CallAccepted:
		return "accepted"
	case CallRejected:
		return "rejected"
	case CallNegotiating:
		return "negotiating"
	case CallConnected:
		return "connected"
	case CallEnded:
		return "ended"
	}
	return "unknown"
}
