package core

// Frame is a single encoded signaling envelope as sent on the wire.
type Frame []byte

// SessionID identifies one live transport connection.
type SessionID string

// SignalConnection abstracts the signaling transport for one client.
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}
