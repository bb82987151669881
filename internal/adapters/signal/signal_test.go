package signal

import (
	"testing"

	"github.com/Issho-lin/webrtc-demo/internal/core"
)

func TestTrySendBackpressure(t *testing.T) {
	c := &WsSignalConn{send: make(chan core.Frame, 1)}

	if err := c.TrySend(core.Frame("a")); err != nil {
		t.Fatalf("first send: %v", err)
	}
	if err := c.TrySend(core.Frame("b")); err != ErrBackpressure {
		t.Fatalf("full channel err = %v, want ErrBackpressure", err)
	}
}

func TestTrySendAfterClose(t *testing.T) {
	c := &WsSignalConn{send: make(chan core.Frame, 1)}
	c.closed = true

	if err := c.TrySend(core.Frame("a")); err == nil {
		t.Fatalf("send on closed connection succeeded")
	}
}
