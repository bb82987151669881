package signal

import (
	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/protocol"
)

// Presenter mode: one identity claims the host slot and fans offers out to
// every other connection. The username field some clients still send is
// accepted on the wire but the claim is made for the announced identity of
// the sending connection.

func (ctl *SignalWSController) handleBecomeHost(sid core.SessionID, data []byte) {
	var p protocol.BecomeHost
	if !decode(sid, "becomeHost", data, &p) {
		return
	}
	ctl.Relay.BecomeHost(sid)
}

func (ctl *SignalWSController) handleLeaveHost(sid core.SessionID, data []byte) {
	var p protocol.LeaveHost
	if !decode(sid, "leaveHost", data, &p) {
		return
	}
	ctl.Relay.LeaveHost(sid)
}

func (ctl *SignalWSController) handleHostShare(sid core.SessionID, data []byte) {
	var p protocol.HostScreenShare
	if !decode(sid, "hostScreenShare", data, &p) {
		return
	}
	ctl.Relay.HostShare(sid, p.Offers)
}

func (ctl *SignalWSController) handleStopShare(sid core.SessionID, data []byte) {
	var p protocol.StopScreenShare
	if len(data) > 0 && !decode(sid, "stopScreenShare", data, &p) {
		return
	}
	ctl.Relay.StopShare(sid, p.Target)
}
