package signal

import (
	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/protocol"
)

func (ctl *SignalWSController) handleCall(sid core.SessionID, data []byte) {
	var p protocol.Call
	if !decode(sid, "call", data, &p) {
		return
	}
	ctl.Relay.Call(sid, p.Target)
}

func (ctl *SignalWSController) handleCallResponse(sid core.SessionID, data []byte) {
	var p protocol.CallResponse
	if !decode(sid, "callResponse", data, &p) {
		return
	}
	// The reply is routed via the connection id captured at ring time; the
	// callerId echoed by the client is not trusted for routing.
	ctl.Relay.CallResponse(sid, p.Caller, p.Accepted)
}

func (ctl *SignalWSController) handleMediaState(sid core.SessionID, data []byte) {
	var p protocol.MediaStateChange
	if !decode(sid, "mediaStateChange", data, &p) {
		return
	}
	ctl.Relay.MediaState(sid, p.Target, p.MediaType, p.Enabled)
}

func (ctl *SignalWSController) handleEndCall(sid core.SessionID, data []byte) {
	var p protocol.EndCall
	if !decode(sid, "endCall", data, &p) {
		return
	}
	ctl.Relay.EndCall(sid, p.Target)
}
