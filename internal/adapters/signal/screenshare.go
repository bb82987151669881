package signal

import (
	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/protocol"
)

// Request/response screen-share variant: the requester's connection id
// travels in the invite so the answer can come back without a name lookup,
// mirroring the call flow.

func (ctl *SignalWSController) handleRequestShare(sid core.SessionID, data []byte) {
	var p protocol.RequestScreenShare
	if !decode(sid, "requestScreenShare", data, &p) {
		return
	}
	ctl.Relay.RequestShare(sid, p.Target)
}

func (ctl *SignalWSController) handleShareResponse(sid core.SessionID, data []byte) {
	var p protocol.ScreenShareResponse
	if !decode(sid, "screenShareResponse", data, &p) {
		return
	}
	ctl.Relay.ShareResponse(sid, p.Accepted, p.FromID)
}
