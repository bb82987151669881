package signal

import (
	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/protocol"
)

// The SDP and candidate bodies below are opaque: decoded only far enough to
// pull out the target, then relayed untouched.

func (ctl *SignalWSController) handleOffer(sid core.SessionID, data []byte) {
	var p protocol.Offer
	if !decode(sid, "offer", data, &p) {
		return
	}
	ctl.Relay.Offer(sid, p.Target, p.Offer)
}

func (ctl *SignalWSController) handleAnswer(sid core.SessionID, data []byte) {
	var p protocol.Answer
	if !decode(sid, "answer", data, &p) {
		return
	}
	ctl.Relay.Answer(sid, p.Target, p.Answer)
}

func (ctl *SignalWSController) handleCandidate(sid core.SessionID, data []byte) {
	var p protocol.ICECandidate
	if !decode(sid, "iceCandidate", data, &p) {
		return
	}
	ctl.Relay.ICECandidate(sid, p.Target, p.Candidate)
}
