package signal

import "github.com/Issho-lin/webrtc-demo/internal/protocol"

func (ctl *SignalWSController) handlePing(conn *WsSignalConn) {
	ctl.sendJSON(conn, protocol.TypePong, nil)
}
