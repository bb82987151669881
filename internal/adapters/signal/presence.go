package signal

import (
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/domain"
	"github.com/Issho-lin/webrtc-demo/internal/protocol"
)

func (ctl *SignalWSController) handleJoin(sid core.SessionID, conn *WsSignalConn, data []byte) {
	var p protocol.Join
	if !decode(sid, "join", data, &p) {
		return
	}

	err := ctl.Relay.Join(sid, p.Username)
	switch {
	case err == nil:
		log.Info().Str("module", "signal").Str("sid", string(sid)).Str("username", p.Username).Msg("join")
	case errors.Is(err, domain.ErrNameTaken):
		// The one failure a client cannot fix by retrying the same input.
		log.Warn().Str("module", "signal").Str("sid", string(sid)).Str("username", p.Username).Msg("join rejected, name taken")
		ctl.sendJSON(conn, protocol.TypeError, protocol.Error{Error: "name_taken"})
	default:
		log.Warn().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("join rejected")
	}
}
