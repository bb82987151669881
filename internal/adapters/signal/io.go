package signal

import (
	"context"
	"encoding/json"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/protocol"
)

func (ctl *SignalWSController) writePump(ctx context.Context, c *WsSignalConn) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Msg("writePump ctx done")
			return
		case data, ok := <-c.send:
			if !ok {
				log.Warn().Str("module", "signal").Msg("writePump channel closed")
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump set deadline")
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Error().Err(err).Str("module", "signal").Msg("writePump write error")
				return
			}
		}
	}
}

func (ctl *SignalWSController) readPump(ctx context.Context, sid core.SessionID, c *WsSignalConn) {
	defer func() {
		log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump closing")
		ctl.Relay.Registry.Cancel(sid)
		ctl.Relay.Disconnect(sid)
		c.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info().Str("module", "signal").Str("sid", string(sid)).Msg("readPump ctx done")
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("readPump read error")
				return
			}
			ctl.handleSignal(sid, c, data)
		}
	}
}

// handleSignal dispatches one inbound envelope. Malformed input is logged
// and dropped; the connection stays open either way.
func (ctl *SignalWSController) handleSignal(sid core.SessionID, c *WsSignalConn, data []byte) {
	env, err := protocol.Decode(data)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msg("bad json")
		return
	}

	switch env.Type {
	case protocol.TypeJoin:
		ctl.handleJoin(sid, c, env.Data)
	case protocol.TypePing:
		ctl.handlePing(c)
	case protocol.TypeCall:
		ctl.handleCall(sid, env.Data)
	case protocol.TypeCallResponse:
		ctl.handleCallResponse(sid, env.Data)
	case protocol.TypeOffer:
		ctl.handleOffer(sid, env.Data)
	case protocol.TypeAnswer:
		ctl.handleAnswer(sid, env.Data)
	case protocol.TypeICECandidate:
		ctl.handleCandidate(sid, env.Data)
	case protocol.TypeMediaStateChange:
		ctl.handleMediaState(sid, env.Data)
	case protocol.TypeEndCall:
		ctl.handleEndCall(sid, env.Data)
	case protocol.TypeBecomeHost:
		ctl.handleBecomeHost(sid, env.Data)
	case protocol.TypeLeaveHost:
		ctl.handleLeaveHost(sid, env.Data)
	case protocol.TypeHostScreenShare:
		ctl.handleHostShare(sid, env.Data)
	case protocol.TypeStopScreenShare:
		ctl.handleStopShare(sid, env.Data)
	case protocol.TypeRequestScreenShare:
		ctl.handleRequestShare(sid, env.Data)
	case protocol.TypeScreenShareResponse:
		ctl.handleShareResponse(sid, env.Data)
	default:
		log.Warn().Str("module", "signal").Str("type", string(env.Type)).Msg("unknown signal")
	}
}

func (ctl *SignalWSController) sendJSON(c *WsSignalConn, t protocol.Type, v any) {
	b, err := protocol.Encode(t, v)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("sendJSON marshal")
		return
	}
	_ = c.TrySend(b)
}

// decode unwraps a payload, logging and reporting malformed data.
func decode(sid core.SessionID, what string, data []byte, v any) bool {
	if err := json.Unmarshal(data, v); err != nil {
		log.Error().Err(err).Str("module", "signal").Str("sid", string(sid)).Msgf("bad %s payload", what)
		return false
	}
	return true
}
