package app

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/protocol"
)

// Relay routes signaling between connections: presence fan-out, directed
// negotiation forwarding, the 1:1 call state machine and the presenter
// broadcast mode. Payload blobs are relayed verbatim, never inspected.
//
// Failed guards (unknown target, wrong call state, role conflict) degrade to
// a silent no-op; the relay never answers bad input with an error beyond the
// join rejection, and never closes a connection itself.
type Relay struct {
	Registry  *Registry
	Presenter *Presenter
	Calls     *CallTable
}

func NewRelay(ringTimeout time.Duration) *Relay {
	r := &Relay{
		Registry:  NewRegistry(),
		Presenter: NewPresenter(),
	}
	r.Calls = NewCallTable(ringTimeout, r.onRingExpired)
	return r
}

// Join announces an identity and pushes the updated roster to everyone,
// plus the current presenter to the joiner. A taken name is rejected and
// nothing is broadcast.
func (r *Relay) Join(sid core.SessionID, username string) error {
	if err := r.Registry.Announce(sid, username); err != nil {
		return err
	}
	r.broadcastRoster()
	if conn, ok := r.Registry.Conn(sid); ok {
		r.send(conn, protocol.TypeHostUpdate, r.hostUpdate())
	}
	return nil
}

// Call rings the target. Nothing happens unless the caller is announced,
// the target resolves and the pair is idle.
func (r *Relay) Call(sid core.SessionID, target string) {
	caller, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	_, conn, ok := r.Registry.Resolve(target)
	if !ok {
		log.Warn().Str("module", "app.relay").Str("caller", caller).Str("target", target).Msg("call target not found")
		return
	}
	if !r.Calls.Place(caller, target, sid) {
		return
	}
	r.send(conn, protocol.TypeIncomingCall, protocol.IncomingCall{
		Caller:   caller,
		CallerID: string(sid),
	})
}

// CallResponse resolves a ringing call. The answer is routed to the caller
// connection captured at ring time, not a fresh directory lookup, so it
// survives directory churn in between.
func (r *Relay) CallResponse(sid core.SessionID, caller string, accepted bool) {
	callee, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	callerSID, ok := r.Calls.Respond(caller, callee, accepted)
	if !ok {
		return
	}
	conn, ok := r.Registry.Conn(callerSID)
	if !ok {
		return
	}
	r.send(conn, protocol.TypeCallAnswered, protocol.CallAnswered{
		Accepted: accepted,
		Target:   callee,
	})
}

// Offer forwards an opaque offer to the target's current connection.
func (r *Relay) Offer(sid core.SessionID, target string, offer json.RawMessage) {
	from, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	_, conn, ok := r.Registry.Resolve(target)
	if !ok {
		return
	}
	r.Calls.OnOffer(from, target)
	r.send(conn, protocol.TypeOffer, protocol.OfferForward{Offer: offer, Caller: from})
}

// Answer forwards an opaque answer to the target's current connection.
func (r *Relay) Answer(sid core.SessionID, target string, answer json.RawMessage) {
	from, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	_, conn, ok := r.Registry.Resolve(target)
	if !ok {
		return
	}
	r.Calls.OnAnswer(from, target)
	r.send(conn, protocol.TypeAnswer, protocol.AnswerForward{Answer: answer, Answerer: string(sid)})
}

// ICECandidate forwards an opaque candidate to the target's current
// connection. The sender is tagged by connection id, matching the answer
// path.
func (r *Relay) ICECandidate(sid core.SessionID, target string, candidate json.RawMessage) {
	_, conn, ok := r.Registry.Resolve(target)
	if !ok {
		return
	}
	r.send(conn, protocol.TypeICECandidate, protocol.ICECandidateForward{
		Candidate: candidate,
		Sender:    string(sid),
	})
}

// MediaState forwards a video/audio toggle notice. It is a point-to-point
// notice, not a state transition, and only valid while the pair is
// connected.
func (r *Relay) MediaState(sid core.SessionID, target, mediaType string, enabled bool) {
	from, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	if !r.Calls.Connected(from, target) {
		return
	}
	_, conn, ok := r.Registry.Resolve(target)
	if !ok {
		return
	}
	r.send(conn, protocol.TypeMediaStateChange, protocol.MediaStateForward{
		Sender:    from,
		MediaType: mediaType,
		Enabled:   enabled,
	})
}

// EndCall discards the pair's session from any state and tells the peer.
func (r *Relay) EndCall(sid core.SessionID, target string) {
	from, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	r.Calls.End(from, target)
	_, conn, ok := r.Registry.Resolve(target)
	if !ok {
		return
	}
	r.send(conn, protocol.TypeCallEnded, protocol.CallEnded{Caller: from})
}

// BecomeHost claims the presenter slot for the sender's identity. A claim
// against a held slot is silently ignored.
func (r *Relay) BecomeHost(sid core.SessionID) {
	name, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	if r.Presenter.Claim(name) {
		r.broadcast(protocol.TypeHostUpdate, r.hostUpdate())
	}
}

// LeaveHost vacates the presenter slot if the sender holds it.
func (r *Relay) LeaveHost(sid core.SessionID) {
	name, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	if r.Presenter.Release(name) {
		r.broadcast(protocol.TypeHostUpdate, r.hostUpdate())
	}
}

// HostShare distributes the presenter's offers to the other connections,
// one each, in directory iteration order. Connections beyond the offer
// count get none. The pairing is positional: the client protocol carries no
// per-viewer identity on the offers, so iteration order is the contract.
func (r *Relay) HostShare(sid core.SessionID, offers []json.RawMessage) {
	name, ok := r.Registry.NameOf(sid)
	if !ok || !r.Presenter.Holds(name) {
		return
	}
	next := 0
	for _, snap := range r.Registry.Connections() {
		// Only announced identities take part in the pairing; a socket
		// that never joined must not consume an offer positionally.
		if snap.SID == sid || snap.Name == "" {
			continue
		}
		if next >= len(offers) {
			break
		}
		r.send(snap.Conn, protocol.TypeOffer, protocol.HostOffer{From: name, Offer: offers[next]})
		next++
	}
	log.Info().Str("module", "app.relay").Str("host", name).Int("offers", next).Msg("host share fan-out")
}

// StopShare ends a screen share. With a target it is the 1:1 variant and is
// delivered to that peer only; without, the presenter tells everyone else.
func (r *Relay) StopShare(sid core.SessionID, target string) {
	name, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	if target != "" {
		_, conn, ok := r.Registry.Resolve(target)
		if !ok {
			return
		}
		r.send(conn, protocol.TypeScreenShareStopped, protocol.ScreenShareStopped{From: name})
		return
	}
	if !r.Presenter.Holds(name) {
		return
	}
	for _, snap := range r.Registry.Connections() {
		if snap.SID == sid || snap.Name == "" {
			continue
		}
		r.send(snap.Conn, protocol.TypeScreenShareStopped, protocol.ScreenShareStopped{})
	}
}

// RequestShare asks the target to accept a 1:1 screen share, carrying the
// requester's connection id for the captured-id reply.
func (r *Relay) RequestShare(sid core.SessionID, target string) {
	from, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	_, conn, ok := r.Registry.Resolve(target)
	if !ok {
		return
	}
	r.send(conn, protocol.TypeIncomingScreenShare, protocol.IncomingScreenShare{
		From:   from,
		FromID: string(sid),
	})
}

// ShareResponse answers a screen-share request via the captured requester
// connection id.
func (r *Relay) ShareResponse(sid core.SessionID, accepted bool, fromID string) {
	responder, ok := r.Registry.NameOf(sid)
	if !ok {
		return
	}
	conn, ok := r.Registry.Conn(core.SessionID(fromID))
	if !ok {
		return
	}
	r.send(conn, protocol.TypeScreenShareAnswered, protocol.ScreenShareAnswered{
		Accepted: accepted,
		Target:   responder,
	})
}

// Disconnect tears a connection down: directory removal, forced presenter
// release, cancellation of calls naming the identity, roster broadcast.
// Idempotent; a second call finds nothing to do.
func (r *Relay) Disconnect(sid core.SessionID) {
	name, ok := r.Registry.Remove(sid)
	if !ok {
		return
	}
	if name != "" {
		if r.Presenter.Release(name) {
			r.broadcast(protocol.TypeHostUpdate, r.hostUpdate())
		}
		for _, peer := range r.Calls.EndAllFor(name) {
			if _, conn, ok := r.Registry.Resolve(peer); ok {
				r.send(conn, protocol.TypeCallEnded, protocol.CallEnded{Caller: name})
			}
		}
	}
	r.broadcastRoster()
}

func (r *Relay) onRingExpired(caller, callee string, callerSID core.SessionID) {
	log.Info().Str("module", "app.relay").Str("caller", caller).Str("callee", callee).Msg("ring timeout, ending call")
	if conn, ok := r.Registry.Conn(callerSID); ok {
		r.send(conn, protocol.TypeCallEnded, protocol.CallEnded{Caller: callee})
	}
	if _, conn, ok := r.Registry.Resolve(callee); ok {
		r.send(conn, protocol.TypeCallEnded, protocol.CallEnded{Caller: caller})
	}
}

func (r *Relay) hostUpdate() protocol.HostUpdate {
	if holder, ok := r.Presenter.Holder(); ok {
		return protocol.HostUpdate{Host: &holder}
	}
	return protocol.HostUpdate{}
}

func (r *Relay) broadcastRoster() {
	r.broadcast(protocol.TypeUserList, r.Registry.Roster())
}

func (r *Relay) broadcast(t protocol.Type, data any) {
	raw, err := protocol.Encode(t, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Str("type", string(t)).Msg("encode broadcast")
		return
	}
	for _, snap := range r.Registry.Connections() {
		if err := snap.Conn.TrySend(raw); err != nil {
			log.Warn().Err(err).Str("module", "app.relay").Str("sid", string(snap.SID)).Msg("broadcast send")
		}
	}
}

func (r *Relay) send(conn core.SignalConnection, t protocol.Type, data any) {
	raw, err := protocol.Encode(t, data)
	if err != nil {
		log.Error().Err(err).Str("module", "app.relay").Str("type", string(t)).Msg("encode message")
		return
	}
	if err := conn.TrySend(raw); err != nil {
		log.Warn().Err(err).Str("module", "app.relay").Str("type", string(t)).Msg("send")
	}
}
