package app

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/domain"
)

// callSession tracks one in-flight call attempt. The caller's connection id
// is captured at ring time so the response can be routed even if the
// directory changes before the callee answers.
type callSession struct {
	Caller    string
	Callee    string
	CallerSID core.SessionID
	State     domain.CallState

	ringTimer *time.Timer
}

// CallTable holds every live call session keyed by the caller|callee pair.
// A session is removed on rejection, hangup, disconnect or ring expiry, so a
// finished pair is Idle again and a fresh call starts clean.
type CallTable struct {
	mu    sync.Mutex
	calls map[string]*callSession

	ringTimeout time.Duration
	// onRingExpired fires outside the table lock when a call was left
	// ringing past the deadline.
	onRingExpired func(caller, callee string, callerSID core.SessionID)
}

func NewCallTable(ringTimeout time.Duration, onRingExpired func(caller, callee string, callerSID core.SessionID)) *CallTable {
	return &CallTable{
		calls:         make(map[string]*callSession),
		ringTimeout:   ringTimeout,
		onRingExpired: onRingExpired,
	}
}

func pairKey(caller, callee string) string {
	return caller + "|" + callee
}

// Place starts Ringing for the pair. A pair with a live session is not Idle,
// so the attempt is a silent no-op.
func (t *CallTable) Place(caller, callee string, callerSID core.SessionID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	key := pairKey(caller, callee)
	if _, ok := t.calls[key]; ok {
		log.Warn().Str("module", "app.calls").Str("caller", caller).Str("callee", callee).Msg("call ignored, pair not idle")
		return false
	}
	sess := &callSession{
		Caller:    caller,
		Callee:    callee,
		CallerSID: callerSID,
		State:     domain.CallRinging,
	}
	if t.ringTimeout > 0 {
		sess.ringTimer = time.AfterFunc(t.ringTimeout, func() { t.expire(key) })
	}
	t.calls[key] = sess
	log.Info().Str("module", "app.calls").Str("caller", caller).Str("callee", callee).Msg("ringing")
	return true
}

func (t *CallTable) expire(key string) {
	t.mu.Lock()
	sess, ok := t.calls[key]
	if !ok || sess.State != domain.CallRinging {
		t.mu.Unlock()
		return
	}
	delete(t.calls, key)
	t.mu.Unlock()
	log.Info().Str("module", "app.calls").Str("caller", sess.Caller).Str("callee", sess.Callee).Msg("ringing expired")
	if t.onRingExpired != nil {
		t.onRingExpired(sess.Caller, sess.Callee, sess.CallerSID)
	}
}

// Respond resolves a Ringing session. It returns the caller connection id
// captured at ring time; responses to a pair that is not Ringing return
// ok=false and change nothing.
func (t *CallTable) Respond(caller, callee string, accepted bool) (core.SessionID, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sess, ok := t.calls[pairKey(caller, callee)]
	if !ok || sess.State != domain.CallRinging {
		return "", false
	}
	sess.stopRingTimer()
	if accepted {
		sess.State = domain.CallAccepted
	} else {
		// Rejected is terminal; the entry goes away so the pair is Idle.
		sess.State = domain.CallRejected
		delete(t.calls, pairKey(caller, callee))
	}
	log.Info().Str("module", "app.calls").Str("caller", caller).Str("callee", callee).Bool("accepted", accepted).Msg("call answered")
	return sess.CallerSID, true
}

// OnOffer advances an Accepted session once the caller starts negotiating.
// Offers outside any session (screen-share negotiation) pass through the
// router untouched and never reach a table entry.
func (t *CallTable) OnOffer(caller, callee string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sess, ok := t.calls[pairKey(caller, callee)]; ok && sess.State == domain.CallAccepted {
		sess.State = domain.CallNegotiating
	}
}

// OnAnswer marks a Negotiating session Connected. answerer is the callee.
func (t *CallTable) OnAnswer(answerer, caller string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sess, ok := t.calls[pairKey(caller, answerer)]; ok && sess.State == domain.CallNegotiating {
		sess.State = domain.CallConnected
		log.Info().Str("module", "app.calls").Str("caller", caller).Str("callee", answerer).Msg("connected")
	}
}

// Connected reports whether a and b have a Connected session in either
// direction. Media state toggles are only forwarded while this holds.
func (t *CallTable) Connected(a, b string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sess, ok := t.calls[pairKey(a, b)]; ok && sess.State == domain.CallConnected {
		return true
	}
	if sess, ok := t.calls[pairKey(b, a)]; ok && sess.State == domain.CallConnected {
		return true
	}
	return false
}

// End discards the pair's session, in whichever direction it was placed.
func (t *CallTable) End(a, b string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, key := range []string{pairKey(a, b), pairKey(b, a)} {
		if sess, ok := t.calls[key]; ok {
			sess.stopRingTimer()
			delete(t.calls, key)
			log.Info().Str("module", "app.calls").Str("caller", sess.Caller).Str("callee", sess.Callee).Msg("call ended")
			return true
		}
	}
	return false
}

// EndAllFor tears down every session naming the identity and returns the
// peers to notify.
func (t *CallTable) EndAllFor(name string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var peers []string
	for key, sess := range t.calls {
		switch name {
		case sess.Caller:
			peers = append(peers, sess.Callee)
		case sess.Callee:
			peers = append(peers, sess.Caller)
		default:
			continue
		}
		sess.stopRingTimer()
		delete(t.calls, key)
	}
	return peers
}

// State reports the current state for the directional pair, CallIdle when
// no session is recorded.
func (t *CallTable) State(caller, callee string) domain.CallState {
	t.mu.Lock()
	defer t.mu.Unlock()
	if sess, ok := t.calls[pairKey(caller, callee)]; ok {
		return sess.State
	}
	return domain.CallIdle
}

func (s *callSession) stopRingTimer() {
	if s.ringTimer != nil {
		s.ringTimer.Stop()
		s.ringTimer = nil
	}
}
