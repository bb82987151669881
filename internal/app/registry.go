package app

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Issho-lin/webrtc-demo/internal/core"
	"github.com/Issho-lin/webrtc-demo/internal/domain"
)

var errUnknownSession = errors.New("unknown session")

// sessionEntry pairs one live connection with its identity, once announced.
type sessionEntry struct {
	User   *domain.User // nil until Announce
	Conn   core.SignalConnection
	Cancel context.CancelFunc
}

// Registry is the connection registry and presence directory in one table:
// every live connection has an entry, announced ones also carry a User.
type Registry struct {
	mu       sync.RWMutex
	sessions map[core.SessionID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[core.SessionID]*sessionEntry)}
}

// Register admits a connection with no identity yet and assigns its id.
func (r *Registry) Register(conn core.SignalConnection, cancel context.CancelFunc) core.SessionID {
	sid := core.SessionID(uuid.NewString())
	r.mu.Lock()
	r.sessions[sid] = &sessionEntry{Conn: conn, Cancel: cancel}
	r.mu.Unlock()
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Msg("registered connection")
	return sid
}

// Announce binds a display name to a registered connection. A name already
// present in the directory is rejected with domain.ErrNameTaken so lookups
// stay deterministic.
func (r *Registry) Announce(sid core.SessionID, username string) error {
	user, err := domain.NewUser(username)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[sid]
	if !ok {
		return errUnknownSession
	}
	for other, e := range r.sessions {
		if other != sid && e.User != nil && e.User.Username == username {
			return domain.ErrNameTaken
		}
	}
	entry.User = user
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", username).Msg("announced identity")
	return nil
}

// Resolve finds the connection currently bound to a name.
func (r *Registry) Resolve(name string) (core.SessionID, core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for sid, e := range r.sessions {
		if e.User != nil && e.User.Username == name {
			return sid, e.Conn, true
		}
	}
	return "", nil, false
}

// Conn returns the connection for a session id regardless of identity.
func (r *Registry) Conn(sid core.SessionID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok {
		return e.Conn, true
	}
	return nil, false
}

// NameOf returns the announced name of a connection, if any.
func (r *Registry) NameOf(sid core.SessionID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if e, ok := r.sessions[sid]; ok && e.User != nil {
		return e.User.Username, true
	}
	return "", false
}

// Roster snapshots all announced names in directory iteration order.
func (r *Registry) Roster() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.sessions))
	for _, e := range r.sessions {
		if e.User != nil {
			out = append(out, e.User.Username)
		}
	}
	return out
}

type connSnap struct {
	SID  core.SessionID
	Name string // empty when not announced
	Conn core.SignalConnection
}

// Connections snapshots every live connection for fan-out.
func (r *Registry) Connections() []connSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]connSnap, 0, len(r.sessions))
	for sid, e := range r.sessions {
		snap := connSnap{SID: sid, Conn: e.Conn}
		if e.User != nil {
			snap.Name = e.User.Username
		}
		out = append(out, snap)
	}
	return out
}

// Remove deletes a connection and reports the name it held. Safe to call
// twice; the second call is a no-op.
func (r *Registry) Remove(sid core.SessionID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[sid]
	if !ok {
		return "", false
	}
	delete(r.sessions, sid)
	name := ""
	if e.User != nil {
		name = e.User.Username
	}
	log.Info().Str("module", "app.registry").Str("sid", string(sid)).Str("username", name).Msg("removed connection")
	return name, true
}

// Cancel fires the session's context cancel func, if registered.
func (r *Registry) Cancel(sid core.SessionID) bool {
	r.mu.RLock()
	e, ok := r.sessions[sid]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	return true
}
