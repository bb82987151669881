package app

import (
	"testing"

	"github.com/Issho-lin/webrtc-demo/internal/domain"
)

func TestRegistryAnnounceAndResolve(t *testing.T) {
	r := NewRegistry()
	conn := &fakeConn{}
	sid := r.Register(conn, nil)

	if _, _, ok := r.Resolve("alice"); ok {
		t.Fatalf("resolved a name before announce")
	}
	if err := r.Announce(sid, "alice"); err != nil {
		t.Fatalf("announce: %v", err)
	}

	gotSID, gotConn, ok := r.Resolve("alice")
	if !ok || gotSID != sid || gotConn != conn {
		t.Fatalf("resolve returned (%v, %v, %v)", gotSID, gotConn, ok)
	}
	if name, ok := r.NameOf(sid); !ok || name != "alice" {
		t.Fatalf("NameOf = (%q, %v)", name, ok)
	}
}

func TestRegistryRejectsDuplicateAndInvalidNames(t *testing.T) {
	r := NewRegistry()
	a := r.Register(&fakeConn{}, nil)
	b := r.Register(&fakeConn{}, nil)

	if err := r.Announce(a, "alice"); err != nil {
		t.Fatalf("announce: %v", err)
	}
	if err := r.Announce(b, "alice"); err != domain.ErrNameTaken {
		t.Fatalf("duplicate announce err = %v, want ErrNameTaken", err)
	}
	if err := r.Announce(b, ""); err != domain.ErrUsernameEmpty {
		t.Fatalf("empty name err = %v", err)
	}
	long := make([]byte, domain.MaxUsernameLen+1)
	for i := range long {
		long[i] = 'x'
	}
	if err := r.Announce(b, string(long)); err != domain.ErrUsernameTooLong {
		t.Fatalf("long name err = %v", err)
	}

	// Re-announcing the same name on the same connection is fine.
	if err := r.Announce(a, "alice"); err != nil {
		t.Fatalf("re-announce on same connection: %v", err)
	}
}

func TestRegistryRosterAndRemove(t *testing.T) {
	r := NewRegistry()
	a := r.Register(&fakeConn{}, nil)
	b := r.Register(&fakeConn{}, nil)
	r.Register(&fakeConn{}, nil) // never announces

	r.Announce(a, "alice")
	r.Announce(b, "bob")

	roster := r.Roster()
	if len(roster) != 2 {
		t.Fatalf("roster = %v, want the two announced names", roster)
	}

	name, ok := r.Remove(a)
	if !ok || name != "alice" {
		t.Fatalf("Remove = (%q, %v)", name, ok)
	}
	if _, ok := r.Remove(a); ok {
		t.Fatalf("second Remove reported an entry")
	}
	if roster := r.Roster(); len(roster) != 1 || roster[0] != "bob" {
		t.Fatalf("roster after remove = %v, want [bob]", roster)
	}
	if _, _, ok := r.Resolve("alice"); ok {
		t.Fatalf("removed identity still resolves")
	}
}

func TestRegistryConnectionsIncludeUnannounced(t *testing.T) {
	r := NewRegistry()
	a := r.Register(&fakeConn{}, nil)
	r.Register(&fakeConn{}, nil)
	r.Announce(a, "alice")

	snaps := r.Connections()
	if len(snaps) != 2 {
		t.Fatalf("connections = %d, want 2", len(snaps))
	}
	named := 0
	for _, s := range snaps {
		if s.Name != "" {
			named++
		}
	}
	if named != 1 {
		t.Fatalf("%d named connections, want 1", named)
	}
}

func TestRegistryCancelFires(t *testing.T) {
	r := NewRegistry()
	fired := false
	sid := r.Register(&fakeConn{}, func() { fired = true })

	if !r.Cancel(sid) {
		t.Fatalf("cancel of a live session reported missing")
	}
	if !fired {
		t.Fatalf("cancel func not invoked")
	}
	r.Remove(sid)
	if r.Cancel(sid) {
		t.Fatalf("cancel of a removed session reported ok")
	}
}
