package app

import "testing"

func TestPresenterClaimRelease(t *testing.T) {
	p := NewPresenter()

	if _, held := p.Holder(); held {
		t.Fatalf("fresh slot reported held")
	}
	if !p.Claim("alice") {
		t.Fatalf("claim of a vacant slot failed")
	}
	if p.Claim("bob") {
		t.Fatalf("claim of a held slot succeeded")
	}
	if holder, _ := p.Holder(); holder != "alice" {
		t.Fatalf("holder = %q, want alice", holder)
	}

	if p.Release("bob") {
		t.Fatalf("release by non-holder succeeded")
	}
	if !p.Release("alice") {
		t.Fatalf("release by holder failed")
	}
	if _, held := p.Holder(); held {
		t.Fatalf("slot still held after release")
	}
	if p.Release("alice") {
		t.Fatalf("release of a vacant slot succeeded")
	}
}

func TestPresenterHolds(t *testing.T) {
	p := NewPresenter()
	if p.Holds("") {
		t.Fatalf("empty name holds a vacant slot")
	}
	p.Claim("alice")
	if !p.Holds("alice") || p.Holds("bob") {
		t.Fatalf("Holds misreports the holder")
	}
}
