package protocol

import (
	"encoding/json"
	"testing"
)

func TestDecodeEnvelope(t *testing.T) {
	raw := []byte(`{"type":"call","data":{"target":"bob"}}`)
	env, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Type != TypeCall {
		t.Fatalf("type = %q, want call", env.Type)
	}
	var p Call
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if p.Target != "bob" {
		t.Fatalf("target = %q, want bob", p.Target)
	}
}

func TestDecodeUnknownTypePassesThrough(t *testing.T) {
	env, err := Decode([]byte(`{"type":"somethingElse","data":{}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Unknown kinds are a dispatch concern, not a decode error.
	if env.Type != Type("somethingElse") {
		t.Fatalf("type = %q", env.Type)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode([]byte(`{"type":`)); err == nil {
		t.Fatalf("malformed envelope decoded without error")
	}
}

func TestEncodeShapesEnvelope(t *testing.T) {
	raw, err := Encode(TypeCallEnded, CallEnded{Caller: "alice"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode round trip: %v", err)
	}
	if env.Type != TypeCallEnded {
		t.Fatalf("type = %q", env.Type)
	}
	var p CallEnded
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
	if p.Caller != "alice" {
		t.Fatalf("caller = %q", p.Caller)
	}
}

func TestEncodeNilDataOmitsField(t *testing.T) {
	raw, err := Encode(TypePong, nil)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(raw) != `{"type":"pong"}` {
		t.Fatalf("frame = %s", raw)
	}
}

func TestOpaquePayloadSurvivesRelayShaping(t *testing.T) {
	blob := json.RawMessage(`{"sdp":"v=0\r\no=-","weird":[1,null,{"x":true}]}`)
	raw, err := Encode(TypeOffer, OfferForward{Offer: blob, Caller: "alice"})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, _ := Decode(raw)
	var p OfferForward
	if err := json.Unmarshal(env.Data, &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	var orig, got any
	if err := json.Unmarshal(blob, &orig); err != nil {
		t.Fatalf("unmarshal original: %v", err)
	}
	if err := json.Unmarshal(p.Offer, &got); err != nil {
		t.Fatalf("unmarshal forwarded: %v", err)
	}
	if string(p.Offer) == "" || p.Caller != "alice" {
		t.Fatalf("forward = %+v", p)
	}
}
