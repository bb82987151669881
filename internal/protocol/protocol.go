// Package protocol defines the signaling wire catalogue: every message is a
// {type, data} envelope and the relay dispatches purely on type. Offer,
// answer and candidate bodies are opaque blobs, relayed verbatim.
package protocol

import "encoding/json"

// Type tags a signaling envelope.
type Type string

const (
	// client -> relay
	TypeJoin                Type = "join"
	TypeCall                Type = "call"
	TypeCallResponse        Type = "callResponse"
	TypeOffer               Type = "offer"
	TypeAnswer              Type = "answer"
	TypeICECandidate        Type = "iceCandidate"
	TypeMediaStateChange    Type = "mediaStateChange"
	TypeEndCall             Type = "endCall"
	TypeBecomeHost          Type = "becomeHost"
	TypeLeaveHost           Type = "leaveHost"
	TypeHostScreenShare     Type = "hostScreenShare"
	TypeStopScreenShare     Type = "stopScreenShare"
	TypeRequestScreenShare  Type = "requestScreenShare"
	TypeScreenShareResponse Type = "screenShareResponse"
	TypePing                Type = "ping"

	// relay -> client
	TypeUserList            Type = "userList"
	TypeIncomingCall        Type = "incomingCall"
	TypeCallAnswered        Type = "callAnswered"
	TypeCallEnded           Type = "callEnded"
	TypeHostUpdate          Type = "hostUpdate"
	TypeScreenShareStopped  Type = "screenShareStopped"
	TypeIncomingScreenShare Type = "incomingScreenShare"
	TypeScreenShareAnswered Type = "screenShareAnswered"
	TypeError               Type = "error"
	TypePong                Type = "pong"
)

// Envelope is the outer frame. Data stays raw until the handler for the
// concrete type decodes it.
type Envelope struct {
	Type Type            `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(raw, &env)
	return env, err
}

// Encode builds a wire frame for an outbound message.
func Encode(t Type, data any) ([]byte, error) {
	var (
		raw []byte
		err error
	)
	if data != nil {
		raw, err = json.Marshal(data)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: t, Data: raw})
}

// Inbound payloads.

type Join struct {
	Username string `json:"username"`
}

type Call struct {
	Target string `json:"target"`
}

type CallResponse struct {
	Accepted bool   `json:"accepted"`
	Caller   string `json:"caller"`
	CallerID string `json:"callerId"`
}

type Offer struct {
	Target string          `json:"target"`
	Offer  json.RawMessage `json:"offer"`
}

type Answer struct {
	Target string          `json:"target"`
	Answer json.RawMessage `json:"answer"`
}

type ICECandidate struct {
	Target    string          `json:"target"`
	Candidate json.RawMessage `json:"candidate"`
}

type MediaStateChange struct {
	Target    string `json:"target"`
	MediaType string `json:"mediaType"`
	Enabled   bool   `json:"enabled"`
}

type EndCall struct {
	Target string `json:"target"`
}

type BecomeHost struct {
	Username string `json:"username"`
}

type LeaveHost struct {
	Username string `json:"username"`
}

type HostScreenShare struct {
	Offers []json.RawMessage `json:"offers"`
}

// StopScreenShare carries a target in the 1:1 screen-share variant and no
// target in the presenter-broadcast variant.
type StopScreenShare struct {
	Target string `json:"target,omitempty"`
}

type RequestScreenShare struct {
	Target string `json:"target"`
}

type ScreenShareResponse struct {
	Accepted bool   `json:"accepted"`
	From     string `json:"from"`
	FromID   string `json:"fromId"`
}

// Outbound payloads. userList data is a bare []string.

type IncomingCall struct {
	Caller   string `json:"caller"`
	CallerID string `json:"callerId"`
}

type CallAnswered struct {
	Accepted bool   `json:"accepted"`
	Target   string `json:"target"`
}

type OfferForward struct {
	Offer  json.RawMessage `json:"offer"`
	Caller string          `json:"caller"`
}

// HostOffer is the broadcast-mode offer fan-out shape; the presenter is
// identified by from instead of caller.
type HostOffer struct {
	From  string          `json:"from"`
	Offer json.RawMessage `json:"offer"`
}

type AnswerForward struct {
	Answer   json.RawMessage `json:"answer"`
	Answerer string          `json:"answerer"`
}

type ICECandidateForward struct {
	Candidate json.RawMessage `json:"candidate"`
	Sender    string          `json:"sender"`
}

type MediaStateForward struct {
	Sender    string `json:"sender"`
	MediaType string `json:"mediaType"`
	Enabled   bool   `json:"enabled"`
}

type CallEnded struct {
	Caller string `json:"caller"`
}

type HostUpdate struct {
	Host *string `json:"host"`
}

type ScreenShareStopped struct {
	From string `json:"from,omitempty"`
}

type IncomingScreenShare struct {
	From   string `json:"from"`
	FromID string `json:"fromId"`
}

type ScreenShareAnswered struct {
	Accepted bool   `json:"accepted"`
	Target   string `json:"target"`
}

type Error struct {
	Error string `json:"error"`
}
