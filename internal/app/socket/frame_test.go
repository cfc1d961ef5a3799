package socket

import (
	"reflect"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		frame    string
		wantKind FrameKind
		wantRest string
	}{
		{"open", `0{"sid":"abc"}`, FrameOpen, `{"sid":"abc"}`},
		{"close", "1", FrameClose, ""},
		{"ping", "2probe", FramePing, "probe"},
		{"pong", "3", FramePong, ""},
		{"connect", "40", FrameConnect, ""},
		{"event", `42["room::message",{}]`, FrameEvent, `["room::message",{}]`},
		{"bare message", "4", FrameOther, ""},
		{"unknown packet", "6", FrameOther, ""},
		{"empty", "", FrameOther, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, rest := Classify([]byte(tt.frame))
			if kind != tt.wantKind {
				t.Errorf("Classify(%q) kind = %d, want %d", tt.frame, kind, tt.wantKind)
			}
			if string(rest) != tt.wantRest {
				t.Errorf("Classify(%q) rest = %q, want %q", tt.frame, rest, tt.wantRest)
			}
		})
	}
}

func TestParseHandshake(t *testing.T) {
	hs, err := ParseHandshake([]byte(`{"sid":"abc123","pingInterval":25000,"pingTimeout":60000}`))
	if err != nil {
		t.Fatalf("ParseHandshake returned error: %v", err)
	}
	if hs.SID != "abc123" || hs.PingInterval != 25000 || hs.PingTimeout != 60000 {
		t.Errorf("ParseHandshake = %+v, want sid=abc123 interval=25000 timeout=60000", hs)
	}

	if _, err := ParseHandshake([]byte("not json")); err == nil {
		t.Error("ParseHandshake accepted malformed input")
	}
}

func TestDecodeEvent(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantName    string
		wantPayload any
		wantErr     bool
	}{
		{
			"object payload",
			`["room::message",{"message":"hi","handle":"alpha"}]`,
			"room::message",
			map[string]any{"message": "hi", "handle": "alpha"},
			false,
		},
		{
			"sequence payload",
			`["room::playlistUpdate",[{"title":"a"},{"title":"b"}]]`,
			"room::playlistUpdate",
			[]any{map[string]any{"title": "a"}, map[string]any{"title": "b"}},
			false,
		},
		{"no payload", `["room::refresh"]`, "room::refresh", nil, false},
		{"not an array", `{"nope":true}`, "", nil, true},
		{"empty array", `[]`, "", nil, true},
		{"non-string name", `[42,{}]`, "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := DecodeEvent([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DecodeEvent(%q) succeeded, want error", tt.data)
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeEvent(%q) returned error: %v", tt.data, err)
			}
			if ev.Name != tt.wantName {
				t.Errorf("event name = %q, want %q", ev.Name, tt.wantName)
			}
			if !reflect.DeepEqual(ev.Payload, tt.wantPayload) {
				t.Errorf("event payload = %#v, want %#v", ev.Payload, tt.wantPayload)
			}
		})
	}
}

func TestEncodeEventRoundTrip(t *testing.T) {
	frame, err := EncodeEvent("room::message", map[string]any{"message": "hello", "room": "lounge"})
	if err != nil {
		t.Fatalf("EncodeEvent returned error: %v", err)
	}

	kind, rest := Classify(frame)
	if kind != FrameEvent {
		t.Fatalf("encoded frame classified as %d, want FrameEvent", kind)
	}

	ev, err := DecodeEvent(rest)
	if err != nil {
		t.Fatalf("DecodeEvent of encoded frame returned error: %v", err)
	}
	if ev.Name != "room::message" {
		t.Errorf("round-tripped name = %q, want room::message", ev.Name)
	}

	payload, ok := ev.Payload.(map[string]any)
	if !ok || payload["message"] != "hello" || payload["room"] != "lounge" {
		t.Errorf("round-tripped payload = %#v", ev.Payload)
	}
}

func TestControlFrames(t *testing.T) {
	tests := []struct {
		name  string
		frame []byte
		want  string
	}{
		{"ping", EncodePing(), "2"},
		{"pong", EncodePong(), "3"},
		{"connect", EncodeConnect(), "40"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if string(tt.frame) != tt.want {
				t.Errorf("frame = %q, want %q", tt.frame, tt.want)
			}
		})
	}
}
