/*
Package socket implements the bot's websocket transport to the chat service.

This file implements the service's socket.io-style wire framing. Every text
frame starts with an engine.io packet type digit; message frames ("4") carry a
socket.io packet type digit next, and event frames ("42") carry a JSON array of
the event name followed by its arguments. The transport only classifies frames
and splits events into (name, untyped payload) pairs; hydration into typed
records is the models package's job.
*/
package socket

import (
	"encoding/json"
	"fmt"
)

// FrameKind classifies an inbound wire frame.
type FrameKind int

const (
	// FrameOpen is the engine.io handshake packet ("0" + JSON).
	FrameOpen FrameKind = iota

	// FrameClose announces that the server is closing the transport ("1").
	FrameClose

	// FramePing is a server-initiated heartbeat probe ("2").
	FramePing

	// FramePong acknowledges a heartbeat the bot sent ("3").
	FramePong

	// FrameConnect acknowledges the socket.io session ("40").
	FrameConnect

	// FrameEvent carries a chat event ("42" + JSON array).
	FrameEvent

	// FrameOther covers packet types the bot has no use for.
	FrameOther
)

// Handshake is the engine.io open packet body. Intervals are in milliseconds.
type Handshake struct {
	SID          string `json:"sid"`
	PingInterval int    `json:"pingInterval"`
	PingTimeout  int    `json:"pingTimeout"`
}

// Event is one chat event as received from or sent to the service, prior to
// hydration.
type Event struct {
	// Name is the service event name, e.g. "room::message".
	Name string

	// Payload is the event's untyped argument: a map[string]any for object
	// payloads, a []any for sequence payloads, a primitive, or nil when the
	// event carries no argument.
	Payload any
}

// Classify splits a raw text frame into its kind and the remaining bytes
// (the handshake JSON for FrameOpen, the event array for FrameEvent).
func Classify(data []byte) (FrameKind, []byte) {
	if len(data) == 0 {
		return FrameOther, nil
	}

	switch data[0] {
	case '0':
		return FrameOpen, data[1:]
	case '1':
		return FrameClose, nil
	case '2':
		return FramePing, data[1:]
	case '3':
		return FramePong, nil
	case '4':
		if len(data) < 2 {
			return FrameOther, nil
		}
		switch data[1] {
		case '0':
			return FrameConnect, data[2:]
		case '2':
			return FrameEvent, data[2:]
		}
	}

	return FrameOther, nil
}

// ParseHandshake decodes the engine.io open packet body.
func ParseHandshake(data []byte) (*Handshake, error) {
	hs := &Handshake{}
	if err := json.Unmarshal(data, hs); err != nil {
		return nil, fmt.Errorf("malformed handshake packet: %w", err)
	}
	return hs, nil
}

// DecodeEvent decodes the JSON array of an event frame (the bytes after "42").
// Only the first argument is kept; the service never sends more than one.
func DecodeEvent(data []byte) (*Event, error) {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, fmt.Errorf("malformed event frame: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("event frame carries no event name")
	}

	ev := &Event{}
	if err := json.Unmarshal(parts[0], &ev.Name); err != nil {
		return nil, fmt.Errorf("event name is not a string: %w", err)
	}

	if len(parts) > 1 {
		if err := json.Unmarshal(parts[1], &ev.Payload); err != nil {
			return nil, fmt.Errorf("malformed payload for event %q: %w", ev.Name, err)
		}
	}

	return ev, nil
}

// EncodeEvent builds an event frame: "42" followed by the JSON array of the
// event name and its arguments.
func EncodeEvent(name string, args ...any) ([]byte, error) {
	parts := make([]any, 0, len(args)+1)
	parts = append(parts, name)
	parts = append(parts, args...)

	body, err := json.Marshal(parts)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event %q: %w", name, err)
	}

	return append([]byte("42"), body...), nil
}

// EncodePing returns the engine.io heartbeat probe frame.
func EncodePing() []byte { return []byte("2") }

// EncodePong returns the reply to a server-initiated heartbeat probe.
func EncodePong() []byte { return []byte("3") }

// EncodeConnect returns the socket.io session acknowledgement frame.
func EncodeConnect() []byte { return []byte("40") }
