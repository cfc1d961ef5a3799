/*
Package models converts the loosely-typed, nested event payloads received from
the chat service into a typed object graph.

This file defines the conversational records: chat messages, room status
notices, and service-reported errors.
*/
package models

// Message is a chat message as broadcast by the service.
type Message struct {
	Message   string `json:"message"`
	Handle    string `json:"handle,omitempty"`
	Color     string `json:"color,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	ID        string `json:"id,omitempty"`
	Sender    *User  `json:"sender,omitempty"`
}

func (*Message) recordName() string { return "message" }

func decodeMessage(p Payload, path string) (*Message, error) {
	d := &dec{p: p, path: path}
	rec := &Message{
		Message:   d.str("message", true),
		Handle:    d.str("handle", false),
		Color:     d.str("color", false),
		UserID:    d.str("userId", false),
		Timestamp: d.str("timestamp", false),
		ID:        d.str("id", false),
		Sender:    nested(d, "sender", decodeUser),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// Status is a room status notice (joins, kicks, media changes).
type Status struct {
	Message          string `json:"message"`
	Timestamp        string `json:"timestamp"`
	ID               string `json:"id"`
	NotificationType string `json:"notification_type,omitempty"`
}

func (*Status) recordName() string { return "status" }

func decodeStatus(p Payload, path string) (*Status, error) {
	d := &dec{p: p, path: path}
	rec := &Status{
		Message:          d.str("message", true),
		Timestamp:        d.str("timestamp", true),
		ID:               d.str("id", true),
		NotificationType: d.str("notification_type", false),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}

// ChatError is an error event reported by the service.
type ChatError struct {
	Context   string `json:"context"`
	Message   string `json:"message,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Modal     string `json:"modal,omitempty"`
	ID        string `json:"id,omitempty"`
	Error     string `json:"error,omitempty"`
}

func (*ChatError) recordName() string { return "error" }

func decodeChatError(p Payload, path string) (*ChatError, error) {
	d := &dec{p: p, path: path}
	rec := &ChatError{
		Context:   d.str("context", true),
		Message:   d.str("message", false),
		Timestamp: d.str("timestamp", false),
		Modal:     d.str("modal", false),
		ID:        d.str("id", false),
		Error:     d.str("error", false),
	}
	if d.err != nil {
		return nil, d.err
	}
	return rec, nil
}
