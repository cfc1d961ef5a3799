/*
Package models converts the loosely-typed, nested event payloads received from
the chat service into a typed object graph.

This file defines the top-level type router: the mapping from the record name
announced by the transport to the decode function that hydrates the event
payload. Nested routing below the top level is declared per schema by the
record decoders themselves (see payload.go), so a field name shared by two
schemas cannot be misrouted and no process-wide mutable state exists: the
table here is initialized once and never written, making it safe to share
across concurrent hydrations.
*/
package models

import (
	"errors"
	"fmt"
)

// ErrUnknownRecord is returned when no record type is registered under the
// requested name.
var ErrUnknownRecord = errors.New("unknown record name")

type decoderFunc func(Payload, string) (Record, error)

// asRecord adapts a typed decode function to the decoderFunc shape.
func asRecord[R Record](decode func(Payload, string) (R, error)) decoderFunc {
	return func(p Payload, path string) (Record, error) {
		rec, err := decode(p, path)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}

// decoders maps record names to decode functions. Record names follow the
// wire spelling of the field each record hydrates from.
var decoders = map[string]decoderFunc{
	"dimensions":         asRecord(decodeDimensions),
	"videoQuality":       asRecord(decodeVideoQuality),
	"userSettings":       asRecord(decodeUserSettings),
	"user":               asRecord(decodeUser),
	"session":            asRecord(decodeSession),
	"attrs":              asRecord(decodeAttrs),
	"updatedBy":          asRecord(decodeUpdatedBy),
	"topic":              asRecord(decodeTopic),
	"roomSettings":       asRecord(decodeRoomSettings),
	"userList":           asRecord(decodeUserList),
	"updateUserList":     asRecord(decodeUpdateUserList),
	"banlistItem":        asRecord(decodeBanListItem),
	"banlist":            asRecord(decodeBanlist),
	"join":               asRecord(decodeJoin),
	"handleChange":       asRecord(decodeHandleChange),
	"message":            asRecord(decodeMessage),
	"status":             asRecord(decodeStatus),
	"error":              asRecord(decodeChatError),
	"playVideo":          asRecord(decodePlayVideo),
	"playlistUpdateItem": asRecord(decodePlaylistUpdateItem),
}

// Hydrate constructs the named record type from an untyped payload, recursively
// hydrating every routed nested field. It returns the fully typed record, or a
// *SchemaMismatchError when the payload's shape does not match the schema; a
// partially hydrated record is never returned. Hydrating the same payload twice
// yields equal graphs and the input payload is never mutated.
func Hydrate(name string, p Payload) (Record, error) {
	decode, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecord, name)
	}
	return decode(p, name)
}

// HydrateList hydrates an ordered sequence of untyped payloads into an ordered
// sequence of records of the named type, preserving length and order. An empty
// input yields an empty output. A malformed element fails the whole list with
// a *SchemaMismatchError scoped to its index.
func HydrateList(name string, payloads []any) ([]Record, error) {
	decode, ok := decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecord, name)
	}

	out := make([]Record, 0, len(payloads))
	for i, el := range payloads {
		elPath := fmt.Sprintf("%s[%d]", name, i)

		child, ok := el.(map[string]any)
		if !ok {
			return nil, mismatch(elPath, "nested payload", shapeName(el))
		}

		rec, err := decode(child, elPath)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}
