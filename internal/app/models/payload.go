/*
Package models converts the loosely-typed, nested event payloads received from
the chat service into a typed object graph, and derives a user's effective
permission role from the hydrated User record.

This file defines the Payload type, the SchemaMismatchError failure type, and the
shared field extraction helpers every record decoder is built on. Hydration is a
pure, in-memory transformation: it performs no I/O, never mutates the input
payload, and a fresh record graph is produced per call, so concurrent hydrations
of independent payloads need no locking.
*/
package models

import (
	"fmt"
	"math"
)

// Payload is the untyped, nested key/value structure as received from the
// remote service, prior to hydration. Values are primitives, nested payloads,
// or sequences of nested payloads.
type Payload = map[string]any

// Record is implemented by every typed structure hydrated from a Payload.
type Record interface {
	recordName() string
}

// SchemaMismatchError reports a payload value that does not construct into its
// target record type: a missing required field, or a value whose shape does not
// match the declared field. A mismatch anywhere in a record's graph fails the
// hydration of the enclosing record; partially hydrated records are never
// returned to callers.
type SchemaMismatchError struct {
	// Path is the dotted path of the offending field, e.g. "topic.text"
	// or "banlist.list[2].handle".
	Path string

	// Want describes the expected shape.
	Want string

	// Got describes the received shape ("missing" when the key was absent).
	Got string
}

// Error implements the standard Go error interface.
func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch at %s: want %s, got %s", e.Path, e.Want, e.Got)
}

func mismatch(path, want, got string) *SchemaMismatchError {
	return &SchemaMismatchError{Path: path, Want: want, Got: got}
}

// shapeName describes a payload value's shape for mismatch reporting.
func shapeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "nested payload"
	case []any:
		return "sequence"
	case string:
		return "string"
	case bool:
		return "bool"
	case float64, int, int64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

// dec reads declared fields out of a single payload, remembering the first
// schema mismatch it encounters. Keys not read by any extractor are silently
// ignored; that is the declared unknown-key policy, applied uniformly, and it
// is never treated as a mismatch.
type dec struct {
	p    Payload
	path string
	err  error
}

// str extracts a string field. A missing or null value yields "" unless the
// field is required, in which case it records a mismatch.
func (d *dec) str(key string, required bool) string {
	if d.err != nil {
		return ""
	}

	v, ok := d.p[key]
	if !ok || v == nil {
		if required {
			d.err = mismatch(joinPath(d.path, key), "string", "missing")
		}
		return ""
	}

	s, ok := v.(string)
	if !ok {
		d.err = mismatch(joinPath(d.path, key), "string", shapeName(v))
		return ""
	}
	return s
}

// boolean extracts a boolean field. Missing booleans default to false at
// construction time unless the field is required.
func (d *dec) boolean(key string, required bool) bool {
	if d.err != nil {
		return false
	}

	v, ok := d.p[key]
	if !ok || v == nil {
		if required {
			d.err = mismatch(joinPath(d.path, key), "bool", "missing")
		}
		return false
	}

	b, ok := v.(bool)
	if !ok {
		d.err = mismatch(joinPath(d.path, key), "bool", shapeName(v))
		return false
	}
	return b
}

// num extracts an integer field. JSON numbers arrive as float64; native ints
// are accepted too so records can be built from in-process payloads. A
// fractional value is a mismatch, not a truncation.
func (d *dec) num(key string, required bool) int {
	if d.err != nil {
		return 0
	}

	v, ok := d.p[key]
	if !ok || v == nil {
		if required {
			d.err = mismatch(joinPath(d.path, key), "integer", "missing")
		}
		return 0
	}

	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			d.err = mismatch(joinPath(d.path, key), "integer", "fractional number")
			return 0
		}
		return int(n)
	case int:
		return n
	case int64:
		return int(n)
	default:
		d.err = mismatch(joinPath(d.path, key), "integer", shapeName(v))
		return 0
	}
}

// payload extracts a nested payload field that intentionally stays untyped
// (no route exists for it).
func (d *dec) payload(key string, required bool) Payload {
	if d.err != nil {
		return nil
	}

	v, ok := d.p[key]
	if !ok || v == nil {
		if required {
			d.err = mismatch(joinPath(d.path, key), "nested payload", "missing")
		}
		return nil
	}

	m, ok := v.(map[string]any)
	if !ok {
		d.err = mismatch(joinPath(d.path, key), "nested payload", shapeName(v))
		return nil
	}
	return m
}

// raw passes a field's value through completely untyped. Callers must not
// assume anything about its shape.
func (d *dec) raw(key string) any {
	return d.p[key]
}

// nested hydrates an optional nested record field using the decode function the
// enclosing schema declares for it. Routing is qualified by the enclosing
// schema: each record decoder names the target type of its own nested fields,
// so a field name shared by two schemas ("settings") cannot be misrouted.
func nested[T any](d *dec, key string, decode func(Payload, string) (*T, error)) *T {
	if d.err != nil {
		return nil
	}

	v, ok := d.p[key]
	if !ok || v == nil {
		return nil
	}

	child, ok := v.(map[string]any)
	if !ok {
		d.err = mismatch(joinPath(d.path, key), "nested payload", shapeName(v))
		return nil
	}

	rec, err := decode(child, joinPath(d.path, key))
	if err != nil {
		d.err = err
		return nil
	}
	return rec
}

// sequence hydrates a field holding an ordered sequence of nested payloads into
// an ordered sequence of records, preserving length and order. An empty input
// sequence yields an empty output sequence. A malformed element fails with the
// usual SchemaMismatch semantics, scoped to its index.
func sequence[T any](d *dec, key string, required bool, decode func(Payload, string) (*T, error)) []T {
	if d.err != nil {
		return nil
	}

	v, ok := d.p[key]
	if !ok || v == nil {
		if required {
			d.err = mismatch(joinPath(d.path, key), "sequence", "missing")
		}
		return nil
	}

	raw, ok := v.([]any)
	if !ok {
		d.err = mismatch(joinPath(d.path, key), "sequence", shapeName(v))
		return nil
	}

	out := make([]T, 0, len(raw))
	for i, el := range raw {
		elPath := fmt.Sprintf("%s[%d]", joinPath(d.path, key), i)

		child, ok := el.(map[string]any)
		if !ok {
			d.err = mismatch(elPath, "nested payload", shapeName(el))
			return nil
		}

		rec, err := decode(child, elPath)
		if err != nil {
			d.err = err
			return nil
		}
		out = append(out, *rec)
	}
	return out
}
