package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Decode parses a response body into a new T.
func Decode[T any, PT interface {
	*T
	json.Unmarshaler
}](data []byte) (*T, error) {
	v := PT(new(T))
	if err := v.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return (*T)(v), nil
}

var errNull = errors.New("null is not allowed")

func isNull(raw []byte) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// presence says whether a field may be absent and whether it may be null.
type presence uint8

const (
	required presence = iota // present, not null
	nullable                 // present, may be null
	optional                 // may be absent or null
)

// object walks the fields of one JSON object. The first failure sticks and
// every later call becomes a no-op, so decoders read as a flat field list
// followed by o.Err().
type object struct {
	entity string
	fields map[string]json.RawMessage
	err    error
}

func newObject(entity string, data []byte) *object {
	o := &object{entity: entity}
	if isNull(data) {
		o.err = &DecodeError{Entity: entity, Kind: InvalidValue, Err: errors.New("expected object, got null")}
		return o
	}
	if err := json.Unmarshal(data, &o.fields); err != nil {
		o.err = &DecodeError{Entity: entity, Kind: InvalidValue, Err: err}
	}
	return o
}

func (o *object) Err() error {
	return o.err
}

func (o *object) fail(field string, kind DecodeErrorKind, err error) {
	if o.err != nil {
		return
	}
	o.err = &DecodeError{Entity: o.entity, Field: field, Kind: kind, Err: err}
}

// nested records err from decoding a child value, rebasing a child
// DecodeError onto this object's entity and path.
func (o *object) nested(field string, err error) {
	var de *DecodeError
	if errors.As(err, &de) {
		o.fail(joinPath(field, de.Field), de.Kind, de.Err)
		return
	}
	o.fail(field, InvalidValue, err)
}

// lookup returns the raw value of a field, or false when there is nothing to
// decode (absent, null, or an error was recorded).
func (o *object) lookup(name string, p presence) (json.RawMessage, bool) {
	if o.err != nil {
		return nil, false
	}
	raw, ok := o.fields[name]
	if !ok {
		if p != optional {
			o.fail(name, MissingField, nil)
		}
		return nil, false
	}
	if isNull(raw) {
		if p == required {
			o.fail(name, InvalidValue, errNull)
		}
		return nil, false
	}
	return raw, true
}

// field decodes a required, non-null value.
func field[T any](o *object, name string, dst *T) {
	raw, ok := o.lookup(name, required)
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		o.nested(name, err)
	}
}

// pointer decodes a nullable or optional value; null and absent leave dst nil.
func pointer[T any](o *object, name string, p presence, dst **T) {
	*dst = nil
	raw, ok := o.lookup(name, p)
	if !ok {
		return
	}
	v := new(T)
	if err := json.Unmarshal(raw, v); err != nil {
		o.nested(name, err)
		return
	}
	*dst = v
}

// list decodes a required JSON array element by element so failures carry
// their index.
func list[T any](o *object, name string, dst *[]T) {
	raw, ok := o.lookup(name, required)
	if !ok {
		return
	}
	if err := decodeElements(raw, dst); err != nil {
		o.nested(name, err)
	}
}

func decodeElements[T any](raw json.RawMessage, dst *[]T) error {
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return err
	}
	out := make([]T, len(elems))
	for i, elem := range elems {
		if err := json.Unmarshal(elem, &out[i]); err != nil {
			var de *DecodeError
			if errors.As(err, &de) {
				return &DecodeError{Kind: de.Kind, Field: joinPath(fmt.Sprintf("[%d]", i), de.Field), Err: de.Err}
			}
			return &DecodeError{Kind: InvalidValue, Field: fmt.Sprintf("[%d]", i), Err: err}
		}
	}
	*dst = out
	return nil
}

// decodeArray decodes a top-level JSON array body. Failures are reported
// under the "items" path.
func decodeArray[T any](entity string, data []byte, dst *[]T) error {
	if isNull(data) {
		return &DecodeError{Entity: entity, Field: "items", Kind: InvalidValue, Err: errNull}
	}
	if err := decodeElements(data, dst); err != nil {
		var de *DecodeError
		if errors.As(err, &de) {
			return &DecodeError{Entity: entity, Field: joinPath("items", de.Field), Kind: de.Kind, Err: de.Err}
		}
		return &DecodeError{Entity: entity, Field: "items", Kind: InvalidValue, Err: err}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("timestamp %q is not ISO 8601 with a zone: %w", s, lastErr)
}

// timestamp decodes a required, zone-aware ISO 8601 instant.
func timestamp(o *object, name string, dst *time.Time) {
	var s string
	field(o, name, &s)
	if o.err != nil {
		return
	}
	t, err := parseTimestamp(s)
	if err != nil {
		o.fail(name, InvalidValue, err)
		return
	}
	*dst = t
}

func optionalTimestamp(o *object, name string, dst **time.Time) {
	var s *string
	pointer(o, name, optional, &s)
	if o.err != nil || s == nil {
		*dst = nil
		return
	}
	t, err := parseTimestamp(*s)
	if err != nil {
		o.fail(name, InvalidValue, err)
		return
	}
	*dst = &t
}
