// Package wire defines the storage formats shared by the store and the
// providers: the JSON envelope every backend entry is wrapped in, and a
// binary deadline frame used by local providers without native per-entry
// expiry.
package wire

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

var (
	ErrCorrupt = errors.New("toolcache: corrupt entry")
	ErrNotJSON = errors.New("toolcache: codec output is not JSON")
)

// Envelope is the backend record: UTF-8 JSON wrapping the codec output
// together with the write time and the TTL applied to the backend entry.
// StoredAt and TTL are informational; backend expiry stays authoritative.
type Envelope struct {
	Value    json.RawMessage `json:"value"`
	StoredAt string          `json:"timestamp"`
	TTL      int64           `json:"ttl"`
}

// EncodeEnvelope wraps a codec payload for storage. The payload must be
// valid JSON text; ttl is recorded in whole seconds (0 = no expiry).
func EncodeEnvelope(payload []byte, storedAt time.Time, ttl time.Duration) ([]byte, error) {
	if !json.Valid(payload) {
		return nil, ErrNotJSON
	}
	env := Envelope{
		Value:    json.RawMessage(payload),
		StoredAt: storedAt.UTC().Format(time.RFC3339Nano),
		TTL:      int64(ttl / time.Second),
	}
	b, err := json.Marshal(env)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// DecodeEnvelope parses a backend record. Anything that is not a single
// JSON object carrying a value field decodes as ErrCorrupt.
func DecodeEnvelope(b []byte) (Envelope, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return Envelope{}, ErrCorrupt
	}
	if dec.More() { // trailing bytes after the object
		return Envelope{}, ErrCorrupt
	}
	if len(env.Value) == 0 {
		return Envelope{}, ErrCorrupt
	}
	return env, nil
}
