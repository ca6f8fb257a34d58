package codec

import (
	"encoding/json"
	"errors"
)

var errRawNotJSON = errors.New("raw payload is not JSON text")

// Raw is a pass-through codec for values that are already encoded JSON.
// Encode validates the payload and returns it unchanged; Decode hands back
// the stored bytes. Useful when the caller owns the serialization, e.g.
// responses relayed from an upstream JSON API.
type Raw struct{}

func (Raw) Encode(m json.RawMessage) ([]byte, error) {
	if !json.Valid(m) {
		return nil, errRawNotJSON
	}
	return m, nil
}

func (Raw) Decode(b []byte) (json.RawMessage, error) {
	return json.RawMessage(b), nil
}
