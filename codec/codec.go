// Package codec provides value serialization for cache entries.
//
// Store entries embed the encoded bytes verbatim as the value field of a
// JSON envelope, so every Codec must emit valid JSON text. JSON and Raw do
// so natively; the binary codecs (Msgpack, CBOR, Protobuf) transport their
// output as a base64 JSON string.
package codec

import "encoding/json"

// Codec converts values of type V to and from the byte payload stored
// under a key.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// wrapBinary embeds a binary codec's output in the entry as a base64 JSON
// string, keeping the payload valid envelope text.
func wrapBinary(raw []byte, err error) ([]byte, error) {
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// unwrapBinary recovers the binary payload from its base64 transport.
func unwrapBinary(b []byte) ([]byte, error) {
	var raw []byte
	err := json.Unmarshal(b, &raw)
	return raw, err
}
