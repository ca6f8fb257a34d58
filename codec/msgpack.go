package codec

import (
	"github.com/vmihailenco/msgpack/v5"
)

// Msgpack serializes values with vmihailenco/msgpack/v5, transported as a
// base64 JSON string. The zero value is ready to use. Field names follow
// `msgpack` struct tags, which do not have to match the `json` ones.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) {
	return wrapBinary(msgpack.Marshal(v))
}

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	raw, err := unwrapBinary(b)
	if err != nil {
		return v, err
	}
	err = msgpack.Unmarshal(raw, &v)
	return v, err
}
