package codec

import "encoding/json"

// JSONCodec marshals values with encoding/json. Its output is JSON text by
// construction, so it embeds in the store envelope without wrapping.
type JSONCodec[V any] struct{}

func (JSONCodec[V]) Encode(v V) ([]byte, error) { return json.Marshal(v) }

func (JSONCodec[V]) Decode(b []byte) (V, error) {
	var v V
	if err := json.Unmarshal(b, &v); err != nil {
		var zero V
		return zero, err
	}
	return v, nil
}
