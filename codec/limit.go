package codec

import "fmt"

// LimitCodec caps the payload size accepted by Decode. Entries on a shared
// backend may be written by other processes, so the limit keeps an oversized
// or hostile payload from ballooning memory on read. Encode is forwarded to
// Inner untouched.
type LimitCodec[V any] struct {
	// Inner is the codec being wrapped. Required.
	Inner Codec[V]
	// MaxDecode is the largest payload, in bytes, that Decode will hand to
	// Inner. Zero or negative disables the check.
	MaxDecode int
}

func (c LimitCodec[V]) Encode(v V) ([]byte, error) { return c.Inner.Encode(v) }

func (c LimitCodec[V]) Decode(b []byte) (V, error) {
	if c.MaxDecode > 0 && len(b) > c.MaxDecode {
		var zero V
		return zero, fmt.Errorf("payload %d bytes exceeds decode limit %d", len(b), c.MaxDecode)
	}
	return c.Inner.Decode(b)
}
