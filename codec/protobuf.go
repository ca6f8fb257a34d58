package codec

import (
	"google.golang.org/protobuf/proto"
)

// Protobuf serializes proto messages, transported as a base64 JSON string.
// Decode needs a fresh message to unmarshal into, so the codec is built
// around a constructor for the concrete type.
type Protobuf[T proto.Message] struct {
	new func() T
}

// NewProtobuf builds a Protobuf codec from a message constructor, e.g.
// NewProtobuf(func() *mypb.Quote { return &mypb.Quote{} }).
func NewProtobuf[T proto.Message](ctor func() T) Protobuf[T] {
	return Protobuf[T]{new: ctor}
}

func (c Protobuf[T]) Encode(v T) ([]byte, error) {
	return wrapBinary(proto.Marshal(v))
}

func (c Protobuf[T]) Decode(b []byte) (T, error) {
	m := c.new()
	raw, err := unwrapBinary(b)
	if err != nil {
		return m, err
	}
	err = proto.Unmarshal(raw, m)
	return m, err
}
