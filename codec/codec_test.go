package codec

import (
	"encoding/json"
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type quote struct {
	Symbol string  `json:"symbol" msgpack:"symbol"`
	Price  float64 `json:"price" msgpack:"price"`
}

// Every codec output is embedded verbatim in the store's JSON envelope,
// so Encode must always produce valid JSON text.
func TestCodecOutputsAreJSON(t *testing.T) {
	in := quote{Symbol: "BTC", Price: 67000.5}

	t.Run("json", func(t *testing.T) {
		b, err := JSONCodec[quote]{}.Encode(in)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !json.Valid(b) {
			t.Fatalf("output not JSON: %q", b)
		}
		got, err := JSONCodec[quote]{}.Decode(b)
		if err != nil || got != in {
			t.Fatalf("round trip: got %+v err %v", got, err)
		}
	})

	t.Run("msgpack", func(t *testing.T) {
		b, err := Msgpack[quote]{}.Encode(in)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !json.Valid(b) {
			t.Fatalf("output not JSON: %q", b)
		}
		got, err := Msgpack[quote]{}.Decode(b)
		if err != nil || got != in {
			t.Fatalf("round trip: got %+v err %v", got, err)
		}
	})

	t.Run("cbor", func(t *testing.T) {
		c := MustCBOR[quote](true)
		b, err := c.Encode(in)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !json.Valid(b) {
			t.Fatalf("output not JSON: %q", b)
		}
		got, err := c.Decode(b)
		if err != nil || got != in {
			t.Fatalf("round trip: got %+v err %v", got, err)
		}
	})

	t.Run("protobuf", func(t *testing.T) {
		c := NewProtobuf(func() *wrapperspb.StringValue { return &wrapperspb.StringValue{} })
		b, err := c.Encode(wrapperspb.String("hello"))
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !json.Valid(b) {
			t.Fatalf("output not JSON: %q", b)
		}
		got, err := c.Decode(b)
		if err != nil || got.GetValue() != "hello" {
			t.Fatalf("round trip: got %v err %v", got, err)
		}
	})
}

func TestBinaryCodecsWrapAsBase64String(t *testing.T) {
	b, err := Msgpack[quote]{}.Encode(quote{Symbol: "ETH", Price: 1.0})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		t.Fatalf("expected a JSON string, got %q", b)
	}
	if s == "" {
		t.Fatalf("empty base64 payload")
	}
}

func TestRawValidatesOnEncode(t *testing.T) {
	if _, err := (Raw{}).Encode(json.RawMessage(`{"ok":true}`)); err != nil {
		t.Fatalf("valid JSON rejected: %v", err)
	}
	if _, err := (Raw{}).Encode(json.RawMessage(`{"broken":`)); err == nil {
		t.Fatalf("expected error on invalid JSON")
	}
	out, err := (Raw{}).Decode([]byte(`[1,2]`))
	if err != nil || string(out) != `[1,2]` {
		t.Fatalf("decode passthrough: got %q err %v", out, err)
	}
}

func TestLimitCodecCapsDecode(t *testing.T) {
	c := LimitCodec[quote]{Inner: JSONCodec[quote]{}, MaxDecode: 8}

	big, err := c.Encode(quote{Symbol: "BTC", Price: 67000.5})
	if err != nil {
		t.Fatalf("encode should pass through: %v", err)
	}
	if _, err := c.Decode(big); err == nil {
		t.Fatalf("expected error on payload over MaxDecode")
	}

	// disabled limit forwards everything
	c.MaxDecode = 0
	if _, err := c.Decode(big); err != nil {
		t.Fatalf("limit disabled, decode failed: %v", err)
	}
}
