package toolcache

import (
	"testing"
	"time"
)

func TestPolicyTTLFor(t *testing.T) {
	p := Policy{
		TTLs: map[string]time.Duration{
			"price_data": 60 * time.Second,
			"news":       900 * time.Second,
			"pinned":     0,
		},
		Default: 300 * time.Second,
	}

	cases := []struct {
		kind string
		want time.Duration
	}{
		{"price_data", 60 * time.Second},
		{"news", 900 * time.Second},
		{"pinned", 0}, // listed kinds win even at zero
		{"indicators", 300 * time.Second},
	}
	for _, tc := range cases {
		if got := p.TTLFor(tc.kind); got != tc.want {
			t.Fatalf("TTLFor(%q) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}

func TestPolicyZeroValue(t *testing.T) {
	var p Policy
	if got := p.TTLFor("anything"); got != 0 {
		t.Fatalf("zero policy TTLFor = %v, want 0", got)
	}
}

func TestPolicyCloneDetachesTable(t *testing.T) {
	src := map[string]time.Duration{"price_data": time.Minute}
	cp := Policy{TTLs: src, Default: time.Hour}.clone()

	src["price_data"] = time.Second
	if got := cp.TTLFor("price_data"); got != time.Minute {
		t.Fatalf("clone shares its table with the source: got %v", got)
	}
}
