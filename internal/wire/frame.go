package wire

import (
	"bytes"
	"encoding/binary"
	"time"
)

const frameVersion byte = 1

var magic4 = [...]byte{'T', 'L', 'C', 'H'}

func hasMagic(b []byte) bool {
	return len(b) >= 4 && bytes.Equal(b[:4], magic4[:])
}

// Frame: magic(4) | ver(1) | flags(1) | deadline unixnano (i64 be) | vlen(u32 be) | payload(vlen)
//
// Local providers (bigcache, lru) have no per-entry expiry, so the deadline
// rides with the payload and reads past it are treated as misses. deadline
// zero means no expiry. Redis entries never carry a frame.
func EncodeFrame(deadline time.Time, payload []byte) []byte {
	var buf bytes.Buffer
	buf.Grow(4 + 1 + 1 + 8 + 4 + len(payload))

	buf.Write(magic4[:])
	buf.WriteByte(frameVersion)
	buf.WriteByte(0) // flags, reserved

	var u8 [8]byte
	var u4 [4]byte

	var nanos int64
	if !deadline.IsZero() {
		nanos = deadline.UnixNano()
	}
	binary.BigEndian.PutUint64(u8[:], uint64(nanos))
	buf.Write(u8[:])

	binary.BigEndian.PutUint32(u4[:], uint32(len(payload)))
	buf.Write(u4[:])

	buf.Write(payload)
	return buf.Bytes()
}

func DecodeFrame(b []byte) (deadline time.Time, payload []byte, err error) {
	const hdr = 4 + 1 + 1 + 8 + 4
	if len(b) < hdr || !hasMagic(b) || b[4] != frameVersion {
		return time.Time{}, nil, ErrCorrupt
	}

	off := 6

	nanos := int64(binary.BigEndian.Uint64(b[off : off+8]))
	off += 8
	if nanos < 0 {
		return time.Time{}, nil, ErrCorrupt
	}

	vlen := int(binary.BigEndian.Uint32(b[off : off+4]))
	off += 4
	if vlen < 0 || vlen != len(b)-off { // exact length, no trailing bytes
		return time.Time{}, nil, ErrCorrupt
	}

	if nanos > 0 {
		deadline = time.Unix(0, nanos)
	}
	return deadline, b[off : off+vlen], nil
}
