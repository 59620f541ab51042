package storage

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// jumpsField is the protobuf field number of the packed jump deltas.
const jumpsField protowire.Number = 1

// ErrUnsortedJumps is returned when a jump list is not strictly ascending.
var ErrUnsortedJumps = errors.New("storage: jump ticks must be strictly ascending")

// EncodeJumps encodes ascending tick indices as a protobuf message with a
// single packed varint field holding the deltas between consecutive ticks.
func EncodeJumps(jumps []uint64) ([]byte, error) {
	var packed []byte
	var prev uint64
	for i, j := range jumps {
		if i > 0 && j <= prev {
			return nil, ErrUnsortedJumps
		}
		packed = protowire.AppendVarint(packed, j-prev)
		prev = j
	}

	b := protowire.AppendTag(nil, jumpsField, protowire.BytesType)
	return protowire.AppendBytes(b, packed), nil
}

// DecodeJumps reverses EncodeJumps. Unknown fields are skipped.
func DecodeJumps(b []byte) ([]uint64, error) {
	var jumps []uint64
	var prev uint64

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("storage: bad jump tag: %w", protowire.ParseError(n))
		}
		b = b[n:]

		if num != jumpsField || typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("storage: bad field %d: %w", num, protowire.ParseError(n))
			}
			b = b[n:]
			continue
		}

		packed, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return nil, fmt.Errorf("storage: bad jump list: %w", protowire.ParseError(n))
		}
		b = b[n:]

		for len(packed) > 0 {
			delta, m := protowire.ConsumeVarint(packed)
			if m < 0 {
				return nil, fmt.Errorf("storage: bad jump delta: %w", protowire.ParseError(m))
			}
			packed = packed[m:]
			prev += delta
			jumps = append(jumps, prev)
		}
	}

	return jumps, nil
}
