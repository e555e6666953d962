package codec

import "math"

// Offset is a byte position in a buffer.
type Offset uint32

// Validate checks that span bytes are available in a buffer of bufLen bytes
// starting at cursor. It has no side effects.
//
// A cursor past the end of the buffer, a negative span or a span whose end
// can not be represented as an Offset all fail.
func Validate(bufLen int, cursor Offset, span int) error {
	if span < 0 || bufLen < 0 {
		return &RangeError{Cursor: cursor, Span: span, Len: bufLen}
	}

	c, s, n := uint64(cursor), uint64(span), uint64(bufLen)
	if c > n || s > n-c || c+s > math.MaxUint32 {
		return &RangeError{Cursor: cursor, Span: span, Len: bufLen}
	}

	return nil
}
