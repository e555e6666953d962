package codec

import "fmt"

// Errors
var (
	ErrOutOfRange      = &CodecError{"buffer access out of range"}
	ErrUnalignedBudget = &CodecError{"byte budget is not a multiple of the record width"}
	ErrInvalidSchema   = &CodecError{"invalid schema"}
	ErrFieldLength     = &CodecError{"array field length does not match schema"}
)

// CodecError represents a codec error
type CodecError struct {
	Message string
}

func (e *CodecError) Error() string {
	return e.Message
}

// RangeError reports a span that does not fit in the buffer from the cursor.
// It matches ErrOutOfRange with errors.Is.
type RangeError struct {
	Cursor Offset // Cursor at the time of the check
	Span   int    // Bytes required
	Len    int    // Buffer length
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: need %d bytes at offset %d, buffer holds %d",
		ErrOutOfRange.Message, e.Span, e.Cursor, e.Len)
}

func (e *RangeError) Unwrap() error {
	return ErrOutOfRange
}
