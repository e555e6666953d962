// Package codec copies fixed-layout records to and from byte buffers.
//
// A record layout is declared once as a Schema: an ordered list of numeric
// fields, each either a scalar or a fixed-length array of scalars. The width
// of a schema is known as soon as it is declared and never depends on buffer
// contents, so every operation checks the span it needs against the buffer
// before any byte is touched.
//
// # Wire Format
//
// A record is the concatenation of its fields in declared order. There is no
// header, length prefix, padding or alignment:
//
//	type Vertex struct {
//	    ID       uint32
//	    Position [3]float32
//	}
//
//	[ID(4)][Position[0](4)][Position[1](4)][Position[2](4)]  // 16 bytes
//
// Each value is written as the exact in-memory image of the host's numeric
// representation. No byte order conversion takes place, so buffers produced on
// a little-endian host can not be read back on a big-endian host. NativeOrder
// reports the byte order in use.
//
// # Usage
//
//	schema := codec.MustSchema(
//	    codec.Scalar("id", func(v *Vertex) *uint32 { return &v.ID }),
//	    codec.Array("position", 3, func(v *Vertex) []float32 { return v.Position[:] }),
//	)
//
//	buf := make([]byte, 100)
//	var cursor codec.Offset
//
//	if err := codec.Encode(schema, buf, Vertex{ID: 7}, &cursor); err != nil {
//	    return err
//	}
//
//	cursor = 0
//	v, err := codec.Decode(schema, buf, &cursor)
//
// Field types are restricted to the Number constraint. Declaring a field of
// any other type does not compile.
//
// # Cursors and Failures
//
// Every operation takes the caller's cursor by pointer. On success the cursor
// advances by exactly the number of bytes copied. On failure the cursor and
// the buffer are left as they were. A span that does not fit the remaining
// buffer fails with an error matching ErrOutOfRange.
//
// # Streams
//
// DecodeStream and EncodeStream process a run of records bounded by a byte
// budget. The record count is budget / Width(), rounded down; trailing bytes
// that do not form a whole record are ignored. DecodeStreamExact and
// EncodeStreamExact reject budgets that do not divide evenly.
//
// # Thread Safety
//
// Schemas are immutable and safe to share. The package keeps no state between
// calls; concurrent use is safe as long as each goroutine works on its own
// buffer region and cursor.
package codec
