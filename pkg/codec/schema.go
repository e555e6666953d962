package codec

import (
	"fmt"
	"math"
)

// Kind distinguishes scalar fields from fixed-length array fields.
type Kind uint8

const (
	KindScalar Kind = iota
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// FieldDesc describes where a field lives inside a record.
type FieldDesc struct {
	Name      string // Optional label
	Kind      Kind   // Scalar or array
	Type      string // Go type name of the element
	ElemWidth int    // Size of one element in bytes
	Count     int    // Number of elements (1 for scalars)
	Width     int    // ElemWidth * Count
	Offset    int    // Byte offset of the field within the record
}

// Field binds one numeric field of a record type R to its position in the
// layout. Fields are created with Scalar and Array.
type Field[R any] interface {
	desc() FieldDesc
	validate() error
	check(r *R) error
	decode(r *R, src []byte)
	encode(r *R, dst []byte)
}

type scalarField[R any, T Number] struct {
	name string
	at   func(*R) *T
}

// Scalar declares a field holding a single T. at returns the address of the
// field inside a record.
func Scalar[R any, T Number](name string, at func(*R) *T) Field[R] {
	return &scalarField[R, T]{name: name, at: at}
}

func (f *scalarField[R, T]) desc() FieldDesc {
	w := SizeOf[T]()
	return FieldDesc{
		Name:      f.name,
		Kind:      KindScalar,
		Type:      typeName[T](),
		ElemWidth: w,
		Count:     1,
		Width:     w,
	}
}

func (f *scalarField[R, T]) validate() error {
	if f.at == nil {
		return fmt.Errorf("%w: field %q has no accessor", ErrInvalidSchema, f.name)
	}
	return nil
}

func (f *scalarField[R, T]) check(*R) error { return nil }

func (f *scalarField[R, T]) decode(r *R, src []byte) {
	*f.at(r) = native[T](src)
}

func (f *scalarField[R, T]) encode(r *R, dst []byte) {
	putNative(dst, *f.at(r))
}

type arrayField[R any, T Number] struct {
	name string
	n    int
	at   func(*R) []T
}

// Array declares a field holding exactly n elements of T. at returns the
// elements of the field inside a record, usually by slicing a Go array
// (v.Position[:]).
func Array[R any, T Number](name string, n int, at func(*R) []T) Field[R] {
	return &arrayField[R, T]{name: name, n: n, at: at}
}

func (f *arrayField[R, T]) desc() FieldDesc {
	w := SizeOf[T]()
	return FieldDesc{
		Name:      f.name,
		Kind:      KindArray,
		Type:      typeName[T](),
		ElemWidth: w,
		Count:     f.n,
		Width:     w * f.n,
	}
}

func (f *arrayField[R, T]) validate() error {
	if f.at == nil {
		return fmt.Errorf("%w: field %q has no accessor", ErrInvalidSchema, f.name)
	}
	if f.n <= 0 {
		return fmt.Errorf("%w: field %q has array length %d", ErrInvalidSchema, f.name, f.n)
	}
	if uint64(f.n) > math.MaxUint32/uint64(SizeOf[T]()) {
		return fmt.Errorf("%w: field %q is too large", ErrInvalidSchema, f.name)
	}
	return nil
}

func (f *arrayField[R, T]) check(r *R) error {
	if got := len(f.at(r)); got != f.n {
		return fmt.Errorf("%w: field %q has %d elements, want %d", ErrFieldLength, f.name, got, f.n)
	}
	return nil
}

func (f *arrayField[R, T]) decode(r *R, src []byte) {
	elems := f.at(r)
	w := SizeOf[T]()
	for i := range elems {
		elems[i] = native[T](src[i*w:])
	}
}

func (f *arrayField[R, T]) encode(r *R, dst []byte) {
	elems := f.at(r)
	w := SizeOf[T]()
	for i, v := range elems {
		putNative(dst[i*w:], v)
	}
}

func typeName[T Number]() string {
	var v T
	return fmt.Sprintf("%T", v)
}

// Schema is the ordered field layout of a record type R. A Schema is
// immutable once created.
type Schema[R any] struct {
	fields    []Field[R]
	descs     []FieldDesc
	width     int
	newRecord func() R
}

// NewSchema declares a record layout from fields in order. The returned error
// matches ErrInvalidSchema when the list is empty, a field is missing its
// accessor, an array length is not positive, or the record would be wider than
// an Offset can address.
func NewSchema[R any](fields ...Field[R]) (*Schema[R], error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("%w: no fields", ErrInvalidSchema)
	}

	s := &Schema[R]{
		fields: make([]Field[R], len(fields)),
		descs:  make([]FieldDesc, len(fields)),
	}
	copy(s.fields, fields)

	var width uint64
	for i, f := range s.fields {
		if f == nil {
			return nil, fmt.Errorf("%w: field %d is nil", ErrInvalidSchema, i)
		}
		if err := f.validate(); err != nil {
			return nil, err
		}
		d := f.desc()
		d.Offset = int(width)
		s.descs[i] = d

		width += uint64(d.Width)
		if width > math.MaxUint32 {
			return nil, fmt.Errorf("%w: record wider than %d bytes", ErrInvalidSchema, uint32(math.MaxUint32))
		}
	}
	s.width = int(width)

	return s, nil
}

// MustSchema is like NewSchema but panics if the layout is invalid. It is
// meant for package level schema declarations.
func MustSchema[R any](fields ...Field[R]) *Schema[R] {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// WithFactory returns a copy of the schema that creates records with fn
// instead of using the zero value of R. Decoding needs this when array fields
// are backed by slices that must be allocated first.
func (s *Schema[R]) WithFactory(fn func() R) *Schema[R] {
	c := *s
	c.newRecord = fn
	return &c
}

// Width returns the byte width of one record.
func (s *Schema[R]) Width() int {
	return s.width
}

// Span returns the bytes needed to hold n records.
func (s *Schema[R]) Span(n int) int {
	return n * s.width
}

// Count returns the number of whole records that fit in budget bytes.
func (s *Schema[R]) Count(budget int) int {
	if budget <= 0 {
		return 0
	}
	return budget / s.width
}

// Fields returns the field descriptors in declared order.
func (s *Schema[R]) Fields() []FieldDesc {
	out := make([]FieldDesc, len(s.descs))
	copy(out, s.descs)
	return out
}

func (s *Schema[R]) zero() R {
	if s.newRecord != nil {
		return s.newRecord()
	}
	var r R
	return r
}

// check verifies that every array field of r has its declared length.
func (s *Schema[R]) check(r *R) error {
	for _, f := range s.fields {
		if err := f.check(r); err != nil {
			return err
		}
	}
	return nil
}
