package codec

// Decode reads one record from buf at *cursor and advances the cursor by the
// record width. If the record does not fit, the cursor is left unchanged and
// the error matches ErrOutOfRange.
func Decode[R any](s *Schema[R], buf []byte, cursor *Offset) (R, error) {
	r := s.zero()
	if err := Validate(len(buf), *cursor, s.width); err != nil {
		return r, err
	}
	if err := s.check(&r); err != nil {
		return r, err
	}

	s.decodeAt(&r, buf, cursor)
	return r, nil
}

// Encode writes r into buf at *cursor and advances the cursor by the record
// width. If the record does not fit, neither buf nor the cursor is modified
// and the error matches ErrOutOfRange.
func Encode[R any](s *Schema[R], buf []byte, r R, cursor *Offset) error {
	if err := Validate(len(buf), *cursor, s.width); err != nil {
		return err
	}
	if err := s.check(&r); err != nil {
		return err
	}

	s.encodeAt(&r, buf, cursor)
	return nil
}

// decodeAt copies each field out of buf in order. The caller has validated
// the span.
func (s *Schema[R]) decodeAt(r *R, buf []byte, cursor *Offset) {
	for i, f := range s.fields {
		w := s.descs[i].Width
		pos := int(*cursor)
		f.decode(r, buf[pos:pos+w])
		*cursor += Offset(w)
	}
}

// encodeAt copies each field into buf in order. The caller has validated the
// span.
func (s *Schema[R]) encodeAt(r *R, buf []byte, cursor *Offset) {
	for i, f := range s.fields {
		w := s.descs[i].Width
		pos := int(*cursor)
		f.encode(r, buf[pos:pos+w])
		*cursor += Offset(w)
	}
}
