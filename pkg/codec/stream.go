package codec

import "fmt"

// DecodeStream decodes budget / Width() records from buf starting at *cursor.
// The whole budget must fit in the buffer. Bytes of a trailing partial record
// are not consumed, so the cursor advances by a multiple of the record width.
func DecodeStream[R any](s *Schema[R], buf []byte, cursor *Offset, budget int) ([]R, error) {
	if err := Validate(len(buf), *cursor, budget); err != nil {
		return nil, err
	}

	n := s.Count(budget)
	out := make([]R, 0, n)

	pos := *cursor
	for i := 0; i < n; i++ {
		r, err := Decode(s, buf, &pos)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, r)
	}

	*cursor = pos
	return out, nil
}

// EncodeStream encodes records into buf starting at *cursor, stopping after
// budget / Width() records. Records beyond that count are ignored. The whole
// budget must fit in the buffer.
func EncodeStream[R any](s *Schema[R], buf []byte, records []R, cursor *Offset, budget int) error {
	if err := Validate(len(buf), *cursor, budget); err != nil {
		return err
	}

	n := s.Count(budget)
	if n > len(records) {
		n = len(records)
	}
	records = records[:n]

	// Catch malformed records before the buffer is touched.
	for i := range records {
		if err := s.check(&records[i]); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	pos := *cursor
	for i, r := range records {
		if err := Encode(s, buf, r, &pos); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
	}

	*cursor = pos
	return nil
}

// DecodeStreamExact is DecodeStream for callers that treat a budget with a
// trailing partial record as a mistake. Such budgets fail with
// ErrUnalignedBudget.
func DecodeStreamExact[R any](s *Schema[R], buf []byte, cursor *Offset, budget int) ([]R, error) {
	if err := s.aligned(budget); err != nil {
		return nil, err
	}
	return DecodeStream(s, buf, cursor, budget)
}

// EncodeStreamExact is EncodeStream that also requires the budget to hold
// exactly len(records) records.
func EncodeStreamExact[R any](s *Schema[R], buf []byte, records []R, cursor *Offset, budget int) error {
	if err := s.aligned(budget); err != nil {
		return err
	}
	if want := s.Span(len(records)); budget != want {
		return fmt.Errorf("%w: budget %d holds %d records, got %d",
			ErrUnalignedBudget, budget, s.Count(budget), len(records))
	}
	return EncodeStream(s, buf, records, cursor, budget)
}

func (s *Schema[R]) aligned(budget int) error {
	if budget >= 0 && budget%s.width != 0 {
		return fmt.Errorf("%w: budget %d, record width %d", ErrUnalignedBudget, budget, s.width)
	}
	return nil
}
