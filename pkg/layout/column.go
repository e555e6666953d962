package layout

import (
	"fmt"
	"math"

	"github.com/ssargent/recpack/pkg/codec"
)

// column binds field i of a Row to a typed slice.
type column struct {
	spec  FieldSpec
	field codec.Field[Row]
	alloc func() any
	get   func(r Row) []any
	set   func(r Row, vals []any) error
}

func newColumn(typ string, i int, spec FieldSpec) (column, bool) {
	switch typ {
	case "u8", "uint8", "byte":
		return makeColumn[uint8](i, spec), true
	case "u16", "uint16":
		return makeColumn[uint16](i, spec), true
	case "u32", "uint32":
		return makeColumn[uint32](i, spec), true
	case "u64", "uint64":
		return makeColumn[uint64](i, spec), true
	case "i8", "int8":
		return makeColumn[int8](i, spec), true
	case "i16", "int16":
		return makeColumn[int16](i, spec), true
	case "i32", "int32":
		return makeColumn[int32](i, spec), true
	case "i64", "int64":
		return makeColumn[int64](i, spec), true
	case "f32", "float32":
		return makeColumn[float32](i, spec), true
	case "f64", "float64":
		return makeColumn[float64](i, spec), true
	default:
		return column{}, false
	}
}

func makeColumn[T codec.Number](i int, spec FieldSpec) column {
	n := spec.Count
	if n == 0 {
		n = 1
	}

	at := func(r *Row) []T { return r.cols[i].([]T) }

	var field codec.Field[Row]
	if spec.Count == 0 {
		field = codec.Scalar(spec.Name, func(r *Row) *T { return &at(r)[0] })
	} else {
		field = codec.Array(spec.Name, spec.Count, at)
	}

	return column{
		spec:  spec,
		field: field,
		alloc: func() any { return make([]T, n) },
		get: func(r Row) []any {
			vals := at(&r)
			out := make([]any, len(vals))
			for j, v := range vals {
				out[j] = v
			}
			return out
		},
		set: func(r Row, vals []any) error {
			dst := at(&r)
			if len(vals) != len(dst) {
				return fmt.Errorf("%w: field %q takes %d values, got %d", ErrValue, spec.Name, len(dst), len(vals))
			}
			for j, v := range vals {
				t, err := convert[T](v)
				if err != nil {
					return fmt.Errorf("%w: field %q[%d]: %v", ErrValue, spec.Name, j, err)
				}
				dst[j] = t
			}
			return nil
		},
	}
}

func isFloat[T codec.Number]() bool {
	return T(1)/T(2) != 0
}

// convert turns a value decoded from YAML into T, rejecting values T can not
// hold.
func convert[T codec.Number](v any) (T, error) {
	switch x := v.(type) {
	case int:
		return fromInt[T](int64(x))
	case int64:
		return fromInt[T](x)
	case uint64:
		return fromUint[T](x)
	case float64:
		if isFloat[T]() {
			if codec.SizeOf[T]() == 4 && !math.IsInf(x, 0) && !math.IsNaN(x) && math.Abs(x) > math.MaxFloat32 {
				return 0, fmt.Errorf("%v out of range for float32", x)
			}
			return T(x), nil
		}
		if x != math.Trunc(x) || math.IsInf(x, 0) || x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an integer in range", x)
		}
		return fromInt[T](int64(x))
	default:
		return 0, fmt.Errorf("unsupported value %v (%T)", v, v)
	}
}

func fromInt[T codec.Number](x int64) (T, error) {
	t := T(x)
	if !isFloat[T]() && (int64(t) != x || (x < 0) != (t < 0)) {
		return 0, fmt.Errorf("%d out of range for %T", x, t)
	}
	return t, nil
}

func fromUint[T codec.Number](x uint64) (T, error) {
	t := T(x)
	if !isFloat[T]() && (uint64(t) != x || t < 0) {
		return 0, fmt.Errorf("%d out of range for %T", x, t)
	}
	return t, nil
}
