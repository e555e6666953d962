package layout

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/recpack/pkg/codec"
	"github.com/ssargent/recpack/pkg/fileio"
)

const vertexYAML = `
name: vertex
fields:
  - name: id
    type: u32
  - name: position
    type: f32
    count: 3
`

func mustParse(t *testing.T, src string) *Layout {
	t.Helper()
	l, err := Parse([]byte(src))
	require.NoError(t, err)
	return l
}

func TestParse_Vertex(t *testing.T) {
	l := mustParse(t, vertexYAML)

	assert.Equal(t, "vertex", l.Name())
	assert.Equal(t, 16, l.Width())

	fields := l.Fields()
	require.Len(t, fields, 2)
	assert.Equal(t, "id", fields[0].Name)
	assert.Equal(t, codec.KindScalar, fields[0].Kind)
	assert.Equal(t, "uint32", fields[0].Type)
	assert.Equal(t, "position", fields[1].Name)
	assert.Equal(t, codec.KindArray, fields[1].Kind)
	assert.Equal(t, 3, fields[1].Count)
	assert.Equal(t, 4, fields[1].Offset)

	def := l.Definition()
	assert.Equal(t, "vertex", def.Name)
	require.Len(t, def.Fields, 2)
	assert.Equal(t, FieldSpec{Name: "position", Type: "f32", Count: 3}, def.Fields[1])

	def.Fields[0].Name = "changed"
	assert.Equal(t, "id", l.Definition().Fields[0].Name)
}

func TestParse_AllTypes(t *testing.T) {
	l := mustParse(t, `
name: all
fields:
  - {name: a, type: u8}
  - {name: b, type: uint16}
  - {name: c, type: u32}
  - {name: d, type: u64}
  - {name: e, type: i8}
  - {name: f, type: int16}
  - {name: g, type: i32}
  - {name: h, type: i64}
  - {name: i, type: f32}
  - {name: j, type: float64}
  - {name: k, type: byte, count: 4}
`)
	assert.Equal(t, 1+2+4+8+1+2+4+8+4+8+4, l.Width())
}

func TestParse_Invalid(t *testing.T) {
	testCases := []struct {
		name string
		src  string
	}{
		{"not yaml", "name: [unclosed"},
		{"no fields", "name: empty\nfields: []\n"},
		{"missing name", "fields:\n  - type: u8\n"},
		{"duplicate name", "fields:\n  - {name: a, type: u8}\n  - {name: a, type: u16}\n"},
		{"unknown type", "fields:\n  - {name: a, type: string}\n"},
		{"negative count", "fields:\n  - {name: a, type: u8, count: -1}\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			l, err := Parse([]byte(tc.src))
			assert.Nil(t, l)
			assert.ErrorIs(t, err, ErrInvalidLayout)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vertex.yaml")
	require.NoError(t, fileio.Store(path, []byte(vertexYAML)))

	l, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, l.Width())

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, fileio.ErrFileAccess)
}

func TestRow_EncodeDecode(t *testing.T) {
	l := mustParse(t, vertexYAML)

	row := l.NewRow()
	require.NoError(t, row.Set("id", 7))
	require.NoError(t, row.Set("position", 1.5, -2.0, 0.0))

	buf := make([]byte, 100)
	var cursor codec.Offset
	require.NoError(t, codec.Encode(l.Schema(), buf, row, &cursor))
	assert.Equal(t, codec.Offset(16), cursor)

	cursor = 0
	got, err := codec.Decode(l.Schema(), buf, &cursor)
	require.NoError(t, err)

	id, err := got.Get("id")
	require.NoError(t, err)
	assert.Equal(t, []any{uint32(7)}, id)

	pos, err := got.Get("position")
	require.NoError(t, err)
	assert.Equal(t, []any{float32(1.5), float32(-2), float32(0)}, pos)

	assert.Equal(t, []string{"7", "[1.5 -2 0]"}, got.Strings())

	cursor = 90
	_, err = codec.Decode(l.Schema(), buf, &cursor)
	assert.ErrorIs(t, err, codec.ErrOutOfRange)
	assert.Equal(t, codec.Offset(90), cursor)
}

func TestRow_DecodedRowsAreIndependent(t *testing.T) {
	l := mustParse(t, vertexYAML)
	buf := make([]byte, 32)

	var cursor codec.Offset
	rows, err := codec.DecodeStream(l.Schema(), buf, &cursor, 32)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.NoError(t, rows[0].Set("position", 1, 2, 3))
	pos, err := rows[1].Get("position")
	require.NoError(t, err)
	assert.Equal(t, []any{float32(0), float32(0), float32(0)}, pos)
}

func TestRow_SetErrors(t *testing.T) {
	l := mustParse(t, `
fields:
  - {name: small, type: u8}
  - {name: signed, type: i16}
  - {name: pair, type: u32, count: 2}
  - {name: ratio, type: f32}
  - {name: wide, type: f64}
`)
	row := l.NewRow()

	testCases := []struct {
		name  string
		field string
		vals  []any
		err   error
	}{
		{"unknown field", "nope", []any{1}, ErrUnknownField},
		{"overflow", "small", []any{256}, ErrValue},
		{"negative into unsigned", "small", []any{-1}, ErrValue},
		{"underflow", "signed", []any{-40000}, ErrValue},
		{"fraction into integer", "signed", []any{1.5}, ErrValue},
		{"huge unsigned into signed", "signed", []any{uint64(1 << 63)}, ErrValue},
		{"wrong count", "pair", []any{1}, ErrValue},
		{"wrong type", "small", []any{"seven"}, ErrValue},
		{"float32 overflow", "ratio", []any{1e40}, ErrValue},
		{"float32 negative overflow", "ratio", []any{-1e40}, ErrValue},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, row.Set(tc.field, tc.vals...), tc.err)
		})
	}

	require.NoError(t, row.Set("small", 255))
	require.NoError(t, row.Set("signed", -32768))
	require.NoError(t, row.Set("pair", uint64(4294967295), 2.0))

	pair, err := row.Get("pair")
	require.NoError(t, err)
	assert.Equal(t, []any{uint32(4294967295), uint32(2)}, pair)

	require.NoError(t, row.Set("ratio", math.MaxFloat32))
	require.NoError(t, row.Set("ratio", math.Inf(-1)))
	ratio, err := row.Get("ratio")
	require.NoError(t, err)
	assert.Equal(t, []any{float32(math.Inf(-1))}, ratio)

	require.NoError(t, row.Set("wide", 1e40))
	wide, err := row.Get("wide")
	require.NoError(t, err)
	assert.Equal(t, []any{1e40}, wide)
}

func TestParseRows_FloatOverflow(t *testing.T) {
	l := mustParse(t, `fields: [{name: f, type: f32}, {name: b, type: u8}]`)

	_, err := l.ParseRows([]byte("- {f: 1e40, b: 1}\n"))
	assert.ErrorIs(t, err, ErrValue)

	rows, err := l.ParseRows([]byte("- {f: 1.5, b: 1}\n"))
	require.NoError(t, err)
	f, err := rows[0].Get("f")
	require.NoError(t, err)
	assert.Equal(t, []any{float32(1.5)}, f)
}

func TestRows_YAMLRoundTrip(t *testing.T) {
	l := mustParse(t, vertexYAML)

	rows, err := l.ParseRows([]byte(`
- id: 7
  position: [1.5, -2.0, 0.0]
- id: 8
  position: [.inf, 3, 1e10]
- id: 9
`))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	out, err := l.MarshalRows(rows)
	require.NoError(t, err)
	assert.Equal(t, `- id: 7
  position: [1.5, -2.0, 0.0]
- id: 8
  position: [.inf, 3.0, 1e+10]
- id: 9
  position: [0.0, 0.0, 0.0]
`, string(out))

	again, err := l.ParseRows(out)
	require.NoError(t, err)
	for i := range rows {
		assert.Equal(t, rows[i].Strings(), again[i].Strings())
	}
}

func TestParseRows_Invalid(t *testing.T) {
	l := mustParse(t, vertexYAML)

	_, err := l.ParseRows([]byte("- id: 1\n  colour: 3\n"))
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = l.ParseRows([]byte("id: 1\n"))
	assert.ErrorIs(t, err, ErrValue)
}

func TestMarshalRows_Empty(t *testing.T) {
	l := mustParse(t, vertexYAML)

	out, err := l.MarshalRows(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(out))
}
