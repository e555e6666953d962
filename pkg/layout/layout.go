// Package layout compiles record layouts declared in YAML into codec
// schemas. A layout is a named, ordered list of numeric fields:
//
//	name: vertex
//	fields:
//	  - name: id
//	    type: u32
//	  - name: position
//	    type: f32
//	    count: 3
//
// Field types are u8, u16, u32, u64, i8, i16, i32, i64, f32 and f64 (the Go
// names uint8 … float64 are accepted too). A field without a count is a
// scalar; a count declares a fixed-length array. The record width follows
// from the declaration alone.
package layout

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/recpack/pkg/codec"
	"github.com/ssargent/recpack/pkg/fileio"
)

// Errors
var (
	ErrInvalidLayout = errors.New("invalid layout")
	ErrUnknownField  = errors.New("unknown field")
	ErrValue         = errors.New("invalid field value")
)

// FieldSpec declares one field of a layout
type FieldSpec struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Count int    `yaml:"count,omitempty"`
}

// Definition is the YAML form of a layout
type Definition struct {
	Name   string      `yaml:"name"`
	Fields []FieldSpec `yaml:"fields"`
}

// Layout is a compiled Definition
type Layout struct {
	def     Definition
	columns []column
	index   map[string]int
	schema  *codec.Schema[Row]
}

// Load reads and compiles the layout file at path.
func Load(path string) (*Layout, error) {
	data, err := fileio.Load(path)
	if err != nil {
		return nil, err
	}

	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse compiles a layout from its YAML form.
func Parse(data []byte) (*Layout, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return Compile(def)
}

// Compile validates def and builds its schema.
func Compile(def Definition) (*Layout, error) {
	if len(def.Fields) == 0 {
		return nil, fmt.Errorf("%w: layout %q has no fields", ErrInvalidLayout, def.Name)
	}

	l := &Layout{
		def:     def,
		columns: make([]column, len(def.Fields)),
		index:   make(map[string]int, len(def.Fields)),
	}

	fields := make([]codec.Field[Row], len(def.Fields))
	for i, spec := range def.Fields {
		if spec.Name == "" {
			return nil, fmt.Errorf("%w: field %d has no name", ErrInvalidLayout, i)
		}
		if _, dup := l.index[spec.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate field %q", ErrInvalidLayout, spec.Name)
		}
		if spec.Count < 0 {
			return nil, fmt.Errorf("%w: field %q has negative count %d", ErrInvalidLayout, spec.Name, spec.Count)
		}

		col, ok := newColumn(spec.Type, i, spec)
		if !ok {
			return nil, fmt.Errorf("%w: field %q has unsupported type %q", ErrInvalidLayout, spec.Name, spec.Type)
		}

		l.index[spec.Name] = i
		l.columns[i] = col
		fields[i] = col.field
	}

	schema, err := codec.NewSchema(fields...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	l.schema = schema.WithFactory(l.NewRow)

	return l, nil
}

// Name returns the layout name.
func (l *Layout) Name() string {
	return l.def.Name
}

// Definition returns the declaration the layout was compiled from.
func (l *Layout) Definition() Definition {
	def := l.def
	def.Fields = append([]FieldSpec(nil), l.def.Fields...)
	return def
}

// Schema returns the codec schema for rows of this layout.
func (l *Layout) Schema() *codec.Schema[Row] {
	return l.schema
}

// Width returns the byte width of one record.
func (l *Layout) Width() int {
	return l.schema.Width()
}

// Fields returns the field descriptors in declared order.
func (l *Layout) Fields() []codec.FieldDesc {
	return l.schema.Fields()
}

// NewRow returns a zeroed row of this layout.
func (l *Layout) NewRow() Row {
	cols := make([]any, len(l.columns))
	for i, c := range l.columns {
		cols[i] = c.alloc()
	}
	return Row{layout: l, cols: cols}
}
