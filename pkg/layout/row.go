package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Row is one record of a Layout. Each field is backed by a typed slice, so a
// Row from NewRow or from decoding is ready to use; the zero Row is not.
type Row struct {
	layout *Layout
	cols   []any
}

// Get returns the values of the named field. Scalars yield one value.
func (r Row) Get(name string) ([]any, error) {
	i, ok := r.layout.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return r.layout.columns[i].get(r), nil
}

// Set assigns the values of the named field. The number of values must match
// the field's count.
func (r Row) Set(name string, vals ...any) error {
	i, ok := r.layout.index[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return r.layout.columns[i].set(r, vals)
}

// Assign sets fields from a map as produced by decoding YAML. Array fields
// take a list, scalars a single value. Fields not present keep their value.
func (r Row) Assign(m map[string]any) error {
	for name, v := range m {
		vals, ok := v.([]any)
		if !ok {
			vals = []any{v}
		}
		if err := r.Set(name, vals...); err != nil {
			return err
		}
	}
	return nil
}

// Strings returns each field formatted for display, in declared order.
func (r Row) Strings() []string {
	out := make([]string, len(r.layout.columns))
	for i, c := range r.layout.columns {
		vals := c.get(r)
		if c.spec.Count == 0 {
			out[i] = fmt.Sprint(vals[0])
			continue
		}
		out[i] = fmt.Sprint(vals)
	}
	return out
}

// MarshalYAML emits the row as a mapping in declared field order.
func (r Row) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, c := range r.layout.columns {
		key := &yaml.Node{Kind: yaml.ScalarNode, Value: c.spec.Name}

		vals := c.get(r)
		var val *yaml.Node
		if c.spec.Count == 0 {
			val = scalarNode(vals[0])
		} else {
			val = &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
			for _, v := range vals {
				val.Content = append(val.Content, scalarNode(v))
			}
		}

		node.Content = append(node.Content, key, val)
	}
	return node, nil
}

func scalarNode(v any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode}
	switch x := v.(type) {
	case float32:
		n.Tag = "!!float"
		n.Value = formatFloat(float64(x), 32)
	case float64:
		n.Tag = "!!float"
		n.Value = formatFloat(x, 64)
	default:
		n.Tag = "!!int"
		n.Value = fmt.Sprint(x)
	}
	return n
}

// formatFloat renders f so that YAML resolves it back to a float.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
