package layout

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseRows decodes a YAML list of field mappings into rows.
//
//	- id: 7
//	  position: [1.5, -2.0, 0.0]
//	- id: 8
func (l *Layout) ParseRows(data []byte) ([]Row, error) {
	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValue, err)
	}

	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = l.NewRow()
		if err := rows[i].Assign(item); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return rows, nil
}

// MarshalRows encodes rows as a YAML list in declared field order.
func (l *Layout) MarshalRows(rows []Row) ([]byte, error) {
	if rows == nil {
		rows = []Row{}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rows); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
