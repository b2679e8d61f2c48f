package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/vtable/internal/table"
)

const ctxCheckEvery = 1024

//nolint:gochecknoglobals // Read-only parse layouts.
var timeLayouts = []string{time.RFC3339Nano, time.DateTime, time.DateOnly}

func decodeCSV(ctx context.Context, r io.Reader, base string) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, err
	}

	ds := &Dataset{Columns: make([]table.Column, len(header))}
	for i, h := range header {
		h = strings.TrimSpace(h)
		ds.Columns[i] = table.Column{ID: h, Header: h, Sortable: true}
	}

	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err = ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, readErr := cr.Read()
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
		fields := make(map[string]any, len(header))
		for i, col := range ds.Columns {
			if i < len(rec) {
				fields[col.ID] = inferScalar(rec[i])
			}
		}
		ds.Rows = append(ds.Rows, table.Row{Key: rowKey(base, n), Fields: fields})
	}
	return ds, nil
}

// columnDoc is the serialised form of a column in JSON and YAML documents.
type columnDoc struct {
	ID       string `json:"id"                 yaml:"id"`
	Header   string `json:"header,omitempty"   yaml:"header,omitempty"`
	Sortable *bool  `json:"sortable,omitempty" yaml:"sortable,omitempty"`
	Align    string `json:"align,omitempty"    yaml:"align,omitempty"`
}

// decodeDocument parses JSON or YAML through yaml.v3 nodes so that object
// key order is kept for column order.
func decodeDocument(r io.Reader, base string) (*Dataset, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(r).Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return &Dataset{}, nil
		}
		return nil, err
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}

	var colsNode, rowsNode *yaml.Node
	switch node.Kind {
	case yaml.SequenceNode:
		rowsNode = node
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			switch node.Content[i].Value {
			case "columns":
				colsNode = node.Content[i+1]
			case "rows":
				rowsNode = node.Content[i+1]
			}
		}
		if rowsNode == nil {
			return nil, errors.New(`object document needs a "rows" key`)
		}
	default:
		return nil, fmt.Errorf("line %d: expected an array or object document", node.Line)
	}

	ds := &Dataset{}
	declared := colsNode != nil
	if declared {
		var docs []columnDoc
		if err := colsNode.Decode(&docs); err != nil {
			return nil, fmt.Errorf("columns: %w", err)
		}
		for _, d := range docs {
			ds.Columns = append(ds.Columns, d.column())
		}
	}

	if rowsNode.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: rows must be an array", rowsNode.Line)
	}

	seen := make(map[string]bool)
	for i, item := range rowsNode.Content {
		if item.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("line %d: row %d is not an object", item.Line, i)
		}
		fields := make(map[string]any, len(item.Content)/2)
		for j := 0; j+1 < len(item.Content); j += 2 {
			key := item.Content[j].Value
			var v any
			if err := item.Content[j+1].Decode(&v); err != nil {
				return nil, fmt.Errorf("row %d field %q: %w", i, key, err)
			}
			fields[key] = normalize(v)
			if !declared && !seen[key] {
				seen[key] = true
				ds.Columns = append(ds.Columns, table.Column{ID: key, Header: key, Sortable: true})
			}
		}
		ds.Rows = append(ds.Rows, table.Row{Key: rowKey(base, i), Fields: fields})
	}
	return ds, nil
}

func (d columnDoc) column() table.Column {
	col := table.Column{ID: d.ID, Header: d.Header, Sortable: true}
	if d.Sortable != nil {
		col.Sortable = *d.Sortable
	}
	if strings.EqualFold(d.Align, "right") {
		col.Align = table.AlignRight
	}
	return col
}

func columnDocOf(c table.Column) columnDoc {
	d := columnDoc{ID: c.ID, Header: c.Header}
	if !c.Sortable {
		f := false
		d.Sortable = &f
	}
	if c.Align == table.AlignRight {
		d.Align = "right"
	}
	return d
}

// normalize converts decoded strings that look like dates into time values.
func normalize(v any) any {
	if s, ok := v.(string); ok {
		if t, isTime := parseTime(s); isTime {
			return t
		}
	}
	return v
}

// inferScalar types a CSV cell: empty is nil, then int, float, bool, time, string.
func inferScalar(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return f
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if t, ok := parseTime(s); ok {
		return t
	}
	return s
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
