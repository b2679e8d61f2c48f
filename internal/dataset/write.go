package dataset

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/rshade/vtable/internal/table"
)

type document struct {
	Columns []columnDoc      `json:"columns" yaml:"columns"`
	Rows    []map[string]any `json:"rows"    yaml:"rows"`
}

// Write encodes ds to w. Only declared columns are written, using raw values
// rather than column formatting so that the output loads back unchanged.
func Write(w io.Writer, ds *Dataset, format Format) error {
	switch format {
	case FormatCSV:
		return writeCSV(w, ds)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(toDocument(ds))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toDocument(ds)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func writeCSV(w io.Writer, ds *Dataset) error {
	cw := csv.NewWriter(w)
	header := make([]string, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c.ID
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	rec := make([]string, len(ds.Columns))
	for _, r := range ds.Rows {
		for i, c := range ds.Columns {
			rec[i] = table.FormatValue(c.Value(r))
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func toDocument(ds *Dataset) document {
	doc := document{
		Columns: make([]columnDoc, len(ds.Columns)),
		Rows:    make([]map[string]any, len(ds.Rows)),
	}
	for i, c := range ds.Columns {
		doc.Columns[i] = columnDocOf(c)
	}
	for i, r := range ds.Rows {
		m := make(map[string]any, len(ds.Columns))
		for _, c := range ds.Columns {
			m[c.ID] = c.Value(r)
		}
		doc.Rows[i] = m
	}
	return doc
}
