// Package dataset loads table rows from files and generates sample data.
//
// Supported formats are CSV (first record is the header), JSON and YAML.
// JSON and YAML documents are either a bare array of objects or an object
// with "columns" and "rows" keys. Values are typed where possible so that
// numbers and dates sort by value rather than by text.
package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/vtable/internal/table"
)

// Format identifies a file encoding.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for files whose extension is not recognised.
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Dataset is a set of columns and the rows they describe.
type Dataset struct {
	Columns []table.Column
	Rows    []table.Row
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
}

// Load reads a single dataset file. Row keys are "<file name>#<row index>".
func Load(ctx context.Context, path string) (*Dataset, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	if err = ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset %s: %w", path, err)
	}
	defer f.Close()

	base := filepath.Base(path)
	var ds *Dataset
	switch format {
	case FormatCSV:
		ds, err = decodeCSV(ctx, f, base)
	default:
		ds, err = decodeDocument(f, base)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding dataset %s: %w", path, err)
	}
	alignNumeric(ds)
	zerolog.Ctx(ctx).Debug().Str("path", path).Int("rows", len(ds.Rows)).
		Int("columns", len(ds.Columns)).Msg("dataset loaded")
	return ds, nil
}

// LoadAll reads several files concurrently and concatenates their rows in
// argument order. Columns are the union of all files' columns in first-seen
// order. The first failure cancels the remaining loads.
func LoadAll(ctx context.Context, paths []string) (*Dataset, error) {
	results := make([]*Dataset, len(paths))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range paths {
		g.Go(func() error {
			ds, err := Load(gCtx, p)
			if err != nil {
				return err
			}
			results[i] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return Merge(results...), nil
}

// Merge concatenates datasets. A column ID already present keeps its first definition.
func Merge(parts ...*Dataset) *Dataset {
	out := &Dataset{}
	seen := make(map[string]bool)
	for _, ds := range parts {
		if ds == nil {
			continue
		}
		for _, c := range ds.Columns {
			if seen[c.ID] {
				continue
			}
			seen[c.ID] = true
			out.Columns = append(out.Columns, c)
		}
		out.Rows = append(out.Rows, ds.Rows...)
	}
	return out
}

// alignNumeric right-aligns columns whose non-empty values are all numbers.
func alignNumeric(ds *Dataset) {
	for i := range ds.Columns {
		col := &ds.Columns[i]
		if col.Align != table.AlignLeft || col.Accessor != nil {
			continue
		}
		numeric, found := true, false
		for _, r := range ds.Rows {
			v := r.Fields[col.ID]
			if v == nil {
				continue
			}
			found = true
			if !isNumber(v) {
				numeric = false
				break
			}
		}
		if numeric && found {
			col.Align = table.AlignRight
		}
	}
}

func isNumber(v any) bool {
	switch v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return true
	default:
		return false
	}
}

func rowKey(base string, i int) string {
	return fmt.Sprintf("%s#%d", base, i)
}
