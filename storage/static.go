package storage

import (
	"context"

	"github.com/poiesic/slidesearch/core"
)

// StaticSource serves fixed in-memory datasets.
type StaticSource struct {
	tables map[core.TableName]*core.Dataset
}

var _ RecordSource = (*StaticSource)(nil)

// NewStaticSource creates a source over the given datasets, keyed by their Table.
// Later datasets replace earlier ones with the same table.
func NewStaticSource(datasets ...*core.Dataset) *StaticSource {
	tables := make(map[core.TableName]*core.Dataset, len(datasets))
	for _, ds := range datasets {
		if ds != nil {
			tables[ds.Table] = ds
		}
	}
	return &StaticSource{tables: tables}
}

// Load returns a deep copy of the table so callers cannot mutate the source.
func (s *StaticSource) Load(ctx context.Context, table core.TableName) (*core.Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ds, ok := s.tables[table]
	if !ok {
		return nil, ErrSourceNotFound
	}
	return CloneDataset(ds), nil
}

// CloneDataset returns a deep copy of ds.
func CloneDataset(ds *core.Dataset) *core.Dataset {
	out := &core.Dataset{
		Table:   ds.Table,
		Source:  ds.Source,
		Columns: append([]string(nil), ds.Columns...),
		Records: make([]core.Record, len(ds.Records)),
	}
	for i, r := range ds.Records {
		out.Records[i] = r.Clone()
	}
	return out
}

// DatasetFromRows builds a dataset from a header and value rows.
func DatasetFromRows(table core.TableName, source string, columns []string, rows ...[]string) *core.Dataset {
	ds := &core.Dataset{
		Table:   table,
		Source:  source,
		Columns: columns,
		Records: make([]core.Record, 0, len(rows)),
	}
	for _, row := range rows {
		ds.Records = append(ds.Records, core.NewRecord(columns, row))
	}
	return ds
}
