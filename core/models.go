package core

import (
	"bytes"
	"encoding/binary"
	"maps"
	"slices"
	"sort"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// Domain identifies one of the searchable record collections.
type Domain string

const (
	// DomainStrategy holds deck strategies (pitch, sales, board decks).
	DomainStrategy Domain = "strategy"
	// DomainLayout holds slide layout patterns.
	DomainLayout Domain = "layout"
	// DomainCopy holds copywriting formulas.
	DomainCopy Domain = "copy"
	// DomainChart holds chart type guidance.
	DomainChart Domain = "chart"
)

// Domains returns every searchable domain in its fixed order.
// The order drives router tie-breaking and multi-domain result order.
func Domains() []Domain {
	return []Domain{DomainStrategy, DomainLayout, DomainCopy, DomainChart}
}

// Table returns the backing table of the domain.
func (d Domain) Table() TableName {
	return TableName(d)
}

// TableName identifies a backing table.
type TableName string

const (
	TableStrategy    TableName = "strategy"
	TableLayout      TableName = "layout"
	TableCopy        TableName = "copy"
	TableChart       TableName = "chart"
	TableLayoutLogic TableName = "layout-logic"
	TableTypography  TableName = "typography"
	TableColorLogic  TableName = "color-logic"
	TableBackgrounds TableName = "backgrounds"
)

// Tables returns every known table, search domains first.
func Tables() []TableName {
	return []TableName{
		TableStrategy, TableLayout, TableCopy, TableChart,
		TableLayoutLogic, TableTypography, TableColorLogic, TableBackgrounds,
	}
}

// Record is a single row of a backing table.
// A field absent from the row reads as the empty string.
type Record struct {
	Fields map[string]string

	// order lists the keys of Fields in column order. Keys missing from it
	// are rendered after it, sorted.
	order []string
}

// NewRecord builds a record by pairing columns with values.
// Columns without a matching value are left absent.
func NewRecord(columns, values []string) Record {
	fields := make(map[string]string, len(columns))
	order := make([]string, 0, len(columns))
	for i, col := range columns {
		if i >= len(values) {
			break
		}
		if _, dup := fields[col]; !dup {
			order = append(order, col)
		}
		fields[col] = values[i]
	}
	return Record{Fields: fields, order: order}
}

// Get returns the named field, or "" when absent.
func (r Record) Get(name string) string {
	return r.Fields[name]
}

// Has reports whether the row carries the named field.
func (r Record) Has(name string) bool {
	_, ok := r.Fields[name]
	return ok
}

// Project returns a copy holding only the named fields that are present,
// ordered as names.
func (r Record) Project(names []string) Record {
	fields := make(map[string]string, len(names))
	order := make([]string, 0, len(names))
	for _, name := range names {
		if _, dup := fields[name]; dup {
			continue
		}
		if v, ok := r.Fields[name]; ok {
			fields[name] = v
			order = append(order, name)
		}
	}
	return Record{Fields: fields, order: order}
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	return Record{Fields: maps.Clone(r.Fields), order: slices.Clone(r.order)}
}

// Keys returns the present field names in column order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.Fields))
	seen := make(map[string]bool, len(r.Fields))
	for _, k := range r.order {
		if _, ok := r.Fields[k]; ok && !seen[k] {
			seen[k] = true
			keys = append(keys, k)
		}
	}
	var rest []string
	for k := range r.Fields {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

// Len returns the number of fields present.
func (r Record) Len() int {
	return len(r.Fields)
}

// MarshalJSON renders the record as a flat object of its fields in
// column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalJSON(k)
		if err != nil {
			return nil, err
		}
		val, err := marshalJSON(r.Fields[k])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Dataset is the ordered content of one backing table.
type Dataset struct {
	Table   TableName
	Source  string // identifies the backing source, e.g. "slide-layouts.csv"
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// Values returns a record's values in column order.
func (d *Dataset) Values(r Record) []string {
	values := make([]string, len(d.Columns))
	for i, col := range d.Columns {
		values[i] = r.Get(col)
	}
	return values
}

// Fingerprint derives a deterministic ID from a dataset's columns and rows
// using BLAKE2b. Identical content yields identical fingerprints regardless
// of which source produced it.
func Fingerprint(d *Dataset) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	var sep = []byte{0}
	for _, col := range d.Columns {
		h.Write([]byte(col))
		h.Write(sep)
	}
	h.Write([]byte{1})
	for _, rec := range d.Records {
		// Fields outside the header still count toward content.
		keys := make([]string, 0, len(rec.Fields))
		for k := range rec.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.Write([]byte(k))
			h.Write(sep)
			h.Write([]byte(rec.Fields[k]))
			h.Write(sep)
		}
		h.Write([]byte{1})
	}
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Hit is a ranked record with its relevance score. Only positive scores
// are ever reported.
type Hit struct {
	Record Record  `json:"record"`
	Score  float64 `json:"score"`
}
