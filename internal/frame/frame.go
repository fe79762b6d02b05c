package frame

import (
	"math"
	"strconv"
	"strings"
)

// ValueKind tells how a cell was ingested.
type ValueKind uint8

const (
	Missing ValueKind = iota
	Number
	Text
)

// Value is a single cell: a number, a categorical string, or missing.
type Value struct {
	Kind ValueKind
	Num  float64
	Str  string
}

func Num(f float64) Value       { return Value{Kind: Number, Num: f} }
func Str(s string) Value        { return Value{Kind: Text, Str: s} }
func (v Value) IsMissing() bool { return v.Kind == Missing }

// Finite reports whether v is a number that can be placed on a numeric axis.
func (v Value) Finite() bool {
	return v.Kind == Number && !math.IsNaN(v.Num) && !math.IsInf(v.Num, 0)
}

// String renders the value the way it is shown in labels and used as a
// category key.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		if math.IsInf(v.Num, 1) {
			return "inf"
		}
		if math.IsInf(v.Num, -1) {
			return "-inf"
		}
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	case Text:
		return v.Str
	}
	return ""
}

// ParseValue converts a raw text cell. Empty cells are missing; "inf",
// "-inf" and "nan" are kept as non-finite numbers so numeric columns stay
// numeric.
func ParseValue(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Value{}
	}
	switch strings.ToLower(s) {
	case "inf", "+inf", "infinity":
		return Num(math.Inf(1))
	case "-inf", "-infinity":
		return Num(math.Inf(-1))
	case "nan":
		return Num(math.NaN())
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Num(f)
	}
	return Str(s)
}

// Row is one record. Rows are immutable once ingested.
type Row struct {
	UID    string
	Values map[string]Value
}

// Get returns the value for a column, missing if absent.
func (r Row) Get(col string) Value {
	if r.Values == nil {
		return Value{}
	}
	return r.Values[col]
}

// Frame is an ingested table: column names in first-seen order plus rows.
type Frame struct {
	Columns []string
	Rows    []Row
}

// Append adds rows, numbering them after the existing ones when they have no
// UID, and extends the column list with any new column names.
func (f *Frame) Append(rows []Row) []Row {
	seen := make(map[string]bool, len(f.Columns))
	for _, c := range f.Columns {
		seen[c] = true
	}
	out := make([]Row, 0, len(rows))
	for i, r := range rows {
		if r.UID == "" {
			r.UID = strconv.Itoa(len(f.Rows) + i)
		}
		for k := range r.Values {
			if !seen[k] {
				seen[k] = true
				f.Columns = append(f.Columns, k)
			}
		}
		out = append(out, r)
	}
	f.Rows = append(f.Rows, out...)
	return out
}

// fromRecords builds a frame from a header and string records, the common
// shape of CSV and spreadsheet input.
func fromRecords(header []string, recs [][]string) *Frame {
	cols := make([]string, 0, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = "col" + strconv.Itoa(i+1)
		}
		cols = append(cols, h)
	}
	f := &Frame{Columns: cols}
	uidCol := -1
	for i, c := range cols {
		if strings.EqualFold(c, "uid") {
			uidCol = i
		}
	}
	for n, rec := range recs {
		row := Row{UID: strconv.Itoa(n), Values: make(map[string]Value, len(cols))}
		for i, c := range cols {
			if i >= len(rec) {
				continue
			}
			if i == uidCol {
				if u := strings.TrimSpace(rec[i]); u != "" {
					row.UID = u
				}
				continue
			}
			if v := ParseValue(rec[i]); !v.IsMissing() {
				row.Values[c] = v
			}
		}
		f.Rows = append(f.Rows, row)
	}
	if uidCol >= 0 {
		f.Columns = append(f.Columns[:uidCol:uidCol], f.Columns[uidCol+1:]...)
	}
	return f
}
