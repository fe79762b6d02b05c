package frame

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned for file extensions no loader handles.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ErrEmpty indicates the input had no header or no rows.
var ErrEmpty = errors.New("no rows")

// LoadError wraps a failure while reading a dataset file.
type LoadError struct {
	Path   string
	Format string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s (%s): %v", filepath.Base(e.Path), e.Format, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Extensions lists the file extensions Load understands.
var Extensions = []string{".csv", ".json", ".geojson", ".xlsx"}

// Supported reports whether path has a loadable extension.
func Supported(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// Load reads a dataset file, dispatching on its extension.
func Load(path string) (*Frame, error) {
	ext := strings.ToLower(filepath.Ext(path))
	var (
		f   *Frame
		err error
	)
	switch ext {
	case ".csv":
		f, err = loadCSVFile(path)
	case ".json", ".geojson":
		f, err = loadJSONFile(path)
	case ".xlsx":
		f, err = LoadXLSX(path)
	default:
		err = ErrUnsupportedFormat
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &LoadError{Path: path, Format: strings.TrimPrefix(ext, "."), Err: err}
	}
	return f, nil
}

func loadCSVFile(path string) (*Frame, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ParseCSV(fh)
}

// ParseCSV reads a header line followed by records. A column named "uid"
// becomes the row identifier.
func ParseCSV(r io.Reader) (*Frame, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1
	recs, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(recs) < 2 {
		return nil, ErrEmpty
	}
	return fromRecords(recs[0], recs[1:]), nil
}

func loadJSONFile(path string) (*Frame, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseJSON(b)
}

// ParseJSON accepts either an array of flat objects or a GeoJSON
// FeatureCollection, in which case each feature's properties form a row.
func ParseJSON(b []byte) (*Frame, error) {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	var objs []map[string]any
	switch t := raw.(type) {
	case []any:
		for _, it := range t {
			if m, ok := it.(map[string]any); ok {
				objs = append(objs, m)
			}
		}
	case map[string]any:
		switch typ, _ := t["type"].(string); typ {
		case "FeatureCollection":
			fs, _ := t["features"].([]any)
			for _, f := range fs {
				fm, ok := f.(map[string]any)
				if !ok {
					continue
				}
				pm, _ := fm["properties"].(map[string]any)
				if pm == nil {
					pm = map[string]any{}
				}
				objs = append(objs, pm)
			}
		case "Feature":
			pm, _ := t["properties"].(map[string]any)
			objs = append(objs, pm)
		default:
			if dps, ok := t["datapoints"].([]any); ok {
				for _, it := range dps {
					if m, ok := it.(map[string]any); ok {
						objs = append(objs, flattenDatapoint(m))
					}
				}
			}
		}
	}
	if len(objs) == 0 {
		return nil, ErrEmpty
	}

	// union keys in first-seen order; keys within one object are sorted so
	// the column order is stable across runs
	f := &Frame{}
	seen := map[string]bool{}
	for n, o := range objs {
		keys := make([]string, 0, len(o))
		for k := range o {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		row := Row{UID: strconv.Itoa(n), Values: make(map[string]Value, len(o))}
		for _, k := range keys {
			if strings.EqualFold(k, "uid") {
				if u := jsonString(o[k]); u != "" {
					row.UID = u
				}
				continue
			}
			if !seen[k] {
				seen[k] = true
				f.Columns = append(f.Columns, k)
			}
			if v := jsonValue(o[k]); !v.IsMissing() {
				row.Values[k] = v
			}
		}
		f.Rows = append(f.Rows, row)
	}
	return f, nil
}

// flattenDatapoint lifts {"uid":..,"values":{..}} experiment records into a
// flat object.
func flattenDatapoint(m map[string]any) map[string]any {
	out := map[string]any{}
	if vals, ok := m["values"].(map[string]any); ok {
		for k, v := range vals {
			out[k] = v
		}
	}
	if uid, ok := m["uid"]; ok {
		out["uid"] = uid
	}
	if from, ok := m["from_uid"]; ok && from != nil {
		out["from_uid"] = from
	}
	return out
}

func jsonValue(v any) Value {
	switch t := v.(type) {
	case nil:
		return Value{}
	case float64:
		return Num(t)
	case string:
		return ParseValue(t)
	case bool:
		if t {
			return Str("true")
		}
		return Str("false")
	default:
		bs, _ := json.Marshal(t)
		return Str(string(bs))
	}
}

func jsonString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// LoadXLSX reads the first sheet of a workbook; the first non-empty row is
// the header.
func LoadXLSX(path string) (*Frame, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Format: "xlsx", Err: err}
	}
	defer wb.Close()
	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &LoadError{Path: path, Format: "xlsx", Err: ErrEmpty}
	}
	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, &LoadError{Path: path, Format: "xlsx", Err: err}
	}
	for len(rows) > 0 && len(rows[0]) == 0 {
		rows = rows[1:]
	}
	if len(rows) < 2 {
		return nil, &LoadError{Path: path, Format: "xlsx", Err: ErrEmpty}
	}
	return fromRecords(rows[0], rows[1:]), nil
}
