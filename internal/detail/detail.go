// Package detail turns records into labelled rows for the detail screens.
//
// A screen declares an ordered list of Field descriptors; Rows resolves each
// descriptor against a Record and applies the optional formatter. Records
// expose their fields through Lookup, so every screen states up front which
// keys it reads.
package detail

import "fmt"

// Record is anything a detail screen can display.
type Record interface {
	Lookup(key string) (any, bool)
}

// Field maps a record key to a display label and an optional formatter.
type Field struct {
	Format func(any) string
	Label  string
	Key    string
}

// DownloadFile marks a record key holding a downloadable file path.
type DownloadFile struct {
	Label string
	Key   string
}

// Row is one rendered field. A nil Value means the record had no value for
// the key, or there was no record at all.
type Row struct {
	Value any
	Label string
	Key   string
}

// Display renders the row value as text; missing values render blank.
func (r Row) Display() string {
	switch v := r.Value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Download is a resolved download action.
type Download struct {
	Label string
	Key   string
	Path  string
}

// Available reports whether the record carried a path for this download.
func (d Download) Available() bool {
	return d.Path != ""
}

// Rows resolves fields against details in declaration order.
// The formatter only sees values that are present.
func Rows(details Record, fields []Field) []Row {
	rows := make([]Row, 0, len(fields))
	for _, f := range fields {
		row := Row{Label: f.Label, Key: f.Key}
		if raw, ok := lookup(details, f.Key); ok {
			row.Value = raw
			if f.Format != nil {
				row.Value = f.Format(raw)
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Downloads resolves each download key to the file path stored on details.
func Downloads(details Record, files []DownloadFile) []Download {
	downloads := make([]Download, 0, len(files))
	for _, f := range files {
		d := Download{Label: f.Label, Key: f.Key}
		if raw, ok := lookup(details, f.Key); ok {
			if path, isString := raw.(string); isString {
				d.Path = path
			}
		}
		downloads = append(downloads, d)
	}
	return downloads
}

func lookup(details Record, key string) (any, bool) {
	if details == nil {
		return nil, false
	}
	return details.Lookup(key)
}
