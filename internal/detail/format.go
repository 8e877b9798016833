package detail

import (
	"fmt"
	"time"
)

// InvalidDate is rendered for values that do not parse as a date.
const InvalidDate = "Invalid Date"

// DefaultDateLayout is the en-US short date, e.g. 1/1/1990.
const DefaultDateLayout = "1/2/2006"

// Date-only strings are UTC midnight; strings with a clock but no zone are
// wall time in the display location.
var (
	dateOnlyLayouts = []string{"2006-01-02"}
	zonedLayouts    = []string{time.RFC3339Nano, time.RFC3339}
	localLayouts    = []string{"2006-01-02T15:04:05", "2006-01-02 15:04:05", "2006-01-02T15:04"}
)

// DateFormatter renders ISO-like date strings in a locale layout.
type DateFormatter struct {
	Location *time.Location
	Layout   string
}

// NewDateFormatter returns a formatter for layout in loc. Empty layout and
// nil location fall back to DefaultDateLayout and time.Local.
func NewDateFormatter(layout string, loc *time.Location) DateFormatter {
	if layout == "" {
		layout = DefaultDateLayout
	}
	if loc == nil {
		loc = time.Local
	}
	return DateFormatter{Layout: layout, Location: loc}
}

// Format renders raw, which may be a string or a time.Time.
func (f DateFormatter) Format(raw any) string {
	t, ok := f.parse(raw)
	if !ok {
		return InvalidDate
	}
	return t.In(f.location()).Format(f.layout())
}

func (f DateFormatter) parse(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, !v.IsZero()
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, !v.IsZero()
	case string:
		for _, layout := range dateOnlyLayouts {
			if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
				return t, true
			}
		}
		for _, layout := range zonedLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, true
			}
		}
		for _, layout := range localLayouts {
			if t, err := time.ParseInLocation(layout, v, f.location()); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func (f DateFormatter) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

func (f DateFormatter) layout() string {
	if f.Layout == "" {
		return DefaultDateLayout
	}
	return f.Layout
}

// YesNo renders true as "Yes" and false as "No". Anything that is not a
// boolean renders blank.
func YesNo(raw any) string {
	switch v := raw.(type) {
	case bool:
		if v {
			return "Yes"
		}
		return "No"
	case *bool:
		if v == nil {
			return ""
		}
		return YesNo(*v)
	default:
		return ""
	}
}

// Text renders any value with fmt, nil as blank.
func Text(raw any) string {
	if raw == nil {
		return ""
	}
	return fmt.Sprint(raw)
}
