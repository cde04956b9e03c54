package packet

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for date-named field values arriving as text. RFC3339
// covers the envelope's own output; the rest cover the looser forms peers
// are known to emit.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// isDateField implements the protocol's naming convention: any field whose
// name contains "Date" carries a timestamp. This is a convention inherited
// from the wire format, not a declared type.
func isDateField(name string) bool {
	return strings.Contains(name, "Date")
}

// parseTimestamp coerces a date-named field value to time.Time. Values that
// already are timestamps pass through unchanged.
func parseTimestamp(v any) (time.Time, error) {
	switch tv := v.(type) {
	case time.Time:
		return tv, nil
	case string:
		for _, layout := range timestampLayouts {
			if ts, err := time.Parse(layout, tv); err == nil {
				return ts, nil
			}
		}
		return time.Time{}, fmt.Errorf("unparseable timestamp %q", tv)
	default:
		return time.Time{}, fmt.Errorf("unparseable timestamp value of type %T", v)
	}
}
