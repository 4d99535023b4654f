package checkin

import (
	"fmt"
	"time"
)

const (
	// StoredTimeFormat is how observedAt is persisted: UTC with millisecond precision.
	StoredTimeFormat = "2006-01-02T15:04:05.000Z07:00"

	// DisplayTimeFormat is the rendering returned to status readers.
	DisplayTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

	// Never is reported for identifiers without a check-in record.
	Never = "Never"
)

// Record is the latest check-in for one identifier.
type Record struct {
	ID         string
	ObservedAt time.Time
}

func NewRecord(id string, observedAt time.Time) Record {
	return Record{ID: id, ObservedAt: observedAt.UTC().Truncate(time.Millisecond)}
}

func FormatStored(t time.Time) string {
	return t.UTC().Format(StoredTimeFormat)
}

func ParseStored(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty observedAt", ErrMalformedRecord)
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return t.UTC(), nil
}

func FormatDisplay(t time.Time) string {
	return t.UTC().Format(DisplayTimeFormat)
}

// Identifiers returns prefix-1 .. prefix-n in order.
func Identifiers(prefix string, n int) []string {
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		ids = append(ids, fmt.Sprintf("%s-%d", prefix, i))
	}
	return ids
}
