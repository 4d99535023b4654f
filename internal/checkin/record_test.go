package checkin_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin-example-app/internal/checkin"
)

func TestIdentifiers(t *testing.T) {
	assert.Equal(t, []string{"patient-1", "patient-2", "patient-3"}, checkin.Identifiers("patient", 3))
	assert.Empty(t, checkin.Identifiers("patient", 0))

	ids := checkin.Identifiers("patient", 10)
	require.Len(t, ids, 10)
	assert.Equal(t, "patient-10", ids[9])
}

func TestFormatting(t *testing.T) {
	at := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Mon, 01 Jan 2024 00:00:00 GMT", checkin.FormatDisplay(at))
	assert.Equal(t, "2024-01-01T00:00:00.000Z", checkin.FormatStored(at))

	// Non-UTC inputs are rendered in UTC.
	est := time.FixedZone("EST", -5*60*60)
	assert.Equal(t, "Mon, 01 Jan 2024 05:30:00 GMT", checkin.FormatDisplay(time.Date(2024, 1, 1, 0, 30, 0, 0, est)))
}

func TestParseStored(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-01T00:00:00.000Z", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), false},
		{"2024-03-05T10:11:12.345Z", time.Date(2024, 3, 5, 10, 11, 12, 345e6, time.UTC), false},
		{"2024-03-05T10:11:12Z", time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC), false},
		{"", time.Time{}, true},
		{"yesterday", time.Time{}, true},
	}
	for _, tt := range tests {
		got, err := checkin.ParseStored(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, checkin.ErrMalformedRecord, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.True(t, tt.want.Equal(got), "%s: got %s", tt.in, got)
	}
}

func TestNewRecordTruncatesToMillis(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 123456789, time.UTC)
	rec := checkin.NewRecord("patient-1", at)
	assert.Equal(t, 123000000, rec.ObservedAt.Nanosecond())

	back, err := checkin.ParseStored(checkin.FormatStored(rec.ObservedAt))
	require.NoError(t, err)
	assert.True(t, rec.ObservedAt.Equal(back))
}

type codedErr struct{ code string }

func (e codedErr) Error() string     { return "coded: " + e.code }
func (e codedErr) ErrorCode() string { return e.code }

func TestErrorName(t *testing.T) {
	assert.Equal(t, "AccessDeniedException", checkin.ErrorName(codedErr{"AccessDeniedException"}))
	assert.Equal(t, "AccessDenied", checkin.ErrorName(checkin.ErrAccessDenied))
	assert.Equal(t, "MalformedRecord", checkin.ErrorName(checkin.ErrMalformedRecord))
	assert.Equal(t, "Error", checkin.ErrorName(assert.AnError))
}
