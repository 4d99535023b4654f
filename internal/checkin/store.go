package checkin

import (
	"context"
	"errors"
)

var (
	ErrAccessDenied    = errors.New("access denied")
	ErrTableNotFound   = errors.New("table not found")
	ErrMalformedRecord = errors.New("malformed check-in record")
)

// TableInfo is what a store reports about its backing table when described.
type TableInfo struct {
	Name      string
	Status    string
	ItemCount int64
}

// Store is the key-value capability the Recorder and Reporter depend on.
//
// Put overwrites any previous record with the same ID. Get reports found=false
// when no record exists, which is distinct from a record that fails to decode.
// Implementations wrap permission failures with ErrAccessDenied.
type Store interface {
	Describe(ctx context.Context) (TableInfo, error)
	Put(ctx context.Context, rec Record) error
	Get(ctx context.Context, id string) (rec Record, found bool, err error)
}

// ErrorName returns the service error code carried by err, if any, and falls
// back to a generic name otherwise.
func ErrorName(err error) string {
	var coded interface{ ErrorCode() string }
	if errors.As(err, &coded) {
		return coded.ErrorCode()
	}
	switch {
	case errors.Is(err, ErrAccessDenied):
		return "AccessDenied"
	case errors.Is(err, ErrTableNotFound):
		return "TableNotFound"
	case errors.Is(err, ErrMalformedRecord):
		return "MalformedRecord"
	case errors.Is(err, context.DeadlineExceeded):
		return "Timeout"
	case errors.Is(err, context.Canceled):
		return "Canceled"
	}
	return "Error"
}
