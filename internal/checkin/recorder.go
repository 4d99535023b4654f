package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

type RecorderArgs struct {
	Store       Store
	Identifiers []string
	// Picker defaults to UniformPicker.
	Picker Picker
	// Clock defaults to time.Now.
	Clock  func() time.Time
	Logger *slog.Logger
}

// Recorder writes a check-in for one identifier per invocation.
type Recorder struct {
	store  Store
	ids    []string
	picker Picker
	now    func() time.Time
	log    *slog.Logger
}

func NewRecorder(args RecorderArgs) (*Recorder, error) {
	if args.Store == nil {
		return nil, errors.New("recorder needs a store")
	}
	if len(args.Identifiers) == 0 {
		return nil, errors.New("recorder needs at least one identifier")
	}
	r := &Recorder{
		store:  args.Store,
		ids:    append([]string(nil), args.Identifiers...),
		picker: args.Picker,
		now:    args.Clock,
		log:    args.Logger,
	}
	if r.picker == nil {
		r.picker = UniformPicker
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r, nil
}

// Next returns the identifier the next Record call would write.
func (r *Recorder) Next() string {
	i := r.picker.Pick(len(r.ids))
	if i < 0 || i >= len(r.ids) {
		panic(fmt.Sprintf("picker returned %d for %d identifiers", i, len(r.ids)))
	}
	return r.ids[i]
}

// Record upserts {id, now} for a randomly selected identifier. Store failures
// are returned as is; retrying is left to whoever invoked the Recorder.
func (r *Recorder) Record(ctx context.Context) (Record, error) {
	rec := NewRecord(r.Next(), r.now())
	if err := r.store.Put(ctx, rec); err != nil {
		r.log.Error("check-in write failed", "id", rec.ID, "error", err)
		return Record{}, fmt.Errorf("recording check-in for %s: %w", rec.ID, err)
	}
	r.log.Info("check-in recorded", "id", rec.ID, "observedAt", FormatStored(rec.ObservedAt))
	return rec, nil
}
