package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"
)

type ReporterArgs struct {
	Store Store
	// Table names the store resource in error messages.
	Table       string
	Identifiers []string
	// Concurrency bounds parallel lookups. Values below 2 read sequentially.
	Concurrency int
	Clock       func() time.Time
	Logger      *slog.Logger
}

// Reporter checks store health and reports the latest check-in per identifier.
type Reporter struct {
	store       Store
	table       string
	ids         []string
	concurrency int
	now         func() time.Time
	log         *slog.Logger
}

func NewReporter(args ReporterArgs) (*Reporter, error) {
	if args.Store == nil {
		return nil, errors.New("reporter needs a store")
	}
	r := &Reporter{
		store:       args.Store,
		table:       args.Table,
		ids:         append([]string(nil), args.Identifiers...),
		concurrency: args.Concurrency,
		now:         args.Clock,
		log:         args.Logger,
	}
	if r.now == nil {
		r.now = time.Now
	}
	if r.log == nil {
		r.log = slog.Default()
	}
	return r, nil
}

// Report never fails: every error is classified into the returned Result.
func (r *Reporter) Report(ctx context.Context) Result {
	info, err := r.store.Describe(ctx)
	if err != nil {
		r.log.Error("store health check failed", "table", r.table, "error", err)
		msg := fmt.Sprintf("Failed to describe table. Looked for '%s'.", r.table)
		return Result{Error: newErrorDocument(KindUnreachable, msg, err)}
	}
	r.log.Debug("store healthy", "table", info.Name, "status", info.Status, "items", info.ItemCount)

	latest, err := r.readAll(ctx)
	if err != nil {
		doc := r.readFailure(err)
		r.log.Error("reading check-ins failed", "table", r.table, "kind", doc.Kind.String(), "error", err)
		return Result{Error: doc}
	}
	return Result{Status: &StatusDocument{Message: "checkins", LatestCheckins: latest}}
}

func (r *Reporter) readFailure(err error) *ErrorDocument {
	if errors.Is(err, ErrAccessDenied) {
		msg := fmt.Sprintf("Access Denied trying to read from '%s'.", r.table)
		return newErrorDocument(KindAccessDenied, msg, err)
	}
	msg := fmt.Sprintf("Unknown error trying to read from '%s'.", r.table)
	return newErrorDocument(KindUnknown, msg, err)
}

func (r *Reporter) readAll(ctx context.Context) (LatestCheckins, error) {
	latest := make(LatestCheckins, len(r.ids))
	if r.concurrency < 2 {
		for i, id := range r.ids {
			v, err := r.LastSeen(ctx, id)
			if err != nil {
				return nil, err
			}
			latest[i] = LastSeen{ID: id, Value: v}
		}
		return latest, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for i, id := range r.ids {
		g.Go(func() error {
			v, err := r.LastSeen(gctx, id)
			if err != nil {
				return err
			}
			latest[i] = LastSeen{ID: id, Value: v}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return latest, nil
}

// LastSeen looks up one identifier and renders its display value. Lookups for
// different identifiers are independent and safe to run concurrently.
func (r *Reporter) LastSeen(ctx context.Context, id string) (string, error) {
	rec, found, err := r.store.Get(ctx, id)
	if err != nil {
		return "", fmt.Errorf("reading check-in for %s: %w", id, err)
	}
	if !found {
		return Never, nil
	}
	r.log.Debug("check-in found", "id", id, "age", humanize.RelTime(rec.ObservedAt, r.now(), "ago", "from now"))
	return FormatDisplay(rec.ObservedAt), nil
}
