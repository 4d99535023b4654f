// Package handler adapts the Recorder and Reporter to their triggers: the
// scheduled Lambda event, the HTTP API Lambda event and plain net/http.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"checkin-example-app/internal/checkin"
)

type Recorder interface {
	Record(ctx context.Context) (checkin.Record, error)
}

type Reporter interface {
	Report(ctx context.Context) checkin.Result
}

type RecordHandler struct {
	recorder Recorder
	log      *slog.Logger
}

func NewRecordHandler(r Recorder, log *slog.Logger) *RecordHandler {
	return &RecordHandler{recorder: r, log: log}
}

// HandleEvent ignores the event payload. A write failure is returned so the
// scheduler's retry policy applies.
func (h *RecordHandler) HandleEvent(ctx context.Context, event events.CloudWatchEvent) error {
	h.log.Debug("schedule fired", "source", event.Source, "time", event.Time)
	_, err := h.recorder.Record(ctx)
	return err
}

type ReportHandler struct {
	reporter Reporter
	log      *slog.Logger
	metrics  *Metrics
}

func NewReportHandler(r Reporter, log *slog.Logger) *ReportHandler {
	return &ReportHandler{reporter: r, log: log}
}

// WithMetrics records every report served through h in m.
func (h *ReportHandler) WithMetrics(m *Metrics) *ReportHandler {
	h.metrics = m
	return h
}

// HandleRequest always returns a well-formed response and a nil error.
func (h *ReportHandler) HandleRequest(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	h.log.Info("Request received", slog.String("path", event.RawPath), slog.String("requestId", event.RequestContext.RequestID))
	status, body := h.render(ctx)
	return events.APIGatewayV2HTTPResponse{
		StatusCode:      status,
		Headers:         map[string]string{"Content-Type": "application/json"},
		Body:            string(body),
		IsBase64Encoded: false,
	}, nil
}

func (h *ReportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}
	h.log.Info("got request", slog.String("path", r.URL.Path))
	status, body := h.render(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

var fallbackBody = []byte(`{"error":"failed to encode response","details":{"name":"Error","message":"encoding failed"}}`)

func (h *ReportHandler) render(ctx context.Context) (int, []byte) {
	start := time.Now()
	res := h.reporter.Report(ctx)
	h.metrics.observe(res, time.Since(start))
	body, err := res.Body()
	if err != nil {
		h.log.Error("encoding report", "error", err)
		return http.StatusInternalServerError, fallbackBody
	}
	return res.StatusCode(), body
}

// NewMux serves the report on / and /status, a liveness probe on /healthz and,
// when reports carries metrics, Prometheus metrics on /metrics.
func NewMux(reports *ReportHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/", reports)
	mux.Handle("/status", reports)
	if reports.metrics != nil {
		mux.Handle("/metrics", reports.metrics.Handler())
	}
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}
