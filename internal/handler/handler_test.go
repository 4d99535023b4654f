package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkin-example-app/internal/checkin"
	"checkin-example-app/internal/store"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func newReportHandler(t *testing.T, mem *store.Memory) *ReportHandler {
	t.Helper()
	r, err := checkin.NewReporter(checkin.ReporterArgs{
		Store:       mem,
		Table:       "checkins",
		Identifiers: []string{"patient-1", "patient-2"},
		Logger:      quiet,
	})
	require.NoError(t, err)
	return NewReportHandler(r, quiet)
}

func TestHandleRequest(t *testing.T) {
	mem := store.NewMemory("checkins")
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, mem.Put(context.Background(), checkin.NewRecord("patient-1", at)))

	resp, err := newReportHandler(t, mem).HandleRequest(context.Background(), events.APIGatewayV2HTTPRequest{RawPath: "/"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.False(t, resp.IsBase64Encoded)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, `{"message":"checkins","latestCheckins":{"patient-1":"Mon, 01 Jan 2024 00:00:00 GMT","patient-2":"Never"}}`, resp.Body)
}

func TestHandleRequestStoreFailure(t *testing.T) {
	mem := store.NewMemory("checkins")
	mem.DescribeErr = errors.New("no route to host")

	resp, err := newReportHandler(t, mem).HandleRequest(context.Background(), events.APIGatewayV2HTTPRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.False(t, resp.IsBase64Encoded)
	assert.JSONEq(t, `{
		"error": "Failed to describe table. Looked for 'checkins'.",
		"details": {"name": "Error", "message": "no route to host"}
	}`, resp.Body)
}

func TestServeHTTP(t *testing.T) {
	mem := store.NewMemory("checkins")
	mux := NewMux(newReportHandler(t, mem))

	for _, path := range []string{"/", "/status"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"), path)
		assert.Equal(t, `{"message":"checkins","latestCheckins":{"patient-1":"Never","patient-2":"Never"}}`, rec.Body.String(), path)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/status", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	mem.GetErr["patient-2"] = checkin.ErrAccessDenied
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access Denied trying to read from 'checkins'.")
}

type stubRecorder struct {
	calls int
	err   error
}

func (s *stubRecorder) Record(context.Context) (checkin.Record, error) {
	s.calls++
	return checkin.Record{}, s.err
}

func TestHandleEvent(t *testing.T) {
	rec := &stubRecorder{}
	h := NewRecordHandler(rec, quiet)
	event := events.CloudWatchEvent{Source: "aws.events", DetailType: "Scheduled Event"}

	require.NoError(t, h.HandleEvent(context.Background(), event))
	assert.Equal(t, 1, rec.calls)

	rec.err = errors.New("throttled")
	assert.ErrorIs(t, h.HandleEvent(context.Background(), event), rec.err)
	assert.Equal(t, 2, rec.calls)
}

func TestMetrics(t *testing.T) {
	mem := store.NewMemory("checkins")
	metrics := NewMetrics()
	mux := NewMux(newReportHandler(t, mem).WithMetrics(metrics))

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))
	mem.DescribeErr = errors.New("down")
	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/status", nil))

	mfs, err := metrics.Registry().Gather()
	require.NoError(t, err)
	counts := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "checkin_reports_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			require.Len(t, m.GetLabel(), 1)
			counts[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, map[string]float64{"ok": 2, "unreachable": 1}, counts)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `checkin_reports_total{outcome="ok"} 2`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.Nil(t, m.Registry())
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
