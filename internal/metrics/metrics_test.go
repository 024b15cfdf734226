package metrics

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoopRecorder_SatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveStageDuration("read", time.Second)
	r.IncBuildOutcome(BuildOutcomeSuccess)
}

func TestPrometheusRecorder_Counts(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.IncStageResult("read", ResultSuccess)
	r.IncStageResult("read", ResultSuccess)
	r.IncBuildOutcome(BuildOutcomeFailed)
	r.AddExamplesRegistered(3)
	r.IncPagesGenerated("tag")
	r.IncPostprocessResult("fallback")
	r.ObserveStageDuration("write", 10*time.Millisecond)

	assert.InDelta(t, 2, testutil.ToFloat64(r.stageResults.WithLabelValues("read", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.buildOutcome.WithLabelValues("failed")), 0)
	assert.InDelta(t, 3, testutil.ToFloat64(r.examplesRegistered), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.pagesGenerated.WithLabelValues("tag")), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.stageDuration))
}

func TestPrometheusRecorder_NilSafe(t *testing.T) {
	var r *PrometheusRecorder
	r.IncPagesGenerated("example")
	r.ObserveBuildDuration(time.Second)
}

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	r := NewPrometheusRecorder(reg)
	r.AddDocumentsRead(7)

	path := filepath.Join(t.TempDir(), "docgallery.prom")
	require.NoError(t, WriteTextfile(reg, path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "docgallery_documents_read_total 7")
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	NewPrometheusRecorder(reg).IncBuildOutcome(BuildOutcomeSuccess)

	rec := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), `docgallery_build_outcomes_total{outcome="success"} 1`)
}
