package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "docgallery"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	stageDuration      *prom.HistogramVec
	buildDuration      prom.Histogram
	stageResults       *prom.CounterVec
	buildOutcome       *prom.CounterVec
	documentsRead      prom.Counter
	examplesRegistered prom.Counter
	pagesGenerated     *prom.CounterVec
	postprocess        *prom.CounterVec
}

// NewPrometheusRecorder constructs the metrics and registers them with reg.
func NewPrometheusRecorder(reg prom.Registerer) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual build stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "build_duration_seconds",
			Help:      "Total build duration",
			Buckets:   prom.DefBuckets,
		}),
		stageResults: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "stage_results_total",
			Help:      "Stage result counts by outcome",
		}, []string{"stage", "result"}),
		buildOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "build_outcomes_total",
			Help:      "Build outcomes by final status",
		}, []string{"outcome"}),
		documentsRead: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "documents_read_total",
			Help:      "Source documents parsed",
		}),
		examplesRegistered: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "gallery_examples_registered_total",
			Help:      "Examples registered in the merged gallery registry",
		}),
		pagesGenerated: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "gallery_pages_generated_total",
			Help:      "Generated gallery pages by kind",
		}, []string{"kind"}),
		postprocess: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "gallery_postprocess_total",
			Help:      "HTML post-processing results per example",
		}, []string{"result"}),
	}
	reg.MustRegister(pr.stageDuration, pr.buildDuration, pr.stageResults, pr.buildOutcome,
		pr.documentsRead, pr.examplesRegistered, pr.pagesGenerated, pr.postprocess)
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddDocumentsRead(n int) {
	if p == nil {
		return
	}
	p.documentsRead.Add(float64(n))
}

func (p *PrometheusRecorder) AddExamplesRegistered(n int) {
	if p == nil {
		return
	}
	p.examplesRegistered.Add(float64(n))
}

func (p *PrometheusRecorder) IncPagesGenerated(kind string) {
	if p == nil {
		return
	}
	p.pagesGenerated.WithLabelValues(kind).Inc()
}

func (p *PrometheusRecorder) IncPostprocessResult(result string) {
	if p == nil {
		return
	}
	p.postprocess.WithLabelValues(result).Inc()
}
