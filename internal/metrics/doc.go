// Package metrics defines the build metrics recorder. The default
// NoopRecorder discards everything; PrometheusRecorder exports counters and
// histograms that can be written to a node-exporter textfile after a build
// or served over HTTP while watching.
package metrics
