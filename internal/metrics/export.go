package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WriteTextfile writes the gathered metrics in the text exposition format,
// atomically replacing path.
func WriteTextfile(g prom.Gatherer, path string) error {
	return prom.WriteToTextfile(path, g)
}

// HTTPHandler returns an http.Handler that serves metrics from g.
func HTTPHandler(g prom.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
