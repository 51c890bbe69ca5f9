package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CombinedHandler exposes several registries on one scrape endpoint.
func CombinedHandler(registries ...*prometheus.Registry) http.Handler {
	gatherers := make(prometheus.Gatherers, 0, len(registries))
	for _, registry := range registries {
		if registry != nil {
			gatherers = append(gatherers, registry)
		}
	}
	return promhttp.HandlerFor(gatherers, promhttp.HandlerOpts{})
}
