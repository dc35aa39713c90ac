//nolint:gochecknoglobals
package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swesearch",
		Name:      "searches_total",
		Help:      "The total number of delivered coordinate searches",
	}, []string{"result"})

	dropMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "swesearch",
		Name:      "stale_drops_total",
		Help:      "The total number of searches dropped as superseded",
	}, []string{"stage"})
)
