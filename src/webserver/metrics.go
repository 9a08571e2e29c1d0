package webserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	searchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "scout_searches_total",
		Help: "Company searches served, by outcome.",
	}, []string{"status"})

	searchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "scout_search_duration_seconds",
		Help:    "Wall time of a full search pipeline run.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)

func MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
