package services

import "github.com/prometheus/client_golang/prometheus"

var (
	articlesGeneratedCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "articles_generated_total",
			Help: "Total number of generated and stored articles.",
		},
	)
	generationFailuresCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_generation_failures_total",
			Help: "Total number of failed article generations by trigger.",
		},
		[]string{"trigger"},
	)
)

func init() {
	prometheus.MustRegister(articlesGeneratedCounter, generationFailuresCounter)
}
