package devapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tokensIssuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devapi_tokens_issued_total",
			Help: "Total number of issued tokens by endpoint.",
		},
		[]string{"endpoint"},
	)

	authFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "devapi_auth_failures_total",
			Help: "Total number of rejected auth requests by endpoint.",
		},
		[]string{"endpoint"},
	)
)
