package oracle

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var metricOracleFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "virtual_coach",
	Name:      "oracle_failures_total",
	Help:      "Model calls that produced no usable reply, by request kind and error class.",
}, []string{"kind", "class"})

func recordFailure(kind string, err error) {
	class := "unavailable"
	switch {
	case errors.Is(err, ErrSchema):
		class = "schema"
	case errors.Is(err, ErrFormat):
		class = "format"
	}
	metricOracleFailures.WithLabelValues(kind, class).Inc()
}
