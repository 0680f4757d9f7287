package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricPlanGenerations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "virtual_coach",
		Name:      "plan_generations_total",
		Help:      "Plan generation requests by outcome.",
	}, []string{"outcome"})
	metricCompensations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "virtual_coach",
		Name:      "saga_compensations_total",
		Help:      "Compensating actions run after a failed plan write, by result.",
	}, []string{"result"})
)

func recordGeneration(outcome string) {
	metricPlanGenerations.WithLabelValues(outcome).Inc()
}

func recordCompensation(err error) {
	if err != nil {
		metricCompensations.WithLabelValues("failed").Inc()
		return
	}
	metricCompensations.WithLabelValues("ok").Inc()
}
