package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var namespace = "bizday"
var subsystem = "udf"

var (
	// EvaluationsTotal stores the number of vectorized calls
	// partitioned by function
	EvaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "evaluations_total",
		Help:      "Number of vectorized evaluations including ones resulting in errors",
	}, []string{"function"})

	// ElementsTotal stores the number of output elements produced
	// partitioned by function
	ElementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "elements_total",
		Help:      "Number of output elements produced by successful evaluations",
	}, []string{"function"})

	// ErrorsTotal stores the number of failed evaluations
	// partitioned by function and error kind
	ErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "errors_total",
		Help:      "Number of evaluations aborted by an error",
	}, []string{"function", "kind"})

	// EvaluationDuration stores the processing time of every evaluation
	// partitioned by function
	EvaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "duration_seconds",
		Help:      "Processing time of vectorized evaluations",
	}, []string{"function"})
)

// WriteTextfile dumps every registered metric to path in the text
// exposition format read by the node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
