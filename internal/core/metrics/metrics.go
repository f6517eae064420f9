package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the yard engine.
type Metrics struct {
	CheckIns             prometheus.Counter
	CheckOuts            prometheus.Counter
	MovesCompleted       prometheus.Counter
	DetentionActivations prometheus.Counter
	ErrorsCount          *prometheus.CounterVec
}

// New creates metrics registered on the default registry.
func New(namespace string) *Metrics {
	return NewWith(prometheus.DefaultRegisterer, namespace)
}

// NewWith creates metrics registered on the given registerer. Tests use
// a private registry to avoid duplicate registration.
func NewWith(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CheckIns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_ins_total",
			Help:      "The total number of trailer check-ins",
		}),
		CheckOuts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "check_outs_total",
			Help:      "The total number of trailer check-outs",
		}),
		MovesCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "moves_completed_total",
			Help:      "The total number of completed move requests",
		}),
		DetentionActivations: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "detention_activations_total",
			Help:      "The total number of trailers entering detention",
		}),
		ErrorsCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of failed operations",
		}, []string{"operation"}),
	}
}
