package lookup

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts cache hits and misses per collection.
type Metrics struct {
	hits   *prometheus.CounterVec
	misses *prometheus.CounterVec
}

// NewMetrics registers the lookup collectors. Collectors already registered on
// reg are reused.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_lookup_cache_hits_total",
		Help: "Lookup collections served from the shared cache.",
	}, []string{"collection"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "console_lookup_cache_misses_total",
		Help: "Lookup collections loaded from the backend.",
	}, []string{"collection"})

	var err error
	if hits, err = register(reg, hits); err != nil {
		return nil, err
	}
	if misses, err = register(reg, misses); err != nil {
		return nil, err
	}
	return &Metrics{hits: hits, misses: misses}, nil
}

func register(reg prometheus.Registerer, c *prometheus.CounterVec) (*prometheus.CounterVec, error) {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return c, nil
}

func (m *Metrics) hit(collection string) {
	if m == nil {
		return
	}
	m.hits.WithLabelValues(collection).Inc()
}

func (m *Metrics) miss(collection string) {
	if m == nil {
		return
	}
	m.misses.WithLabelValues(collection).Inc()
}
