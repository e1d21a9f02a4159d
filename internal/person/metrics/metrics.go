package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus counters for person lifecycle operations.
type Metrics struct {
	PersonsCreated prometheus.Counter
	PersonsUpdated prometheus.Counter
	PersonsDeleted prometheus.Counter
}

// New creates and registers all person metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		PersonsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_registry_persons_created_total",
			Help: "Total number of persons created in the registry",
		}),
		PersonsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_registry_persons_updated_total",
			Help: "Total number of person updates applied",
		}),
		PersonsDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_registry_persons_deleted_total",
			Help: "Total number of persons deleted from the registry",
		}),
	}
}

func (m *Metrics) IncrementCreated() { m.PersonsCreated.Inc() }
func (m *Metrics) IncrementUpdated() { m.PersonsUpdated.Inc() }
func (m *Metrics) IncrementDeleted() { m.PersonsDeleted.Inc() }
