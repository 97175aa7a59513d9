package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resultados posibles de una operación.
const (
	ResultOK         = "ok"
	ResultNoop       = "noop"
	ResultNotFound   = "not_found"
	ResultValidation = "validation"
	ResultError      = "error"
)

// Metrics instrumentos Prometheus de los casos de uso.
// Un *Metrics nil es válido y no registra nada (tests y arranque sin métricas).
type Metrics struct {
	Operations       *prometheus.CounterVec
	OperationSeconds *prometheus.HistogramVec
	CustomersCreated prometheus.Counter
}

// New crea y registra las métricas en reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Operations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "mobile_subscribers_operations_total",
			Help: "Total de operaciones sobre líneas móviles por resultado",
		}, []string{"operation", "result"}),
		OperationSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mobile_subscribers_operation_duration_seconds",
			Help:    "Duración de las operaciones sobre líneas móviles",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
		CustomersCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "mobile_customers_created_total",
			Help: "Total de clientes creados",
		}),
	}
}

// Observe registra resultado y duración. Llamar con time.Now() tomado al inicio de la operación.
func (m *Metrics) Observe(operation, result string, start time.Time) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(operation, result).Inc()
	m.OperationSeconds.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IncrementCustomersCreated registra un cliente creado.
func (m *Metrics) IncrementCustomersCreated() {
	if m == nil {
		return
	}
	m.CustomersCreated.Inc()
}
