package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa os contadores Prometheus do Eventra.
type Metrics struct {
	GuardDecisions *prometheus.CounterVec
	Dispatches     *prometheus.CounterVec
	LoginAttempts  *prometheus.CounterVec
	Registrations  *prometheus.CounterVec
	SessionActive  prometheus.Gauge
}

// New cria e registra todas as métricas no registry informado.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		GuardDecisions: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventra",
				Name:      "guard_decisions_total",
				Help:      "Route guard outcomes per navigation",
			},
			[]string{"outcome"}, // render, redirect_login, redirect_unauthorized, not_found
		),
		Dispatches: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventra",
				Name:      "dashboard_dispatches_total",
				Help:      "Generic dashboard requests by resolved view",
			},
			[]string{"view"},
		),
		LoginAttempts: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventra",
				Name:      "login_attempts_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"}, // success, failure
		),
		Registrations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "eventra",
				Name:      "registrations_total",
				Help:      "Self-service registrations by result",
			},
			[]string{"result"}, // created, role_rejected, duplicate, invalid
		),
		SessionActive: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: "eventra",
				Name:      "session_authenticated",
				Help:      "1 while the process has an authenticated session",
			},
		),
	}
}

// NewNop cria métricas em um registry descartável, para testes e ferramentas.
func NewNop() *Metrics {
	return New(prometheus.NewRegistry())
}
