package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks the verification workflow.
type Metrics struct {
	CodesIssued         *prometheus.CounterVec
	CodeRedemptions     *prometheus.CounterVec
	CredentialsIssued   *prometheus.CounterVec
	Logins              *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers all wallet metrics with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CodesIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idwallet_verification_codes_issued_total",
			Help: "Total number of verification codes issued",
		}, []string{"purpose"}),
		CodeRedemptions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idwallet_verification_code_redemptions_total",
			Help: "Verification code redemption attempts by result",
		}, []string{"purpose", "result"}),
		CredentialsIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idwallet_credentials_issued_total",
			Help: "Total number of credentials minted",
		}, []string{"kind"}),
		Logins: f.NewCounterVec(prometheus.CounterOpts{
			Name: "idwallet_logins_total",
			Help: "Login attempts by result",
		}, []string{"result"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "idwallet_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"method", "route", "status"}),
	}
}

// NewNoop returns metrics registered with a private registry.
func NewNoop() *Metrics {
	return New(prometheus.NewRegistry())
}

func (m *Metrics) IncrementCodeIssued(purpose string) {
	m.CodesIssued.WithLabelValues(purpose).Inc()
}

func (m *Metrics) IncrementRedemption(purpose string, ok bool) {
	result := "rejected"
	if ok {
		result = "accepted"
	}
	m.CodeRedemptions.WithLabelValues(purpose, result).Inc()
}

func (m *Metrics) IncrementCredentialIssued(kind string) {
	m.CredentialsIssued.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncrementLogin(result string) {
	m.Logins.WithLabelValues(result).Inc()
}

// ObserveRequest records the duration of an HTTP request started at start.
func (m *Metrics) ObserveRequest(method, route, status string, start time.Time) {
	m.HTTPRequestDuration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
}
