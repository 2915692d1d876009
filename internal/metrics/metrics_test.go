package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := NewNoop()

	m.IncrementCodeIssued("REGISTRATION")
	m.IncrementCodeIssued("REGISTRATION")
	m.IncrementRedemption("REGISTRATION", true)
	m.IncrementRedemption("REGISTRATION", false)
	m.IncrementCredentialIssued("STUDENT")
	m.IncrementLogin("success")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.CodesIssued.WithLabelValues("REGISTRATION")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CodeRedemptions.WithLabelValues("REGISTRATION", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CodeRedemptions.WithLabelValues("REGISTRATION", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CredentialsIssued.WithLabelValues("STUDENT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Logins.WithLabelValues("success")))
}

func TestMetrics_ObserveRequest(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveRequest("GET", "/carnets", "200", time.Now())

	count, err := testutil.GatherAndCount(reg, "idwallet_http_request_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	assert.Panics(t, func() { New(reg) })
}
