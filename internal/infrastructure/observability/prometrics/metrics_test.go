package prometrics

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounterRegistersOnceAndCounts(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg, "", "")

	c1 := r.Counter("usecase_requests_total", "help", "use_case", "outcome")
	c2 := r.Counter("usecase_requests_total", "help", "use_case", "outcome")

	c1.Add(1, observability.L("use_case", "checkout.complete"), observability.L("outcome", "success"))
	c2.Add(2, observability.L("use_case", "checkout.complete"), observability.L("outcome", "success"))

	cv := c1.(*counter).v
	assert.Equal(t, 3.0, testutil.ToFloat64(cv.WithLabelValues("checkout.complete", "success")))
}

func TestHistogramDefaultsBuckets(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := New(reg, "minishop", "checkout")

	h := r.Histogram("usecase_duration_seconds", "help", nil, "use_case")
	h.Observe(0.2, observability.L("use_case", "checkout.complete"))

	families, err := reg.Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "minishop_checkout_usecase_duration_seconds", families[0].GetName())
	assert.Equal(t, uint64(1), families[0].GetMetric()[0].GetHistogram().GetSampleCount())
}

func TestRegisterSpecs(t *testing.T) {
	reg := prometheus.NewRegistry()
	counters, histograms := Register(New(reg, "", ""), observability.CounterSpecs, observability.HistogramSpecs)

	assert.Len(t, counters, len(observability.CounterSpecs))
	assert.Len(t, histograms, len(observability.HistogramSpecs))

	counters[observability.MPaymentDecisions].Add(1,
		observability.L("method", "credit"),
		observability.L("outcome", "rejected"),
	)
	n, err := testutil.GatherAndCount(reg, string(observability.MPaymentDecisions))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
