package observability

import (
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/stretchr/testify/assert"
)

type countingCounter struct{ total float64 }

func (c *countingCounter) Add(d float64, _ ...observability.Label) { c.total += d }

func TestProviderFallsBackToNop(t *testing.T) {
	p := New(nil, nil, nil, nil)

	assert.NotNil(t, p.Tracer())
	assert.NotNil(t, p.Logger())
	assert.NotPanics(t, func() {
		p.Metrics().Counter(observability.MUsecaseRequests).Add(1)
		p.Metrics().Histogram(observability.MUsecaseDuration).Observe(1)
	})
}

func TestProviderResolvesRegisteredCounters(t *testing.T) {
	c := &countingCounter{}
	p := New(nil, nil, map[observability.MetricKey]observability.Counter{
		observability.MUsecaseRequests:  c,
		observability.MPaymentDecisions: nil,
	}, nil)

	p.Metrics().Counter(observability.MUsecaseRequests).Add(2)
	p.Metrics().Counter(observability.MPaymentDecisions).Add(5)

	assert.Equal(t, 2.0, c.total)
}
