package observability

const (
	MUsecaseRequests      MetricKey = "usecase_requests_total"
	MUsecaseDuration      MetricKey = "usecase_duration_seconds"
	MPaymentDecisions     MetricKey = "checkout_payment_decisions_total"
	MFinalAmount          MetricKey = "checkout_final_amount"
	MEventPublishFailures MetricKey = "event_publish_failed_total"
)

// MetricSpec describes how a metric key is registered with a backend.
type MetricSpec struct {
	Key     MetricKey
	Help    string
	Labels  []string
	Buckets []float64
}

// CounterSpecs lists every counter the checkout core records.
var CounterSpecs = []MetricSpec{
	{Key: MUsecaseRequests, Help: "Total number of use case invocations.", Labels: []string{"use_case", "outcome"}},
	{Key: MPaymentDecisions, Help: "Payment authorization decisions by method.", Labels: []string{"method", "outcome"}},
	{Key: MEventPublishFailures, Help: "Count of checkout event publish failures.", Labels: []string{"event"}},
}

// HistogramSpecs lists every histogram the checkout core records.
var HistogramSpecs = []MetricSpec{
	{Key: MUsecaseDuration, Help: "Duration of use case execution in seconds.", Labels: []string{"use_case"}},
	{
		Key:     MFinalAmount,
		Help:    "Final amount submitted for payment authorization.",
		Labels:  []string{"shipping"},
		Buckets: []float64{10, 50, 100, 250, 500, 1000, 2500, 5000},
	},
}
