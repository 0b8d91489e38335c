package narration

import (
	"context"
	"fmt"

	"github.com/Zhima-Mochi/minishop-checkout/internal/application/checkout"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/shipping"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
)

const (
	workerService = "narration-worker"
	useCase       = "narration.render"
)

// Worker turns checkout events into human-readable log lines.
type Worker struct {
	subscriber event.Subscriber
	log        observability.Logger
	reqCounter observability.Counter // usecase_requests_total{use_case,outcome}
}

func New(subscriber event.Subscriber, tel observability.Observability) *Worker {
	if tel == nil {
		tel = observability.Nop()
	}
	return &Worker{
		subscriber: subscriber,
		log:        tel.Logger().With(observability.F("service", workerService)),
		reqCounter: tel.Metrics().Counter(observability.MUsecaseRequests),
	}
}

// Events lists the event names the worker renders.
func Events() []string {
	return []string{
		order.DiscountAppliedEvent{}.EventName(),
		order.PackagingAppliedEvent{}.EventName(),
		shipping.ShippingQuotedEvent{}.EventName(),
		payment.PaymentAttemptedEvent{}.EventName(),
		payment.PaymentDecidedEvent{}.EventName(),
		checkout.CheckoutCompletedEvent{}.EventName(),
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil {
		return
	}
	for _, name := range Events() {
		w.subscriber.Subscribe(name, w.Handle)
	}
}

// Handle renders a single event. Unknown events are counted and ignored.
func (w *Worker) Handle(ctx context.Context, e event.Event) error {
	logger := logctx.FromOr(ctx, w.log).With(observability.F("event", e.EventName()))

	line, fields, ok := Render(e)
	if !ok {
		w.count("ignored")
		return nil
	}
	logger.Info("checkout_narration", append(fields, observability.F("narration", line))...)
	w.count("success")
	return nil
}

// Render describes e in one line plus the structured fields backing it.
func Render(e event.Event) (string, []observability.Field, bool) {
	switch evt := e.(type) {
	case order.DiscountAppliedEvent:
		return fmt.Sprintf("applying %s%% instant transfer discount", evt.Rate.Shift(2).String()),
			[]observability.Field{observability.F("rate", evt.Rate.String()), observability.F("total", evt.Total.StringFixed(2))}, true
	case order.PackagingAppliedEvent:
		return fmt.Sprintf("adding gift packaging fee: %s", evt.Fee.StringFixed(2)),
			[]observability.Field{observability.F("fee", evt.Fee.StringFixed(2)), observability.F("total", evt.Total.StringFixed(2))}, true
	case shipping.ShippingQuotedEvent:
		return fmt.Sprintf("%s shipping: %s", evt.Method, evt.Cost.StringFixed(2)),
			[]observability.Field{observability.F("shipping_method", string(evt.Method)), observability.F("cost", evt.Cost.StringFixed(2))}, true
	case payment.PaymentAttemptedEvent:
		return fmt.Sprintf("processing %s via %s", evt.Amount.StringFixed(2), evt.Method),
			[]observability.Field{observability.F("payment_method", string(evt.Method)), observability.F("amount", evt.Amount.StringFixed(2))}, true
	case payment.PaymentDecidedEvent:
		line := fmt.Sprintf("%s payment APPROVED", evt.Method)
		switch {
		case !evt.Approved:
			line = fmt.Sprintf("%s payment REJECTED (%s)", evt.Method, evt.Reason)
		case evt.Deferred:
			line = fmt.Sprintf("%s payment APPROVED, awaiting confirmation", evt.Method)
		}
		return line, []observability.Field{
			observability.F("payment_method", string(evt.Method)),
			observability.F("approved", evt.Approved),
		}, true
	case checkout.CheckoutCompletedEvent:
		line := fmt.Sprintf("final amount %s: %s", evt.FinalAmount.StringFixed(2), evt.Message)
		return line, []observability.Field{
			observability.F("checkout_id", evt.CheckoutID),
			observability.F("success", evt.Success),
			observability.F("final_amount", evt.FinalAmount.StringFixed(2)),
		}, true
	default:
		return "", nil, false
	}
}

func (w *Worker) count(outcome string) {
	w.reqCounter.Add(1,
		observability.L("use_case", useCase),
		observability.L("outcome", outcome),
	)
}
