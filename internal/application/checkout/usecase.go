package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/Zhima-Mochi/minishop-checkout/internal/application"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/event"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability"
	"github.com/Zhima-Mochi/minishop-checkout/internal/observability/logctx"
	"github.com/shopspring/decimal"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	checkoutService  = "checkout-service"
	useCaseCheckout  = "checkout.complete"
	spanPrefix       = "UC."
	publishTimeout   = 300 * time.Millisecond
	messageCompleted = "transaction completed, invoice issued"
	messagePending   = "transaction approved, awaiting transfer confirmation"
	messageRejected  = "payment rejected"
)

var _ application.UseCase[Request, Result] = (*UseCase)(nil)

// UseCase sequences order total, shipping quote and payment authorization into a Result.
type UseCase struct {
	registry *Registry
	ids      IDGenerator
	sink     event.Sink
	tel      observability.Observability

	log observability.Logger

	reqCounter      observability.Counter   // usecase_requests_total{use_case,outcome}
	durHistogram    observability.Histogram // usecase_duration_seconds{use_case}
	decisionCounter observability.Counter   // checkout_payment_decisions_total{method,outcome}
	amountHistogram observability.Histogram // checkout_final_amount{shipping}
	publishFailures observability.Counter   // event_publish_failed_total{event}
}

// NewUseCase wires a checkout use case. A nil registry falls back to DefaultRegistry,
// a nil sink discards events and a nil tel disables tracing, logging and metrics.
func NewUseCase(
	registry *Registry,
	ids IDGenerator,
	sink event.Sink,
	tel observability.Observability,
) *UseCase {
	if registry == nil {
		registry = DefaultRegistry(0)
	}
	if sink == nil {
		sink = event.Discard()
	}
	if tel == nil {
		tel = observability.Nop()
	}
	metrics := tel.Metrics()

	return &UseCase{
		registry:        registry,
		ids:             ids,
		sink:            sink,
		tel:             tel,
		log:             tel.Logger().With(observability.F("service", checkoutService)),
		reqCounter:      metrics.Counter(observability.MUsecaseRequests),
		durHistogram:    metrics.Histogram(observability.MUsecaseDuration),
		decisionCounter: metrics.Counter(observability.MPaymentDecisions),
		amountHistogram: metrics.Histogram(observability.MFinalAmount),
		publishFailures: metrics.Counter(observability.MEventPublishFailures),
	}
}

// Execute runs a checkout. Unknown policies and malformed items fail the call before any amount is computed;
// a rejected payment is reported through Result.Success and never as an error.
func (uc *UseCase) Execute(ctx context.Context, req Request) (_ Result, err error) {
	var checkoutID string
	if uc.ids != nil {
		checkoutID = uc.ids.NewID()
	}

	ctx, logger := logctx.Enrich(ctx, uc.log,
		observability.F("use_case", useCaseCheckout),
		observability.F("checkout_id", checkoutID),
	)

	ctx, span := uc.tel.Tracer().Start(ctx, spanPrefix+"Checkout",
		attribute.String("use_case", useCaseCheckout),
		attribute.String("checkout.id", checkoutID),
		attribute.String("checkout.payment_method", string(req.PaymentMethod)),
		attribute.String("checkout.shipping_method", string(req.ShippingMethod)),
		attribute.Bool("checkout.gift_wrap", req.GiftWrap),
		attribute.Int("checkout.items", len(req.Items)),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"
	var result Result

	defer func() {
		lat := time.Since(start).Seconds()

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, statusText)
		} else {
			span.SetStatus(codes.Ok, statusText)
		}
		span.End()

		uc.reqCounter.Add(1,
			observability.L("use_case", useCaseCheckout),
			observability.L("outcome", outcome),
		)
		uc.durHistogram.Observe(lat,
			observability.L("use_case", useCaseCheckout),
		)

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", lat),
			observability.F("payment_method", string(req.PaymentMethod)),
			observability.F("shipping_method", string(req.ShippingMethod)),
		}
		if err == nil {
			fields = append(fields,
				observability.F("subtotal", result.Subtotal.StringFixed(2)),
				observability.F("shipping_cost", result.ShippingCost.StringFixed(2)),
				observability.F("final_amount", result.FinalAmount.StringFixed(2)),
			)
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	if err := ctx.Err(); err != nil {
		outcome, statusText = "error", "CONTEXT_CANCELED"
		return Result{}, err
	}
	if err := validateRequest(req); err != nil {
		outcome, statusText = "error", "REQUEST_INVALID"
		return Result{}, err
	}

	payPolicy, err := uc.registry.Payment(req.PaymentMethod)
	if err != nil {
		outcome, statusText = "error", "UNKNOWN_PAYMENT_POLICY"
		return Result{}, err
	}
	shipPolicy, err := uc.registry.Shipping(req.ShippingMethod)
	if err != nil {
		outcome, statusText = "error", "UNKNOWN_SHIPPING_POLICY"
		return Result{}, err
	}

	ctx = event.WithSink(ctx, &spanSink{next: uc.sink, span: span, log: logger, failures: uc.publishFailures})

	chain := BuildChain(req)
	subtotal := chain.Total(ctx)
	shippingCost := shipPolicy.Quote(ctx, subtotal)
	finalAmount := subtotal.Add(shippingCost)
	decision := payPolicy.Authorize(ctx, finalAmount)

	result = Result{
		ID:             checkoutID,
		Success:        decision.Approved,
		Subtotal:       subtotal,
		ShippingCost:   shippingCost,
		FinalAmount:    finalAmount,
		Message:        message(decision.Approved, decision.Reason, decision.Confirmation != nil),
		PaymentMethod:  payPolicy.Method(),
		ShippingMethod: shipPolicy.Method(),
		Confirmation:   decision.Confirmation,
	}

	decisionOutcome := "approved"
	if !decision.Approved {
		outcome, statusText, decisionOutcome = "rejected", "PAYMENT_REJECTED", "rejected"
	}
	uc.decisionCounter.Add(1,
		observability.L("method", string(payPolicy.Method())),
		observability.L("outcome", decisionOutcome),
	)
	uc.amountHistogram.Observe(toFloat(finalAmount),
		observability.L("shipping", string(shipPolicy.Method())),
	)

	span.SetAttributes(
		attribute.Int("checkout.adjustments", order.Depth(chain)),
		attribute.Float64("checkout.subtotal", toFloat(subtotal)),
		attribute.Float64("checkout.shipping_cost", toFloat(shippingCost)),
		attribute.Float64("checkout.final_amount", toFloat(finalAmount)),
		attribute.Bool("checkout.approved", decision.Approved),
	)

	_ = event.Emit(ctx, NewCheckoutCompletedEvent(result))

	return result, nil
}

func message(approved bool, reason string, pending bool) string {
	switch {
	case !approved && reason != "":
		return fmt.Sprintf("%s: %s", messageRejected, reason)
	case !approved:
		return messageRejected
	case pending:
		return messagePending
	default:
		return messageCompleted
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// spanSink forwards events to the configured sink, records them on the span
// and swallows publish failures after logging them.
type spanSink struct {
	next     event.Sink
	span     trace.Span
	log      observability.Logger
	failures observability.Counter
}

func (s *spanSink) Publish(ctx context.Context, e event.Event) error {
	name := e.EventName()
	s.span.AddEvent(name)

	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := s.next.Publish(pubCtx, e); err != nil {
		s.span.RecordError(err)
		s.failures.Add(1, observability.L("event", name))
		s.log.Warn("event_publish_failed",
			observability.F("event", name),
			observability.F("error", err.Error()),
		)
	}
	return nil
}
