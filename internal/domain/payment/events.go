package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentAttemptedEvent is emitted before a policy evaluates an amount.
type PaymentAttemptedEvent struct {
	Method     Method
	Amount     decimal.Decimal
	OccurredAt time.Time
}

func (PaymentAttemptedEvent) EventName() string { return "payment.attempted" }

func NewPaymentAttemptedEvent(method Method, amount decimal.Decimal) PaymentAttemptedEvent {
	return PaymentAttemptedEvent{
		Method:     method,
		Amount:     amount,
		OccurredAt: time.Now().UTC(),
	}
}

// PaymentDecidedEvent is emitted once a policy has approved or rejected an amount.
type PaymentDecidedEvent struct {
	Method     Method
	Amount     decimal.Decimal
	Approved   bool
	Reason     string
	Deferred   bool
	OccurredAt time.Time
}

func (PaymentDecidedEvent) EventName() string { return "payment.decided" }

func NewPaymentDecidedEvent(method Method, amount decimal.Decimal, d Decision) PaymentDecidedEvent {
	return PaymentDecidedEvent{
		Method:     method,
		Amount:     amount,
		Approved:   d.Approved,
		Reason:     d.Reason,
		Deferred:   d.Confirmation != nil,
		OccurredAt: time.Now().UTC(),
	}
}
