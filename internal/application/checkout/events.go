package checkout

import (
	"time"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/shipping"
	"github.com/shopspring/decimal"
)

// CheckoutCompletedEvent summarises a finished checkout, approved or rejected.
type CheckoutCompletedEvent struct {
	CheckoutID     string
	Success        bool
	PaymentMethod  payment.Method
	ShippingMethod shipping.Method
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	FinalAmount    decimal.Decimal
	Message        string
	OccurredAt     time.Time
}

func (CheckoutCompletedEvent) EventName() string { return "checkout.completed" }

func NewCheckoutCompletedEvent(r Result) CheckoutCompletedEvent {
	return CheckoutCompletedEvent{
		CheckoutID:     r.ID,
		Success:        r.Success,
		PaymentMethod:  r.PaymentMethod,
		ShippingMethod: r.ShippingMethod,
		Subtotal:       r.Subtotal,
		ShippingCost:   r.ShippingCost,
		FinalAmount:    r.FinalAmount,
		Message:        r.Message,
		OccurredAt:     time.Now().UTC(),
	}
}
