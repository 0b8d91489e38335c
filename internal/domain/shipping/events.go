package shipping

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShippingQuotedEvent is emitted for every quote a shipping policy produces.
type ShippingQuotedEvent struct {
	Method     Method
	Base       decimal.Decimal
	Cost       decimal.Decimal
	OccurredAt time.Time
}

func (ShippingQuotedEvent) EventName() string { return "shipping.quoted" }

func NewShippingQuotedEvent(method Method, base, cost decimal.Decimal) ShippingQuotedEvent {
	return ShippingQuotedEvent{
		Method:     method,
		Base:       base,
		Cost:       cost,
		OccurredAt: time.Now().UTC(),
	}
}
