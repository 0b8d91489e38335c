package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountAppliedEvent is emitted each time a DiscountAdjustment is evaluated.
type DiscountAppliedEvent struct {
	Rate       decimal.Decimal
	Base       decimal.Decimal
	Total      decimal.Decimal
	OccurredAt time.Time
}

func (DiscountAppliedEvent) EventName() string { return "order.discount_applied" }

func NewDiscountAppliedEvent(rate, base, total decimal.Decimal) DiscountAppliedEvent {
	return DiscountAppliedEvent{
		Rate:       rate,
		Base:       base,
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}
}

// PackagingAppliedEvent is emitted each time a PackagingAdjustment is evaluated.
type PackagingAppliedEvent struct {
	Fee        decimal.Decimal
	Base       decimal.Decimal
	Total      decimal.Decimal
	OccurredAt time.Time
}

func (PackagingAppliedEvent) EventName() string { return "order.packaging_applied" }

func NewPackagingAppliedEvent(fee, base, total decimal.Decimal) PackagingAppliedEvent {
	return PackagingAppliedEvent{
		Fee:        fee,
		Base:       base,
		Total:      total,
		OccurredAt: time.Now().UTC(),
	}
}
