package order

import (
	"context"
	"errors"
	"strings"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/event"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName     = errors.New("order: item name is required")
	ErrNegativeValue = errors.New("order: item value must be zero or greater")

	// DiscountRate is the share taken off the inner total by DiscountAdjustment.
	DiscountRate = decimal.RequireFromString("0.05")
	// PackagingFee is the flat amount added by PackagingAdjustment.
	PackagingFee = decimal.RequireFromString("10.00")
)

// Item is a single line entry of an order.
type Item struct {
	Name  string
	Value decimal.Decimal
}

// NewItem builds an Item that passes Validate.
func NewItem(name string, value decimal.Decimal) (Item, error) {
	it := Item{Name: name, Value: value}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Validate checks the item on the exact decimal value; it is the only item rule in the module.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if i.Value.IsNegative() {
		return ErrNegativeValue
	}
	return nil
}

// Component computes an order total. The set of implementations is closed:
// SimpleOrder at the root, wrapped by at most one DiscountAdjustment and one PackagingAdjustment.
type Component interface {
	Total(ctx context.Context) decimal.Decimal
	component()
}

// SimpleOrder sums its items.
type SimpleOrder struct {
	items []Item
}

// NewSimpleOrder copies items so later changes by the caller are not observed.
func NewSimpleOrder(items []Item) *SimpleOrder {
	return &SimpleOrder{items: append([]Item(nil), items...)}
}

func (o *SimpleOrder) Total(context.Context) decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.items {
		total = total.Add(it.Value)
	}
	return total
}

func (*SimpleOrder) component() {}

// DiscountAdjustment reduces the inner total by DiscountRate.
type DiscountAdjustment struct {
	inner Component
}

func NewDiscountAdjustment(inner Component) *DiscountAdjustment {
	return &DiscountAdjustment{inner: inner}
}

func (d *DiscountAdjustment) Total(ctx context.Context) decimal.Decimal {
	base := d.inner.Total(ctx)
	total := base.Mul(decimal.NewFromInt(1).Sub(DiscountRate))
	_ = event.Emit(ctx, NewDiscountAppliedEvent(DiscountRate, base, total))
	return total
}

func (*DiscountAdjustment) component() {}

// PackagingAdjustment adds PackagingFee on top of the inner total.
type PackagingAdjustment struct {
	inner Component
}

func NewPackagingAdjustment(inner Component) *PackagingAdjustment {
	return &PackagingAdjustment{inner: inner}
}

func (p *PackagingAdjustment) Total(ctx context.Context) decimal.Decimal {
	base := p.inner.Total(ctx)
	total := base.Add(PackagingFee)
	_ = event.Emit(ctx, NewPackagingAppliedEvent(PackagingFee, base, total))
	return total
}

func (*PackagingAdjustment) component() {}

// Depth reports how many adjustments wrap the root SimpleOrder.
func Depth(c Component) int {
	n := 0
	for {
		switch v := c.(type) {
		case *DiscountAdjustment:
			c = v.inner
		case *PackagingAdjustment:
			c = v.inner
		default:
			return n
		}
		n++
	}
}
