package order

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func requireAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "expected %s, got %s", want, got)
}

func items(values ...string) []Item {
	out := make([]Item, 0, len(values))
	for i, v := range values {
		out = append(out, Item{Name: string(rune('a' + i)), Value: dec(v)})
	}
	return out
}

func TestSimpleOrderSumsItems(t *testing.T) {
	ctx := context.Background()

	requireAmount(t, "0", NewSimpleOrder(nil).Total(ctx))
	requireAmount(t, "230.00", NewSimpleOrder(items("150.00", "80.00")).Total(ctx))
	requireAmount(t, "0.30", NewSimpleOrder(items("0.10", "0.20")).Total(ctx))
}

func TestSimpleOrderCopiesItems(t *testing.T) {
	in := items("5.00")
	o := NewSimpleOrder(in)
	in[0].Value = dec("500.00")

	requireAmount(t, "5.00", o.Total(context.Background()))
}

func TestNewItemRejectsNegativeValue(t *testing.T) {
	_, err := NewItem("broken", dec("-1"))
	require.ErrorIs(t, err, ErrNegativeValue)

	// below float64 precision, still negative
	_, err = NewItem("dust", decimal.New(-1, -400))
	require.ErrorIs(t, err, ErrNegativeValue)

	_, err = NewItem("  ", dec("1"))
	require.ErrorIs(t, err, ErrEmptyName)

	it, err := NewItem("free sample", decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "free sample", it.Name)
}

func TestDiscountAdjustment(t *testing.T) {
	got := NewDiscountAdjustment(NewSimpleOrder(items("150.00", "80.00"))).Total(context.Background())
	requireAmount(t, "218.50", got)
}

func TestPackagingAdjustment(t *testing.T) {
	got := NewPackagingAdjustment(NewSimpleOrder(items("600.00"))).Total(context.Background())
	requireAmount(t, "610.00", got)
}

func TestAdjustmentOrderMatters(t *testing.T) {
	ctx := context.Background()
	base := items("100.00")

	discountFirst := NewPackagingAdjustment(NewDiscountAdjustment(NewSimpleOrder(base))).Total(ctx)
	packagingFirst := NewDiscountAdjustment(NewPackagingAdjustment(NewSimpleOrder(base))).Total(ctx)

	requireAmount(t, "105.00", discountFirst)
	requireAmount(t, "104.50", packagingFirst)
	assert.False(t, discountFirst.Equal(packagingFirst))
}

func TestAdjustmentsEmitEvents(t *testing.T) {
	var names []string
	ctx := event.WithSink(context.Background(), event.SinkFunc(func(_ context.Context, e event.Event) error {
		names = append(names, e.EventName())
		return nil
	}))

	NewPackagingAdjustment(NewDiscountAdjustment(NewSimpleOrder(items("20.00")))).Total(ctx)

	assert.Equal(t, []string{"order.discount_applied", "order.packaging_applied"}, names)
}

func TestDepth(t *testing.T) {
	root := NewSimpleOrder(nil)
	assert.Equal(t, 0, Depth(root))
	assert.Equal(t, 1, Depth(NewDiscountAdjustment(root)))
	assert.Equal(t, 2, Depth(NewPackagingAdjustment(NewDiscountAdjustment(root))))
}
