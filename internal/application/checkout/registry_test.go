package checkout

import (
	"context"
	"testing"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/shipping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryResolvesEveryBuiltInPolicy(t *testing.T) {
	r := DefaultRegistry(0)
	for _, m := range payment.Methods() {
		p, err := r.Payment(m)
		require.NoError(t, err)
		assert.Equal(t, m, p.Method())
	}
	for _, m := range shipping.Methods() {
		s, err := r.Shipping(m)
		require.NoError(t, err)
		assert.Equal(t, m, s.Method())
	}
}

func TestNewRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(
		[]payment.Policy{payment.NewCreditPolicy(), payment.NewCreditPolicy()},
		nil,
	)
	require.Error(t, err)

	_, err = NewRegistry(nil, []shipping.Policy{shipping.TeleportShipping{}, shipping.TeleportShipping{}})
	require.Error(t, err)
}

func TestRegistryWithoutPolicyReportsKindAndKey(t *testing.T) {
	r, err := NewRegistry([]payment.Policy{payment.NewInstantTransferPolicy()}, nil)
	require.NoError(t, err)

	_, err = r.Payment(payment.MethodCredit)
	require.ErrorIs(t, err, ErrUnknownPolicy)
	assert.EqualError(t, err, `checkout: unknown payment policy "credit"`)

	_, err = r.Shipping(shipping.MethodStandard)
	require.ErrorIs(t, err, ErrUnknownPolicy)
	assert.EqualError(t, err, `checkout: unknown shipping policy "standard"`)
}

func TestBuildChainNestsDiscountInsidePackaging(t *testing.T) {
	items := []order.Item{{Name: "crystal", Value: decimal.RequireFromString("100.00")}}

	cases := []struct {
		name     string
		method   payment.Method
		giftWrap bool
		depth    int
		total    string
	}{
		{"plain credit", payment.MethodCredit, false, 0, "100.00"},
		{"credit gift", payment.MethodCredit, true, 1, "110.00"},
		{"instant", payment.MethodInstantTransfer, false, 1, "95.00"},
		{"instant gift", payment.MethodInstantTransfer, true, 2, "105.00"},
		{"deferred gift", payment.MethodDeferredTransfer, true, 1, "110.00"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := BuildChain(Request{Items: items, PaymentMethod: tc.method, GiftWrap: tc.giftWrap})
			assert.Equal(t, tc.depth, order.Depth(c))
			got := c.Total(context.Background())
			assert.Truef(t, decimal.RequireFromString(tc.total).Equal(got), "expected %s, got %s", tc.total, got)
		})
	}
}
