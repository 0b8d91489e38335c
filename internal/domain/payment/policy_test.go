package payment

import (
	"context"
	"testing"
	"time"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/event"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreditPolicyLimitIsExclusive(t *testing.T) {
	p := NewCreditPolicy()
	ctx := context.Background()

	cases := []struct {
		amount   string
		approved bool
	}{
		{"0", true},
		{"999.99", true},
		{"1000.00", false},
		{"1000.01", false},
	}
	for _, tc := range cases {
		d := p.Authorize(ctx, decimal.RequireFromString(tc.amount))
		assert.Equalf(t, tc.approved, d.Approved, "amount %s", tc.amount)
		if !tc.approved {
			assert.Equal(t, ReasonLimitExceeded, d.Reason)
		}
		assert.Nil(t, d.Confirmation)
	}
}

func TestInstantTransferAlwaysApproves(t *testing.T) {
	d := NewInstantTransferPolicy().Authorize(context.Background(), decimal.RequireFromString("1000000"))
	assert.True(t, d.Approved)
	assert.Empty(t, d.Reason)
}

func TestDeferredTransferApprovesWithPendingConfirmation(t *testing.T) {
	p := NewDeferredTransferPolicy(time.Hour)
	d := p.Authorize(context.Background(), decimal.RequireFromString("5000"))

	require.True(t, d.Approved)
	require.NotNil(t, d.Confirmation)
	assert.False(t, d.Confirmation.Confirmed())
	d.Confirmation.Cancel()
}

func TestPoliciesEmitAttemptThenDecision(t *testing.T) {
	var got []event.Event
	ctx := event.WithSink(context.Background(), event.SinkFunc(func(_ context.Context, e event.Event) error {
		got = append(got, e)
		return nil
	}))

	NewCreditPolicy().Authorize(ctx, decimal.RequireFromString("1500"))

	require.Len(t, got, 2)
	attempted, ok := got[0].(PaymentAttemptedEvent)
	require.True(t, ok)
	assert.Equal(t, MethodCredit, attempted.Method)

	decided, ok := got[1].(PaymentDecidedEvent)
	require.True(t, ok)
	assert.False(t, decided.Approved)
	assert.Equal(t, ReasonLimitExceeded, decided.Reason)
	assert.True(t, decimal.RequireFromString("1500").Equal(decided.Amount))
}

func TestParseMethod(t *testing.T) {
	assert.Equal(t, MethodInstantTransfer, ParseMethod(" Instant-Transfer "))
	assert.Equal(t, MethodDeferredTransfer, ParseMethod("deferred transfer"))
	assert.Equal(t, MethodCredit, ParseMethod("CREDIT"))
	assert.Equal(t, Method("barter"), ParseMethod("barter"))
}
