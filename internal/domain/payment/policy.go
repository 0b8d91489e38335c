package payment

import (
	"context"
	"strings"
	"time"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/event"
	"github.com/shopspring/decimal"
)

// Method identifies a payment policy in a registry.
type Method string

const (
	MethodCredit           Method = "credit"
	MethodInstantTransfer  Method = "instant_transfer"
	MethodDeferredTransfer Method = "deferred_transfer"
)

// Methods lists every supported payment method.
func Methods() []Method {
	return []Method{MethodCredit, MethodInstantTransfer, MethodDeferredTransfer}
}

// ParseMethod normalises a free-form key ("Instant Transfer", "instant-transfer") to a Method.
// Unsupported keys are returned as-is so a registry lookup can report them.
func ParseMethod(s string) Method {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer("-", "_", " ", "_").Replace(s)
	return Method(s)
}

const ReasonLimitExceeded = "limit exceeded"

var (
	// DefaultCreditLimit is the exclusive upper bound for credit authorizations.
	DefaultCreditLimit = decimal.RequireFromString("1000.00")
	// DefaultConfirmationDelay is how long a deferred transfer takes to be confirmed externally.
	DefaultConfirmationDelay = 10 * time.Second
)

// Decision is the outcome of an authorization attempt.
type Decision struct {
	Approved bool
	Reason   string
	// Confirmation is set by policies whose approval settles asynchronously.
	Confirmation *Confirmation
}

// Policy authorizes an amount. Decisions depend only on the amount.
type Policy interface {
	Method() Method
	Authorize(ctx context.Context, amount decimal.Decimal) Decision
	policy()
}

// CreditPolicy approves amounts strictly below Limit.
type CreditPolicy struct {
	Limit decimal.Decimal
}

func NewCreditPolicy() CreditPolicy { return CreditPolicy{Limit: DefaultCreditLimit} }

func (CreditPolicy) Method() Method { return MethodCredit }

func (p CreditPolicy) Authorize(ctx context.Context, amount decimal.Decimal) Decision {
	attempt(ctx, p.Method(), amount)
	d := Decision{Approved: true}
	if !amount.LessThan(p.Limit) {
		d = Decision{Approved: false, Reason: ReasonLimitExceeded}
	}
	return decide(ctx, p.Method(), amount, d)
}

func (CreditPolicy) policy() {}

// InstantTransferPolicy approves every amount.
type InstantTransferPolicy struct{}

func NewInstantTransferPolicy() InstantTransferPolicy { return InstantTransferPolicy{} }

func (InstantTransferPolicy) Method() Method { return MethodInstantTransfer }

func (p InstantTransferPolicy) Authorize(ctx context.Context, amount decimal.Decimal) Decision {
	attempt(ctx, p.Method(), amount)
	return decide(ctx, p.Method(), amount, Decision{Approved: true})
}

func (InstantTransferPolicy) policy() {}

// DeferredTransferPolicy approves every amount; the transfer is confirmed externally after Delay.
type DeferredTransferPolicy struct {
	Delay time.Duration
}

func NewDeferredTransferPolicy(delay time.Duration) DeferredTransferPolicy {
	return DeferredTransferPolicy{Delay: delay}
}

func (DeferredTransferPolicy) Method() Method { return MethodDeferredTransfer }

func (p DeferredTransferPolicy) Authorize(ctx context.Context, amount decimal.Decimal) Decision {
	attempt(ctx, p.Method(), amount)
	return decide(ctx, p.Method(), amount, Decision{
		Approved:     true,
		Confirmation: NewConfirmation(p.Delay),
	})
}

func (DeferredTransferPolicy) policy() {}

func attempt(ctx context.Context, method Method, amount decimal.Decimal) {
	_ = event.Emit(ctx, NewPaymentAttemptedEvent(method, amount))
}

func decide(ctx context.Context, method Method, amount decimal.Decimal, d Decision) Decision {
	_ = event.Emit(ctx, NewPaymentDecidedEvent(method, amount, d))
	return d
}
