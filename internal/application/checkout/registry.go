package checkout

import (
	"fmt"
	"time"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/shipping"
)

// Registry maps identifiers to policies. It is immutable after construction and safe for concurrent reads.
type Registry struct {
	payments  map[payment.Method]payment.Policy
	shippings map[shipping.Method]shipping.Policy
}

// NewRegistry indexes the given policies by their Method. Duplicate identifiers are rejected.
func NewRegistry(payments []payment.Policy, shippings []shipping.Policy) (*Registry, error) {
	r := &Registry{
		payments:  make(map[payment.Method]payment.Policy, len(payments)),
		shippings: make(map[shipping.Method]shipping.Policy, len(shippings)),
	}
	for _, p := range payments {
		if p == nil {
			continue
		}
		if _, dup := r.payments[p.Method()]; dup {
			return nil, fmt.Errorf("checkout: duplicate payment policy %q", p.Method())
		}
		r.payments[p.Method()] = p
	}
	for _, s := range shippings {
		if s == nil {
			continue
		}
		if _, dup := r.shippings[s.Method()]; dup {
			return nil, fmt.Errorf("checkout: duplicate shipping policy %q", s.Method())
		}
		r.shippings[s.Method()] = s
	}
	return r, nil
}

// DefaultRegistry registers every built-in policy. deferredDelay configures the deferred transfer confirmation.
func DefaultRegistry(deferredDelay time.Duration) *Registry {
	r, err := NewRegistry(
		[]payment.Policy{
			payment.NewCreditPolicy(),
			payment.NewInstantTransferPolicy(),
			payment.NewDeferredTransferPolicy(deferredDelay),
		},
		[]shipping.Policy{
			shipping.StandardShipping{},
			shipping.ExpressShipping{},
			shipping.TeleportShipping{},
		},
	)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Registry) Payment(m payment.Method) (payment.Policy, error) {
	p, ok := r.payments[m]
	if !ok {
		return nil, &UnknownPolicyError{Kind: PolicyKindPayment, Key: string(m)}
	}
	return p, nil
}

func (r *Registry) Shipping(m shipping.Method) (shipping.Policy, error) {
	s, ok := r.shippings[m]
	if !ok {
		return nil, &UnknownPolicyError{Kind: PolicyKindShipping, Key: string(m)}
	}
	return s, nil
}
