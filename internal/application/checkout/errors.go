package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPolicy  = errors.New("checkout: unknown policy")
	ErrInvalidRequest = errors.New("checkout: invalid request")
)

type PolicyKind string

const (
	PolicyKindPayment  PolicyKind = "payment"
	PolicyKindShipping PolicyKind = "shipping"
)

// UnknownPolicyError reports a request key that has no registered policy.
type UnknownPolicyError struct {
	Kind PolicyKind
	Key  string
}

func (e *UnknownPolicyError) Error() string {
	return fmt.Sprintf("checkout: unknown %s policy %q", e.Kind, e.Key)
}

func (e *UnknownPolicyError) Is(target error) bool { return target == ErrUnknownPolicy }

func newValidation(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidRequest, err)
}
