package checkout

import (
	"errors"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/payment"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/shipping"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Request is the input of a checkout.
type Request struct {
	Items          []order.Item `validate:"dive"`
	PaymentMethod  payment.Method
	ShippingMethod shipping.Method
	GiftWrap       bool
}

// Result is the outcome of a checkout. It is a value and is never modified after Execute returns.
type Result struct {
	ID             string
	Success        bool
	Subtotal       decimal.Decimal
	ShippingCost   decimal.Decimal
	FinalAmount    decimal.Decimal
	Message        string
	PaymentMethod  payment.Method
	ShippingMethod shipping.Method
	// Confirmation is non-nil when the payment settles asynchronously.
	Confirmation *payment.Confirmation
}

var validate = newValidator()

// newValidator checks every item through order.Item.Validate so the sign test runs on the exact decimal.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateItem, order.Item{})
	return v
}

func validateItem(sl validator.StructLevel) {
	item, ok := sl.Current().Interface().(order.Item)
	if !ok {
		return
	}
	switch err := item.Validate(); {
	case errors.Is(err, order.ErrEmptyName):
		sl.ReportError(item.Name, "Name", "Name", "required", "")
	case errors.Is(err, order.ErrNegativeValue):
		sl.ReportError(item.Value, "Value", "Value", "nonnegative", item.Value.String())
	}
}

func validateRequest(req Request) error {
	if err := validate.Struct(req); err != nil {
		return newValidation(err)
	}
	return nil
}
