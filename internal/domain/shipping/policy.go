package shipping

import (
	"context"
	"strings"

	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/event"
	"github.com/shopspring/decimal"
)

// Method identifies a shipping policy in a registry.
type Method string

const (
	MethodStandard Method = "standard"
	MethodExpress  Method = "express"
	MethodTeleport Method = "teleport"
)

// Methods lists every supported shipping method.
func Methods() []Method {
	return []Method{MethodStandard, MethodExpress, MethodTeleport}
}

// ParseMethod normalises a free-form key to a Method. Unsupported keys are returned as-is.
func ParseMethod(s string) Method {
	return Method(strings.ToLower(strings.TrimSpace(s)))
}

var (
	ExpressRate    = decimal.RequireFromString("0.10")
	ExpressBaseFee = decimal.RequireFromString("15.00")
	TeleportFee    = decimal.RequireFromString("50.00")
)

// Policy quotes a shipping cost for an order subtotal.
type Policy interface {
	Method() Method
	Quote(ctx context.Context, base decimal.Decimal) decimal.Decimal
	policy()
}

// StandardShipping is free.
type StandardShipping struct{}

func (StandardShipping) Method() Method { return MethodStandard }

func (s StandardShipping) Quote(ctx context.Context, base decimal.Decimal) decimal.Decimal {
	return quoted(ctx, s.Method(), base, decimal.Zero)
}

func (StandardShipping) policy() {}

// ExpressShipping charges ExpressRate of the subtotal plus ExpressBaseFee.
type ExpressShipping struct{}

func (ExpressShipping) Method() Method { return MethodExpress }

func (s ExpressShipping) Quote(ctx context.Context, base decimal.Decimal) decimal.Decimal {
	return quoted(ctx, s.Method(), base, base.Mul(ExpressRate).Add(ExpressBaseFee))
}

func (ExpressShipping) policy() {}

// TeleportShipping charges TeleportFee whatever the subtotal.
type TeleportShipping struct{}

func (TeleportShipping) Method() Method { return MethodTeleport }

func (s TeleportShipping) Quote(ctx context.Context, base decimal.Decimal) decimal.Decimal {
	return quoted(ctx, s.Method(), base, TeleportFee)
}

func (TeleportShipping) policy() {}

func quoted(ctx context.Context, method Method, base, cost decimal.Decimal) decimal.Decimal {
	_ = event.Emit(ctx, NewShippingQuotedEvent(method, base, cost))
	return cost
}
