package checkout

import (
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/order"
	"github.com/Zhima-Mochi/minishop-checkout/internal/domain/payment"
)

// BuildChain wraps the request items with the adjustments that apply to them.
// The discount always sits inside the packaging adjustment so the gift-wrap fee is never discounted.
func BuildChain(req Request) order.Component {
	var c order.Component = order.NewSimpleOrder(req.Items)
	if req.PaymentMethod == payment.MethodInstantTransfer {
		c = order.NewDiscountAdjustment(c)
	}
	if req.GiftWrap {
		c = order.NewPackagingAdjustment(c)
	}
	return c
}
