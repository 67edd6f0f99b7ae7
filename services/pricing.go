package services

import (
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/shopspring/decimal"
)

type deliveryTier struct {
	minSubtotal decimal.Decimal
	charge      decimal.Decimal
}

// checked from the highest threshold down; lower bounds are inclusive
var deliveryTiers = []deliveryTier{
	{entity.Rupees(200), entity.Rupees(0)},
	{entity.Rupees(150), entity.Rupees(15)},
	{entity.Rupees(100), entity.Rupees(25)},
}

var baseDeliveryCharge = entity.Rupees(25)

// DeliveryCharge for a cart subtotal.
func DeliveryCharge(subtotal decimal.Decimal) decimal.Decimal {
	for _, t := range deliveryTiers {
		if subtotal.GreaterThanOrEqual(t.minSubtotal) {
			return t.charge
		}
	}
	return baseDeliveryCharge
}

// Quote is the price breakdown of an order.
type Quote struct {
	Subtotal        decimal.Decimal `json:"subtotal"`
	DeliveryCharges decimal.Decimal `json:"deliveryCharges"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
	CouponCode      string          `json:"couponCode,omitempty"`
}

// PriceOrder applies delivery and an optional promotion.
// total = subtotal + delivery - discount, and discount never exceeds subtotal.
func PriceOrder(subtotal decimal.Decimal, promo *entity.Promotion, now time.Time) Quote {
	q := Quote{
		Subtotal:        subtotal,
		DeliveryCharges: DeliveryCharge(subtotal),
		Discount:        decimal.Zero,
	}
	if promo != nil {
		q.Discount = promo.CalculateDiscount(subtotal, now)
		if q.Discount.IsPositive() {
			q.CouponCode = promo.Code
		}
	}
	q.Total = q.Subtotal.Add(q.DeliveryCharges).Sub(q.Discount)
	return q
}

// Subtotal of priced lines.
func Subtotal(lines []CartLine) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(l.Total)
	}
	return sum
}
