package services

import (
	"testing"
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDeliveryCharge_Boundaries(t *testing.T) {
	cases := []struct {
		subtotal string
		want     int64
	}{
		{"0", 25},
		{"99.99", 25},
		{"100", 25},
		{"149.99", 25},
		{"150", 15},
		{"199.99", 15},
		{"200", 0},
		{"1500", 0},
	}
	for _, c := range cases {
		got := DeliveryCharge(entity.MustRupees(c.subtotal))
		assert.True(t, got.Equal(entity.Rupees(c.want)), "subtotal %s: got %s", c.subtotal, got)
	}
}

func TestPriceOrder(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	q := PriceOrder(entity.Rupees(180), nil, now)
	assert.Equal(t, "15", q.DeliveryCharges.String())
	assert.Equal(t, "195", q.Total.String())

	biryani20 := &entity.Promotion{
		Code: "BIRYANI20", DiscountType: entity.DiscountPercentage, DiscountValue: entity.Rupees(20),
		MinOrderAmount: entity.Rupees(200), MaxDiscount: decimal.NewNullDecimal(entity.Rupees(150)), IsActive: true,
	}
	q = PriceOrder(entity.Rupees(250), biryani20, now)
	assert.Equal(t, "50", q.Discount.String())
	assert.Equal(t, "0", q.DeliveryCharges.String())
	assert.Equal(t, "200", q.Total.String())
	assert.Equal(t, "BIRYANI20", q.CouponCode)

	save50 := &entity.Promotion{
		Code: "SAVE50", DiscountType: entity.DiscountFixed, DiscountValue: entity.Rupees(50),
		MinOrderAmount: entity.Rupees(300), IsActive: true,
	}
	q = PriceOrder(entity.Rupees(180), save50, now)
	assert.True(t, q.Discount.IsZero())
	assert.Empty(t, q.CouponCode)
}

func TestPriceOrder_TotalInvariant(t *testing.T) {
	now := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	promos := []*entity.Promotion{
		nil,
		{DiscountType: entity.DiscountFixed, DiscountValue: entity.Rupees(500), IsActive: true},
		{DiscountType: entity.DiscountPercentage, DiscountValue: entity.Rupees(100), IsActive: true},
		{DiscountType: entity.DiscountPercentage, DiscountValue: entity.MustRupees("12.5"), IsActive: true},
	}
	for _, sub := range []string{"0", "12", "99.99", "149.5", "199.99", "250", "1234.56"} {
		for _, p := range promos {
			q := PriceOrder(entity.MustRupees(sub), p, now)
			assert.True(t, q.Total.Equal(q.Subtotal.Add(q.DeliveryCharges).Sub(q.Discount)))
			assert.False(t, q.Discount.IsNegative())
			assert.True(t, q.Discount.LessThanOrEqual(q.Subtotal))
			assert.False(t, q.Total.IsNegative())
		}
	}
}
