package entity

import (
	"errors"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

const (
	MinRedemptionPoints = 100
	// one point per this many currency units of the order total
	RupeesPerPoint = 10
)

var (
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrBelowMinimum       = errors.New("below minimum redemption")
)

type TierInfo struct {
	Name           Tier   `json:"name"`
	MinPoints      int    `json:"minPoints"`
	MaxPoints      int    `json:"maxPoints,omitempty"` // 0 means unbounded
	ConversionRate int    `json:"conversionRate"`      // points per currency unit
	Color          string `json:"color"`
}

func (t TierInfo) contains(points int) bool {
	return points >= t.MinPoints && (t.MaxPoints == 0 || points <= t.MaxPoints)
}

// Tiers are contiguous and ascending.
var Tiers = []TierInfo{
	{Name: TierBronze, MinPoints: 0, MaxPoints: 999, ConversionRate: 5, Color: "#CD7F32"},
	{Name: TierSilver, MinPoints: 1000, MaxPoints: 2499, ConversionRate: 4, Color: "#C0C0C0"},
	{Name: TierGold, MinPoints: 2500, MaxPoints: 4999, ConversionRate: 3, Color: "#FFD700"},
	{Name: TierPlatinum, MinPoints: 5000, ConversionRate: 2, Color: "#E5E4E2"},
}

// TierFor falls back to bronze for balances outside every range.
func TierFor(points int) TierInfo {
	for _, t := range Tiers {
		if t.contains(points) {
			return t
		}
	}
	return Tiers[0]
}

// RedeemableAmount is the currency value of the whole balance at the current tier rate.
func RedeemableAmount(points int) int {
	if points < MinRedemptionPoints {
		return 0
	}
	return points / TierFor(points).ConversionRate
}

// NextTierPoints is how many points are missing to reach the next tier; 0 at the top.
func NextTierPoints(points int) int {
	for i, t := range Tiers {
		if !t.contains(points) {
			continue
		}
		if i == len(Tiers)-1 {
			return 0
		}
		return max(Tiers[i+1].MinPoints-points, 0)
	}
	return max(Tiers[1].MinPoints-points, 0)
}

// Redeem converts points at the rate of the tier held before the deduction.
func Redeem(balance, requested int) (remaining, amount int, err error) {
	if requested > balance {
		return balance, 0, ErrInsufficientPoints
	}
	if requested < MinRedemptionPoints {
		return balance, 0, ErrBelowMinimum
	}
	rate := TierFor(balance).ConversionRate
	return balance - requested, requested / rate, nil
}

// PointsForOrder is floor(total / 10).
func PointsForOrder(total decimal.Decimal) int {
	if !total.IsPositive() {
		return 0
	}
	return int(total.Div(decimal.NewFromInt(RupeesPerPoint)).Floor().IntPart())
}
