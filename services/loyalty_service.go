package services

import (
	"errors"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type LoyaltyService struct {
	DB          *gorm.DB
	UserRepo    *repository.UserRepository
	OrderRepo   *repository.OrderRepository
	LoyaltyRepo *repository.LoyaltyRepository
	log         *logrus.Entry
}

func NewLoyaltyService(db *gorm.DB, ur *repository.UserRepository, or *repository.OrderRepository, lr *repository.LoyaltyRepository, log *logrus.Entry) *LoyaltyService {
	return &LoyaltyService{DB: db, UserRepo: ur, OrderRepo: or, LoyaltyRepo: lr, log: log}
}

type LoyaltySummary struct {
	Points           int                         `json:"points"`
	Tier             entity.TierInfo             `json:"tier"`
	RedeemableAmount int                         `json:"redeemableAmount"`
	NextTierPoints   int                         `json:"nextTierPoints"`
	MinRedemption    int                         `json:"minRedemption"`
	Tiers            []entity.TierInfo           `json:"tiers"`
	History          []entity.LoyaltyTransaction `json:"history"`
}

// Summary also refreshes the cached tier label when it drifted.
func (s *LoyaltyService) Summary(actor entity.Actor) (*LoyaltySummary, error) {
	if err := requireLogin(actor, "Please login to view your rewards"); err != nil {
		return nil, err
	}
	u, err := s.UserRepo.FindByID(s.DB, actor.UserID)
	if err != nil {
		return nil, asAppError(err, "Account not found")
	}
	info, changed := u.TierInfo()
	if changed {
		if err := s.UserRepo.SetTier(s.DB, u.ID, u.LoyaltyTier); err != nil {
			s.log.WithError(err).Warn("refresh loyalty tier")
		}
	}
	history, err := s.LoyaltyRepo.History(u.ID, 20)
	if err != nil {
		return nil, NewPersistence(err)
	}
	return &LoyaltySummary{
		Points:           u.LoyaltyPoints,
		Tier:             info,
		RedeemableAmount: entity.RedeemableAmount(u.LoyaltyPoints),
		NextTierPoints:   entity.NextTierPoints(u.LoyaltyPoints),
		MinRedemption:    entity.MinRedemptionPoints,
		Tiers:            entity.Tiers,
		History:          history,
	}, nil
}

type RedeemIn struct {
	Points int `json:"points" binding:"required"`
}

type RedeemResult struct {
	RedeemedPoints  int             `json:"redeemedPoints"`
	Amount          decimal.Decimal `json:"amount"`
	RemainingPoints int             `json:"remainingPoints"`
	Tier            entity.TierInfo `json:"tier"`
}

// Redeem converts points into a currency amount recorded in the points history.
func (s *LoyaltyService) Redeem(actor entity.Actor, in RedeemIn) (*RedeemResult, error) {
	if err := requireLogin(actor, "Please login to redeem points"); err != nil {
		return nil, err
	}

	var out RedeemResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		u, err := s.UserRepo.FindByID(tx, actor.UserID)
		if err != nil {
			return asAppError(err, "Account not found")
		}

		_, amount, err := entity.Redeem(u.LoyaltyPoints, in.Points)
		switch {
		case errors.Is(err, entity.ErrInsufficientPoints):
			return NewValidation("Insufficient points")
		case errors.Is(err, entity.ErrBelowMinimum):
			return NewValidation("Minimum redemption is 100 points")
		}

		ok, err := s.UserRepo.DeductPoints(tx, u.ID, in.Points)
		if err != nil {
			return err
		}
		if !ok {
			return NewConflict("Your points balance changed, please try again")
		}
		// credits may have landed since the first read
		if u, err = s.UserRepo.FindByID(tx, u.ID); err != nil {
			return err
		}
		remaining := u.LoyaltyPoints
		info, _ := u.TierInfo()
		if err := s.UserRepo.SetTier(tx, u.ID, info.Name); err != nil {
			return err
		}

		amt := decimal.NewFromInt(int64(amount))
		if err := s.LoyaltyRepo.Record(tx, &entity.LoyaltyTransaction{
			UserID: u.ID, Kind: entity.LoyaltyRedeem, Points: in.Points, Balance: remaining, Amount: amt,
		}); err != nil {
			return err
		}
		out = RedeemResult{RedeemedPoints: in.Points, Amount: amt, RemainingPoints: remaining, Tier: info}
		return nil
	})
	if err != nil {
		if KindOf(err) == KindPersistence {
			s.log.WithError(err).Error("redeem points")
		}
		return nil, asAppError(err, "")
	}
	return &out, nil
}

// CreditForOrder awards floor(total/10) points once per delivered order of a registered user.
// It must run inside the transaction that marks the order delivered.
func (s *LoyaltyService) CreditForOrder(tx *gorm.DB, o *entity.Order) (int, error) {
	if o.IsGuest() {
		return 0, nil
	}
	first, err := s.OrderRepo.MarkPointsCredited(tx, o.ID)
	if err != nil || !first {
		return 0, err
	}
	points := entity.PointsForOrder(o.TotalAmount)
	if points == 0 {
		return 0, nil
	}

	if err := s.UserRepo.AddPoints(tx, *o.UserID, points); err != nil {
		return 0, err
	}
	u, err := s.UserRepo.FindByID(tx, *o.UserID)
	if err != nil {
		return 0, err
	}
	if _, changed := u.TierInfo(); changed {
		if err := s.UserRepo.SetTier(tx, u.ID, u.LoyaltyTier); err != nil {
			return 0, err
		}
	}
	orderID := o.ID
	if err := s.LoyaltyRepo.Record(tx, &entity.LoyaltyTransaction{
		UserID: u.ID, Kind: entity.LoyaltyEarn, Points: points, Balance: u.LoyaltyPoints,
		Amount: o.TotalAmount, OrderID: &orderID,
	}); err != nil {
		return 0, err
	}
	return points, nil
}
