package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PromotionService struct {
	DB   *gorm.DB
	Repo *repository.PromotionRepository
	log  *logrus.Entry
}

func NewPromotionService(db *gorm.DB, repo *repository.PromotionRepository, log *logrus.Entry) *PromotionService {
	return &PromotionService{DB: db, Repo: repo, log: log}
}

// CouponResult is the body of POST /api/validate_coupon.
type CouponResult struct {
	Valid    bool             `json:"valid"`
	Message  string           `json:"message"`
	Discount *decimal.Decimal `json:"discount,omitempty"`
	NewTotal *decimal.Decimal `json:"new_total,omitempty"`
	Code     string           `json:"code,omitempty"`
}

// Validate previews a coupon against a subtotal. It never consumes a use.
func (s *PromotionService) Validate(code string, subtotal decimal.Decimal) CouponResult {
	code = entity.NormalizeCode(code)
	if code == "" {
		return CouponResult{Message: "Please enter a coupon code"}
	}

	promo, err := s.Repo.FindByCode(s.DB, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return CouponResult{Message: "Coupon code not found"}
	}
	if err != nil {
		s.log.WithError(err).WithField("code", code).Error("validate coupon")
		return CouponResult{Message: "Error validating coupon. Please try again."}
	}

	now := s.DB.NowFunc()
	if reason := promo.InvalidReason(now); reason != "" {
		return CouponResult{Message: reason}
	}
	if !promo.MeetsMinimum(subtotal) {
		return CouponResult{Message: "Minimum order amount is ₹" + promo.MinOrderAmount.StringFixed(0)}
	}

	discount := promo.CalculateDiscount(subtotal, now)
	newTotal := subtotal.Sub(discount)

	var msg string
	if promo.DiscountType == entity.DiscountPercentage {
		msg = fmt.Sprintf("Success! %s%% discount applied to your order", promo.DiscountValue.StringFixed(0))
	} else {
		msg = fmt.Sprintf("Success! ₹%s discount applied to your order", discount.StringFixed(0))
	}
	return CouponResult{Valid: true, Message: msg, Discount: &discount, NewTotal: &newTotal, Code: promo.Code}
}

// ListAvailable feeds the offers strip on the checkout page.
func (s *PromotionService) ListAvailable() ([]entity.Promotion, error) {
	out, err := s.Repo.ListAvailable(s.DB.NowFunc(), 8)
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}

// ----- Admin -----

type PromotionIn struct {
	Code           string              `json:"code"`
	Description    string              `json:"description"`
	DiscountType   string              `json:"discountType" binding:"required"`
	DiscountValue  decimal.Decimal     `json:"discountValue"`
	MinOrderAmount decimal.Decimal     `json:"minOrderAmount"`
	MaxDiscount    decimal.NullDecimal `json:"maxDiscount"`
	UsageLimit     *int                `json:"usageLimit"`
	ExpiresAt      string              `json:"expiresAt"` // YYYY-MM-DD or RFC3339, empty for none
}

func (s *PromotionService) List(actor entity.Actor, filter string) ([]entity.Promotion, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	out, err := s.Repo.List(filter, s.DB.NowFunc())
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}

func (s *PromotionService) Create(actor entity.Actor, in PromotionIn) (*entity.Promotion, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	code := entity.NormalizeCode(in.Code)
	if code == "" {
		return nil, NewValidation("Promotion code is required")
	}
	if len(code) > 20 {
		return nil, NewValidation("Promotion code must be at most 20 characters")
	}

	p := &entity.Promotion{Code: code, IsActive: true}
	if err := s.applyInput(p, in); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewConflict(fmt.Sprintf("Promotion code %s already exists", code))
		}
		s.log.WithError(err).Error("create promotion")
		return nil, NewPersistence(err)
	}
	s.log.WithFields(logrus.Fields{"code": code, "by": actor.UserID}).Info("promotion created")
	return p, nil
}

// Update edits everything but the code and the usage counter.
func (s *PromotionService) Update(actor entity.Actor, id uint, in PromotionIn) (*entity.Promotion, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	p, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, asAppError(err, "Promotion not found")
	}
	if err := s.applyInput(p, in); err != nil {
		return nil, err
	}
	ok, err := s.Repo.UpdateTerms(p)
	if err != nil {
		return nil, NewPersistence(err)
	}
	cur, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, asAppError(err, "Promotion not found")
	}
	if !ok {
		// checkouts consumed uses after the read above
		return nil, limitBelowUsed(cur.UsedCount)
	}
	s.log.WithFields(logrus.Fields{"code": cur.Code, "by": actor.UserID}).Info("promotion updated")
	return cur, nil
}

func (s *PromotionService) Toggle(actor entity.Actor, id uint) (*entity.Promotion, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	p, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, asAppError(err, "Promotion not found")
	}
	if _, err := s.Repo.SetActive(id, !p.IsActive); err != nil {
		return nil, NewPersistence(err)
	}
	p.IsActive = !p.IsActive
	return p, nil
}

// Delete removes the promotion; orders keep the code they were placed with.
func (s *PromotionService) Delete(actor entity.Actor, id uint) error {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return err
	}
	ok, err := s.Repo.Delete(id)
	if err != nil {
		return NewPersistence(err)
	}
	if !ok {
		return NewNotFound("Promotion not found")
	}
	return nil
}

func (s *PromotionService) applyInput(p *entity.Promotion, in PromotionIn) error {
	dt, err := entity.ParseDiscountType(in.DiscountType)
	if err != nil {
		return NewValidation("Discount type must be percentage or fixed")
	}
	if !in.DiscountValue.IsPositive() {
		return NewValidation("Discount value must be greater than 0")
	}
	if dt == entity.DiscountPercentage && in.DiscountValue.GreaterThan(decimal.NewFromInt(100)) {
		return NewValidation("Percentage discount cannot exceed 100")
	}
	if in.MinOrderAmount.IsNegative() {
		return NewValidation("Minimum order amount cannot be negative")
	}
	if in.MaxDiscount.Valid && !in.MaxDiscount.Decimal.IsPositive() {
		return NewValidation("Maximum discount must be greater than 0")
	}
	if in.UsageLimit != nil && *in.UsageLimit < 1 {
		return NewValidation("Usage limit must be at least 1")
	}
	if in.UsageLimit != nil && *in.UsageLimit < p.UsedCount {
		return limitBelowUsed(p.UsedCount)
	}
	expires, err := parseExpiry(in.ExpiresAt, s.DB.NowFunc().Location())
	if err != nil {
		return NewValidation("Invalid expiry date")
	}

	p.Description = strings.TrimSpace(in.Description)
	p.DiscountType = dt
	p.DiscountValue = in.DiscountValue
	p.MinOrderAmount = in.MinOrderAmount
	p.MaxDiscount = in.MaxDiscount
	if dt == entity.DiscountFixed {
		p.MaxDiscount = decimal.NullDecimal{}
	}
	p.UsageLimit = in.UsageLimit
	p.ExpiresAt = expires
	return nil
}

func limitBelowUsed(used int) error {
	return NewValidation(fmt.Sprintf("Usage limit cannot be below times used (%d)", used))
}

// parseExpiry reads a date as the end of that day in loc.
func parseExpiry(v string, loc *time.Location) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		t = t.In(loc)
		return &t, nil
	}
	d, err := time.ParseInLocation("2006-01-02", v, loc)
	if err != nil {
		return nil, err
	}
	end := d.Add(24*time.Hour - time.Second)
	return &end, nil
}
