package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	maxCheckoutAttempts    = 3
	maxOrderNumberAttempts = 10
)

const checkoutFailure = "An error occurred while processing your order. Please try again."

// RandomOrderNumber is "BC" followed by six digits.
func RandomOrderNumber() string {
	return fmt.Sprintf("BC%06d", rand.Intn(1_000_000))
}

type CheckoutService struct {
	DB        *gorm.DB
	OrderRepo *repository.OrderRepository
	CartRepo  *repository.CartRepository
	MenuRepo  *repository.MenuRepository
	PromoRepo *repository.PromotionRepository
	UserRepo  *repository.UserRepository
	Store     *StoreService
	Promos    *PromotionService

	// NewOrderNumber is swapped in tests to force collisions.
	NewOrderNumber func() string

	log *logrus.Entry
}

func NewCheckoutService(
	db *gorm.DB,
	orderRepo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	menuRepo *repository.MenuRepository,
	promoRepo *repository.PromotionRepository,
	userRepo *repository.UserRepository,
	store *StoreService,
	promos *PromotionService,
	log *logrus.Entry,
) *CheckoutService {
	return &CheckoutService{
		DB: db, OrderRepo: orderRepo, CartRepo: cartRepo, MenuRepo: menuRepo,
		PromoRepo: promoRepo, UserRepo: userRepo, Store: store, Promos: promos,
		NewOrderNumber: RandomOrderNumber,
		log:            log,
	}
}

// ----- DTOs from Controller -----

type CheckoutItemIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

type CheckoutIn struct {
	CustomerName    string `json:"customerName"`
	CustomerPhone   string `json:"customerPhone"`
	CustomerAddress string `json:"customerAddress"`
	CustomerEmail   string `json:"customerEmail"`
	PaymentMethod   string `json:"paymentMethod"` // cash | upi
	CouponCode      string `json:"couponCode"`

	// guests send their cart; signed-in users check out their stored cart
	Items []CheckoutItemIn `json:"items"`
}

const (
	NextStepConfirmation = "confirmation"
	NextStepUPIPayment   = "upi_payment"
)

type CheckoutResult struct {
	Order    *entity.Order `json:"order"`
	NextStep string        `json:"nextStep"`
}

type QuoteIn struct {
	Items      []CheckoutItemIn `json:"items"`
	CouponCode string           `json:"couponCode"`
}

type QuoteView struct {
	Items      []CartLine         `json:"items"`
	Quote      Quote              `json:"quote"`
	Coupon     *CouponResult      `json:"coupon,omitempty"`
	StoreOpen  bool               `json:"storeOpen"`
	Promotions []entity.Promotion `json:"promotions"`
}

// Quote prices the checkout screen without reserving anything.
func (s *CheckoutService) Quote(actor entity.Actor, in QuoteIn) (*QuoteView, error) {
	lines, err := s.resolveLines(s.DB, actor, in.Items)
	if err != nil {
		return nil, asAppError(err, "")
	}
	subtotal := Subtotal(lines)

	view := &QuoteView{Items: lines, StoreOpen: s.Store.IsOpen()}
	var promo *entity.Promotion
	if code := entity.NormalizeCode(in.CouponCode); code != "" {
		res := s.Promos.Validate(code, subtotal)
		view.Coupon = &res
		if res.Valid {
			if promo, err = s.PromoRepo.FindByCode(s.DB, code); err != nil {
				return nil, NewPersistence(err)
			}
		}
	}
	view.Quote = PriceOrder(subtotal, promo, s.DB.NowFunc())

	if view.Promotions, err = s.Promos.ListAvailable(); err != nil {
		return nil, err
	}
	return view, nil
}

// Checkout places an order from the actor's cart (or the guest's items).
// Promotion use, order header, order items and cart clearing commit together.
func (s *CheckoutService) Checkout(actor entity.Actor, in CheckoutIn) (*CheckoutResult, error) {
	if err := s.Store.ensureOpen(); err != nil {
		return nil, err
	}

	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerPhone = strings.TrimSpace(in.CustomerPhone)
	in.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	in.CustomerEmail = strings.ToLower(strings.TrimSpace(in.CustomerEmail))

	if in.CustomerName == "" || in.CustomerPhone == "" || in.CustomerAddress == "" {
		return nil, NewValidation("Please fill in all required fields")
	}
	if !utils.ValidPhone(in.CustomerPhone) {
		return nil, NewValidation("Please enter a valid phone number")
	}
	if in.CustomerEmail != "" && !utils.ValidEmail(in.CustomerEmail) {
		return nil, NewValidation("Please enter a valid email address")
	}
	method, err := entity.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, NewValidation("Please choose cash or UPI payment")
	}

	var order *entity.Order
	for attempt := 1; attempt <= maxCheckoutAttempts; attempt++ {
		order, err = s.placeOrder(actor, in, method)
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		s.log.WithField("attempt", attempt).Warn("order number collision, retrying checkout")
	}
	if err != nil {
		var ae *AppError
		if errors.As(err, &ae) && ae.Kind != KindPersistence {
			return nil, err
		}
		s.log.WithError(err).WithField("user", actor.UserID).Error("checkout failed")
		return nil, &AppError{Kind: KindPersistence, Message: checkoutFailure, Err: err}
	}

	s.log.WithFields(logrus.Fields{
		"order": order.OrderNumber, "total": order.TotalAmount.String(), "method": order.PaymentMethod,
	}).Info("order placed")

	next := NextStepConfirmation
	if order.PaymentMethod == entity.PaymentUPI {
		next = NextStepUPIPayment
	}
	return &CheckoutResult{Order: order, NextStep: next}, nil
}

func (s *CheckoutService) placeOrder(actor entity.Actor, in CheckoutIn, method entity.PaymentMethod) (*entity.Order, error) {
	var order *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		now := tx.NowFunc()

		if !actor.IsAnonymous() {
			u, err := s.UserRepo.FindByID(tx, actor.UserID)
			if err != nil {
				return asAppError(err, "Account not found")
			}
			if !u.IsActive {
				return NewForbidden("Your account has been deactivated")
			}
		}

		lines, err := s.resolveLines(tx, actor, in.Items)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return NewValidation("Your cart is empty")
		}
		subtotal := Subtotal(lines)

		var promo *entity.Promotion
		if code := entity.NormalizeCode(in.CouponCode); code != "" {
			p, err := s.PromoRepo.FindByCode(tx, code)
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return NewValidation("Invalid or expired coupon code")
			}
			if err != nil {
				return err
			}
			if !p.IsValid(now) || !p.MeetsMinimum(subtotal) {
				return NewValidation("Invalid or expired coupon code")
			}
			ok, err := s.PromoRepo.TryConsume(tx, p.ID, now)
			if err != nil {
				return err
			}
			if !ok {
				return NewConflict("This coupon has reached its usage limit")
			}
			promo = p
		}
		quote := PriceOrder(subtotal, promo, now)

		number, err := s.uniqueOrderNumber(tx)
		if err != nil {
			return err
		}

		o := &entity.Order{
			OrderNumber:     number,
			CustomerName:    in.CustomerName,
			CustomerPhone:   in.CustomerPhone,
			CustomerAddress: in.CustomerAddress,
			Subtotal:        quote.Subtotal,
			DeliveryCharges: quote.DeliveryCharges,
			Discount:        quote.Discount,
			TotalAmount:     quote.Total,
			PaymentMethod:   method,
			PaymentStatus:   entity.PaymentPending,
			Status:          entity.OrderPending,
		}
		if promo != nil {
			code := promo.Code
			o.CouponCode = &code
		}
		if actor.IsAnonymous() {
			o.GuestName, o.GuestPhone, o.GuestEmail = in.CustomerName, in.CustomerPhone, in.CustomerEmail
		} else {
			uid := actor.UserID
			o.UserID = &uid
		}
		// cash is collected at the door, so the payment counts as confirmed at once
		if method == entity.PaymentCash {
			o.PaymentStatus = entity.PaymentConfirmed
			o.ConfirmedAt = &now
		}

		if err := s.OrderRepo.CreateOrder(tx, o); err != nil {
			return err
		}
		for _, l := range lines {
			oi := entity.OrderItem{
				OrderID:    o.ID,
				MenuItemID: l.MenuItemID,
				Name:       l.Name,
				Emoji:      l.Emoji,
				Quantity:   l.Quantity,
				UnitPrice:  l.Price,
				TotalPrice: l.Total,
			}
			if err := s.OrderRepo.CreateOrderItem(tx, &oi); err != nil {
				return err
			}
			o.Items = append(o.Items, oi)
		}

		if !actor.IsAnonymous() {
			if err := s.CartRepo.Clear(tx, actor.UserID); err != nil {
				return err
			}
		}
		order = o
		return nil
	})
	return order, err
}

// resolveLines prices the stored cart of a signed-in actor, or the items a guest sent.
func (s *CheckoutService) resolveLines(db *gorm.DB, actor entity.Actor, items []CheckoutItemIn) ([]CartLine, error) {
	if !actor.IsAnonymous() {
		stored, err := s.CartRepo.ListItems(db, actor.UserID)
		if err != nil {
			return nil, err
		}
		lines := make([]CartLine, 0, len(stored))
		for _, ci := range stored {
			if ci.MenuItem.ID == 0 || !ci.MenuItem.InStock {
				name := ci.MenuItem.Name
				if name == "" {
					name = "An item in your cart"
				}
				return nil, NewConflict(name + " is no longer available")
			}
			lines = append(lines, lineFrom(ci.MenuItem, ci.Quantity))
		}
		return lines, nil
	}

	// merge repeated items the same way the cart does
	qty := make(map[uint]int, len(items))
	order := make([]uint, 0, len(items))
	for _, it := range items {
		if it.Quantity < 1 || it.Quantity > entity.MaxCartQuantity {
			return nil, NewValidation("Invalid quantity")
		}
		if _, seen := qty[it.MenuItemID]; !seen {
			order = append(order, it.MenuItemID)
		}
		qty[it.MenuItemID] = entity.CapQuantity(qty[it.MenuItemID] + it.Quantity)
	}
	if len(order) == 0 {
		return nil, nil
	}

	menu, err := s.MenuRepo.FindByIDs(db, order)
	if err != nil {
		return nil, err
	}
	lines := make([]CartLine, 0, len(order))
	for _, id := range order {
		item, ok := menu[id]
		if !ok || !item.InStock {
			return nil, NewNotFound("Item not available")
		}
		lines = append(lines, lineFrom(item, qty[id]))
	}
	return lines, nil
}

func (s *CheckoutService) uniqueOrderNumber(tx *gorm.DB) (string, error) {
	for i := 0; i < maxOrderNumberAttempts; i++ {
		n := s.NewOrderNumber()
		exists, err := s.OrderRepo.OrderNumberExists(tx, n)
		if err != nil {
			return "", err
		}
		if !exists {
			return n, nil
		}
	}
	return "", errors.New("could not allocate a unique order number")
}
