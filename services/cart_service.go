package services

import (
	"errors"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type CartService struct {
	DB       *gorm.DB
	CartRepo *repository.CartRepository
	MenuRepo *repository.MenuRepository
	Store    *StoreService
	log      *logrus.Entry
}

func NewCartService(db *gorm.DB, cr *repository.CartRepository, mr *repository.MenuRepository, store *StoreService, log *logrus.Entry) *CartService {
	return &CartService{DB: db, CartRepo: cr, MenuRepo: mr, Store: store, log: log}
}

// CartLine is a priced line, either from the cart table or from a guest request.
type CartLine struct {
	MenuItemID uint            `json:"menuItemId"`
	Name       string          `json:"name"`
	Emoji      string          `json:"emoji"`
	Price      decimal.Decimal `json:"price"`
	Quantity   int             `json:"quantity"`
	Total      decimal.Decimal `json:"total"`
	InStock    bool            `json:"inStock"`
}

func lineFrom(item entity.MenuItem, qty int) CartLine {
	return CartLine{
		MenuItemID: item.ID,
		Name:       item.Name,
		Emoji:      item.Emoji,
		Price:      item.Price,
		Quantity:   qty,
		Total:      item.Price.Mul(decimal.NewFromInt(int64(qty))),
		InStock:    item.InStock,
	}
}

type CartView struct {
	Items    []CartLine      `json:"items"`
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Quote    Quote           `json:"quote"`
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   *int `json:"quantity"` // defaults to 1
}

type UpdateCartIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Quantity   int  `json:"quantity"`
}

// Get is empty for guests; their cart lives on the client.
func (s *CartService) Get(actor entity.Actor) (*CartView, error) {
	view := &CartView{Items: []CartLine{}, Subtotal: decimal.Zero}
	if actor.IsAnonymous() {
		view.Quote = PriceOrder(decimal.Zero, nil, s.DB.NowFunc())
		return view, nil
	}
	lines, err := s.lines(s.DB, actor.UserID)
	if err != nil {
		s.log.WithError(err).Error("load cart")
		return nil, NewPersistence(err)
	}
	view.Items = lines
	for _, l := range lines {
		view.Count += l.Quantity
	}
	view.Subtotal = Subtotal(lines)
	view.Quote = PriceOrder(view.Subtotal, nil, s.DB.NowFunc())
	return view, nil
}

func (s *CartService) lines(db *gorm.DB, userID uint) ([]CartLine, error) {
	items, err := s.CartRepo.ListItems(db, userID)
	if err != nil {
		return nil, err
	}
	out := make([]CartLine, 0, len(items))
	for _, ci := range items {
		out = append(out, lineFrom(ci.MenuItem, ci.Quantity))
	}
	return out, nil
}

// Add merges into an existing line; the merged quantity is capped at 10.
func (s *CartService) Add(actor entity.Actor, in AddToCartIn) (*entity.MenuItem, error) {
	if err := requireLogin(actor, "Please login to add items to cart"); err != nil {
		return nil, err
	}
	if err := s.Store.ensureOpen(); err != nil {
		return nil, err
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty < 1 || qty > entity.MaxCartQuantity {
		return nil, NewValidation("Invalid quantity")
	}

	item, err := s.MenuRepo.FindByID(s.DB, in.MenuItemID)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && !item.InStock) {
		return nil, NewNotFound("Item not available")
	}
	if err != nil {
		return nil, NewPersistence(err)
	}

	if err := s.CartRepo.UpsertItem(s.DB, actor.UserID, item.ID, qty); err != nil {
		s.log.WithError(err).WithField("user", actor.UserID).Error("add to cart")
		return nil, NewPersistence(err)
	}
	return item, nil
}

// UpdateQty removes the line for quantity <= 0 and caps it at 10 otherwise.
func (s *CartService) UpdateQty(actor entity.Actor, in UpdateCartIn) error {
	if err := requireLogin(actor, "Please login to update cart"); err != nil {
		return err
	}
	if in.Quantity <= 0 {
		return s.Remove(actor, in.MenuItemID)
	}
	if err := s.Store.ensureOpen(); err != nil {
		return err
	}
	ok, err := s.CartRepo.SetQuantity(s.DB, actor.UserID, in.MenuItemID, entity.CapQuantity(in.Quantity))
	if err != nil {
		return NewPersistence(err)
	}
	if !ok {
		return NewNotFound("Item not in cart")
	}
	return nil
}

func (s *CartService) Remove(actor entity.Actor, menuItemID uint) error {
	if err := requireLogin(actor, "Please login to update cart"); err != nil {
		return err
	}
	ok, err := s.CartRepo.RemoveItem(s.DB, actor.UserID, menuItemID)
	if err != nil {
		return NewPersistence(err)
	}
	if !ok {
		return NewNotFound("Item not in cart")
	}
	return nil
}

func (s *CartService) Clear(actor entity.Actor) error {
	if err := requireLogin(actor, "Please login to update cart"); err != nil {
		return err
	}
	if err := s.CartRepo.Clear(s.DB, actor.UserID); err != nil {
		return NewPersistence(err)
	}
	return nil
}

// Count is the number of units, 0 for guests.
func (s *CartService) Count(actor entity.Actor) int {
	if actor.IsAnonymous() {
		return 0
	}
	n, err := s.CartRepo.CountUnits(actor.UserID)
	if err != nil {
		s.log.WithError(err).Warn("cart count")
		return 0
	}
	return n
}
