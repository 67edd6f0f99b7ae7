// services/menu_service.go
package services

import (
	"strings"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const popularLimit = 6

type MenuService struct {
	Repo *repository.MenuRepository
	log  *logrus.Entry
}

func NewMenuService(repo *repository.MenuRepository, log *logrus.Entry) *MenuService {
	return &MenuService{Repo: repo, log: log}
}

// List is the public menu: in-stock items, optionally searched and filtered.
func (s *MenuService) List(search, category string) ([]entity.MenuItem, error) {
	out, err := s.Repo.ListAvailable(repository.MenuFilter{Search: search, Category: category})
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}

func (s *MenuService) Popular() ([]entity.MenuItem, error) {
	out, err := s.Repo.Popular(popularLimit)
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}

func (s *MenuService) Categories() ([]string, error) {
	out, err := s.Repo.Categories()
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}

func (s *MenuService) AdminList(actor entity.Actor, category, stock string) ([]entity.MenuItem, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	out, err := s.Repo.ListAll(repository.MenuFilter{Category: category, Stock: stock})
	if err != nil {
		return nil, NewPersistence(err)
	}
	return out, nil
}

type MenuItemIn struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category" binding:"required"`
	Emoji       string          `json:"emoji"`
	Popularity  int             `json:"popularity"`
	InStock     *bool           `json:"inStock"`
}

func (in MenuItemIn) apply(m *entity.MenuItem) error {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return NewValidation("Name and category are required")
	}
	if !in.Price.IsPositive() {
		return NewValidation("Price must be greater than 0")
	}
	if in.Popularity < 0 || in.Popularity > 10 {
		return NewValidation("Popularity must be between 0 and 10")
	}
	m.Name = name
	m.Description = strings.TrimSpace(in.Description)
	m.Price = in.Price.Round(2)
	m.Category = category
	m.Emoji = strings.TrimSpace(in.Emoji)
	m.Popularity = in.Popularity
	if in.InStock != nil {
		m.InStock = *in.InStock
	}
	return nil
}

func (s *MenuService) Create(actor entity.Actor, in MenuItemIn) (*entity.MenuItem, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	m := &entity.MenuItem{InStock: true}
	if err := in.apply(m); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(m); err != nil {
		return nil, NewPersistence(err)
	}
	s.log.WithField("item", m.Name).Info("menu item created")
	return m, nil
}

// Update never touches order history: order items keep their own snapshot.
func (s *MenuService) Update(actor entity.Actor, id uint, in MenuItemIn) (*entity.MenuItem, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return nil, err
	}
	m, err := s.Repo.FindByID(s.Repo.DB, id)
	if err != nil {
		return nil, asAppError(err, "Menu item not found")
	}
	if err := in.apply(m); err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateDetails(m, in.InStock != nil); err != nil {
		return nil, NewPersistence(err)
	}
	fresh, err := s.Repo.FindByID(s.Repo.DB, id)
	if err != nil {
		return nil, asAppError(err, "Menu item not found")
	}
	return fresh, nil
}

func (s *MenuService) ToggleStock(actor entity.Actor, id uint) (bool, error) {
	if err := requireRole(actor, entity.RoleAdmin); err != nil {
		return false, err
	}
	inStock, err := s.Repo.ToggleStock(id)
	if err != nil {
		return false, asAppError(err, "Menu item not found")
	}
	return inStock, nil
}
