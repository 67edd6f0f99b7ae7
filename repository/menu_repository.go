// repository/menu_repository.go
package repository

import (
	"strings"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

type MenuFilter struct {
	Search   string
	Category string // "" or "all" means every category
	Stock    string // admin only: "available", "unavailable" or ""
}

func (f MenuFilter) apply(q *gorm.DB) *gorm.DB {
	if s := strings.TrimSpace(f.Search); s != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
	if f.Category != "" && f.Category != "all" {
		q = q.Where("category = ?", f.Category)
	}
	switch f.Stock {
	case "available":
		q = q.Where("in_stock = ?", true)
	case "unavailable":
		q = q.Where("in_stock = ?", false)
	}
	return q
}

// public menu: in-stock items only
func (r *MenuRepository) ListAvailable(f MenuFilter) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	f.Stock = "available"
	err := f.apply(r.DB.Model(&entity.MenuItem{})).Order("id").Find(&items).Error
	return items, err
}

func (r *MenuRepository) ListAll(f MenuFilter) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := f.apply(r.DB.Model(&entity.MenuItem{})).Order("category, name").Find(&items).Error
	return items, err
}

func (r *MenuRepository) Popular(limit int) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("in_stock = ?", true).
		Order("popularity DESC, id").Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *MenuRepository) Categories() ([]string, error) {
	var cats []string
	err := r.DB.Model(&entity.MenuItem{}).
		Distinct("category").Order("category").
		Pluck("category", &cats).Error
	return cats, err
}

func (r *MenuRepository) FindByID(db *gorm.DB, id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	if err := db.First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *MenuRepository) FindByIDs(db *gorm.DB, ids []uint) (map[uint]entity.MenuItem, error) {
	var items []entity.MenuItem
	if err := db.Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	out := make(map[uint]entity.MenuItem, len(items))
	for _, it := range items {
		out[it.ID] = it
	}
	return out, nil
}

func (r *MenuRepository) Create(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

// UpdateDetails leaves in_stock alone unless withStock is set, so a concurrent ToggleStock survives.
func (r *MenuRepository) UpdateDetails(item *entity.MenuItem, withStock bool) error {
	cols := []interface{}{"description", "price", "category", "emoji", "popularity"}
	if withStock {
		cols = append(cols, "in_stock")
	}
	return r.DB.Model(item).Select("name", cols...).Updates(item).Error
}

// ToggleStock flips in_stock in one statement and returns the new value.
func (r *MenuRepository) ToggleStock(id uint) (bool, error) {
	var inStock bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.MenuItem{}).Where("id = ?", id).
			Update("in_stock", gorm.Expr("NOT in_stock"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&entity.MenuItem{}).Select("in_stock").Where("id = ?", id).Scan(&inStock).Error
	})
	return inStock, err
}
