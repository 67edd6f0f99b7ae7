package repository

import (
	"github.com/Himanshu790310/biryaniclub7/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// ListItems returns the user's cart lines with their menu items, oldest first.
func (r *CartRepository) ListItems(db *gorm.DB, userID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := db.Where("user_id = ?", userID).
		Preload("MenuItem").
		Order("id").
		Find(&items).Error
	return items, err
}

// UpsertItem adds qty to the (user, item) line, creating it if needed.
// The merged quantity is capped at entity.MaxCartQuantity in the same statement.
func (r *CartRepository) UpsertItem(tx *gorm.DB, userID, menuItemID uint, qty int) error {
	row := entity.CartItem{UserID: userID, MenuItemID: menuItemID, Quantity: entity.CapQuantity(qty)}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "menu_item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr(
				"CASE WHEN cart_items.quantity + excluded.quantity > ? THEN ? ELSE cart_items.quantity + excluded.quantity END",
				entity.MaxCartQuantity, entity.MaxCartQuantity),
			"updated_at": tx.NowFunc(),
		}),
	}).Omit("MenuItem").Create(&row).Error
}

// SetQuantity reports false when the user has no such line.
func (r *CartRepository) SetQuantity(tx *gorm.DB, userID, menuItemID uint, qty int) (bool, error) {
	res := tx.Model(&entity.CartItem{}).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Update("quantity", qty)
	return res.RowsAffected > 0, res.Error
}

func (r *CartRepository) RemoveItem(tx *gorm.DB, userID, menuItemID uint) (bool, error) {
	res := tx.Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		Delete(&entity.CartItem{})
	return res.RowsAffected > 0, res.Error
}

func (r *CartRepository) Clear(tx *gorm.DB, userID uint) error {
	return tx.Where("user_id = ?", userID).Delete(&entity.CartItem{}).Error
}

// CountUnits sums quantities, which is what the cart badge shows.
func (r *CartRepository) CountUnits(userID uint) (int, error) {
	var n int
	err := r.DB.Model(&entity.CartItem{}).
		Select("COALESCE(SUM(quantity), 0)").
		Where("user_id = ?", userID).
		Scan(&n).Error
	return n, err
}
