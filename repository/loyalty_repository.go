package repository

import (
	"github.com/Himanshu790310/biryaniclub7/entity"
	"gorm.io/gorm"
)

type LoyaltyRepository struct{ DB *gorm.DB }

func NewLoyaltyRepository(db *gorm.DB) *LoyaltyRepository { return &LoyaltyRepository{DB: db} }

func (r *LoyaltyRepository) Record(tx *gorm.DB, t *entity.LoyaltyTransaction) error {
	return tx.Create(t).Error
}

func (r *LoyaltyRepository) History(userID uint, limit int) ([]entity.LoyaltyTransaction, error) {
	if limit <= 0 {
		limit = 20
	}
	var out []entity.LoyaltyTransaction
	err := r.DB.Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Find(&out).Error
	return out, err
}
