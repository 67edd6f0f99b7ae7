package repository

import (
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"gorm.io/gorm"
)

type PromotionRepository struct{ DB *gorm.DB }

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{DB: db}
}

// FindByCode expects an already normalised code.
func (r *PromotionRepository) FindByCode(db *gorm.DB, code string) (*entity.Promotion, error) {
	var p entity.Promotion
	if err := db.Where("code = ?", code).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromotionRepository) FindByID(id uint) (*entity.Promotion, error) {
	var p entity.Promotion
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// List filter: all, active, inactive or expired.
func (r *PromotionRepository) List(filter string, now time.Time) ([]entity.Promotion, error) {
	q := r.DB.Model(&entity.Promotion{})
	switch filter {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	case "expired":
		q = q.Where("expires_at IS NOT NULL AND expires_at < ?", now)
	}
	var out []entity.Promotion
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

// ListAvailable: active and not expired; usage is not checked here.
func (r *PromotionRepository) ListAvailable(now time.Time, limit int) ([]entity.Promotion, error) {
	var out []entity.Promotion
	err := r.DB.Where("is_active = ? AND (expires_at IS NULL OR expires_at >= ?)", true, now).
		Order("id").Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *PromotionRepository) Create(p *entity.Promotion) error {
	return r.DB.Create(p).Error
}

// UpdateTerms writes the admin-editable columns. used_count belongs to TryConsume,
// and a usage limit below the stored count matches no row.
func (r *PromotionRepository) UpdateTerms(p *entity.Promotion) (bool, error) {
	q := r.DB.Model(p)
	if p.UsageLimit != nil {
		q = q.Where("used_count <= ?", *p.UsageLimit)
	}
	res := q.Select("description", "discount_type", "discount_value", "min_order_amount",
		"max_discount", "usage_limit", "expires_at").
		Updates(p)
	return res.RowsAffected == 1, res.Error
}

func (r *PromotionRepository) SetActive(id uint, active bool) (bool, error) {
	res := r.DB.Model(&entity.Promotion{}).Where("id = ?", id).Update("is_active", active)
	return res.RowsAffected > 0, res.Error
}

func (r *PromotionRepository) Delete(id uint) (bool, error) {
	res := r.DB.Delete(&entity.Promotion{}, id)
	return res.RowsAffected > 0, res.Error
}

// TryConsume increments used_count only while the promotion is still usable.
// Validation and increment are a single statement, so two checkouts can never
// both take the last use.
func (r *PromotionRepository) TryConsume(tx *gorm.DB, id uint, now time.Time) (bool, error) {
	res := tx.Model(&entity.Promotion{}).
		Where("id = ? AND is_active = ?", id, true).
		Where("expires_at IS NULL OR expires_at >= ?", now).
		Where("usage_limit IS NULL OR used_count < usage_limit").
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
