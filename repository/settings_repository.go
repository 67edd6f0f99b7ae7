package repository

import (
	"errors"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct{ DB *gorm.DB }

func NewSettingsRepository(db *gorm.DB) *SettingsRepository { return &SettingsRepository{DB: db} }

// Get reports ok=false when the key was never written.
func (r *SettingsRepository) Get(db *gorm.DB, key string) (value string, ok bool, err error) {
	var s entity.StoreSetting
	err = db.Where(&entity.StoreSetting{Key: key}).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return s.Value, true, nil
}

func (r *SettingsRepository) Set(tx *gorm.DB, key, value string) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entity.StoreSetting{Key: key, Value: value}).Error
}
