package repository

import (
	"errors"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"gorm.io/gorm"
)

// UserRepository only talks to the users table.
type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) FindByID(db *gorm.DB, id uint) (*entity.User, error) {
	var user entity.User
	if err := db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var user entity.User
	if err := r.DB.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByLogin accepts a username or a phone number.
// Phones are matched on their digits, so "98765 43210" finds "9876543210".
func (r *UserRepository) FindByLogin(identifier string) (*entity.User, error) {
	u, err := r.FindByUsername(identifier)
	if err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
		return u, err
	}

	digits := utils.DigitsOnly(identifier)
	if len(digits) < 10 || len(digits) > 15 {
		return nil, gorm.ErrRecordNotFound
	}
	var user entity.User
	err = r.DB.Where("phone = ? OR phone = ? OR phone = ?", identifier, digits, "+"+digits).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists checks uniqueness of username, email or phone, optionally ignoring one user.
func (r *UserRepository) Exists(column, value string, exceptID uint) (bool, error) {
	switch column {
	case "username", "email", "phone":
	default:
		return false, errors.New("unsupported column " + column)
	}
	var count int64
	q := r.DB.Model(&entity.User{}).Where(column+" = ?", value)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserRepository) Create(user *entity.User) error {
	return r.DB.Create(user).Error
}

// UpdateProfile writes profile columns only; points, tier and status have their own updates.
func (r *UserRepository) UpdateProfile(user *entity.User) error {
	return r.DB.Model(user).Select("full_name", "email", "phone", "role").Updates(user).Error
}

// List filters by role ("" for all) and status ("active", "inactive" or "").
func (r *UserRepository) List(role entity.Role, status string) ([]entity.User, error) {
	q := r.DB.Model(&entity.User{})
	if role != "" {
		q = q.Where("role = ?", role)
	}
	switch status {
	case "active":
		q = q.Where("is_active = ?", true)
	case "inactive":
		q = q.Where("is_active = ?", false)
	}
	var out []entity.User
	err := q.Order("created_at DESC, id DESC").Find(&out).Error
	return out, err
}

func (r *UserRepository) SetActive(id uint, active bool) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Update("is_active", active).Error
}

// AddPoints credits points without reading the balance first.
func (r *UserRepository) AddPoints(tx *gorm.DB, id uint, points int) error {
	return tx.Model(&entity.User{}).Where("id = ?", id).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points + ?", points)).Error
}

// DeductPoints fails (false) rather than let the balance go negative.
func (r *UserRepository) DeductPoints(tx *gorm.DB, id uint, points int) (bool, error) {
	res := tx.Model(&entity.User{}).
		Where("id = ? AND loyalty_points >= ?", id, points).
		UpdateColumn("loyalty_points", gorm.Expr("loyalty_points - ?", points))
	return res.RowsAffected == 1, res.Error
}

func (r *UserRepository) SetTier(db *gorm.DB, id uint, tier entity.Tier) error {
	return db.Model(&entity.User{}).Where("id = ?", id).UpdateColumn("loyalty_tier", tier).Error
}
