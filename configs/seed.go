package configs

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed seed_data.yaml
var seedData []byte

type seedMenuItem struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Price       string `yaml:"price"`
	Category    string `yaml:"category"`
	Emoji       string `yaml:"emoji"`
	Popularity  int    `yaml:"popularity"`
	InStock     *bool  `yaml:"in_stock"` // default true
}

type seedPromotion struct {
	Code           string `yaml:"code"`
	Description    string `yaml:"description"`
	DiscountType   string `yaml:"discount_type"`
	DiscountValue  string `yaml:"discount_value"`
	MinOrderAmount string `yaml:"min_order_amount"`
	MaxDiscount    string `yaml:"max_discount"`
	UsageLimit     *int   `yaml:"usage_limit"`
}

type SeedCatalog struct {
	Settings   map[string]string `yaml:"settings"`
	Menu       []seedMenuItem    `yaml:"menu"`
	Promotions []seedPromotion   `yaml:"promotions"`
}

func LoadSeedCatalog() (*SeedCatalog, error) {
	var cat SeedCatalog
	if err := yaml.Unmarshal(seedData, &cat); err != nil {
		return nil, fmt.Errorf("parse seed catalog: %w", err)
	}
	return &cat, nil
}

// Seed fills an empty database with settings, accounts, menu and promotions.
// Every step is idempotent.
func Seed(db *gorm.DB, cfg *Config, log *logrus.Logger) error {
	cat, err := LoadSeedCatalog()
	if err != nil {
		return err
	}
	if err := SeedSettings(db, cat); err != nil {
		return fmt.Errorf("seed settings: %w", err)
	}
	if err := SeedStaff(db, cfg, log); err != nil {
		return fmt.Errorf("seed staff: %w", err)
	}
	if err := SeedMenu(db, cat, log); err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}
	if err := SeedPromotions(db, cat, log); err != nil {
		return fmt.Errorf("seed promotions: %w", err)
	}
	return nil
}

func SeedSettings(db *gorm.DB, cat *SeedCatalog) error {
	for k, v := range cat.Settings {
		if err := db.Where(entity.StoreSetting{Key: k}).
			Attrs(entity.StoreSetting{Value: v}).
			FirstOrCreate(&entity.StoreSetting{}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedStaff creates the first admin and delivery accounts.
func SeedStaff(db *gorm.DB, cfg *Config, log *logrus.Logger) error {
	staff := []struct {
		username, password, fullName string
		role                         entity.Role
	}{
		{cfg.AdminUsername, cfg.AdminPassword, "Administrator", entity.RoleAdmin},
		{cfg.DeliveryUsername, cfg.DeliveryPassword, "Delivery Person", entity.RoleDelivery},
	}

	for _, s := range staff {
		if s.username == "" || s.password == "" {
			log.Warnf("skip seeding %s account: missing username/password", s.role)
			continue
		}

		var existing entity.User
		err := db.Where("username = ?", s.username).First(&existing).Error
		if err == nil {
			log.Infof("%s account already exists: %s", s.role, s.username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(s.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := entity.User{
			Username:     s.username,
			Email:        s.username + "@biryaniclub.com",
			PasswordHash: string(hash),
			FullName:     s.fullName,
			Role:         s.role,
			IsActive:     true,
			LoyaltyTier:  entity.TierBronze,
		}
		if err := db.Create(&u).Error; err != nil {
			return err
		}
		log.Infof("seeded %s account %s", s.role, s.username)
	}
	return nil
}

func SeedMenu(db *gorm.DB, cat *SeedCatalog, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&entity.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := make([]entity.MenuItem, 0, len(cat.Menu))
	for _, m := range cat.Menu {
		price, err := decimal.NewFromString(m.Price)
		if err != nil {
			return fmt.Errorf("menu item %q: %w", m.Name, err)
		}
		inStock := true
		if m.InStock != nil {
			inStock = *m.InStock
		}
		items = append(items, entity.MenuItem{
			Name:        m.Name,
			Description: m.Description,
			Price:       price,
			Category:    m.Category,
			Emoji:       m.Emoji,
			InStock:     inStock,
			Popularity:  m.Popularity,
		})
	}
	if err := db.CreateInBatches(items, 50).Error; err != nil {
		return err
	}
	log.Infof("seeded %d menu items", len(items))
	return nil
}

func SeedPromotions(db *gorm.DB, cat *SeedCatalog, log *logrus.Logger) error {
	var count int64
	if err := db.Model(&entity.Promotion{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, p := range cat.Promotions {
		promo, err := p.toEntity()
		if err != nil {
			return fmt.Errorf("promotion %q: %w", p.Code, err)
		}
		if err := db.Create(promo).Error; err != nil {
			return err
		}
	}
	log.Infof("seeded %d promotions", len(cat.Promotions))
	return nil
}

func (p seedPromotion) toEntity() (*entity.Promotion, error) {
	dt, err := entity.ParseDiscountType(p.DiscountType)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(p.DiscountValue)
	if err != nil {
		return nil, err
	}
	minOrder := decimal.Zero
	if p.MinOrderAmount != "" {
		if minOrder, err = decimal.NewFromString(p.MinOrderAmount); err != nil {
			return nil, err
		}
	}
	var maxDiscount decimal.NullDecimal
	if p.MaxDiscount != "" {
		v, err := decimal.NewFromString(p.MaxDiscount)
		if err != nil {
			return nil, err
		}
		maxDiscount = decimal.NewNullDecimal(v)
	}
	return &entity.Promotion{
		Code:           entity.NormalizeCode(p.Code),
		Description:    p.Description,
		DiscountType:   dt,
		DiscountValue:  value,
		MinOrderAmount: minOrder,
		MaxDiscount:    maxDiscount,
		UsageLimit:     p.UsageLimit,
		IsActive:       true,
	}, nil
}
