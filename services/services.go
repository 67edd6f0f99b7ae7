package services

import (
	"time"

	"github.com/Himanshu790310/biryaniclub7/pkg/logger"
	"github.com/Himanshu790310/biryaniclub7/repository"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Options struct {
	JWTSecret string
	JWTTTL    time.Duration
	QR        QRGenerator
	Logger    *logrus.Logger
}

// Services wires every service over one database handle.
// The database's NowFunc is the clock for all of them.
type Services struct {
	Store      *StoreService
	Menu       *MenuService
	Cart       *CartService
	Promotions *PromotionService
	Checkout   *CheckoutService
	Orders     *OrderService
	Delivery   *DeliveryService
	Loyalty    *LoyaltyService
	Auth       *AuthService
	Users      *UserService

	Now func() time.Time
}

func New(db *gorm.DB, opts Options) *Services {
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}

	orderRepo := repository.NewOrderRepository(db)
	cartRepo := repository.NewCartRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	promoRepo := repository.NewPromotionRepository(db)
	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	loyaltyRepo := repository.NewLoyaltyRepository(db)

	store := NewStoreService(db, settingsRepo, logger.Component(log, "store"))
	promos := NewPromotionService(db, promoRepo, logger.Component(log, "promotions"))
	loyalty := NewLoyaltyService(db, userRepo, orderRepo, loyaltyRepo, logger.Component(log, "loyalty"))

	return &Services{
		Store:      store,
		Menu:       NewMenuService(menuRepo, logger.Component(log, "menu")),
		Cart:       NewCartService(db, cartRepo, menuRepo, store, logger.Component(log, "cart")),
		Promotions: promos,
		Checkout: NewCheckoutService(db, orderRepo, cartRepo, menuRepo, promoRepo, userRepo,
			store, promos, logger.Component(log, "checkout")),
		Orders:   NewOrderService(db, orderRepo, loyalty, store, opts.QR, logger.Component(log, "orders")),
		Delivery: NewDeliveryService(db, orderRepo, loyalty, logger.Component(log, "delivery")),
		Loyalty:  loyalty,
		Auth:     NewAuthService(userRepo, opts.JWTSecret, opts.JWTTTL, db.NowFunc, logger.Component(log, "auth")),
		Users:    NewUserService(userRepo, logger.Component(log, "users")),
		Now:      db.NowFunc,
	}
}
