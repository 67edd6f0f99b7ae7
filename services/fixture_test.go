package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/pkg/testdb"
	"github.com/Himanshu790310/biryaniclub7/pkg/upi"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	ist     = time.FixedZone("IST", 5*3600+30*60)
	testNow = time.Date(2025, 1, 15, 12, 0, 0, 0, ist)
)

type fixture struct {
	t   *testing.T
	db  *gorm.DB
	svc *Services
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testdb.New(t, testdb.FixedClock(testNow))
	log, _ := test.NewNullLogger()
	svc := New(db, Options{
		JWTSecret: "test-secret",
		JWTTTL:    time.Hour,
		QR:        upi.New("biryaniclub@paytm", "Biryani Club"),
		Logger:    log,
	})
	return &fixture{t: t, db: db, svc: svc}
}

func (f *fixture) menuItem(name, price string) entity.MenuItem {
	f.t.Helper()
	m := entity.MenuItem{Name: name, Price: entity.MustRupees(price), Category: "Biryani", Emoji: "🍛", InStock: true}
	require.NoError(f.t, f.db.Create(&m).Error)
	return m
}

func (f *fixture) user(username string, role entity.Role) entity.Actor {
	f.t.Helper()
	u := entity.User{
		Username: username, Email: username + "@example.com", PasswordHash: "x",
		Role: role, IsActive: true, LoyaltyTier: entity.TierBronze,
	}
	require.NoError(f.t, f.db.Create(&u).Error)
	return u.Actor()
}

func (f *fixture) reload(u entity.Actor) entity.User {
	f.t.Helper()
	var out entity.User
	require.NoError(f.t, f.db.First(&out, u.UserID).Error)
	return out
}

func (f *fixture) promotion(p entity.Promotion) entity.Promotion {
	f.t.Helper()
	p.IsActive = true
	require.NoError(f.t, f.db.Create(&p).Error)
	return p
}

func (f *fixture) seedStandardPromotions() {
	f.promotion(entity.Promotion{Code: "SAVE50", DiscountType: entity.DiscountFixed,
		DiscountValue: entity.Rupees(50), MinOrderAmount: entity.Rupees(300)})
	limit := 100
	f.promotion(entity.Promotion{Code: "BIRYANI20", DiscountType: entity.DiscountPercentage,
		DiscountValue: entity.Rupees(20), MinOrderAmount: entity.Rupees(200),
		MaxDiscount: decimalCap(150), UsageLimit: &limit})
}

func (f *fixture) setStoreOpen(open bool) {
	f.t.Helper()
	require.NoError(f.t, f.svc.Store.Repo.Set(f.db, entity.SettingStoreOpen, fmt.Sprint(open)))
}

func (f *fixture) addToCart(actor entity.Actor, item entity.MenuItem, qty int) {
	f.t.Helper()
	_, err := f.svc.Cart.Add(actor, AddToCartIn{MenuItemID: item.ID, Quantity: &qty})
	require.NoError(f.t, err)
}

func (f *fixture) orderCount() int64 {
	var n int64
	require.NoError(f.t, f.db.Model(&entity.Order{}).Count(&n).Error)
	return n
}

func validContact(method string) CheckoutIn {
	return CheckoutIn{
		CustomerName:    "Asha",
		CustomerPhone:   "98765 43210",
		CustomerAddress: "12 MG Road",
		PaymentMethod:   method,
	}
}

func requireKind(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, KindOf(err), "error: %v", err)
}

func requireMessage(t *testing.T, err error, msg string) {
	t.Helper()
	var appErr *AppError
	require.True(t, errors.As(err, &appErr), "error: %v", err)
	require.Equal(t, msg, appErr.Message)
}

// onceAfter runs fn right after the first query or update ("query"/"update") on table,
// on the same connection, as a writer that slipped in between a read and a write.
func (f *fixture) onceAfter(kind, table string, fn func(db *gorm.DB)) *bool {
	f.t.Helper()
	fired := new(bool)
	cb := func(db *gorm.DB) {
		if *fired || db.Error != nil || db.Statement.Table != table {
			return
		}
		*fired = true
		fn(db.Session(&gorm.Session{NewDB: true}))
	}
	name := "test:after_" + kind + "_" + table
	var err error
	switch kind {
	case "query":
		err = f.db.Callback().Query().After("gorm:query").Register(name, cb)
	case "update":
		err = f.db.Callback().Update().After("gorm:update").Register(name, cb)
	default:
		f.t.Fatalf("unknown callback kind %q", kind)
	}
	require.NoError(f.t, err)
	return fired
}

func decimalCap(v int64) decimal.NullDecimal { return decimal.NewNullDecimal(entity.Rupees(v)) }

// placeCashOrder checks out one item for actor (a guest when anonymous).
func (f *fixture) placeCashOrder(actor entity.Actor, item entity.MenuItem, qty int) *entity.Order {
	f.t.Helper()
	in := validContact("cash")
	if actor.IsAnonymous() {
		in.Items = []CheckoutItemIn{{MenuItemID: item.ID, Quantity: qty}}
	} else {
		f.addToCart(actor, item, qty)
	}
	res, err := f.svc.Checkout.Checkout(actor, in)
	require.NoError(f.t, err)
	return res.Order
}

func (f *fixture) setStatus(admin entity.Actor, o *entity.Order, status entity.OrderStatus) *entity.Order {
	f.t.Helper()
	out, err := f.svc.Orders.AdminUpdateStatus(admin, o.ID, StatusIn{Status: string(status)})
	require.NoError(f.t, err)
	return out
}
