package services

import (
	"testing"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/Himanshu790310/biryaniclub7/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestAuth_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)

	u, err := f.svc.Auth.Register(RegisterIn{
		Username: "asha", Email: "Asha@Example.com", Password: "secret1",
		FullName: "Asha Rao", Phone: "98765-43210",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, u.Role)
	assert.Equal(t, "asha@example.com", u.Email)
	require.NotNil(t, u.Phone)
	assert.Equal(t, "9876543210", *u.Phone)
	assert.NotEqual(t, "secret1", u.PasswordHash)

	res, err := f.svc.Auth.Login(LoginIn{Username: "asha", Password: "secret1"})
	require.NoError(t, err)
	claims, err := utils.ParseToken(res.Token, "test-secret", testNow)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, entity.RoleCustomer, claims.Role)

	_, err = f.svc.Auth.Login(LoginIn{Username: "9876543210", Password: "secret1"})
	require.NoError(t, err, "phone works as a login")

	_, err = f.svc.Auth.Login(LoginIn{Username: "asha", Password: "wrong"})
	requireKind(t, err, KindAuthorization)
	assert.Equal(t, "Invalid username/phone or password", UserMessage(err))

	me, err := f.svc.Auth.Profile(u.Actor())
	require.NoError(t, err)
	assert.Equal(t, "asha", me.Username)
}

func TestAuth_RegisterRejections(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Auth.Register(RegisterIn{Username: "asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = f.svc.Auth.Register(RegisterIn{Username: "ab", Email: "nope", Password: "123"})
	requireKind(t, err, KindValidation)
	assert.Equal(t,
		"Username must be at least 3 characters; Please enter a valid email address; Password must be at least 6 characters",
		UserMessage(err))

	_, err = f.svc.Auth.Register(RegisterIn{Username: "asha", Email: "other@example.com", Password: "secret1"})
	requireKind(t, err, KindConflict)
	assert.Equal(t, "Username already exists", UserMessage(err))

	_, err = f.svc.Auth.Register(RegisterIn{Username: "ravi", Email: "ASHA@example.com", Password: "secret1"})
	requireKind(t, err, KindConflict)
	assert.Equal(t, "Email already registered", UserMessage(err))
}

func TestAuth_DeactivatedAccountCannotLogin(t *testing.T) {
	f := newFixture(t)
	admin := f.user("admin", entity.RoleAdmin)
	u, err := f.svc.Auth.Register(RegisterIn{Username: "asha", Email: "asha@example.com", Password: "secret1"})
	require.NoError(t, err)

	toggled, err := f.svc.Users.ToggleActive(admin, u.ID)
	require.NoError(t, err)
	assert.False(t, toggled.IsActive)

	_, err = f.svc.Auth.Login(LoginIn{Username: "asha", Password: "secret1"})
	requireKind(t, err, KindAuthorization)
	assert.Equal(t, "Your account has been deactivated", UserMessage(err))
}

func TestUsers_AdminRules(t *testing.T) {
	f := newFixture(t)
	admin := f.user("admin", entity.RoleAdmin)
	asha := f.user("asha", entity.RoleCustomer)
	f.user("rider", entity.RoleDelivery)

	_, err := f.svc.Users.ToggleActive(admin, admin.UserID)
	requireKind(t, err, KindValidation)

	role := "admin"
	_, err = f.svc.Users.Update(admin, admin.UserID, UserUpdateIn{Role: &role})
	require.NoError(t, err, "keeping the same role is fine")
	role = "customer"
	_, err = f.svc.Users.Update(admin, admin.UserID, UserUpdateIn{Role: &role})
	requireKind(t, err, KindValidation)

	role = "delivery"
	name := "  Asha R "
	u, err := f.svc.Users.Update(admin, asha.UserID, UserUpdateIn{Role: &role, FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleDelivery, u.Role)
	assert.Equal(t, "Asha R", u.FullName)

	email := "admin@example.com"
	_, err = f.svc.Users.Update(admin, asha.UserID, UserUpdateIn{Email: &email})
	requireKind(t, err, KindConflict)

	riders, err := f.svc.Users.List(admin, "delivery", "")
	require.NoError(t, err)
	assert.Len(t, riders, 2)

	_, err = f.svc.Users.List(asha, "", "")
	requireKind(t, err, KindAuthorization)
}

func TestUsers_UpdateKeepsPointsAndStatus(t *testing.T) {
	f := newFixture(t)
	admin := f.user("admin", entity.RoleAdmin)
	asha := f.user("asha", entity.RoleCustomer)
	f.givePoints(asha, 40)

	// a delivery credit and a deactivation land between the admin's read and write
	fired := f.onceAfter("query", "users", func(db *gorm.DB) {
		require.NoError(t, f.svc.Users.Repo.AddPoints(db, asha.UserID, 50))
		require.NoError(t, db.Model(&entity.User{}).Where("id = ?", asha.UserID).Update("is_active", false).Error)
	})

	name := "Asha Rao"
	phone := "+91 98765 43210"
	u, err := f.svc.Users.Update(admin, asha.UserID, UserUpdateIn{FullName: &name, Phone: &phone})
	require.NoError(t, err)
	require.True(t, *fired)
	assert.Equal(t, "Asha Rao", u.FullName)
	require.NotNil(t, u.Phone)
	assert.Equal(t, 90, u.LoyaltyPoints)
	assert.False(t, u.IsActive)

	stored := f.reload(asha)
	assert.Equal(t, 90, stored.LoyaltyPoints)
	assert.False(t, stored.IsActive)
	assert.Equal(t, "Asha Rao", stored.FullName)
}

func TestStore_Toggle(t *testing.T) {
	f := newFixture(t)
	admin := f.user("admin", entity.RoleAdmin)
	customer := f.user("asha", entity.RoleCustomer)

	assert.True(t, f.svc.Store.IsOpen(), "a missing setting means open")

	open, err := f.svc.Store.Toggle(admin)
	require.NoError(t, err)
	assert.False(t, open)
	assert.False(t, f.svc.Store.IsOpen())

	open, err = f.svc.Store.Toggle(admin)
	require.NoError(t, err)
	assert.True(t, open)

	_, err = f.svc.Store.Toggle(customer)
	requireKind(t, err, KindAuthorization)
	assert.True(t, f.svc.Store.IsOpen())
}

func TestMenu_AdminAndPublicViews(t *testing.T) {
	f := newFixture(t)
	admin := f.user("admin", entity.RoleAdmin)
	f.menuItem("Chicken Biryani", "119")

	item, err := f.svc.Menu.Create(admin, MenuItemIn{
		Name: "Mango Lassi", Price: entity.MustRupees("79.5"), Category: "Beverages", Popularity: 8,
	})
	require.NoError(t, err)
	assert.True(t, item.InStock)

	_, err = f.svc.Menu.Create(admin, MenuItemIn{Name: "Free Lunch", Category: "Biryani"})
	requireKind(t, err, KindValidation)

	inStock, err := f.svc.Menu.ToggleStock(admin, item.ID)
	require.NoError(t, err)
	assert.False(t, inStock)

	public, err := f.svc.Menu.List("", "")
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "Chicken Biryani", public[0].Name)

	all, err := f.svc.Menu.AdminList(admin, "", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cats, err := f.svc.Menu.Categories()
	require.NoError(t, err)
	assert.Contains(t, cats, "Biryani")

	_, err = f.svc.Menu.ToggleStock(admin, 9999)
	requireKind(t, err, KindNotFound)
}

func TestMenu_UpdateKeepsStockToggle(t *testing.T) {
	f := newFixture(t)
	admin := f.user("admin", entity.RoleAdmin)
	item := f.menuItem("Mutton Biryani", "199")

	f.onceAfter("query", "menu_items", func(db *gorm.DB) {
		_, err := f.svc.Menu.ToggleStock(admin, item.ID)
		require.NoError(t, err)
	})

	updated, err := f.svc.Menu.Update(admin, item.ID, MenuItemIn{
		Name: "Mutton Biryani", Price: entity.MustRupees("219"), Category: "Biryani", Popularity: 9,
	})
	require.NoError(t, err)
	assert.False(t, updated.InStock, "stock was switched off while the edit was in flight")
	assert.True(t, updated.Price.Equal(entity.MustRupees("219")))
	assert.Equal(t, 9, updated.Popularity)

	inStock := true
	updated, err = f.svc.Menu.Update(admin, item.ID, MenuItemIn{
		Name: "Mutton Biryani", Price: entity.MustRupees("219"), Category: "Biryani", InStock: &inStock,
	})
	require.NoError(t, err)
	assert.True(t, updated.InStock)
}
