package services

import (
	"testing"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrders_StatusSnapshot(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "119")
	o := f.placeCashOrder(entity.Anonymous(), item, 2)

	snap, err := f.svc.Orders.StatusSnapshot(o.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderPending, snap.Status)
	assert.Equal(t, "Pending", snap.StatusDisplay)
	assert.Equal(t, 10, snap.ProgressPercentage)
	assert.Equal(t, entity.PaymentConfirmed, snap.PaymentStatus)
	assert.Equal(t, 1, snap.OrderItemsCount)
	assert.True(t, snap.TotalAmount.Equal(entity.Rupees(238)))
	assert.Equal(t, "12:00 PM IST", snap.LastUpdated)
	assert.Equal(t, "30-45 minutes", snap.EstimatedTime)

	_, err = f.svc.Orders.StatusSnapshot("BC999999")
	requireKind(t, err, KindNotFound)
}

func TestOrders_UPIPaymentFlow(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "119")
	in := validContact("upi")
	in.Items = []CheckoutItemIn{{MenuItemID: item.ID, Quantity: 1}}
	res, err := f.svc.Checkout.Checkout(entity.Anonymous(), in)
	require.NoError(t, err)
	number := res.Order.OrderNumber

	art, err := f.svc.Orders.PaymentArtifact(entity.Anonymous(), number)
	require.NoError(t, err)
	assert.Contains(t, art.UPILink, "upi://pay?")
	assert.Contains(t, art.QRCode, "data:image/png;base64,")
	assert.Equal(t, entity.PaymentPending, art.PaymentStatus)

	o, err := f.svc.Orders.ConfirmPayment(entity.Anonymous(), number)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentConfirmed, o.PaymentStatus)
	require.NotNil(t, o.ConfirmedAt)

	again, err := f.svc.Orders.ConfirmPayment(entity.Anonymous(), number)
	require.NoError(t, err, "confirming twice is harmless")
	assert.Equal(t, entity.PaymentConfirmed, again.PaymentStatus)
}

func TestOrders_PaymentArtifactNeedsUPI(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "119")
	o := f.placeCashOrder(entity.Anonymous(), item, 1)

	_, err := f.svc.Orders.PaymentArtifact(entity.Anonymous(), o.OrderNumber)
	requireKind(t, err, KindValidation)
}

func TestOrders_DetailAccess(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "119")
	owner := f.user("asha", entity.RoleCustomer)
	other := f.user("ravi", entity.RoleCustomer)
	admin := f.user("admin", entity.RoleAdmin)
	o := f.placeCashOrder(owner, item, 1)

	_, err := f.svc.Orders.Detail(owner, o.OrderNumber)
	require.NoError(t, err)
	_, err = f.svc.Orders.Detail(admin, o.OrderNumber)
	require.NoError(t, err)

	_, err = f.svc.Orders.Detail(other, o.OrderNumber)
	requireKind(t, err, KindAuthorization)
	_, err = f.svc.Orders.Detail(entity.Anonymous(), o.OrderNumber)
	requireKind(t, err, KindAuthorization)

	mine, err := f.svc.Orders.ListForUser(owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := f.svc.Orders.ListForUser(other)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestOrders_Cancel(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "119")
	owner := f.user("asha", entity.RoleCustomer)
	other := f.user("ravi", entity.RoleCustomer)
	admin := f.user("admin", entity.RoleAdmin)

	pending := f.placeCashOrder(owner, item, 1)
	_, err := f.svc.Orders.Cancel(other, pending.OrderNumber)
	requireKind(t, err, KindAuthorization)

	o, err := f.svc.Orders.Cancel(owner, pending.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, o.Status)

	_, err = f.svc.Orders.Cancel(admin, pending.OrderNumber)
	requireKind(t, err, KindConflict)

	confirmed := f.setStatus(admin, f.placeCashOrder(owner, item, 1), entity.OrderConfirmed)
	_, err = f.svc.Orders.Cancel(owner, confirmed.OrderNumber)
	requireKind(t, err, KindConflict)

	o, err = f.svc.Orders.Cancel(admin, confirmed.OrderNumber)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderCancelled, o.Status)

	_, err = f.svc.Orders.ConfirmPayment(owner, o.OrderNumber)
	requireKind(t, err, KindConflict)
}

func TestOrders_AdminOverride(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "250")
	owner := f.user("asha", entity.RoleCustomer)
	admin := f.user("admin", entity.RoleAdmin)
	o := f.placeCashOrder(owner, item, 1)

	_, err := f.svc.Orders.AdminUpdateStatus(owner, o.ID, StatusIn{Status: "delivered"})
	requireKind(t, err, KindAuthorization)
	_, err = f.svc.Orders.AdminUpdateStatus(admin, o.ID, StatusIn{Status: "teleported"})
	requireKind(t, err, KindValidation)
	_, err = f.svc.Orders.AdminUpdateStatus(admin, o.ID+50, StatusIn{Status: "confirmed"})
	requireKind(t, err, KindNotFound)

	delivered := f.setStatus(admin, o, entity.OrderDelivered)
	require.NotNil(t, delivered.DeliveryTime)
	assert.Equal(t, 25, f.reload(owner).LoyaltyPoints)

	// moving back and forth does not credit the same order again
	f.setStatus(admin, o, entity.OrderOutForDelivery)
	f.setStatus(admin, o, entity.OrderDelivered)
	assert.Equal(t, 25, f.reload(owner).LoyaltyPoints)
}

func TestOrders_Dashboard(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "119")
	admin := f.user("admin", entity.RoleAdmin)
	f.placeCashOrder(entity.Anonymous(), item, 1)
	f.placeCashOrder(entity.Anonymous(), item, 2)

	dash, err := f.svc.Orders.Dashboard(admin)
	require.NoError(t, err)
	assert.EqualValues(t, 2, dash.Stats.TotalOrders)
	assert.EqualValues(t, 2, dash.Stats.PendingOrders)
	assert.EqualValues(t, 2, dash.Stats.TodayOrders)
	assert.True(t, dash.StoreOpen)
	assert.Len(t, dash.RecentOrders, 2)

	list, err := f.svc.Orders.AdminList(admin, "confirmed")
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = f.svc.Orders.Dashboard(f.user("asha", entity.RoleCustomer))
	requireKind(t, err, KindAuthorization)
}
