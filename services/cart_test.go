package services

import (
	"testing"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func qty(n int) *int { return &n }

func TestCart_AddMergesAndCaps(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "119")
	u := f.user("asha", entity.RoleCustomer)

	_, err := f.svc.Cart.Add(u, AddToCartIn{MenuItemID: item.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, f.svc.Cart.Count(u), "quantity defaults to 1")

	_, err = f.svc.Cart.Add(u, AddToCartIn{MenuItemID: item.ID, Quantity: qty(6)})
	require.NoError(t, err)
	_, err = f.svc.Cart.Add(u, AddToCartIn{MenuItemID: item.ID, Quantity: qty(6)})
	require.NoError(t, err)

	view, err := f.svc.Cart.Get(u)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, entity.MaxCartQuantity, view.Items[0].Quantity)
	assert.True(t, view.Subtotal.Equal(entity.Rupees(1190)))
	assert.True(t, view.Quote.DeliveryCharges.IsZero())
}

func TestCart_AddRejections(t *testing.T) {
	f := newFixture(t)
	item := f.menuItem("Chicken Biryani", "119")
	gone := f.menuItem("Paneer Tikka", "150")
	require.NoError(t, f.db.Model(&gone).Update("in_stock", false).Error)
	u := f.user("asha", entity.RoleCustomer)

	_, err := f.svc.Cart.Add(entity.Anonymous(), AddToCartIn{MenuItemID: item.ID})
	requireKind(t, err, KindAuthorization)

	for _, q := range []int{0, -1, 11} {
		_, err = f.svc.Cart.Add(u, AddToCartIn{MenuItemID: item.ID, Quantity: qty(q)})
		requireKind(t, err, KindValidation)
		assert.Equal(t, "Invalid quantity", UserMessage(err))
	}

	_, err = f.svc.Cart.Add(u, AddToCartIn{MenuItemID: gone.ID})
	requireKind(t, err, KindNotFound)
	_, err = f.svc.Cart.Add(u, AddToCartIn{MenuItemID: 9999})
	requireKind(t, err, KindNotFound)

	f.setStoreOpen(false)
	_, err = f.svc.Cart.Add(u, AddToCartIn{MenuItemID: item.ID})
	requireKind(t, err, KindConflict)

	assert.Zero(t, f.svc.Cart.Count(u))
}

func TestCart_UpdateRemoveClear(t *testing.T) {
	f := newFixture(t)
	a := f.menuItem("Chicken Biryani", "119")
	b := f.menuItem("Raita", "61")
	u := f.user("asha", entity.RoleCustomer)
	f.addToCart(u, a, 2)
	f.addToCart(u, b, 1)

	require.NoError(t, f.svc.Cart.UpdateQty(u, UpdateCartIn{MenuItemID: a.ID, Quantity: 15}))
	assert.Equal(t, 11, f.svc.Cart.Count(u))

	require.NoError(t, f.svc.Cart.UpdateQty(u, UpdateCartIn{MenuItemID: b.ID, Quantity: 0}))
	assert.Equal(t, 10, f.svc.Cart.Count(u))

	err := f.svc.Cart.UpdateQty(u, UpdateCartIn{MenuItemID: b.ID, Quantity: 3})
	requireKind(t, err, KindNotFound)

	err = f.svc.Cart.Remove(u, b.ID)
	requireKind(t, err, KindNotFound)

	// closing the store still lets people empty their cart
	f.setStoreOpen(false)
	err = f.svc.Cart.UpdateQty(u, UpdateCartIn{MenuItemID: a.ID, Quantity: 3})
	requireKind(t, err, KindConflict)
	require.NoError(t, f.svc.Cart.Clear(u))
	assert.Zero(t, f.svc.Cart.Count(u))
}

func TestCart_GuestViewIsEmpty(t *testing.T) {
	f := newFixture(t)
	view, err := f.svc.Cart.Get(entity.Anonymous())
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Zero(t, view.Count)
	assert.Zero(t, f.svc.Cart.Count(entity.Anonymous()))
}
