package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderStatus_DisplayAndProgress(t *testing.T) {
	assert.Equal(t, "Out For Delivery", OrderOutForDelivery.Display())
	assert.Equal(t, "Pending", OrderPending.Display())
	assert.Equal(t, 75, OrderOutForDelivery.Progress())
	assert.Equal(t, 0, OrderCancelled.Progress())
	assert.Equal(t, 100, OrderDelivered.Progress())
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus(" Preparing ")
	require.NoError(t, err)
	assert.Equal(t, OrderPreparing, st)

	_, err = ParseOrderStatus("lost")
	assert.ErrorIs(t, err, ErrUnknownOrderStatus)
}

func TestOrderStatus_Terminal(t *testing.T) {
	for _, st := range AllOrderStatuses {
		want := st == OrderDelivered || st == OrderCancelled
		assert.Equal(t, want, st.Terminal(), st)
	}
}

func TestActor(t *testing.T) {
	assert.True(t, Anonymous().IsAnonymous())
	assert.False(t, Anonymous().Is(RoleCustomer))
	a := Actor{UserID: 4, Role: RoleDelivery}
	assert.True(t, a.Is(RoleAdmin, RoleDelivery))
	assert.False(t, a.Is(RoleAdmin))
}
