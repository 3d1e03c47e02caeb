package controllers

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
)

func pendingStripeOrder(intentID string) *models.Order {
	return &models.Order{
		Status:         status.Created,
		Gateway:        models.GatewayStripe,
		GatewayOrderID: intentID,
	}
}

func TestEnsureOrderForIntentCreatesWhenMissing(t *testing.T) {
	orders := newFakeOrderRepo()

	err := ensureOrderForIntent(orders, pendingStripeOrder("pi_new"))
	require.NoError(t, err)
	require.Len(t, orders.created, 1)
	assert.Equal(t, "pi_new", orders.created[0].GatewayOrderID)
}

func TestEnsureOrderForIntentSkipsExistingOrder(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.add(pendingStripeOrder("pi_existing"))

	err := ensureOrderForIntent(orders, pendingStripeOrder("pi_existing"))
	require.NoError(t, err)
	assert.Empty(t, orders.created)
}

func TestEnsureOrderForIntentLookupErrorDoesNotCreate(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.lookupErr = errors.New("driver: bad connection")

	err := ensureOrderForIntent(orders, pendingStripeOrder("pi_flaky"))
	require.Error(t, err)
	assert.Empty(t, orders.created)
}
