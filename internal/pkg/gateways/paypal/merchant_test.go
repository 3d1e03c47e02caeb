package paypal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

func connectedAccount() map[string]string {
	return map[string]string{
		"merchant_id":              "merchant-local",
		"merchant_id_in_paypal":    "SELLER123",
		"client_id":                "client-abc",
		"client_secret":            "secret-abc",
		"account_is_ready":         "1",
		"supports_custom_payments": "1",
		"active_account":           "1",
	}
}

func TestMerchantFromArrayValidation(t *testing.T) {
	m := NewMerchant(newMemOptionStore())

	ok := m.FromArray(map[string]string{"client_id": "client-abc"}, true)
	assert.False(t, ok)
	assert.False(t, m.NeedsSave())
	assert.False(t, m.IsConnected())

	ok = m.FromArray(connectedAccount(), true)
	require.True(t, ok)
	assert.True(t, m.NeedsSave())
	assert.Equal(t, "SELLER123", m.MerchantIDInPayPal())
}

func TestMerchantSaveRoundtrip(t *testing.T) {
	store := newMemOptionStore()
	m := NewMerchant(store)

	saved, err := m.Save()
	require.NoError(t, err)
	assert.False(t, saved, "clean merchant must not write")

	require.True(t, m.FromArray(connectedAccount(), true))
	saved, err = m.Save()
	require.NoError(t, err)
	assert.True(t, saved)

	loaded := NewMerchant(store)
	loaded.Init()
	assert.True(t, loaded.IsActive())
	assert.Equal(t, "client-abc", loaded.ClientID())
}

func TestMerchantIsActiveRequiresReadyAccount(t *testing.T) {
	m := NewMerchant(newMemOptionStore())

	data := connectedAccount()
	data["account_is_ready"] = "0"
	require.True(t, m.FromArray(data, false))
	assert.True(t, m.IsConnected())
	assert.False(t, m.IsActive(), "onboarding not finished")

	data["account_is_ready"] = "1"
	data["active_account"] = "0"
	require.True(t, m.FromArray(data, false))
	assert.False(t, m.IsActive(), "deactivated account cannot take payments")
}

func TestMerchantAccountKeyPerMode(t *testing.T) {
	m := NewMerchant(newMemOptionStore())
	liveKey := m.AccountKey()
	m.SetMode(contracts.ModeSandbox)
	assert.NotEqual(t, liveKey, m.AccountKey())
}

func TestGatewayTrackingID(t *testing.T) {
	g := NewGateway(NewMerchant(newMemOptionStore()), newMemOptionStore())

	first := g.GenerateUniqueTrackingID()
	second := g.GenerateUniqueTrackingID()

	assert.NotEqual(t, first, second)
	assert.Contains(t, first, "?v="+Version+"-")
	assert.LessOrEqual(t, len(first), contracts.MaxTrackingIDLength)
}
