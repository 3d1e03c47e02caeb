package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

func TestMerchantSaveIsNoOpWhenClean(t *testing.T) {
	store := newMemOptionStore()
	m := NewMerchant(store)

	saved, err := m.Save()
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 0, store.sets, "clean merchant must not write")
}

func TestMerchantFromArrayRejectsIncompleteData(t *testing.T) {
	m := NewMerchant(newMemOptionStore())

	ok := m.FromArray(map[string]string{"client_id": "acct_1"}, true)
	assert.False(t, ok)
	assert.False(t, m.NeedsSave())
	assert.Equal(t, "", m.ToArray()["client_id"], "failed load must not mutate state")
}

func TestMerchantFromArraySaveRoundtrip(t *testing.T) {
	store := newMemOptionStore()
	m := NewMerchant(store)

	ok := m.FromArray(map[string]string{
		"client_id":       "acct_1",
		"client_secret":   "sk_test_abc",
		"publishable_key": "pk_test_abc",
	}, true)
	require.True(t, ok)
	require.True(t, m.NeedsSave())

	saved, err := m.Save()
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, 1, store.sets)

	// Persisting clears the dirty flag; the next save is a no-op.
	saved, err = m.Save()
	require.NoError(t, err)
	assert.False(t, saved)
	assert.Equal(t, 1, store.sets)

	loaded := NewMerchant(store)
	loaded.Init()
	assert.Equal(t, "pk_test_abc", loaded.ToArray()["publishable_key"])
}

func TestSaveSignupDataStripsTransportFields(t *testing.T) {
	store := newMemOptionStore()
	m := NewMerchant(store)

	require.NoError(t, m.SaveSignupData(map[string]interface{}{
		"stripe_user_id": "acct_1",
		"live":           map[string]interface{}{"access_token": "sk_live", "publishable_key": "pk_live"},
		"whodat":         "signature",
		"state":          "abc123",
	}))

	var stored map[string]interface{}
	found, err := store.GetJSON(m.SignupDataKey(), &stored)
	require.NoError(t, err)
	require.True(t, found)
	assert.NotContains(t, stored, "whodat")
	assert.NotContains(t, stored, "state")
	assert.Equal(t, "acct_1", m.ClientID())
	assert.Equal(t, "sk_live", m.ClientSecret())
}

func TestSaveSignupDataNilKeepsKeyWithEmptyMap(t *testing.T) {
	store := newMemOptionStore()
	m := NewMerchant(store)

	require.NoError(t, m.SaveSignupData(nil))

	var stored map[string]interface{}
	found, err := store.GetJSON(m.SignupDataKey(), &stored)
	require.NoError(t, err)
	assert.True(t, found, "disconnect keeps the key")
	assert.Empty(t, stored)
	assert.False(t, m.IsConnected())
}

func TestMerchantModeSelectsCredentials(t *testing.T) {
	store := newMemOptionStore()
	m := NewMerchant(store)

	require.NoError(t, m.SaveSignupData(map[string]interface{}{
		"stripe_user_id": "acct_1",
		"live":           map[string]interface{}{"access_token": "sk_live", "publishable_key": "pk_live"},
		"sandbox":        map[string]interface{}{"access_token": "sk_test", "publishable_key": "pk_test"},
	}))

	assert.Equal(t, contracts.ModeLive, m.Mode())
	assert.Equal(t, "sk_live", m.ClientSecret())
	assert.Equal(t, "pk_live", m.PublishableKey())

	liveKey := m.AccountKey()
	m.SetMode(contracts.ModeSandbox)
	assert.Equal(t, "sk_test", m.ClientSecret())
	assert.Equal(t, "pk_test", m.PublishableKey())
	assert.NotEqual(t, liveKey, m.AccountKey())
}

func TestValidateAccountPermissions(t *testing.T) {
	m := NewMerchant(newMemOptionStore())
	assert.False(t, m.ValidateAccountPermissions())

	require.NoError(t, m.SaveSignupData(map[string]interface{}{"stripe_user_id": "acct_1"}))
	assert.False(t, m.ValidateAccountPermissions(), "account without mode keys is unusable")

	require.NoError(t, m.SaveSignupData(map[string]interface{}{
		"stripe_user_id": "acct_1",
		"live":           map[string]interface{}{"access_token": "sk_live"},
	}))
	assert.True(t, m.ValidateAccountPermissions())
}
