package stripe

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePayload(t *testing.T, payload map[string]interface{}) string {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return base64.StdEncoding.EncodeToString(raw)
}

func newReturnHandler() (*ReturnHandler, *memOptionStore) {
	store := newMemOptionStore()
	merchant := NewMerchant(store)
	return NewReturnHandler(merchant, NewSettings(store)), store
}

func TestHandleReturn_ErrorPayloadRedirectsWithoutPersisting(t *testing.T) {
	handler, store := newReturnHandler()

	out := handler.HandleReturn(encodePayload(t, map[string]interface{}{
		"tc-stripe-error": "tc-stripe-signup-error",
	}), "")

	assert.Contains(t, out.RedirectURL, "tab=payments&tc-section=stripe&tc-stripe-error=tc-stripe-signup-error")
	assert.False(t, out.Persisted)
	assert.Equal(t, 0, store.sets, "error outcomes must not write signup data")
}

func TestHandleReturn_MalformedPayload(t *testing.T) {
	handler, store := newReturnHandler()

	out := handler.HandleReturn("%%%not base64%%%", "")

	assert.Contains(t, out.RedirectURL, "tc-stripe-error=invalid-payload")
	assert.Equal(t, 0, store.sets)
}

func TestHandleReturn_DisconnectClearsSignupData(t *testing.T) {
	handler, store := newReturnHandler()
	require.NoError(t, handler.Merchant.SaveSignupData(map[string]interface{}{
		"stripe_user_id": "acct_1",
		"live":           map[string]interface{}{"access_token": "sk_live"},
	}))

	out := handler.HandleReturn(encodePayload(t, map[string]interface{}{
		"stripe_disconnected": true,
	}), "")

	assert.Contains(t, out.RedirectURL, "stripe_disconnected=1")
	assert.True(t, out.Persisted)

	var stored map[string]interface{}
	found, err := store.GetJSON(handler.Merchant.SignupDataKey(), &stored)
	require.NoError(t, err)
	assert.True(t, found, "key survives the disconnect")
	assert.Empty(t, stored)
	assert.False(t, handler.Merchant.IsConnected())
}

func TestHandleReturn_DisconnectQueryParam(t *testing.T) {
	handler, _ := newReturnHandler()

	out := handler.HandleReturn("", "1")

	assert.Contains(t, out.RedirectURL, "stripe_disconnected=1")
	assert.False(t, handler.Merchant.IsConnected())
}

func TestHandleReturn_EstablishesConnection(t *testing.T) {
	handler, _ := newReturnHandler()

	out := handler.HandleReturn(encodePayload(t, map[string]interface{}{
		"stripe_user_id": "acct_1",
		"live":           map[string]interface{}{"access_token": "sk_live", "publishable_key": "pk_live"},
		"whodat":         "signature",
	}), "")

	assert.True(t, out.Persisted)
	assert.Contains(t, out.RedirectURL, "stripe_connected=1")
	assert.True(t, handler.Merchant.IsActive())
	assert.True(t, handler.Settings.IsEnabled(), "a fresh connection enables the gateway")
}

func TestHandleReturn_InvalidAccountTerminates(t *testing.T) {
	handler, store := newReturnHandler()

	// Account id without usable mode credentials.
	out := handler.HandleReturn(encodePayload(t, map[string]interface{}{
		"stripe_user_id": "acct_1",
	}), "")

	assert.True(t, out.Persisted)
	assert.Contains(t, out.RedirectURL, "stripe_disconnected=1")
	assert.Contains(t, out.RedirectURL, "tc-connection-terminated=invalid-account")

	var stored map[string]interface{}
	found, err := store.GetJSON(handler.Merchant.SignupDataKey(), &stored)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, stored, "terminated connections leave an empty map behind")
}
