package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/flagactions"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
)

func stripeSignatureHeader(payload []byte, secret string) string {
	ts := time.Now().Unix()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

// installCommerceFakes swaps the controller service bundle for the duration
// of a test.
func installCommerceFakes(t *testing.T, orders *fakeOrderRepo, events *fakeWebhookEventRepo) {
	t.Helper()
	registry := status.NewDefaultRegistry()
	svc := &CommerceServices{
		Registry:      registry,
		Transitioner:  commerce.NewTransitioner(orders, registry, flagactions.NewDispatcher()),
		Orders:        orders,
		WebhookEvents: events,
	}
	prev := commerceServices
	SetupCommerce(svc)
	t.Cleanup(func() { SetupCommerce(prev) })
}

func postStripeWebhook(t *testing.T, payload []byte, secret string) *http.Response {
	t.Helper()
	app := fiber.New()
	app.Post("/commerce/webhook/stripe", HandleStripeWebhook)

	req := httptest.NewRequest(http.MethodPost, "/commerce/webhook/stripe", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Stripe-Signature", stripeSignatureHeader(payload, secret))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestHandleStripeWebhookChargeRefundedSettlesOrder(t *testing.T) {
	const secret = "whsec_test"
	t.Setenv("STRIPE_WEBHOOK_SECRET", secret)

	orders := newFakeOrderRepo()
	orders.add(&models.Order{
		ID:             7,
		Status:         status.Completed,
		Gateway:        models.GatewayStripe,
		GatewayOrderID: "pi_3NDq2x0LXtv1",
	})
	events := newFakeWebhookEventRepo()
	installCommerceFakes(t, orders, events)

	payload := []byte(`{
		"id": "evt_3NDq2x",
		"type": "charge.refunded",
		"data": {"object": {"id": "ch_3NDq2x0LXtv1", "payment_intent": "pi_3NDq2x0LXtv1", "refunded": true}}
	}`)

	resp := postStripeWebhook(t, payload, secret)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.NotContains(t, body, "ignored")

	order, err := orders.GetByID(7)
	require.NoError(t, err)
	assert.Equal(t, status.Refunded, order.Status)
	require.Len(t, orders.transitions, 1)
	assert.Equal(t, status.Completed, orders.transitions[0].OldStatus)
	assert.Equal(t, status.Refunded, orders.transitions[0].NewStatus)

	stored := events.byKey(models.GatewayStripe, "evt_3NDq2x")
	require.NotNil(t, stored)
	assert.NotNil(t, stored.ProcessedAt)
	assert.Empty(t, stored.ProcessingError)
}

func TestHandleStripeWebhookDuplicateDeliveryAckedOnce(t *testing.T) {
	const secret = "whsec_test"
	t.Setenv("STRIPE_WEBHOOK_SECRET", secret)

	orders := newFakeOrderRepo()
	orders.add(&models.Order{
		ID:             9,
		Status:         status.Completed,
		Gateway:        models.GatewayStripe,
		GatewayOrderID: "pi_dup",
	})
	events := newFakeWebhookEventRepo()
	installCommerceFakes(t, orders, events)

	payload := []byte(`{
		"id": "evt_dup",
		"type": "charge.refunded",
		"data": {"object": {"id": "ch_dup", "payment_intent": "pi_dup"}}
	}`)

	first := postStripeWebhook(t, payload, secret)
	require.Equal(t, fiber.StatusOK, first.StatusCode)

	second := postStripeWebhook(t, payload, secret)
	require.Equal(t, fiber.StatusOK, second.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(second.Body).Decode(&body))
	assert.Equal(t, true, body["duplicate"])

	// One transition total; the redelivery never reaches the transitioner.
	assert.Len(t, orders.transitions, 1)
}
