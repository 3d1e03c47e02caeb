package stripe

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"net/url"
	"time"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/cart"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

const (
	paymentIntentTransientPrefix = "paymentintent-"
	paymentIntentTransientTTL    = 6 * time.Hour
	paymentIntentMaxRetries      = 2
)

// Fixed user-facing error shown once retries are exhausted. Raw provider
// errors are never rendered verbatim past this point.
const (
	FallbackErrorCode    = "et_could_not_create_stripe_order"
	FallbackErrorMessage = "There was an error enabling Stripe on your cart. More information is available in the settings dashboard. Please contact the site administrator for support."
)

// PaymentIntentHandler manages the create/retry/update lifecycle of the
// provider-side payment intent cached against the current cart.
//
// The retry counter lives on the instance and is never persisted, so the
// retry bound applies per inbound checkout request.
type PaymentIntentHandler struct {
	api           IntentAPI
	store         contracts.TransientStore
	transientName string
	retries       int
}

func NewPaymentIntentHandler(api IntentAPI, store contracts.TransientStore) *PaymentIntentHandler {
	return &PaymentIntentHandler{api: api, store: store}
}

// TransientName composes the cache key for the current cart.
func (h *PaymentIntentHandler) TransientName(c *cart.Cart) string {
	if h.transientName == "" {
		sum := md5.Sum([]byte(c.Hash()))
		h.transientName = paymentIntentTransientPrefix + hex.EncodeToString(sum[:])
	}
	return h.transientName
}

// CountRetries increments the retry counter if under the bound. Returns
// false when no more retries are allowed.
func (h *PaymentIntentHandler) CountRetries() bool {
	if h.retries >= paymentIntentMaxRetries {
		return false
	}
	h.retries++
	return true
}

// CreatePaymentIntentForCart returns the payment intent for the cart,
// reusing a previously cached live intent when one exists. Provider
// failures are retried a bounded number of times; past the bound the first
// error is replaced with the fixed fallback. Whatever result is obtained is
// cached with the standard TTL.
func (h *PaymentIntentHandler) CreatePaymentIntentForCart(ctx context.Context, c *cart.Cart, retry bool) (*PaymentIntent, error) {
	name := h.TransientName(c)

	if !retry {
		var cached PaymentIntent
		found, err := h.store.GetJSON(name, &cached)
		if err != nil {
			return nil, fmt.Errorf("failed to read cached payment intent: %w", err)
		}
		if found && cached.ID != "" {
			return &cached, nil
		}
	}

	intent := h.api.CreateFromCart(ctx, c, retry)

	if intent.ID == "" && len(intent.Errors) > 0 {
		if h.CountRetries() {
			if err := h.store.Delete(name); err != nil {
				return nil, fmt.Errorf("failed to drop stale payment intent: %w", err)
			}
			return h.CreatePaymentIntentForCart(ctx, c, true)
		}

		// Over the max retries; show a fixed error to the end user and move on.
		intent.Errors[0] = IntentError{FallbackErrorCode, FallbackErrorMessage}
	}

	if err := h.store.SetJSON(name, intent, paymentIntentTransientTTL); err != nil {
		return intent, fmt.Errorf("failed to cache payment intent: %w", err)
	}
	return intent, nil
}

// UpdateRequest is the purchase data received from the front end before
// confirmation.
type UpdateRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
	BillingEmail    string `json:"billing_email"`
}

// UpdatePaymentIntent adds pre-confirmation data to an existing intent.
// When receipt emails are switched off there is nothing to add, so the
// existing intent is re-fetched without a provider mutation.
func (h *PaymentIntentHandler) UpdatePaymentIntent(ctx context.Context, req UpdateRequest) (*PaymentIntent, error) {
	settings := models.GetCommerceSettings()
	receiptEmails := settings != nil && settings.StripeReceiptEmails

	if !receiptEmails {
		return h.api.Get(ctx, req.PaymentIntentID)
	}

	params := url.Values{}
	if req.BillingEmail != "" {
		params.Set("receipt_email", req.BillingEmail)
	}
	return h.api.Update(ctx, req.PaymentIntentID, params)
}

// PublishablePaymentIntentData assembles the data the checkout front end
// may see. Successful intents expose only id, client secret and transient
// name; cached error payloads pass through unmodified so provider-specific
// guidance can be rendered.
func (h *PaymentIntentHandler) PublishablePaymentIntentData(c *cart.Cart) interface{} {
	name := h.TransientName(c)

	var cached PaymentIntent
	found, err := h.store.GetJSON(name, &cached)
	if err != nil || !found {
		return map[string]interface{}{}
	}

	if len(cached.Errors) > 0 {
		return &cached
	}

	return map[string]interface{}{
		"id":   cached.ID,
		"key":  cached.ClientSecret,
		"name": name,
	}
}
