package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ticketfox/ticketfox/internal/pkg/commerce/cart"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

// IntentError is one (code, message) pair attached to a failed payment
// intent result.
type IntentError [2]string

func (e IntentError) Code() string    { return e[0] }
func (e IntentError) Message() string { return e[1] }

// PaymentIntent mirrors the provider-side authorization object, or carries
// the errors that prevented one from being created.
type PaymentIntent struct {
	ID           string        `json:"id,omitempty"`
	ClientSecret string        `json:"client_secret,omitempty"`
	Status       string        `json:"status,omitempty"`
	Amount       int64         `json:"amount,omitempty"`
	Currency     string        `json:"currency,omitempty"`
	ReceiptEmail string        `json:"receipt_email,omitempty"`
	Errors       []IntentError `json:"errors,omitempty"`
}

// IntentAPI is the provider surface the payment intent handler depends on.
type IntentAPI interface {
	// CreateFromCart asks the provider for an intent covering the cart
	// total. Provider failures come back as an intent carrying errors, not
	// as a Go error; only programming mistakes error out.
	CreateFromCart(ctx context.Context, c *cart.Cart, retry bool) *PaymentIntent
	Get(ctx context.Context, id string) (*PaymentIntent, error)
	Update(ctx context.Context, id string, params url.Values) (*PaymentIntent, error)
}

// CreateFromCart implements IntentAPI on the live client.
func (c *Client) CreateFromCart(ctx context.Context, crt *cart.Cart, retry bool) *PaymentIntent {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(crt.TotalInSmallestUnit(), 10))
	form.Set("currency", strings.ToLower(crt.Currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	if retry {
		// A retry means the previous intent was unusable; ask for a clean
		// card-only intent instead of the automatic method set.
		form.Del("automatic_payment_methods[enabled]")
		form.Set("payment_method_types[]", "card")
	}

	raw, err := c.do(ctx, http.MethodPost, "/payment_intents", form)
	if err != nil {
		return intentFromError(err)
	}

	var intent PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return &PaymentIntent{Errors: []IntentError{{"invalid_provider_response", err.Error()}}}
	}
	return &intent
}

// Get fetches an existing intent by id.
func (c *Client) Get(ctx context.Context, id string) (*PaymentIntent, error) {
	raw, err := c.do(ctx, http.MethodGet, "/payment_intents/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	var intent PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

// Update mutates an existing intent before confirmation.
func (c *Client) Update(ctx context.Context, id string, params url.Values) (*PaymentIntent, error) {
	raw, err := c.do(ctx, http.MethodPost, "/payment_intents/"+url.PathEscape(id), params)
	if err != nil {
		return nil, err
	}
	var intent PaymentIntent
	if err := json.Unmarshal(raw, &intent); err != nil {
		return nil, err
	}
	return &intent, nil
}

func intentFromError(err error) *PaymentIntent {
	var provider *contracts.ProviderError
	if errors.As(err, &provider) {
		code := provider.Code
		if code == "" {
			code = "provider_error"
		}
		message := provider.Message
		if message == "" {
			message = provider.Error()
		}
		return &PaymentIntent{Errors: []IntentError{{code, message}}}
	}
	return &PaymentIntent{Errors: []IntentError{{"provider_error", err.Error()}}}
}
