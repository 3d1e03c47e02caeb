package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ticketfox/ticketfox/internal/pkg/env"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

const defaultAPIBaseURL = "https://api.stripe.com/v1"

// requestTimeout bounds every provider call. Timeouts surface as
// ProviderError and are eligible for the payment intent retry policy.
const requestTimeout = 30 * time.Second

// Client talks to the Stripe API with the merchant's server-side key.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	merchant   *Merchant
}

func NewClient(merchant *Merchant) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(env.GetEnv("STRIPE_API_BASE_URL", defaultAPIBaseURL), "/"),
		HTTPClient: &http.Client{Timeout: requestTimeout},
		merchant:   merchant,
	}
}

type apiErrorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.merchant.ClientSecret())
	req.Header.Set("Accept", "application/json")
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &contracts.ProviderError{Gateway: GatewayKey, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := apiErrorBody{}
		_ = json.Unmarshal(raw, &apiErr)
		code := apiErr.Error.Code
		if code == "" {
			code = fmt.Sprintf("http_%d", resp.StatusCode)
		}
		return nil, &contracts.ProviderError{
			Gateway:    GatewayKey,
			StatusCode: resp.StatusCode,
			Code:       code,
			Message:    apiErr.Error.Message,
		}
	}
	return raw, nil
}
