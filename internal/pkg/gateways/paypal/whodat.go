package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ticketfox/ticketfox/internal/pkg/env"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

// WhoDat is the middleware service that owns the PayPal partner
// credentials. Onboarding never talks to PayPal directly; it asks WhoDat to
// start a seller signup and relays the links it hands back.
const defaultWhoDatBaseURL = "https://whodat.ticketfox.io/commerce/v1/paypal"

const requestTimeout = 30 * time.Second

// Link is one of the HATEOAS links PayPal returns for a seller referral.
type Link struct {
	Href        string `json:"href"`
	Rel         string `json:"rel"`
	Method      string `json:"method"`
	Description string `json:"description,omitempty"`
}

// SignupData is the referral payload cached for the duration of one
// onboarding attempt. Links[0] points at the referral data endpoint,
// Links[1] at the action URL the seller's browser is sent to.
type SignupData struct {
	Hash  string `json:"hash"`
	Links []Link `json:"links"`
}

// SellerOnboarder starts a seller signup and returns the referral links.
type SellerOnboarder interface {
	Signup(ctx context.Context, hash, trackingID, country, mode string) (*SignupData, error)
}

// WhoDatClient talks to the WhoDat onboarding middleware.
type WhoDatClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewWhoDatClient() *WhoDatClient {
	return &WhoDatClient{
		BaseURL:    strings.TrimRight(env.GetEnv("PAYPAL_WHODAT_URL", defaultWhoDatBaseURL), "/"),
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

func (c *WhoDatClient) Signup(ctx context.Context, hash, trackingID, country, mode string) (*SignupData, error) {
	body, err := json.Marshal(map[string]string{
		"mode":         mode,
		"hash":         hash,
		"tracking_id":  trackingID,
		"country_code": country,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/seller/signup", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &contracts.ProviderError{Gateway: GatewayKey, Err: err}
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &contracts.ProviderError{
			Gateway:    GatewayKey,
			StatusCode: resp.StatusCode,
			Code:       fmt.Sprintf("http_%d", resp.StatusCode),
			Message:    "whodat signup request failed",
		}
	}

	var data SignupData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &contracts.ProviderError{Gateway: GatewayKey, Code: "invalid_response", Message: "whodat returned malformed signup data", Err: err}
	}
	if len(data.Links) < 2 {
		return nil, &contracts.ProviderError{Gateway: GatewayKey, Code: "empty_response", Message: "whodat signup data is missing referral links"}
	}
	data.Hash = hash
	return &data, nil
}
