package paypal

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ticketfox/ticketfox/internal/pkg/env"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

// Version tags tracking ids so WhoDat can tell which release started an
// onboarding attempt.
const Version = "1.0.0"

// Gateway wires the PayPal merchant and signup flow into the gateway
// manager.
type Gateway struct {
	Merchant *Merchant
	Store    contracts.OptionStore
}

func NewGateway(merchant *Merchant, store contracts.OptionStore) *Gateway {
	return &Gateway{Merchant: merchant, Store: store}
}

func (g *Gateway) Key() string {
	return GatewayKey
}

func (g *Gateway) Label() string {
	return "PayPal"
}

func (g *Gateway) LogoURL() string {
	return "/img/gateways/paypal.svg"
}

func (g *Gateway) IsActive() bool {
	return g.Merchant.IsActive()
}

const optionEnabled = "ticketfox_commerce_paypal_enabled"

func (g *Gateway) IsEnabled() bool {
	var enabled bool
	found, err := g.Store.GetJSON(optionEnabled, &enabled)
	if err != nil || !found {
		return false
	}
	return enabled
}

func (g *Gateway) AdminNotices() []contracts.AdminNotice {
	return []contracts.AdminNotice{
		{
			Slug:    "tc-paypal-signup-error",
			Content: "PayPal signup failed. Please try connecting your account again.",
			Type:    "error",
		},
		{
			Slug:    "tc-paypal-ssl-not-available",
			Content: "A valid SSL certificate is required to accept payments with PayPal.",
			Type:    "error",
		},
		{
			Slug:        "tc-paypal-country-denied",
			Content:     "PayPal is not available in your selected country.",
			Type:        "error",
			Dismissible: true,
		},
	}
}

// GenerateUniqueTrackingID combines the site host and path with a
// versioned unique suffix. WhoDat echoes it back so the referral can be
// matched to this installation.
func (g *Gateway) GenerateUniqueTrackingID() string {
	site := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:8080")
	host := site
	if parsed, err := url.Parse(site); err == nil && parsed.Host != "" {
		host = parsed.Host + parsed.Path
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	id := fmt.Sprintf("%s?v=%s-%s", host, Version, suffix)
	return contracts.TruncateTrackingID(id)
}

func (g *Gateway) CheckoutTemplateVars() map[string]interface{} {
	return map[string]interface{}{
		"gateway":   GatewayKey,
		"client_id": g.Merchant.ClientID(),
		"merchant":  g.Merchant.MerchantIDInPayPal(),
	}
}
