package stripe

import (
	"fmt"

	"github.com/ticketfox/ticketfox/internal/pkg/env"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

// Gateway wires the Stripe merchant and settings into the gateway manager.
type Gateway struct {
	Merchant *Merchant
	Settings *Settings
}

func NewGateway(merchant *Merchant, settings *Settings) *Gateway {
	return &Gateway{Merchant: merchant, Settings: settings}
}

func (g *Gateway) Key() string {
	return GatewayKey
}

func (g *Gateway) Label() string {
	return "Stripe"
}

func (g *Gateway) LogoURL() string {
	return "/img/gateways/stripe.svg"
}

func (g *Gateway) IsActive() bool {
	return g.Merchant.IsActive()
}

func (g *Gateway) IsEnabled() bool {
	return g.Settings.IsEnabled()
}

// AdminNotices lists every notice this gateway can raise on the payments
// settings screen. The return handler picks the slug, the settings page
// renders the content.
func (g *Gateway) AdminNotices() []contracts.AdminNotice {
	return []contracts.AdminNotice{
		{
			Slug:    "tc-stripe-signup-error",
			Content: "Stripe signup failed. Please try connecting your account again.",
			Type:    "error",
		},
		{
			Slug:    "tc-stripe-token-error",
			Content: "Stripe could not issue access credentials for your account. Reconnect to try again.",
			Type:    "error",
		},
		{
			Slug:    "tc-stripe-disconnect-error",
			Content: "Something went wrong while disconnecting your Stripe account.",
			Type:    "error",
		},
		{
			Slug:        "tc-stripe-country-denied",
			Content:     "Stripe is not available in your selected country.",
			Type:        "error",
			Dismissible: true,
		},
	}
}

// GenerateUniqueTrackingID uses the return endpoint URL so the connect flow
// can route the browser back to this installation.
func (g *Gateway) GenerateUniqueTrackingID() string {
	id := fmt.Sprintf("%s/commerce/stripe/return", env.GetEnv("PUBLIC_DOMAIN", "http://localhost:8080"))
	return contracts.TruncateTrackingID(id)
}

func (g *Gateway) CheckoutTemplateVars() map[string]interface{} {
	return map[string]interface{}{
		"gateway":         GatewayKey,
		"publishable_key": g.Merchant.PublishableKey(),
	}
}
