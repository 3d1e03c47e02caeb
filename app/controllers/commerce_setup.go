package controllers

import (
	"github.com/ticketfox/ticketfox/app/repository"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/paypal"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/stripe"
)

// CommerceServices bundles everything the commerce controllers need. Wired
// once at startup.
type CommerceServices struct {
	Registry     *status.Registry
	Transitioner *commerce.Transitioner
	Gateways     *contracts.Manager

	Orders        repository.OrderRepository
	WebhookEvents repository.WebhookEventRepository

	Options    contracts.OptionStore
	Transients contracts.TransientStore

	StripeMerchant *stripe.Merchant
	StripeSettings *stripe.Settings
	StripeReturn   *stripe.ReturnHandler

	PayPalSignup *paypal.Signup
}

var commerceServices *CommerceServices

// SetupCommerce installs the commerce service bundle for the controllers.
func SetupCommerce(services *CommerceServices) {
	commerceServices = services
}

func getCommerce() *CommerceServices {
	return commerceServices
}

// newStripeIntentHandler builds a fresh payment intent handler per request
// so the retry bound applies to one inbound call.
func newStripeIntentHandler() *stripe.PaymentIntentHandler {
	svc := getCommerce()
	return stripe.NewPaymentIntentHandler(stripe.NewClient(svc.StripeMerchant), svc.Transients)
}
