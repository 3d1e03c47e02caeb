package stripe

import (
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

// Option keys owned by the Stripe gateway.
const (
	optionEnabled         = "ticketfox_commerce_stripe_enabled"
	optionCheckoutElement = "ticketfox_commerce_stripe_checkout_element"
)

// Settings owns the Stripe gateway options in the option store.
type Settings struct {
	Store contracts.OptionStore
}

func NewSettings(store contracts.OptionStore) *Settings {
	return &Settings{Store: store}
}

// SetupAccountDefaults writes the options a freshly connected account needs
// so checkout works without further operator input. Existing values win.
func (s *Settings) SetupAccountDefaults() error {
	var enabled bool
	found, err := s.Store.GetJSON(optionEnabled, &enabled)
	if err != nil {
		return err
	}
	if !found {
		if err := s.Store.SetJSON(optionEnabled, true); err != nil {
			return err
		}
	}

	var element string
	found, err = s.Store.GetJSON(optionCheckoutElement, &element)
	if err != nil {
		return err
	}
	if !found {
		if err := s.Store.SetJSON(optionCheckoutElement, "payment"); err != nil {
			return err
		}
	}
	return nil
}

// IsEnabled reports whether the operator switched the gateway on. Defaults
// to false until the first successful connection.
func (s *Settings) IsEnabled() bool {
	var enabled bool
	found, err := s.Store.GetJSON(optionEnabled, &enabled)
	if err != nil || !found {
		return false
	}
	return enabled
}
