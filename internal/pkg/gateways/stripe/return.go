package stripe

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2/log"
)

const settingsPath = "/admin/settings"

// ReturnHandler finishes the connect handshake once the signup service
// redirects the browser back with a signed payload.
type ReturnHandler struct {
	Merchant *Merchant
	Settings *Settings
}

func NewReturnHandler(merchant *Merchant, settings *Settings) *ReturnHandler {
	return &ReturnHandler{Merchant: merchant, Settings: settings}
}

// Outcome tells the controller where to send the browser and whether any
// account state was written while handling the return.
type Outcome struct {
	RedirectURL string
	Persisted   bool
}

// DecodePayload unpacks the base64 encoded JSON object the signup service
// appends to the return URL.
func DecodePayload(payload string) (map[string]interface{}, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode stripe return payload: %w", err)
	}
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse stripe return payload: %w", err)
	}
	return data, nil
}

// HandleReturn resolves the handshake into exactly one outcome: an error
// redirect, a disconnect, or a persisted connection.
func (h *ReturnHandler) HandleReturn(stripeParam, disconnectedParam string) Outcome {
	if stripeParam == "" {
		if disconnectedParam != "" {
			return h.terminate(nil)
		}
		return Outcome{RedirectURL: settingsURL(nil)}
	}

	payload, err := DecodePayload(stripeParam)
	if err != nil {
		log.Errorf("stripe return: %v", err)
		return Outcome{RedirectURL: settingsURL(url.Values{"tc-stripe-error": {"invalid-payload"}})}
	}

	if code, ok := payload["tc-stripe-error"].(string); ok && code != "" {
		return Outcome{RedirectURL: settingsURL(url.Values{"tc-stripe-error": {code}})}
	}

	if disconnected, ok := payload["stripe_disconnected"].(bool); ok && disconnected {
		return h.terminate(nil)
	}

	return h.establish(payload)
}

func (h *ReturnHandler) establish(payload map[string]interface{}) Outcome {
	if err := h.Merchant.SaveSignupData(payload); err != nil {
		log.Errorf("stripe return: save signup data: %v", err)
		return Outcome{RedirectURL: settingsURL(url.Values{"tc-stripe-error": {"tc-stripe-token-error"}})}
	}
	if err := h.Settings.SetupAccountDefaults(); err != nil {
		log.Errorf("stripe return: account defaults: %v", err)
	}

	if !h.Merchant.ValidateAccountPermissions() {
		out := h.terminate(url.Values{"tc-connection-terminated": {"invalid-account"}})
		out.Persisted = true
		return out
	}

	return Outcome{
		RedirectURL: settingsURL(url.Values{"stripe_connected": {"1"}}),
		Persisted:   true,
	}
}

// terminate clears the stored signup data. The key stays behind holding an
// empty map so a reconnect overwrites instead of recreating it.
func (h *ReturnHandler) terminate(extra url.Values) Outcome {
	if err := h.Merchant.SaveSignupData(nil); err != nil {
		log.Errorf("stripe return: disconnect: %v", err)
		return Outcome{RedirectURL: settingsURL(url.Values{"tc-stripe-error": {"tc-stripe-disconnect-error"}})}
	}

	args := url.Values{"stripe_disconnected": {"1"}}
	for key, vals := range extra {
		for _, v := range vals {
			args.Add(key, v)
		}
	}
	return Outcome{RedirectURL: settingsURL(args), Persisted: true}
}

func settingsURL(extra url.Values) string {
	args := url.Values{
		"tab":        {"payments"},
		"tc-section": {GatewayKey},
	}
	for key, vals := range extra {
		for _, v := range vals {
			args.Add(key, v)
		}
	}
	return settingsPath + "?" + args.Encode()
}
