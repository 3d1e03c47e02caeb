package stripe

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

// GatewayKey is the slug orders record when paid through Stripe.
const GatewayKey = "stripe"

// ModeKeys are the per-mode credentials Stripe hands back during signup.
type ModeKeys struct {
	AccessToken    string `json:"access_token"`
	PublishableKey string `json:"publishable_key"`
}

// SignupData is the typed view over the persisted signup payload.
type SignupData struct {
	StripeUserID string    `json:"stripe_user_id"`
	Live         *ModeKeys `json:"live,omitempty"`
	Sandbox      *ModeKeys `json:"sandbox,omitempty"`
}

type accountData struct {
	ClientID       string `json:"client_id" validate:"required"`
	ClientSecret   string `json:"client_secret" validate:"required"`
	PublishableKey string `json:"publishable_key"`
}

// Merchant is the Stripe account connection for this site.
type Merchant struct {
	contracts.BaseMerchant
	account accountData
}

func NewMerchant(store contracts.OptionStore) *Merchant {
	m := &Merchant{}
	m.Store = store
	return m
}

// Init resolves the operating mode and loads previously persisted account
// data into memory without forcing a save.
func (m *Merchant) Init() {
	m.ResolveMode()

	var data map[string]string
	found, err := m.Store.GetJSON(m.AccountKey(), &data)
	if err != nil {
		log.Warnf("[Stripe] could not load merchant account data: %v", err)
		return
	}
	if found {
		m.FromArray(data, false)
	}
}

// AccountKey derives the storage key from the gateway slug and mode so
// sandbox and live credentials never collide.
func (m *Merchant) AccountKey() string {
	return fmt.Sprintf("ticketfox_commerce_%s_account_%s", GatewayKey, m.Mode())
}

// SignupDataKey is where the raw signup payload is persisted.
func (m *Merchant) SignupDataKey() string {
	return fmt.Sprintf("ticketfox_commerce_%s_signup_data", GatewayKey)
}

// FromArray validates and loads account data. Returns false without
// mutating state when validation fails.
func (m *Merchant) FromArray(data map[string]string, needsSave bool) bool {
	candidate := accountData{
		ClientID:       data["client_id"],
		ClientSecret:   data["client_secret"],
		PublishableKey: data["publishable_key"],
	}
	if err := validator.New().Struct(candidate); err != nil {
		return false
	}
	m.account = candidate
	m.MarkDirty(needsSave)
	return true
}

// ToArray serializes the merchant state persisted under AccountKey.
func (m *Merchant) ToArray() map[string]string {
	return map[string]string{
		"client_id":       m.account.ClientID,
		"client_secret":   m.account.ClientSecret,
		"publishable_key": m.account.PublishableKey,
	}
}

// Save persists the account snapshot when dirty.
func (m *Merchant) Save() (bool, error) {
	return m.SaveState(m.AccountKey(), m.ToArray())
}

func (m *Merchant) signupData() *SignupData {
	var data SignupData
	if _, err := m.Store.GetJSON(m.SignupDataKey(), &data); err != nil {
		log.Warnf("[Stripe] could not load signup data: %v", err)
	}
	return &data
}

func (m *Merchant) modeKeys(data *SignupData) *ModeKeys {
	if m.Mode() == contracts.ModeSandbox {
		return data.Sandbox
	}
	return data.Live
}

// ClientID returns the connected Stripe account id.
func (m *Merchant) ClientID() string {
	return m.signupData().StripeUserID
}

// ClientSecret returns the secret key for server-side transactions in the
// current mode.
func (m *Merchant) ClientSecret() string {
	keys := m.modeKeys(m.signupData())
	if keys == nil {
		return ""
	}
	return keys.AccessToken
}

// PublishableKey returns the browser-side key for the current mode.
func (m *Merchant) PublishableKey() string {
	keys := m.modeKeys(m.signupData())
	if keys == nil {
		return ""
	}
	return keys.PublishableKey
}

func (m *Merchant) IsConnected() bool {
	return m.ClientID() != ""
}

func (m *Merchant) IsActive() bool {
	return m.IsConnected() && m.ClientSecret() != ""
}

// SaveSignupData persists the signup payload, stripping transport-only
// fields first. Always a full overwrite; disconnect stores an empty map so
// the key itself survives.
func (m *Merchant) SaveSignupData(payload map[string]interface{}) error {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	delete(payload, "whodat")
	delete(payload, "state")
	return m.Store.SetJSON(m.SignupDataKey(), payload)
}

// ValidateAccountPermissions checks the connected account is usable in the
// current mode.
func (m *Merchant) ValidateAccountPermissions() bool {
	data := m.signupData()
	if data.StripeUserID == "" {
		return false
	}
	keys := m.modeKeys(data)
	return keys != nil && keys.AccessToken != ""
}
