package paypal

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

// GatewayKey is the slug orders record when paid through PayPal.
const GatewayKey = "paypal"

type accountData struct {
	MerchantID         string `json:"merchant_id" validate:"required"`
	MerchantIDInPayPal string `json:"merchant_id_in_paypal" validate:"required"`
	ClientID           string `json:"client_id"`
	ClientSecret       string `json:"client_secret"`
	AccountIsReady     bool   `json:"account_is_ready"`
	SupportsCustomPay  bool   `json:"supports_custom_payments"`
	ActiveAccount      bool   `json:"active_account"`
}

// Merchant is the PayPal seller account connection for this site.
type Merchant struct {
	contracts.BaseMerchant
	account accountData
}

func NewMerchant(store contracts.OptionStore) *Merchant {
	m := &Merchant{}
	m.Store = store
	return m
}

func (m *Merchant) Init() {
	m.ResolveMode()

	var data map[string]string
	found, err := m.Store.GetJSON(m.AccountKey(), &data)
	if err != nil {
		log.Warnf("[PayPal] could not load merchant account data: %v", err)
		return
	}
	if found {
		m.FromArray(data, false)
	}
}

func (m *Merchant) AccountKey() string {
	return fmt.Sprintf("ticketfox_commerce_%s_account_%s", GatewayKey, m.Mode())
}

// FromArray validates and loads account data. Returns false without
// mutating state when validation fails.
func (m *Merchant) FromArray(data map[string]string, needsSave bool) bool {
	candidate := accountData{
		MerchantID:         data["merchant_id"],
		MerchantIDInPayPal: data["merchant_id_in_paypal"],
		ClientID:           data["client_id"],
		ClientSecret:       data["client_secret"],
		AccountIsReady:     data["account_is_ready"] == "1",
		SupportsCustomPay:  data["supports_custom_payments"] == "1",
		ActiveAccount:      data["active_account"] == "1",
	}
	if err := validator.New().Struct(candidate); err != nil {
		return false
	}
	m.account = candidate
	m.MarkDirty(needsSave)
	return true
}

func (m *Merchant) ToArray() map[string]string {
	boolVal := func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	}
	return map[string]string{
		"merchant_id":              m.account.MerchantID,
		"merchant_id_in_paypal":    m.account.MerchantIDInPayPal,
		"client_id":                m.account.ClientID,
		"client_secret":            m.account.ClientSecret,
		"account_is_ready":         boolVal(m.account.AccountIsReady),
		"supports_custom_payments": boolVal(m.account.SupportsCustomPay),
		"active_account":           boolVal(m.account.ActiveAccount),
	}
}

func (m *Merchant) Save() (bool, error) {
	return m.SaveState(m.AccountKey(), m.ToArray())
}

func (m *Merchant) ClientID() string {
	return m.account.ClientID
}

func (m *Merchant) ClientSecret() string {
	return m.account.ClientSecret
}

// MerchantIDInPayPal is the seller account id assigned by PayPal during
// onboarding.
func (m *Merchant) MerchantIDInPayPal() string {
	return m.account.MerchantIDInPayPal
}

func (m *Merchant) IsConnected() bool {
	return m.account.MerchantIDInPayPal != ""
}

// IsActive requires a connected account that finished onboarding and can
// accept payments.
func (m *Merchant) IsActive() bool {
	return m.IsConnected() && m.account.AccountIsReady && m.account.ActiveAccount
}
