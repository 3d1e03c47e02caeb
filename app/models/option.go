package models

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Option represents a persisted key/value setting without TTL. Merchant
// credentials and feature toggles live here; transient data does not.
type Option struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:option_key;size:191;not null;uniqueIndex" json:"key" validate:"required,min=1,max=191"`
	Value     string    `gorm:"type:longtext" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommerceSettings represents the commerce feature toggles
type CommerceSettings struct {
	EmailsEnabled              bool   `json:"emails_enabled"`
	CompletedOrderEmailEnabled bool   `json:"completed_order_email_enabled"`
	StripeReceiptEmails        bool   `json:"stripe_receipt_emails"`
	PayPalCountry              string `json:"paypal_country" validate:"omitempty,len=2"`
	mu                         sync.RWMutex
}

// Global settings instance
var (
	commerceSettings *CommerceSettings
	settingsMu       sync.RWMutex
)

// GetCommerceSettings returns the current commerce settings
func GetCommerceSettings() *CommerceSettings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return commerceSettings
}

// SetCommerceSettings replaces the in-memory settings without touching the
// database. Used at bootstrap before the DB is ready and by tests.
func SetCommerceSettings(settings *CommerceSettings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	commerceSettings = settings
}

// LoadCommerceSettings loads commerce settings from database into memory
func LoadCommerceSettings(db *gorm.DB) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	// Initialize with defaults
	commerceSettings = &CommerceSettings{
		EmailsEnabled:              true,
		CompletedOrderEmailEnabled: true,
		StripeReceiptEmails:        false,
		PayPalCountry:              "US",
	}

	var options []Option
	if err := db.Find(&options).Error; err != nil {
		return fmt.Errorf("failed to load options: %w", err)
	}

	for _, option := range options {
		switch option.Key {
		case "emails_enabled":
			commerceSettings.EmailsEnabled = option.Value == "true"
		case "completed_order_email_enabled":
			commerceSettings.CompletedOrderEmailEnabled = option.Value == "true"
		case "stripe_receipt_emails":
			commerceSettings.StripeReceiptEmails = option.Value == "true"
		case "paypal_country":
			commerceSettings.PayPalCountry = option.Value
		}
	}

	return nil
}

// SaveCommerceSettings saves current commerce settings to database
func SaveCommerceSettings(db *gorm.DB, settings *CommerceSettings) error {
	settingsMu.Lock()
	defer settingsMu.Unlock()

	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	settingsMap := map[string]string{
		"emails_enabled":                fmt.Sprintf("%t", settings.EmailsEnabled),
		"completed_order_email_enabled": fmt.Sprintf("%t", settings.CompletedOrderEmailEnabled),
		"stripe_receipt_emails":         fmt.Sprintf("%t", settings.StripeReceiptEmails),
		"paypal_country":                settings.PayPalCountry,
	}

	for key, value := range settingsMap {
		if err := SetOption(db, key, value); err != nil {
			return err
		}
	}

	commerceSettings = settings
	return nil
}

// Validate validates the settings struct
func (s *CommerceSettings) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// GetOption reads one option value, returning def when the key is absent.
func GetOption(db *gorm.DB, key, def string) (string, error) {
	var option Option
	err := db.Where("option_key = ?", key).First(&option).Error
	if err == gorm.ErrRecordNotFound {
		return def, nil
	}
	if err != nil {
		return def, err
	}
	return option.Value, nil
}

// SetOption creates or updates one option value.
func SetOption(db *gorm.DB, key, value string) error {
	var option Option
	result := db.Where("option_key = ?", key).First(&option)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			option = Option{Key: key, Value: value}
			if err := db.Create(&option).Error; err != nil {
				return fmt.Errorf("failed to create option %s: %w", key, err)
			}
			return nil
		}
		return fmt.Errorf("failed to query option %s: %w", key, result.Error)
	}

	option.Value = value
	if err := db.Save(&option).Error; err != nil {
		return fmt.Errorf("failed to update option %s: %w", key, err)
	}
	return nil
}

// GetOptionJSON reads one option value and unmarshals it into dest. The
// boolean reports whether the key existed at all.
func GetOptionJSON(db *gorm.DB, key string, dest interface{}) (bool, error) {
	raw, err := GetOption(db, key, "")
	if err != nil {
		return false, err
	}
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("failed to decode option %s: %w", key, err)
	}
	return true, nil
}

// SetOptionJSON marshals a value to JSON and stores it under the key.
func SetOptionJSON(db *gorm.DB, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode option %s: %w", key, err)
	}
	return SetOption(db, key, string(raw))
}
