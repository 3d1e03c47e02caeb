package contracts

import (
	"fmt"

	"github.com/ticketfox/ticketfox/internal/pkg/env"
)

// Merchant operating modes. Sandbox and live credentials are persisted
// under different keys and never collide.
const (
	ModeSandbox = "sandbox"
	ModeLive    = "live"
)

// Merchant represents this site's connection to one payment provider
// account.
type Merchant interface {
	Mode() string
	IsActive() bool
	IsConnected() bool
	ClientID() string
	AccountKey() string

	// FromArray validates and loads provider account data. Returns false
	// without mutating state when validation fails; needsSave marks the
	// instance dirty for a later Save.
	FromArray(data map[string]string, needsSave bool) bool

	// Save persists the full serialized state under AccountKey. No-ops
	// (returns false) when the instance is not dirty.
	Save() (bool, error)
}

// ValidationError wraps a merchant data validation failure. The merchant is
// to be treated as not-yet-configured.
type ValidationError struct {
	Gateway string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s merchant data: %v", e.Gateway, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BaseMerchant carries the state shared by every gateway merchant: the
// operating mode, the dirty flag, and the option store handle.
type BaseMerchant struct {
	mode      string
	needsSave bool
	Store     OptionStore
}

// ResolveMode sets the mode from the site-wide sandbox flag. Called once
// during Init.
func (m *BaseMerchant) ResolveMode() {
	if env.IsSandbox() {
		m.mode = ModeSandbox
	} else {
		m.mode = ModeLive
	}
}

// Mode returns the current operating mode, defaulting to live.
func (m *BaseMerchant) Mode() string {
	if m.mode == "" {
		return ModeLive
	}
	return m.mode
}

// SetMode overrides the operating mode.
func (m *BaseMerchant) SetMode(mode string) {
	m.mode = mode
}

// NeedsSave reports whether in-memory state diverged from the store.
func (m *BaseMerchant) NeedsSave() bool {
	return m.needsSave
}

// MarkDirty flags the merchant for persistence on the next Save.
func (m *BaseMerchant) MarkDirty(dirty bool) {
	m.needsSave = dirty
}

// SaveState persists data under key when dirty, clearing the dirty flag on
// success. Returns false when there was nothing to save.
func (m *BaseMerchant) SaveState(key string, data interface{}) (bool, error) {
	if !m.needsSave {
		return false, nil
	}
	if err := m.Store.SetJSON(key, data); err != nil {
		return false, err
	}
	m.needsSave = false
	return true, nil
}
