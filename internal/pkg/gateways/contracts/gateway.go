package contracts

import "fmt"

// AdminNotice is an operator-facing diagnostic attached to a gateway.
type AdminNotice struct {
	Slug        string `json:"slug"`
	Content     string `json:"content"`
	Type        string `json:"type"`
	Dismissible bool   `json:"dismissible,omitempty"`
}

// Gateway is one pluggable payment provider integration.
type Gateway interface {
	Key() string
	Label() string
	LogoURL() string
	AdminNotices() []AdminNotice

	// IsActive reports whether the gateway can take payments right now
	// (merchant connected, credentials usable).
	IsActive() bool

	// IsEnabled reports whether the operator switched the gateway on.
	IsEnabled() bool

	// GenerateUniqueTrackingID returns the provider-facing identifier that
	// attributes traffic to this integration. Never longer than 127 chars.
	GenerateUniqueTrackingID() string

	// CheckoutTemplateVars returns the variables the checkout front end
	// needs from this gateway.
	CheckoutTemplateVars() map[string]interface{}
}

// MaxTrackingIDLength caps tracking ids sent to providers.
const MaxTrackingIDLength = 127

// TruncateTrackingID enforces the provider-side length cap.
func TruncateTrackingID(id string) string {
	if len(id) > MaxTrackingIDLength {
		return id[:MaxTrackingIDLength]
	}
	return id
}

// Manager resolves gateway slugs to registered gateways in registration
// order.
type Manager struct {
	gateways map[string]Gateway
	order    []string
}

func NewManager() *Manager {
	return &Manager{gateways: make(map[string]Gateway)}
}

func (m *Manager) Register(g Gateway) error {
	key := g.Key()
	if _, exists := m.gateways[key]; exists {
		return fmt.Errorf("gateway already registered: %q", key)
	}
	m.gateways[key] = g
	m.order = append(m.order, key)
	return nil
}

func (m *Manager) Get(key string) (Gateway, error) {
	g, ok := m.gateways[key]
	if !ok {
		return nil, fmt.Errorf("unknown gateway: %q", key)
	}
	return g, nil
}

func (m *Manager) All() []Gateway {
	out := make([]Gateway, 0, len(m.order))
	for _, key := range m.order {
		out = append(out, m.gateways[key])
	}
	return out
}
