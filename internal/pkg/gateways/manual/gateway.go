// Package manual implements the on-site gateway for orders settled outside
// any payment provider, such as box office or invoice sales.
package manual

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
)

const GatewayKey = "manual"

// Gateway has no provider connection; it is always active and its orders
// are completed by an operator.
type Gateway struct{}

func NewGateway() *Gateway {
	return &Gateway{}
}

func (g *Gateway) Key() string {
	return GatewayKey
}

func (g *Gateway) Label() string {
	return "Manual"
}

func (g *Gateway) LogoURL() string {
	return ""
}

func (g *Gateway) IsActive() bool {
	return true
}

func (g *Gateway) IsEnabled() bool {
	return true
}

func (g *Gateway) AdminNotices() []contracts.AdminNotice {
	return nil
}

func (g *Gateway) GenerateUniqueTrackingID() string {
	return contracts.TruncateTrackingID(fmt.Sprintf("%s-%s", GatewayKey, uuid.NewString()))
}

func (g *Gateway) CheckoutTemplateVars() map[string]interface{} {
	return map[string]interface{}{
		"gateway": GatewayKey,
	}
}
