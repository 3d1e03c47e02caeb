package flagactions

import (
	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
)

// TransitionEvent is published synchronously after every successful order
// status transition.
type TransitionEvent struct {
	NewStatus *status.Status
	OldStatus *status.Status
	Order     *models.Order
	OrderType string
}

// Action is a side-effecting handler fired when a transition's new status
// carries one of the action's declared flags and the order's content type is
// among the declared types.
type Action interface {
	// Flags the action reacts to. An action fires when any declared flag is
	// present on the new status.
	Flags() []string

	// OrderTypes the action applies to.
	OrderTypes() []string

	// Handle executes the side effect. Returning an error never affects the
	// already-committed status nor sibling actions.
	Handle(event TransitionEvent) error
}
