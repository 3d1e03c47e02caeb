package flagactions

import (
	"github.com/gofiber/fiber/v2/log"
)

// Dispatcher delivers transition events to registered actions in
// registration order. Ordering across actions sharing a flag is exactly the
// registration order; keep registrations deterministic.
type Dispatcher struct {
	actions []Action
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register appends an action. Registration happens once at startup.
func (d *Dispatcher) Register(a Action) {
	d.actions = append(d.actions, a)
}

// Actions returns the registered actions in registration order.
func (d *Dispatcher) Actions() []Action {
	return d.actions
}

// Dispatch invokes every matching action synchronously. Each action runs
// isolated: a panic or error is logged and never blocks sibling actions.
func (d *Dispatcher) Dispatch(event TransitionEvent) {
	for _, a := range d.actions {
		if !event.NewStatus.Flags.Intersects(a.Flags()...) {
			continue
		}
		if !matchesType(a.OrderTypes(), event.OrderType) {
			continue
		}
		d.run(a, event)
	}
}

func (d *Dispatcher) run(a Action, event TransitionEvent) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("[FlagActions] action %T panicked on %s -> %s for order %d: %v",
				a, event.OldStatus.Slug, event.NewStatus.Slug, event.Order.ID, r)
		}
	}()

	if err := a.Handle(event); err != nil {
		log.Errorf("[FlagActions] action %T failed on %s -> %s for order %d: %v",
			a, event.OldStatus.Slug, event.NewStatus.Slug, event.Order.ID, err)
	}
}

func matchesType(declared []string, orderType string) bool {
	for _, t := range declared {
		if t == orderType {
			return true
		}
	}
	return false
}
