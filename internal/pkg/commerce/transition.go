package commerce

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/flagactions"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
)

// ErrStaleStatus is returned when the compare-and-set on the status column
// finds the order no longer in the expected prior status. Duplicate webhook
// deliveries land here instead of re-firing flag actions.
var ErrStaleStatus = errors.New("order status changed concurrently; transition not applied")

// OrderStore is the slice of the content store the transition needs: an
// atomic single-field status update and the transition log.
type OrderStore interface {
	// UpdateStatusCAS sets the status only if the order still has
	// oldStatus. Returns false when no row matched.
	UpdateStatusCAS(ctx context.Context, orderID uint, oldStatus, newStatus string) (bool, error)
	RecordTransition(ctx context.Context, transition *models.OrderTransition) error
}

// Transitioner owns order status changes. Nothing else writes the status
// column.
type Transitioner struct {
	store      OrderStore
	registry   *status.Registry
	dispatcher *flagactions.Dispatcher
}

// NewTransitioner wires the transition operation to its collaborators.
func NewTransitioner(store OrderStore, registry *status.Registry, dispatcher *flagactions.Dispatcher) *Transitioner {
	return &Transitioner{store: store, registry: registry, dispatcher: dispatcher}
}

// Transition moves an order to the status named by newSlug.
//
// Both the current and target slug must resolve in the registry; otherwise
// the order is left unchanged and an UnknownStatusError is returned. On
// success the (old, new) pair is recorded and the flag action dispatcher is
// notified synchronously.
func (t *Transitioner) Transition(ctx context.Context, order *models.Order, newSlug string) error {
	oldStatus, err := t.registry.Get(order.Status)
	if err != nil {
		return err
	}
	newStatus, err := t.registry.Get(newSlug)
	if err != nil {
		return err
	}

	applied, err := t.store.UpdateStatusCAS(ctx, order.ID, oldStatus.Slug, newStatus.Slug)
	if err != nil {
		return fmt.Errorf("failed to update status of order %d: %w", order.ID, err)
	}
	if !applied {
		return ErrStaleStatus
	}

	order.Status = newStatus.Slug

	if err := t.store.RecordTransition(ctx, &models.OrderTransition{
		OrderID:   order.ID,
		OldStatus: oldStatus.Slug,
		NewStatus: newStatus.Slug,
	}); err != nil {
		// The status write is already committed; the missing log entry must
		// not roll it back or block flag actions.
		return t.dispatchAndWrap(order, newStatus, oldStatus,
			fmt.Errorf("failed to record transition for order %d: %w", order.ID, err))
	}

	t.dispatch(order, newStatus, oldStatus)
	return nil
}

func (t *Transitioner) dispatch(order *models.Order, newStatus, oldStatus *status.Status) {
	if t.dispatcher == nil {
		return
	}
	t.dispatcher.Dispatch(flagactions.TransitionEvent{
		NewStatus: newStatus,
		OldStatus: oldStatus,
		Order:     order,
		OrderType: models.OrderType,
	})
}

func (t *Transitioner) dispatchAndWrap(order *models.Order, newStatus, oldStatus *status.Status, err error) error {
	t.dispatch(order, newStatus, oldStatus)
	return err
}
