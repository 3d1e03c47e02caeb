package commerce

import (
	"context"
	"errors"
	"testing"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/flagactions"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
)

type fakeOrderStore struct {
	status      map[uint]string
	transitions []*models.OrderTransition
	casErr      error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{status: make(map[uint]string)}
}

func (s *fakeOrderStore) UpdateStatusCAS(_ context.Context, orderID uint, oldStatus, newStatus string) (bool, error) {
	if s.casErr != nil {
		return false, s.casErr
	}
	if s.status[orderID] != oldStatus {
		return false, nil
	}
	s.status[orderID] = newStatus
	return true, nil
}

func (s *fakeOrderStore) RecordTransition(_ context.Context, tr *models.OrderTransition) error {
	s.transitions = append(s.transitions, tr)
	return nil
}

type countingAction struct {
	calls int
	last  flagactions.TransitionEvent
}

func (a *countingAction) Flags() []string      { return []string{status.FlagSendEmailCompletedOrder} }
func (a *countingAction) OrderTypes() []string { return []string{models.OrderType} }
func (a *countingAction) Handle(ev flagactions.TransitionEvent) error {
	a.calls++
	a.last = ev
	return nil
}

func newTransitioner(store *fakeOrderStore, actions ...flagactions.Action) *Transitioner {
	d := flagactions.NewDispatcher()
	for _, a := range actions {
		d.Register(a)
	}
	return NewTransitioner(store, status.NewDefaultRegistry(), d)
}

func TestTransitionUpdatesStatusAndRecords(t *testing.T) {
	store := newFakeOrderStore()
	store.status[1] = status.Pending
	tr := newTransitioner(store)

	order := &models.Order{ID: 1, Status: status.Pending}
	if err := tr.Transition(context.Background(), order, status.Completed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if order.Status != status.Completed {
		t.Fatalf("order.Status = %q, want %q", order.Status, status.Completed)
	}
	if store.status[1] != status.Completed {
		t.Fatalf("persisted status = %q, want %q", store.status[1], status.Completed)
	}
	if len(store.transitions) != 1 {
		t.Fatalf("expected 1 transition record, got %d", len(store.transitions))
	}
	rec := store.transitions[0]
	if rec.OldStatus != status.Pending || rec.NewStatus != status.Completed {
		t.Fatalf("unexpected transition record: %+v", rec)
	}
}

func TestTransitionUnknownTargetSlug(t *testing.T) {
	store := newFakeOrderStore()
	store.status[1] = status.Pending
	tr := newTransitioner(store)

	order := &models.Order{ID: 1, Status: status.Pending}
	err := tr.Transition(context.Background(), order, "nonsense")

	var unknown *status.UnknownStatusError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStatusError, got %v", err)
	}
	if order.Status != status.Pending {
		t.Fatalf("order must be left unchanged, got %q", order.Status)
	}
	if store.status[1] != status.Pending {
		t.Fatalf("persisted status must be left unchanged, got %q", store.status[1])
	}
}

func TestTransitionUnknownCurrentSlug(t *testing.T) {
	store := newFakeOrderStore()
	tr := newTransitioner(store)

	order := &models.Order{ID: 1, Status: "bogus"}
	err := tr.Transition(context.Background(), order, status.Completed)

	var unknown *status.UnknownStatusError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownStatusError, got %v", err)
	}
}

func TestTransitionNotifiesDispatcher(t *testing.T) {
	store := newFakeOrderStore()
	store.status[5] = status.Pending
	action := &countingAction{}
	tr := newTransitioner(store, action)

	order := &models.Order{ID: 5, Status: status.Pending}
	if err := tr.Transition(context.Background(), order, status.Completed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if action.calls != 1 {
		t.Fatalf("expected dispatcher to fire once, got %d", action.calls)
	}
	if action.last.NewStatus.Slug != status.Completed || action.last.OldStatus.Slug != status.Pending {
		t.Fatalf("unexpected event statuses: %+v", action.last)
	}
}

func TestTransitionStaleStatusSkipsDispatch(t *testing.T) {
	store := newFakeOrderStore()
	// Another request already moved the order on.
	store.status[5] = status.Completed
	action := &countingAction{}
	tr := newTransitioner(store, action)

	order := &models.Order{ID: 5, Status: status.Pending}
	err := tr.Transition(context.Background(), order, status.Completed)
	if !errors.Is(err, ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}
	if action.calls != 0 {
		t.Fatalf("stale transition must not dispatch actions")
	}
	if order.Status != status.Pending {
		t.Fatalf("in-memory order must be left unchanged on stale transition")
	}
}

func TestTransitionBetweenAnyRegisteredSlugs(t *testing.T) {
	registry := status.NewDefaultRegistry()
	all := registry.All()

	for _, from := range all {
		for _, to := range all {
			if from.Slug == to.Slug {
				continue
			}
			store := newFakeOrderStore()
			store.status[1] = from.Slug
			tr := newTransitioner(store)
			order := &models.Order{ID: 1, Status: from.Slug}
			if err := tr.Transition(context.Background(), order, to.Slug); err != nil {
				t.Fatalf("transition %s -> %s failed: %v", from.Slug, to.Slug, err)
			}
			if order.Status != to.Slug {
				t.Fatalf("transition %s -> %s: order.Status = %q", from.Slug, to.Slug, order.Status)
			}
		}
	}
}
