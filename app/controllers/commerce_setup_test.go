package controllers

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
)

type fakeOrderRepo struct {
	byID        map[uint]*models.Order
	nextID      uint
	lookupErr   error
	created     []*models.Order
	transitions []models.OrderTransition
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: make(map[uint]*models.Order), nextID: 1}
}

func (r *fakeOrderRepo) add(order *models.Order) {
	if order.ID == 0 {
		order.ID = r.nextID
	}
	if order.ID >= r.nextID {
		r.nextID = order.ID + 1
	}
	r.byID[order.ID] = order
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	r.add(order)
	r.created = append(r.created, order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	if order, ok := r.byID[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetByGatewayOrderID(gateway, gatewayOrderID string) (*models.Order, error) {
	if r.lookupErr != nil {
		return nil, r.lookupErr
	}
	for _, order := range r.byID {
		if order.Gateway == gateway && order.GatewayOrderID == gatewayOrderID {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) Update(order *models.Order) error {
	r.byID[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) ListByStatus(status string, offset, limit int) ([]models.Order, error) {
	var out []models.Order
	for _, order := range r.byID {
		if order.Status == status {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) Count() (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeOrderRepo) UpdateStatusCAS(ctx context.Context, orderID uint, oldStatus, newStatus string) (bool, error) {
	order, ok := r.byID[orderID]
	if !ok || order.Status != oldStatus {
		return false, nil
	}
	order.Status = newStatus
	return true, nil
}

func (r *fakeOrderRepo) RecordTransition(ctx context.Context, transition *models.OrderTransition) error {
	r.transitions = append(r.transitions, *transition)
	return nil
}

func (r *fakeOrderRepo) ListTransitions(orderID uint) ([]models.OrderTransition, error) {
	var out []models.OrderTransition
	for _, tr := range r.transitions {
		if tr.OrderID == orderID {
			out = append(out, tr)
		}
	}
	return out, nil
}

type fakeWebhookEventRepo struct {
	byKey_ map[string]*models.ProviderWebhookEvent
	nextID uint
}

func newFakeWebhookEventRepo() *fakeWebhookEventRepo {
	return &fakeWebhookEventRepo{byKey_: make(map[string]*models.ProviderWebhookEvent), nextID: 1}
}

func (r *fakeWebhookEventRepo) key(provider, eventID string) string {
	return provider + "\x00" + eventID
}

func (r *fakeWebhookEventRepo) byKey(provider, eventID string) *models.ProviderWebhookEvent {
	return r.byKey_[r.key(provider, eventID)]
}

func (r *fakeWebhookEventRepo) CreateIfNotExists(event *models.ProviderWebhookEvent) (bool, *models.ProviderWebhookEvent, error) {
	k := r.key(event.Provider, event.ProviderEventID)
	if existing, ok := r.byKey_[k]; ok {
		return false, existing, nil
	}
	event.ID = r.nextID
	r.nextID++
	r.byKey_[k] = event
	return true, event, nil
}

func (r *fakeWebhookEventRepo) MarkProcessed(id uint, processingError string) error {
	for _, event := range r.byKey_ {
		if event.ID == id {
			now := time.Now()
			event.ProcessedAt = &now
			event.ProcessingError = processingError
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

type memOptionStore struct {
	data map[string]string
	sets int
}

func newMemOptionStore() *memOptionStore {
	return &memOptionStore{data: make(map[string]string)}
}

func (s *memOptionStore) GetJSON(key string, dest interface{}) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), dest)
}

func (s *memOptionStore) SetJSON(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = string(raw)
	s.sets++
	return nil
}

type memTransientStore struct {
	data map[string]string
}

func newMemTransientStore() *memTransientStore {
	return &memTransientStore{data: make(map[string]string)}
}

func (s *memTransientStore) GetJSON(key string, dest interface{}) (bool, error) {
	raw, ok := s.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal([]byte(raw), dest)
}

func (s *memTransientStore) SetJSON(key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = string(raw)
	return nil
}

func (s *memTransientStore) Delete(key string) error {
	delete(s.data, key)
	return nil
}
