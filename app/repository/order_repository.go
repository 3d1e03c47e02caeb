package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
)

// orderRepository implements the OrderRepository interface
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository instance
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByGatewayOrderID(gateway, gatewayOrderID string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").
		Where("gateway = ? AND gateway_order_id = ?", gateway, gatewayOrderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *orderRepository) ListByStatus(status string, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("status = ?", status).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Count(&count).Error
	return count, err
}

// UpdateStatusCAS guards against concurrent status writers, typically
// duplicate webhook deliveries racing each other. The status column is the
// only thing touched.
func (r *orderRepository) UpdateStatusCAS(ctx context.Context, orderID uint, oldStatus, newStatus string) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", orderID, oldStatus).
		Update("status", newStatus)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (r *orderRepository) RecordTransition(ctx context.Context, transition *models.OrderTransition) error {
	return r.db.WithContext(ctx).Create(transition).Error
}

func (r *orderRepository) ListTransitions(orderID uint) ([]models.OrderTransition, error) {
	var transitions []models.OrderTransition
	err := r.db.Where("order_id = ?", orderID).
		Order("created_at ASC, id ASC").
		Find(&transitions).Error
	return transitions, err
}
