package flagactions

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
)

// ReduceStock decrements ticket stock the first time an order reaches a
// stock-holding status. The guard column on the order makes duplicate
// transitions idempotent.
type ReduceStock struct {
	DB *gorm.DB
}

func NewReduceStock(db *gorm.DB) *ReduceStock {
	return &ReduceStock{DB: db}
}

func (a *ReduceStock) Flags() []string {
	return []string{status.FlagStockReduced}
}

func (a *ReduceStock) OrderTypes() []string {
	return []string{models.OrderType}
}

func (a *ReduceStock) Handle(event TransitionEvent) error {
	order := event.Order
	if order.StockReduced {
		return nil
	}
	return adjustStock(a.DB, order, -1, "stock_reduced", true)
}

// IncreaseStock returns held stock when an order moves to a refunded
// status. Only fires for orders that actually hold stock.
type IncreaseStock struct {
	DB *gorm.DB
}

func NewIncreaseStock(db *gorm.DB) *IncreaseStock {
	return &IncreaseStock{DB: db}
}

func (a *IncreaseStock) Flags() []string {
	return []string{status.FlagRefunded}
}

func (a *IncreaseStock) OrderTypes() []string {
	return []string{models.OrderType}
}

func (a *IncreaseStock) Handle(event TransitionEvent) error {
	order := event.Order
	if !order.StockReduced {
		return nil
	}
	return adjustStock(a.DB, order, 1, "stock_reduced", false)
}

func adjustStock(db *gorm.DB, order *models.Order, direction int, guardColumn string, guardValue bool) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			delta := direction * item.Quantity
			if err := tx.Model(&models.Ticket{}).Where("id = ?", item.TicketID).
				UpdateColumn("stock", gorm.Expr("stock + ?", delta)).Error; err != nil {
				return fmt.Errorf("failed to adjust stock for ticket %d: %w", item.TicketID, err)
			}
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update(guardColumn, guardValue).Error; err != nil {
			return fmt.Errorf("failed to flag stock state for order %d: %w", order.ID, err)
		}
		order.StockReduced = guardValue
		return nil
	})
}
