package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderType is the content type flag actions match against.
const OrderType = "tf_order"

// Gateway slugs recorded on orders.
const (
	GatewayManual = "manual"
	GatewayStripe = "stripe"
	GatewayPayPal = "paypal"
)

// Order represents one checkout transaction with a lifecycle status.
//
// Status is a slug into the commerce status registry and is only ever
// written through the transition operation; nothing else touches the column.
type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	Status          string          `gorm:"type:varchar(32);not null;default:'created';index" json:"status"`
	Gateway         string          `gorm:"type:varchar(20);not null;default:'manual';index" json:"gateway"`
	GatewayOrderID  string          `gorm:"type:varchar(191);default:'';index" json:"gateway_order_id"`
	CartHash        string          `gorm:"type:varchar(64);default:'';index" json:"cart_hash"`
	PurchaserName   string          `gorm:"type:varchar(200);default:''" json:"purchaser_name"`
	PurchaserEmail  string          `gorm:"type:varchar(200);default:''" json:"purchaser_email"`
	Total           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"total"`
	Currency        string          `gorm:"type:varchar(3);not null;default:'USD'" json:"currency"`
	EventsInOrder   []uint          `gorm:"serializer:json" json:"events_in_order"`
	StockReduced    bool            `gorm:"default:false" json:"stock_reduced"`
	AttendeesExist  bool            `gorm:"default:false" json:"attendees_exist"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

// OrderItem is one ticket line inside an order.
type OrderItem struct {
	ID       uint            `gorm:"primaryKey" json:"id"`
	OrderID  uint            `gorm:"not null;index" json:"order_id"`
	TicketID uint            `gorm:"not null;index" json:"ticket_id"`
	EventID  uint            `gorm:"not null;index" json:"event_id"`
	Quantity int             `gorm:"not null;default:1" json:"quantity"`
	Price    decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
}

// OrderTransition is the append-only record of one status change.
type OrderTransition struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	OldStatus string    `gorm:"type:varchar(32);not null" json:"old_status"`
	NewStatus string    `gorm:"type:varchar(32);not null" json:"new_status"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
