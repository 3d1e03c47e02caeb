package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ticket is a purchasable ticket type attached to an event.
type Ticket struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	EventID   uint            `gorm:"not null;index" json:"event_id"`
	Name      string          `gorm:"type:varchar(200);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	Capacity  int             `gorm:"not null;default:0" json:"capacity"`
	CreatedAt time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
