package models

import "time"

// Attendee is one generated attendee record for a purchased ticket.
type Attendee struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	OrderID      uint      `gorm:"not null;index" json:"order_id"`
	TicketID     uint      `gorm:"not null;index" json:"ticket_id"`
	EventID      uint      `gorm:"not null;index" json:"event_id"`
	HolderName   string    `gorm:"type:varchar(200);default:''" json:"holder_name"`
	HolderEmail  string    `gorm:"type:varchar(200);default:''" json:"holder_email"`
	SecurityCode string    `gorm:"type:varchar(36);not null;uniqueIndex" json:"security_code"`
	CheckedIn    bool      `gorm:"default:false" json:"checked_in"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
