package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
)

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByGatewayOrderID(gateway, gatewayOrderID string) (*models.Order, error)
	Update(order *models.Order) error
	ListByStatus(status string, offset, limit int) ([]models.Order, error)
	Count() (int64, error)

	// UpdateStatusCAS moves the order from oldStatus to newStatus only if
	// the row still holds oldStatus. Returns false when another writer got
	// there first.
	UpdateStatusCAS(ctx context.Context, orderID uint, oldStatus, newStatus string) (bool, error)
	RecordTransition(ctx context.Context, transition *models.OrderTransition) error
	ListTransitions(orderID uint) ([]models.OrderTransition, error)
}

// TicketRepository defines the interface for ticket-related database operations
type TicketRepository interface {
	Create(ticket *models.Ticket) error
	GetByID(id uint) (*models.Ticket, error)
	GetByEventID(eventID uint) ([]models.Ticket, error)
	Update(ticket *models.Ticket) error
}

// AttendeeRepository defines the interface for attendee-related database operations
type AttendeeRepository interface {
	GetByOrderID(orderID uint) ([]models.Attendee, error)
	GetBySecurityCode(code string) (*models.Attendee, error)
	CountByTicketID(ticketID uint) (int64, error)
}

// WebhookEventRepository stores provider webhook deliveries for idempotent
// processing.
type WebhookEventRepository interface {
	// CreateIfNotExists inserts the event unless the same provider event id
	// was already recorded. The boolean reports whether this call created
	// the row.
	CreateIfNotExists(event *models.ProviderWebhookEvent) (bool, *models.ProviderWebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
}

// Repositories holds all repository instances
type Repositories struct {
	Order        OrderRepository
	Ticket       TicketRepository
	Attendee     AttendeeRepository
	WebhookEvent WebhookEventRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Order:        NewOrderRepository(db),
		Ticket:       NewTicketRepository(db),
		Attendee:     NewAttendeeRepository(db),
		WebhookEvent: NewWebhookEventRepository(db),
	}
}
