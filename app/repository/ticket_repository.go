package repository

import (
	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
)

// ticketRepository implements the TicketRepository interface
type ticketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository instance
func NewTicketRepository(db *gorm.DB) TicketRepository {
	return &ticketRepository{db: db}
}

func (r *ticketRepository) Create(ticket *models.Ticket) error {
	return r.db.Create(ticket).Error
}

func (r *ticketRepository) GetByID(id uint) (*models.Ticket, error) {
	var ticket models.Ticket
	err := r.db.First(&ticket, id).Error
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) GetByEventID(eventID uint) ([]models.Ticket, error) {
	var tickets []models.Ticket
	err := r.db.Where("event_id = ?", eventID).Find(&tickets).Error
	return tickets, err
}

func (r *ticketRepository) Update(ticket *models.Ticket) error {
	return r.db.Save(ticket).Error
}

// attendeeRepository implements the AttendeeRepository interface
type attendeeRepository struct {
	db *gorm.DB
}

// NewAttendeeRepository creates a new attendee repository instance
func NewAttendeeRepository(db *gorm.DB) AttendeeRepository {
	return &attendeeRepository{db: db}
}

func (r *attendeeRepository) GetByOrderID(orderID uint) ([]models.Attendee, error) {
	var attendees []models.Attendee
	err := r.db.Where("order_id = ?", orderID).Find(&attendees).Error
	return attendees, err
}

func (r *attendeeRepository) GetBySecurityCode(code string) (*models.Attendee, error) {
	var attendee models.Attendee
	err := r.db.Where("security_code = ?", code).First(&attendee).Error
	if err != nil {
		return nil, err
	}
	return &attendee, nil
}

func (r *attendeeRepository) CountByTicketID(ticketID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Attendee{}).Where("ticket_id = ?", ticketID).Count(&count).Error
	return count, err
}
