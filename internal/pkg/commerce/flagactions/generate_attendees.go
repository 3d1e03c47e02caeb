package flagactions

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
)

// GenerateAttendees creates attendee records for every ticket line of an
// order the first time it reaches an attendee-generating status.
type GenerateAttendees struct {
	DB *gorm.DB
}

func NewGenerateAttendees(db *gorm.DB) *GenerateAttendees {
	return &GenerateAttendees{DB: db}
}

func (a *GenerateAttendees) Flags() []string {
	return []string{status.FlagAttendeeGeneration}
}

func (a *GenerateAttendees) OrderTypes() []string {
	return []string{models.OrderType}
}

func (a *GenerateAttendees) Handle(event TransitionEvent) error {
	order := event.Order
	if order.AttendeesExist {
		return nil
	}

	attendees := make([]models.Attendee, 0)
	for _, item := range order.Items {
		for i := 0; i < item.Quantity; i++ {
			attendees = append(attendees, models.Attendee{
				OrderID:      order.ID,
				TicketID:     item.TicketID,
				EventID:      item.EventID,
				HolderName:   order.PurchaserName,
				HolderEmail:  order.PurchaserEmail,
				SecurityCode: uuid.NewString(),
			})
		}
	}
	if len(attendees) == 0 {
		return nil
	}

	return a.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&attendees).Error; err != nil {
			return fmt.Errorf("failed to create attendees for order %d: %w", order.ID, err)
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("attendees_exist", true).Error; err != nil {
			return fmt.Errorf("failed to mark attendees generated for order %d: %w", order.ID, err)
		}
		order.AttendeesExist = true
		return nil
	})
}
