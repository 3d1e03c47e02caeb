package flagactions

import (
	"fmt"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
	"github.com/ticketfox/ticketfox/internal/pkg/emails"
)

// SendEmailCompletedOrder emails the purchaser when an order reaches a
// status flagged send_email_completed_order.
type SendEmailCompletedOrder struct {
	Email  *emails.CompletedOrderEmail
	Sender emails.Sender
}

func NewSendEmailCompletedOrder(sender emails.Sender) *SendEmailCompletedOrder {
	return &SendEmailCompletedOrder{
		Email:  emails.NewCompletedOrderEmail(),
		Sender: sender,
	}
}

func (a *SendEmailCompletedOrder) Flags() []string {
	return []string{status.FlagSendEmailCompletedOrder}
}

func (a *SendEmailCompletedOrder) OrderTypes() []string {
	return []string{models.OrderType}
}

// Handle sends the completed-order email. Unmet prerequisites are a soft
// skip, not an error.
func (a *SendEmailCompletedOrder) Handle(event TransitionEvent) error {
	order := event.Order

	// Manual orders are not attached to synced events; the order itself
	// stands in so the email still goes out.
	if order.Gateway == models.GatewayManual && len(order.EventsInOrder) == 0 {
		order.EventsInOrder = append(order.EventsInOrder, order.ID)
	}

	if len(order.EventsInOrder) == 0 {
		return nil
	}

	settings := models.GetCommerceSettings()
	if settings == nil || !settings.EmailsEnabled {
		return nil
	}

	if !a.Email.IsEnabled() {
		return nil
	}

	a.Email.SetPlaceholders(map[string]string{
		"{order_number}": fmt.Sprintf("#%d", order.ID),
		"{order_id}":     fmt.Sprintf("%d", order.ID),
	})

	to := a.Email.Recipient(order)
	if to == "" {
		return nil
	}

	subject := a.Email.Subject()
	content := a.Email.Content(order)
	headers := a.Email.Headers()
	attachments := a.Email.Attachments()

	if !a.Sender.Send(to, subject, content, headers, attachments) {
		return fmt.Errorf("completed-order email to %s was not delivered", to)
	}
	return nil
}
