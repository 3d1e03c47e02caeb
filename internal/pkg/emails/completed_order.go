package emails

import (
	"fmt"
	"strings"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/mail"
)

// Sender delivers a rendered email. The boolean mirrors the underlying
// transport outcome; callers treat false as "not delivered", not as fatal.
type Sender interface {
	Send(to, subject, content string, headers, attachments []string) bool
}

// SMTPSender sends through the shared SMTP mailer.
type SMTPSender struct{}

func (SMTPSender) Send(to, subject, content string, headers, attachments []string) bool {
	return mail.SendMail(to, subject, content, headers, attachments) == nil
}

// CompletedOrderEmail renders the email sent to the purchaser when an order
// reaches a completed status.
type CompletedOrderEmail struct {
	placeholders map[string]string
}

func NewCompletedOrderEmail() *CompletedOrderEmail {
	return &CompletedOrderEmail{placeholders: map[string]string{}}
}

// IsEnabled reports whether this specific email type is switched on.
func (e *CompletedOrderEmail) IsEnabled() bool {
	settings := models.GetCommerceSettings()
	return settings != nil && settings.CompletedOrderEmailEnabled
}

// SetPlaceholders replaces the placeholder map used by Subject and Content.
func (e *CompletedOrderEmail) SetPlaceholders(placeholders map[string]string) {
	e.placeholders = placeholders
}

// Recipient resolves the destination address for the order.
func (e *CompletedOrderEmail) Recipient(order *models.Order) string {
	return strings.TrimSpace(order.PurchaserEmail)
}

// Subject renders the email subject with placeholders resolved.
func (e *CompletedOrderEmail) Subject() string {
	return ResolvePlaceholders("Your order {order_number} is complete", e.placeholders)
}

// Content renders the HTML body with placeholders resolved.
func (e *CompletedOrderEmail) Content(order *models.Order) string {
	var b strings.Builder
	b.WriteString("<h1>")
	b.WriteString(ResolvePlaceholders("Order {order_number} completed", e.placeholders))
	b.WriteString("</h1>")
	if order.PurchaserName != "" {
		fmt.Fprintf(&b, "<p>Hi %s,</p>", order.PurchaserName)
	}
	fmt.Fprintf(&b, "<p>Your payment of %s %s was received and your order is complete.</p>",
		order.Total.StringFixed(2), order.Currency)
	b.WriteString("<ul>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%d &times; ticket #%d</li>", item.Quantity, item.TicketID)
	}
	b.WriteString("</ul>")
	return b.String()
}

// Headers returns extra SMTP headers for this email type.
func (e *CompletedOrderEmail) Headers() []string {
	return []string{"X-Ticketfox-Email: completed-order"}
}

// Attachments returns file paths to attach. None by default.
func (e *CompletedOrderEmail) Attachments() []string {
	return nil
}
