package cart

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Item is one ticket line in the cart.
type Item struct {
	TicketID uint            `json:"ticket_id"`
	EventID  uint            `json:"event_id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// Cart is the in-progress checkout contents a payment intent is created
// for. The cart itself is owned by the checkout collaborator; the commerce
// core only reads totals and the content hash.
type Cart struct {
	Items    []Item `json:"items"`
	Currency string `json:"currency"`
}

// Total sums all line totals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// TotalInSmallestUnit converts the total to the smallest currency unit, the
// shape payment providers expect (e.g. cents for USD).
func (c *Cart) TotalInSmallestUnit() int64 {
	return c.Total().Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

// Hash returns a stable fingerprint of the cart contents. Identical carts
// produce identical hashes regardless of item order.
func (c *Cart) Hash() string {
	lines := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		lines = append(lines, fmt.Sprintf("%d:%d:%d:%s", item.TicketID, item.EventID, item.Quantity, item.Price.StringFixed(2)))
	}
	sort.Strings(lines)
	sum := md5.Sum([]byte(strings.ToUpper(c.Currency) + "|" + strings.Join(lines, "|")))
	return hex.EncodeToString(sum[:])
}

// IsEmpty reports whether there is anything to pay for.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
