package controllers

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/app/repository"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/cart"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/stripe"
)

const checkoutRequestTimeout = 35 * time.Second

type createIntentRequest struct {
	Cart           cart.Cart `json:"cart"`
	PurchaserName  string    `json:"purchaser_name"`
	PurchaserEmail string    `json:"purchaser_email"`
}

// HandleCreatePaymentIntent opens a Stripe checkout for the posted cart. A
// pending order row is created alongside the provider-side intent; repeated
// calls for the same cart reuse the cached intent.
func HandleCreatePaymentIntent(c *fiber.Ctx) error {
	svc := getCommerce()

	var req createIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid_request"})
	}
	if req.Cart.IsEmpty() {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "empty_cart"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkoutRequestTimeout)
	defer cancel()

	handler := newStripeIntentHandler()
	intent, err := handler.CreatePaymentIntentForCart(ctx, &req.Cart, false)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "error": "payment_intent_failed"})
	}

	if intent.ID != "" {
		order := &models.Order{
			Status:         status.Created,
			Gateway:        models.GatewayStripe,
			GatewayOrderID: intent.ID,
			CartHash:       req.Cart.Hash(),
			PurchaserName:  req.PurchaserName,
			PurchaserEmail: req.PurchaserEmail,
			Total:          req.Cart.Total(),
			Currency:       req.Cart.Currency,
		}
		for _, item := range req.Cart.Items {
			order.Items = append(order.Items, models.OrderItem{
				TicketID: item.TicketID,
				EventID:  item.EventID,
				Quantity: item.Quantity,
				Price:    item.Price,
			})
			order.EventsInOrder = append(order.EventsInOrder, item.EventID)
		}
		if err := ensureOrderForIntent(svc.Orders, order); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "order_create_failed"})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    handler.PublishablePaymentIntentData(&req.Cart),
	})
}

// ensureOrderForIntent creates the pending order unless one already exists
// for the same gateway order id. Only a confirmed missing row triggers the
// insert; any other lookup failure is returned so a flaky read cannot
// produce a duplicate order.
func ensureOrderForIntent(orders repository.OrderRepository, order *models.Order) error {
	_, err := orders.GetByGatewayOrderID(order.Gateway, order.GatewayOrderID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return orders.Create(order)
}

// HandleUpdatePaymentIntent adds purchase data to an existing intent before
// the purchaser confirms.
func HandleUpdatePaymentIntent(c *fiber.Ctx) error {
	var req stripe.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid_request"})
	}
	if req.PaymentIntentID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "missing_payment_intent_id"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), checkoutRequestTimeout)
	defer cancel()

	intent, err := newStripeIntentHandler().UpdatePaymentIntent(ctx, req)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "error": "payment_intent_update_failed"})
	}
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"id":     intent.ID,
		"status": intent.Status,
	}})
}

// HandleCheckoutTemplateVars exposes per-gateway front end variables for
// the checkout page.
func HandleCheckoutTemplateVars(c *fiber.Ctx) error {
	svc := getCommerce()

	vars := map[string]interface{}{}
	for _, gw := range svc.Gateways.All() {
		if gw.IsActive() && gw.IsEnabled() {
			vars[gw.Key()] = gw.CheckoutTemplateVars()
		}
	}
	return c.JSON(fiber.Map{"success": true, "data": vars})
}
