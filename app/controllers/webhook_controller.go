package controllers

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce"
	"github.com/ticketfox/ticketfox/internal/pkg/env"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/stripe"
)

// HandleStripeWebhook settles orders from provider events. Deliveries are
// recorded before processing so redelivered events are acknowledged without
// re-firing transitions.
func HandleStripeWebhook(c *fiber.Ctx) error {
	svc := getCommerce()

	rawBody := append([]byte(nil), c.BodyRaw()...)
	signature := strings.TrimSpace(c.Get("Stripe-Signature"))
	secret := env.GetEnv("STRIPE_WEBHOOK_SECRET", "")

	signatureValid := stripe.VerifyWebhookSignature(rawBody, signature, secret, stripe.DefaultSignatureTolerance)

	event, err := stripe.ParseWebhookEvent(rawBody)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_payload"})
	}

	created, stored, err := svc.WebhookEvents.CreateIfNotExists(&models.ProviderWebhookEvent{
		Provider:        models.GatewayStripe,
		ProviderEventID: event.ID,
		EventType:       event.Type,
		PayloadJSON:     string(rawBody),
		SignatureValid:  signatureValid,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "webhook_persist_failed"})
	}
	if !created {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
	}
	if !signatureValid {
		_ = svc.WebhookEvents.MarkProcessed(stored.ID, "invalid webhook signature")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid_signature"})
	}

	targetStatus, mapped := stripe.EventTypeToOrderStatus(event.Type)
	if !mapped {
		_ = svc.WebhookEvents.MarkProcessed(stored.ID, "")
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
	}

	order, err := svc.Orders.GetByGatewayOrderID(models.GatewayStripe, event.OrderLookupID())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = svc.WebhookEvents.MarkProcessed(stored.ID, "no order for payment intent")
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "ignored": true})
		}
		_ = svc.WebhookEvents.MarkProcessed(stored.ID, err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "order_lookup_failed"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := svc.Transitioner.Transition(ctx, order, targetStatus); err != nil {
		if errors.Is(err, commerce.ErrStaleStatus) {
			// Someone else already moved the order; duplicate delivery race.
			_ = svc.WebhookEvents.MarkProcessed(stored.ID, "")
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true, "duplicate": true})
		}
		log.Errorf("stripe webhook: transition order %d to %s: %v", order.ID, targetStatus, err)
		_ = svc.WebhookEvents.MarkProcessed(stored.ID, err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "transition_failed"})
	}

	_ = svc.WebhookEvents.MarkProcessed(stored.ID, "")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
}
