package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sujit-baniya/flash"
)

// HandleStripeReturn finishes the Stripe connect handshake. The signup
// service sends the browser here with a base64 payload; the outcome is
// always a redirect back to the payments settings.
func HandleStripeReturn(c *fiber.Ctx) error {
	svc := getCommerce()

	out := svc.StripeReturn.HandleReturn(c.Query("stripe"), c.Query("stripe_disconnected"))

	if strings.Contains(out.RedirectURL, "tc-stripe-error=") {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "Stripe could not be connected. Please try again.",
		}).Redirect(out.RedirectURL, fiber.StatusSeeOther)
	}
	if strings.Contains(out.RedirectURL, "tc-connection-terminated=") {
		return flash.WithError(c, fiber.Map{
			"type":    "error",
			"message": "The connected Stripe account cannot accept payments and was disconnected.",
		}).Redirect(out.RedirectURL, fiber.StatusSeeOther)
	}
	if strings.Contains(out.RedirectURL, "stripe_connected=1") {
		return flash.WithSuccess(c, fiber.Map{
			"type":    "success",
			"message": "Stripe account connected.",
		}).Redirect(out.RedirectURL, fiber.StatusSeeOther)
	}
	return c.Redirect(out.RedirectURL, fiber.StatusSeeOther)
}
