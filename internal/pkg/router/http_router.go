package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ticketfox/ticketfox/app/controllers"
)

type HttpRouter struct {
}

func (h HttpRouter) InstallRouter(app *fiber.App) {
	// Provider handshake endpoints hit by redirects and webhooks; these
	// stay outside the rate-limited API group.
	commerce := app.Group("/commerce")
	commerce.Get("/stripe/return", controllers.HandleStripeReturn)
	commerce.Post("/webhook/stripe", controllers.HandleStripeWebhook)
}

func NewHttpRouter() *HttpRouter {
	return &HttpRouter{}
}
