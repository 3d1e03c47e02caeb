package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ticketfox/ticketfox/app/controllers"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	api := app.Group("/api", limiter.New())
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	v1 := api.Group("/v1")

	checkout := v1.Group("/checkout")
	checkout.Post("/payment-intent", controllers.HandleCreatePaymentIntent)
	checkout.Post("/payment-intent/update", controllers.HandleUpdatePaymentIntent)
	checkout.Get("/template-vars", controllers.HandleCheckoutTemplateVars)

	settings := v1.Group("/settings")
	settings.Get("/payments", controllers.HandlePaymentsSettings)
	settings.Post("/paypal/refresh-connect-url", controllers.HandlePayPalRefreshConnectURL)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}
