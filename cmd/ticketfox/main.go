package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/ticketfox/ticketfox/app/controllers"
	"github.com/ticketfox/ticketfox/app/models"
	"github.com/ticketfox/ticketfox/app/repository"
	"github.com/ticketfox/ticketfox/internal/pkg/cache"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/flagactions"
	"github.com/ticketfox/ticketfox/internal/pkg/commerce/status"
	"github.com/ticketfox/ticketfox/internal/pkg/database"
	"github.com/ticketfox/ticketfox/internal/pkg/emails"
	"github.com/ticketfox/ticketfox/internal/pkg/env"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/contracts"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/manual"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/paypal"
	"github.com/ticketfox/ticketfox/internal/pkg/gateways/stripe"
	"github.com/ticketfox/ticketfox/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "4000")))
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	db := database.GetDB()
	if err := models.LoadCommerceSettings(db); err != nil {
		log.Fatalf("failed to load commerce settings: %v", err)
	}

	repository.InitializeFactory(db)
	repos := repository.GetGlobalFactory().GetRepositories()

	options := contracts.NewDBOptionStore(db)
	transients := contracts.NewCacheTransientStore()

	// Status registry and the flag actions fired on transitions.
	registry := status.NewDefaultRegistry()

	dispatcher := flagactions.NewDispatcher()
	dispatcher.Register(flagactions.NewGenerateAttendees(db))
	dispatcher.Register(flagactions.NewReduceStock(db))
	dispatcher.Register(flagactions.NewIncreaseStock(db))
	dispatcher.Register(flagactions.NewSendEmailCompletedOrder(emails.SMTPSender{}))

	transitioner := commerce.NewTransitioner(repos.Order, registry, dispatcher)

	// Gateways.
	stripeMerchant := stripe.NewMerchant(options)
	stripeMerchant.Init()
	stripeSettings := stripe.NewSettings(options)
	stripeGateway := stripe.NewGateway(stripeMerchant, stripeSettings)

	paypalMerchant := paypal.NewMerchant(options)
	paypalMerchant.Init()
	paypalGateway := paypal.NewGateway(paypalMerchant, options)
	paypalSignup := paypal.NewSignup(paypal.NewWhoDatClient(), transients, paypalMerchant, paypalGateway)

	manager := contracts.NewManager()
	for _, gw := range []contracts.Gateway{manual.NewGateway(), stripeGateway, paypalGateway} {
		if err := manager.Register(gw); err != nil {
			log.Fatalf("failed to register gateway: %v", err)
		}
	}

	controllers.SetupCommerce(&controllers.CommerceServices{
		Registry:       registry,
		Transitioner:   transitioner,
		Gateways:       manager,
		Orders:         repos.Order,
		WebhookEvents:  repos.WebhookEvent,
		Options:        options,
		Transients:     transients,
		StripeMerchant: stripeMerchant,
		StripeSettings: stripeSettings,
		StripeReturn:   stripe.NewReturnHandler(stripeMerchant, stripeSettings),
		PayPalSignup:   paypalSignup,
	})

	app := fiber.New(fiber.Config{
		AppName: "ticketfox",
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// fiber metrics
	app.Get("/metrics", basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": env.GetEnv("METRICS_PASSWORD", "test"),
		},
	}), monitor.New())

	// ROUTER
	router.InstallRouter(app)

	return app
}
