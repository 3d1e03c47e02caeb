package controllers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/ticketfox/ticketfox/internal/pkg/env"
	"github.com/ticketfox/ticketfox/internal/pkg/security"
)

// Action name the refresh nonce is bound to.
const paypalRefreshNonceAction = "paypal-refresh-connect-url"

const paypalCountryOption = "ticketfox_commerce_paypal_country"

const paypalNonceTTL = 12 * time.Hour

type paypalRefreshRequest struct {
	Nonce       string `json:"nonce" form:"nonce"`
	CountryCode string `json:"country_code" form:"country_code"`
}

// HandlePayPalRefreshConnectURL restarts the seller onboarding handshake
// and hands the settings page a fresh connect URL. Guarded by an
// action-scoped nonce so the endpoint cannot be driven cross-site.
func HandlePayPalRefreshConnectURL(c *fiber.Ctx) error {
	svc := getCommerce()

	var req paypalRefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid_request"})
	}

	if !security.VerifyNonce(req.Nonce, paypalRefreshNonceAction, env.GetEnv("NONCE_KEY", "")) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"success": false, "error": "invalid_nonce"})
	}

	country := strings.ToUpper(strings.TrimSpace(req.CountryCode))
	if len(country) != 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "error": "invalid_country"})
	}
	if err := svc.Options.SetJSON(paypalCountryOption, country); err != nil {
		log.Errorf("paypal refresh: save country: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "country_save_failed"})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	signupURL, err := svc.PayPalSignup.GenerateURL(ctx, country, true)
	if err != nil {
		log.Errorf("paypal refresh: generate url: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"success": false, "error": "signup_url_failed"})
	}

	// The settings page opens the URL in PayPal's minibrowser widget.
	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"new_url": signupURL + "&displayMode=minibrowser",
		},
	})
}

// HandlePaymentsSettings lists the registered gateways for the payments
// settings tab, along with the nonce the PayPal section needs.
func HandlePaymentsSettings(c *fiber.Ctx) error {
	svc := getCommerce()

	nonce, err := security.GenerateNonce(paypalRefreshNonceAction, paypalNonceTTL, env.GetEnv("NONCE_KEY", ""))
	if err != nil {
		log.Errorf("payments settings: nonce: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"success": false, "error": "nonce_failed"})
	}

	gateways := make([]fiber.Map, 0)
	for _, gw := range svc.Gateways.All() {
		gateways = append(gateways, fiber.Map{
			"key":     gw.Key(),
			"label":   gw.Label(),
			"logo":    gw.LogoURL(),
			"active":  gw.IsActive(),
			"enabled": gw.IsEnabled(),
			"notices": gw.AdminNotices(),
		})
	}

	var country string
	if _, err := svc.Options.GetJSON(paypalCountryOption, &country); err != nil {
		log.Warnf("payments settings: read country: %v", err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"gateways":       gateways,
			"paypal_country": country,
			"refresh_nonce":  nonce,
		},
	})
}
