// Package webapi provides the HTTP surface of the bank service.
// Handlers live in sub-packages per domain:
// - customer: account and transfer endpoints
// - common: shared response envelope and request binding
package webapi

import (
	"errors"
	"strings"

	"github.com/ederelias/bank-service/pkg/config"
	"github.com/ederelias/bank-service/pkg/service/bank"
	"github.com/ederelias/bank-service/webapi/common"
	customerweb "github.com/ederelias/bank-service/webapi/customer"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupApp initializes the Fiber app with middleware and all routes.
func SetupApp(svc *bank.Service, cfg *config.App) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return common.ErrorResponseJSON(c, fiber.StatusInternalServerError, "Internal Server Error", err.Error())
		},
	})

	// Rate limiting keyed on the originating client IP.
	// Uses X-Forwarded-For when behind a proxy, then X-Real-IP, then the
	// direct peer address.
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimit.MaxRequests,
		Expiration: cfg.RateLimit.Window,
		KeyGenerator: func(c *fiber.Ctx) string {
			if forwardedFor := c.Get("X-Forwarded-For"); forwardedFor != "" {
				if commaIndex := strings.Index(forwardedFor, ","); commaIndex != -1 {
					return strings.TrimSpace(forwardedFor[:commaIndex])
				}
				return strings.TrimSpace(forwardedFor)
			}
			if realIP := c.Get("X-Real-IP"); realIP != "" {
				return realIP
			}
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(
				c,
				fiber.StatusTooManyRequests,
				"Too Many Requests",
				errors.New("rate limit exceeded").Error(),
			)
		},
	}))
	app.Use(recover.New())
	app.Use(logger.New())

	// Health check endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Bank service is running")
	})

	customerweb.Routes(app, svc)
	return app
}
