// Package testutils provides helpers for HTTP-level tests against the
// in-process Fiber app.
package testutils

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"time"

	infraeventbus "github.com/ederelias/bank-service/infra/eventbus"
	"github.com/ederelias/bank-service/pkg/config"
	"github.com/ederelias/bank-service/pkg/currency"
	"github.com/ederelias/bank-service/pkg/domain/ledger"
	"github.com/ederelias/bank-service/pkg/service/bank"
	"github.com/ederelias/bank-service/webapi"
	"github.com/gofiber/fiber/v2"
)

// NewTestApp builds a fresh Fiber app over an empty in-memory ledger.
// The rate limiter is configured high enough to stay out of the way.
func NewTestApp() (*fiber.App, *infraeventbus.MemoryEventBus) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	bus := infraeventbus.NewWithMemory(logger)
	svc := bank.NewService(ledger.New(currency.USD), bus, logger)
	cfg := &config.App{
		Env: "test",
		RateLimit: config.RateLimit{
			MaxRequests: 10000,
			Window:      time.Minute,
		},
	}
	return webapi.SetupApp(svc, cfg), bus
}

// MakeRequestWithApp is a helper for making HTTP requests against the app.
func MakeRequestWithApp(app *fiber.App, method, path, body string) *http.Response {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		panic(err)
	}
	return resp
}
