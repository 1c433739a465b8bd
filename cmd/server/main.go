package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"
	"github.com/ederelias/bank-service/infra/eventbus"
	"github.com/ederelias/bank-service/pkg/config"
	"github.com/ederelias/bank-service/pkg/currency"
	"github.com/ederelias/bank-service/pkg/domain/ledger"
	"github.com/ederelias/bank-service/pkg/service/bank"
	"github.com/ederelias/bank-service/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	logger := slog.Default()

	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	bus := eventbus.NewWithMemory(logger)
	bank.RegisterAuditHandlers(bus, logger)

	l := ledger.New(currency.Code(cfg.Bank.Currency))
	svc := bank.NewService(l, bus, logger)

	app := webapi.SetupApp(svc, cfg)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"currency", l.Currency(),
	)
	return app.Listen(addr)
}
