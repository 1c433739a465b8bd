// Package bank provides the application service over the ledger domain:
// it converts caller amounts into Money, runs the domain operation, logs
// the outcome and emits the matching domain event.
package bank

import (
	"context"
	"log/slog"

	"github.com/ederelias/bank-service/pkg/domain/account"
	"github.com/ederelias/bank-service/pkg/domain/events"
	"github.com/ederelias/bank-service/pkg/domain/ledger"
	"github.com/ederelias/bank-service/pkg/domain/money"
	"github.com/ederelias/bank-service/pkg/eventbus"
	"github.com/google/uuid"
)

// Service coordinates ledger operations for external callers.
type Service struct {
	ledger *ledger.Ledger
	bus    eventbus.Bus
	logger *slog.Logger
}

// NewService creates a Service over the given ledger.
func NewService(l *ledger.Ledger, bus eventbus.Bus, logger *slog.Logger) *Service {
	return &Service{
		ledger: l,
		bus:    bus,
		logger: logger.With("service", "bank"),
	}
}

// OpenAccount creates a new customer account with the given display name
// and opening balance in the ledger's currency.
func (s *Service) OpenAccount(ctx context.Context, name string, openingBalance float64) (*account.Account, error) {
	opening, err := money.New(openingBalance, s.ledger.Currency())
	if err != nil {
		return nil, err
	}
	a, err := s.ledger.AddCustomer(name, opening)
	if err != nil {
		s.logger.Warn("open account failed", "name", name, "error", err)
		return nil, err
	}
	s.logger.Info("account opened", "account_id", a.ID, "name", name, "balance", opening.String())
	s.emit(ctx, events.AccountOpened{AccountID: a.ID, Name: name, OpeningBalance: opening})
	return a, nil
}

// Deposit adds funds to the customer's account and returns the new balance.
func (s *Service) Deposit(ctx context.Context, id uuid.UUID, amount float64) (money.Money, error) {
	m, err := money.New(amount, s.ledger.Currency())
	if err != nil {
		return money.Money{}, err
	}
	a, err := s.ledger.GetCustomer(id)
	if err != nil {
		return money.Money{}, err
	}
	balance, err := a.Deposit(m)
	if err != nil {
		s.logger.Warn("deposit failed", "account_id", id, "amount", m.String(), "error", err)
		return money.Money{}, err
	}
	s.logger.Info("deposit made", "account_id", id, "amount", m.String(), "balance", balance.String())
	s.emit(ctx, events.DepositMade{AccountID: id, Amount: m, Balance: balance})
	return balance, nil
}

// Withdraw removes funds from the customer's account and returns the new
// balance.
func (s *Service) Withdraw(ctx context.Context, id uuid.UUID, amount float64) (money.Money, error) {
	m, err := money.New(amount, s.ledger.Currency())
	if err != nil {
		return money.Money{}, err
	}
	a, err := s.ledger.GetCustomer(id)
	if err != nil {
		return money.Money{}, err
	}
	balance, err := a.Withdraw(m)
	if err != nil {
		s.logger.Warn("withdrawal failed", "account_id", id, "amount", m.String(), "error", err)
		return money.Money{}, err
	}
	s.logger.Info("withdrawal made", "account_id", id, "amount", m.String(), "balance", balance.String())
	s.emit(ctx, events.WithdrawalMade{AccountID: id, Amount: m, Balance: balance})
	return balance, nil
}

// Transfer moves funds between two customers via the ordered-lock transfer
// protocol.
func (s *Service) Transfer(ctx context.Context, senderID, recipientID uuid.UUID, amount float64) error {
	m, err := money.New(amount, s.ledger.Currency())
	if err != nil {
		return err
	}
	if err := s.ledger.TransferBetweenCustomers(senderID, recipientID, m); err != nil {
		s.logger.Warn("transfer failed",
			"sender_id", senderID, "recipient_id", recipientID, "amount", m.String(), "error", err)
		return err
	}
	s.logger.Info("transfer made",
		"sender_id", senderID, "recipient_id", recipientID, "amount", m.String())
	s.emit(ctx, events.TransferMade{SenderID: senderID, RecipientID: recipientID, Amount: m})
	return nil
}

// Balance returns the customer's current balance.
func (s *Service) Balance(ctx context.Context, id uuid.UUID) (money.Money, error) {
	a, err := s.ledger.GetCustomer(id)
	if err != nil {
		return money.Money{}, err
	}
	return a.Balance(), nil
}

// TotalBalance returns the bank-wide sum of balances.
func (s *Service) TotalBalance(ctx context.Context) money.Money {
	return s.ledger.TotalBalance()
}

// GetCustomer returns the account with the given ID.
func (s *Service) GetCustomer(ctx context.Context, id uuid.UUID) (*account.Account, error) {
	return s.ledger.GetCustomer(id)
}

// FindCustomerByName returns the account with the given display name, if any.
func (s *Service) FindCustomerByName(ctx context.Context, name string) (*account.Account, bool) {
	return s.ledger.FindCustomerByName(name)
}

func (s *Service) emit(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Emit(ctx, event); err != nil {
		s.logger.Error("event emit failed", "type", event.Type(), "error", err)
	}
}

// RegisterAuditHandlers wires an audit log for every domain event onto the
// bus.
func RegisterAuditHandlers(bus eventbus.Bus, logger *slog.Logger) {
	audit := logger.With("handler", "audit")
	log := func(ctx context.Context, e events.Event) {
		audit.Info("domain event", "type", e.Type(), "event", e)
	}
	bus.Register("AccountOpened", log)
	bus.Register("DepositMade", log)
	bus.Register("WithdrawalMade", log)
	bus.Register("TransferMade", log)
}
