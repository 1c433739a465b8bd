// Package events defines the domain events emitted after successful
// ledger operations. Events are in-process notifications only.
package events

import (
	"github.com/ederelias/bank-service/pkg/domain/money"
	"github.com/google/uuid"
)

// Event is the marker interface all domain events implement.
type Event interface {
	Type() string
}

// AccountOpened is emitted when a new customer account is created.
type AccountOpened struct {
	AccountID      uuid.UUID
	Name           string
	OpeningBalance money.Money
}

// Type returns the event type name.
func (AccountOpened) Type() string { return "AccountOpened" }

// DepositMade is emitted after a successful deposit.
type DepositMade struct {
	AccountID uuid.UUID
	Amount    money.Money
	Balance   money.Money
}

// Type returns the event type name.
func (DepositMade) Type() string { return "DepositMade" }

// WithdrawalMade is emitted after a successful withdrawal.
type WithdrawalMade struct {
	AccountID uuid.UUID
	Amount    money.Money
	Balance   money.Money
}

// Type returns the event type name.
func (WithdrawalMade) Type() string { return "WithdrawalMade" }

// TransferMade is emitted after a successful transfer between customers.
type TransferMade struct {
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Amount      money.Money
}

// Type returns the event type name.
func (TransferMade) Type() string { return "TransferMade" }
