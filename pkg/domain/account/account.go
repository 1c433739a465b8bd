// Package account implements the Account aggregate: a single customer's
// balance plus the concurrency protocol that keeps it consistent under
// parallel deposits, withdrawals and transfers.
//
// Invariants:
//   - The balance can never be negative at any observable instant.
//   - Every check-then-mutate sequence runs under the account's own mutex.
//   - Two-account operations acquire both mutexes in ascending ID order,
//     so opposing transfers between the same pair cannot deadlock.
package account

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/ederelias/bank-service/pkg/domain/money"
	"github.com/google/uuid"
)

var (
	// ErrInitialDepositNegative is returned when an account is opened with a
	// negative balance.
	ErrInitialDepositNegative = errors.New("initial deposit must be non-negative")

	// ErrTransactionAmountMustBePositive is returned when a deposit,
	// withdrawal or transfer amount is not positive.
	ErrTransactionAmountMustBePositive = errors.New("transaction amount must be positive")

	// ErrInsufficientFunds is returned when an account has insufficient funds
	// for a withdrawal or transfer.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrCannotTransferToSameAccount is returned when a transfer is attempted
	// from an account to itself.
	ErrCannotTransferToSameAccount = errors.New("cannot transfer to same account")

	// ErrDepositAmountExceedsMaxSafeInt is returned when a deposit would
	// overflow the account balance.
	ErrDepositAmountExceedsMaxSafeInt = errors.New("deposit amount exceeds maximum safe integer value")

	// ErrNilAccount is returned when a nil account is passed to a transfer.
	ErrNilAccount = errors.New("nil account")
)

// Account represents one customer's ledger entry. The ID is assigned at
// creation and never changes; Name is a display attribute only.
//
// The balance is guarded by the account's mutex and is mutated exclusively
// through the methods below.
type Account struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time

	mu      sync.Mutex
	balance money.Money
}

// New opens an account with the given display name and opening balance.
// The opening balance must be non-negative.
func New(name string, opening money.Money) (*Account, error) {
	if opening.IsNegative() {
		return nil, ErrInitialDepositNegative
	}
	return &Account{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
		balance:   opening,
	}, nil
}

// Balance returns the current balance. The value may be stale by the time
// the caller inspects it, but it is never torn: the read happens under the
// account's mutex so it always reflects a balance that actually existed.
func (a *Account) Balance() money.Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit atomically increases the balance by amount and returns the new
// balance. The amount must be positive and share the account's currency.
func (a *Account) Deposit(amount money.Money) (money.Money, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.credit(amount); err != nil {
		return money.Money{}, err
	}
	return a.balance, nil
}

// Withdraw atomically checks that the balance covers amount and debits it,
// returning the new balance. The check and the debit are a single critical
// section: no concurrent operation can observe a balance between them.
func (a *Account) Withdraw(amount money.Money) (money.Money, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.debit(amount); err != nil {
		return money.Money{}, err
	}
	return a.balance, nil
}

// TransferTo atomically moves amount from a to recipient. Both balances
// change inside one critical section covering both accounts, so no observer
// can see the debit without the credit. Locks are taken in ascending ID
// order regardless of transfer direction, which makes opposing concurrent
// transfers between the same pair deadlock-free.
//
// Self-transfer is a usage error and is rejected before any lock is taken.
func (a *Account) TransferTo(recipient *Account, amount money.Money) error {
	if recipient == nil {
		return ErrNilAccount
	}
	if a == recipient || a.ID == recipient.ID {
		return ErrCannotTransferToSameAccount
	}
	if !amount.IsPositive() {
		return ErrTransactionAmountMustBePositive
	}
	if !a.balanceCurrency().IsSameCurrency(amount) || !recipient.balanceCurrency().IsSameCurrency(amount) {
		return money.ErrCurrencyMismatch
	}

	unlock := lockPair(a, recipient)
	defer unlock()

	if err := a.debit(amount); err != nil {
		return err
	}
	// debit succeeded and currencies were validated up front, so the credit
	// can only fail on overflow; roll the debit back if it does.
	if err := recipient.credit(amount); err != nil {
		a.balance, _ = a.balance.Add(amount)
		return err
	}
	return nil
}

// credit increases the balance. Callers must hold a.mu.
func (a *Account) credit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrTransactionAmountMustBePositive
	}
	if !a.balance.IsSameCurrency(amount) {
		return money.ErrCurrencyMismatch
	}
	if amount.Amount() > math.MaxInt64-a.balance.Amount() {
		return ErrDepositAmountExceedsMaxSafeInt
	}
	newBalance, err := a.balance.Add(amount)
	if err != nil {
		return err
	}
	a.balance = newBalance
	return nil
}

// debit decreases the balance, refusing to let it go negative.
// Callers must hold a.mu.
func (a *Account) debit(amount money.Money) error {
	if !amount.IsPositive() {
		return ErrTransactionAmountMustBePositive
	}
	if !a.balance.IsSameCurrency(amount) {
		return money.ErrCurrencyMismatch
	}
	if less, err := a.balance.LessThan(amount); err != nil || less {
		if err != nil {
			return err
		}
		return ErrInsufficientFunds
	}
	newBalance, err := a.balance.Subtract(amount)
	if err != nil {
		return err
	}
	a.balance = newBalance
	return nil
}

// balanceCurrency returns a zero Money in the account's currency for
// currency checks that must not race with balance mutation.
func (a *Account) balanceCurrency() money.Money {
	a.mu.Lock()
	defer a.mu.Unlock()
	zero, _ := money.NewFromSmallestUnit(0, a.balance.Currency())
	return zero
}

// lockPair acquires both accounts' mutexes in ascending ID byte order and
// returns a func releasing them in reverse. Every code path that locks two
// accounts must go through this helper; a single path acquiring in call
// order would void the deadlock-freedom guarantee.
func lockPair(a, b *Account) func() {
	first, second := a, b
	if bytes.Compare(a.ID[:], b.ID[:]) > 0 {
		first, second = b, a
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}
