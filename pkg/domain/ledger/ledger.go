// Package ledger implements the Bank aggregate: the registry of all
// customer accounts and the coordinator for cross-account transfers.
package ledger

import (
	"errors"
	"sync"

	"github.com/ederelias/bank-service/pkg/currency"
	"github.com/ederelias/bank-service/pkg/domain/account"
	"github.com/ederelias/bank-service/pkg/domain/money"
	"github.com/google/uuid"
)

var (
	// ErrCustomerAlreadyExists is returned when opening an account with a
	// name that is already taken.
	ErrCustomerAlreadyExists = errors.New("customer already exists")

	// ErrCustomerNotFound is returned when no account has the given ID.
	ErrCustomerNotFound = errors.New("customer not found")
)

// Ledger owns the collection of accounts. Accounts are keyed by their
// generated ID; the display name is a non-unique attribute whose uniqueness
// is enforced only at creation time. The ledger is single-currency: every
// account it opens shares one currency code.
type Ledger struct {
	ID       uuid.UUID
	currency currency.Code

	mu       sync.RWMutex
	accounts map[uuid.UUID]*account.Account
}

// New creates an empty ledger operating in the given currency.
// An empty code defaults to USD.
func New(code currency.Code) *Ledger {
	if code == "" {
		code = currency.DefaultCurrency
	}
	return &Ledger{
		ID:       uuid.New(),
		currency: code,
		accounts: make(map[uuid.UUID]*account.Account),
	}
}

// Currency returns the currency every account in this ledger uses.
func (l *Ledger) Currency() currency.Code {
	return l.currency
}

// AddCustomer opens an account for a new customer. The name must not be in
// use and the opening balance must be non-negative. The uniqueness check
// and the insert happen under one write lock, so two concurrent calls with
// the same name cannot both succeed.
func (l *Ledger) AddCustomer(name string, openingBalance money.Money) (*account.Account, error) {
	if openingBalance.Currency() != l.currency {
		return nil, money.ErrCurrencyMismatch
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, a := range l.accounts {
		if a.Name == name {
			return nil, ErrCustomerAlreadyExists
		}
	}
	a, err := account.New(name, openingBalance)
	if err != nil {
		return nil, err
	}
	l.accounts[a.ID] = a
	return a, nil
}

// GetCustomer returns the account with the given ID.
func (l *Ledger) GetCustomer(id uuid.UUID) (*account.Account, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	a, ok := l.accounts[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	return a, nil
}

// FindCustomerByName scans for an account with the given display name.
// Absence is a query result, not an error.
func (l *Ledger) FindCustomerByName(name string) (*account.Account, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, a := range l.accounts {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Customers returns a snapshot of all accounts.
func (l *Ledger) Customers() []*account.Account {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*account.Account, 0, len(l.accounts))
	for _, a := range l.accounts {
		out = append(out, a)
	}
	return out
}

// TotalBalance sums every account's current balance. Each individual read
// is taken under that account's mutex and is never torn, but the sum is not
// a linearized global snapshot: concurrent transfers may be counted on one
// side only. Internal transfers are zero-sum, so a quiescent ledger always
// sums to the net external deposit/withdrawal flow.
func (l *Ledger) TotalBalance() money.Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total, _ := money.NewFromSmallestUnit(0, l.currency)
	for _, a := range l.accounts {
		if sum, err := total.Add(a.Balance()); err == nil {
			total = sum
		}
	}
	return total
}

// TransferBetweenCustomers resolves both parties and delegates to the
// account-level transfer protocol, which performs the ordered-lock
// debit and credit as one atomic unit.
func (l *Ledger) TransferBetweenCustomers(senderID, recipientID uuid.UUID, amount money.Money) error {
	if senderID == recipientID {
		return account.ErrCannotTransferToSameAccount
	}
	sender, err := l.GetCustomer(senderID)
	if err != nil {
		return err
	}
	recipient, err := l.GetCustomer(recipientID)
	if err != nil {
		return err
	}
	return sender.TransferTo(recipient, amount)
}
