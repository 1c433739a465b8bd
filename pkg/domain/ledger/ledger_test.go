package ledger_test

import (
	"sync"
	"testing"

	"github.com/ederelias/bank-service/pkg/currency"
	"github.com/ederelias/bank-service/pkg/domain/account"
	"github.com/ederelias/bank-service/pkg/domain/ledger"
	"github.com/ederelias/bank-service/pkg/domain/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func usd(t *testing.T, amount float64) money.Money {
	t.Helper()
	m, err := money.New(amount, currency.USD)
	require.NoError(t, err)
	return m
}

func TestAddCustomer(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	l := ledger.New(currency.USD)
	a, err := l.AddCustomer("alice", usd(t, 500))
	require.NoError(err)
	assert.Equal("alice", a.Name)
	assert.True(a.Balance().Equals(usd(t, 500)))

	got, err := l.GetCustomer(a.ID)
	require.NoError(err)
	assert.Same(a, got)
}

func TestAddCustomerDuplicateName(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	_, err := l.AddCustomer("alice", usd(t, 100))
	require.NoError(err)

	_, err = l.AddCustomer("alice", usd(t, 200))
	require.ErrorIs(err, ledger.ErrCustomerAlreadyExists)
	require.Len(l.Customers(), 1, "failed creation must leave the registry unchanged")
	require.True(l.TotalBalance().Equals(usd(t, 100)))
}

func TestAddCustomerNegativeOpeningBalance(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	_, err := l.AddCustomer("alice", usd(t, -10))
	require.ErrorIs(err, account.ErrInitialDepositNegative)
	require.Empty(l.Customers())
}

func TestGetCustomerNotFound(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	_, err := l.GetCustomer(uuid.New())
	require.ErrorIs(err, ledger.ErrCustomerNotFound)
}

func TestFindCustomerByName(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)
	require := require.New(t)

	l := ledger.New(currency.USD)
	a, err := l.AddCustomer("alice", usd(t, 100))
	require.NoError(err)

	found, ok := l.FindCustomerByName("alice")
	require.True(ok)
	assert.Same(a, found)

	_, ok = l.FindCustomerByName("nobody")
	assert.False(ok, "absence is a query result, not an error")
}

func TestTransferBetweenCustomers(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	sender, err := l.AddCustomer("alice", usd(t, 500))
	require.NoError(err)
	recipient, err := l.AddCustomer("bob", usd(t, 100))
	require.NoError(err)

	require.NoError(l.TransferBetweenCustomers(sender.ID, recipient.ID, usd(t, 150)))
	require.True(sender.Balance().Equals(usd(t, 350)))
	require.True(recipient.Balance().Equals(usd(t, 250)))
}

func TestTransferBetweenCustomersSameID(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	a, err := l.AddCustomer("alice", usd(t, 500))
	require.NoError(err)

	err = l.TransferBetweenCustomers(a.ID, a.ID, usd(t, 10))
	require.ErrorIs(err, account.ErrCannotTransferToSameAccount)
	require.True(a.Balance().Equals(usd(t, 500)))
}

func TestTransferBetweenCustomersUnknownParty(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	a, err := l.AddCustomer("alice", usd(t, 500))
	require.NoError(err)

	require.ErrorIs(l.TransferBetweenCustomers(uuid.New(), a.ID, usd(t, 10)), ledger.ErrCustomerNotFound)
	require.ErrorIs(l.TransferBetweenCustomers(a.ID, uuid.New(), usd(t, 10)), ledger.ErrCustomerNotFound)
	require.True(a.Balance().Equals(usd(t, 500)))
}

func TestTransferBetweenCustomersInsufficientFunds(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	sender, err := l.AddCustomer("alice", usd(t, 100))
	require.NoError(err)
	recipient, err := l.AddCustomer("bob", usd(t, 0))
	require.NoError(err)

	err = l.TransferBetweenCustomers(sender.ID, recipient.ID, usd(t, 200))
	require.ErrorIs(err, account.ErrInsufficientFunds)
	require.True(sender.Balance().Equals(usd(t, 100)))
	require.True(recipient.Balance().IsZero())
}

func TestBankScenario(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	// Create A=500, B=300, C=100. Deposit 200 to A. Withdraw 100 from B.
	// Transfer 150 A->C. Total stays 1000.
	l := ledger.New(currency.USD)
	a, err := l.AddCustomer("A", usd(t, 500))
	require.NoError(err)
	b, err := l.AddCustomer("B", usd(t, 300))
	require.NoError(err)
	c, err := l.AddCustomer("C", usd(t, 100))
	require.NoError(err)

	_, err = a.Deposit(usd(t, 200))
	require.NoError(err)
	require.True(a.Balance().Equals(usd(t, 700)))

	_, err = b.Withdraw(usd(t, 100))
	require.NoError(err)
	require.True(b.Balance().Equals(usd(t, 200)))

	require.NoError(l.TransferBetweenCustomers(a.ID, c.ID, usd(t, 150)))
	require.True(a.Balance().Equals(usd(t, 550)))
	require.True(c.Balance().Equals(usd(t, 250)))

	require.True(l.TotalBalance().Equals(usd(t, 1000)))
}

func TestTotalBalanceInvariantUnderConcurrentTransfers(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	a, err := l.AddCustomer("A", usd(t, 200))
	require.NoError(err)
	b, err := l.AddCustomer("B", usd(t, 100))
	require.NoError(err)

	amount := usd(t, 10)
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = l.TransferBetweenCustomers(a.ID, b.ID, amount)
		}()
		go func() {
			defer wg.Done()
			_ = l.TransferBetweenCustomers(b.ID, a.ID, amount)
		}()
	}
	wg.Wait()

	require.True(l.TotalBalance().Equals(usd(t, 300)), "internal transfers are zero-sum")
}

func TestConcurrentAddCustomerSameName(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	l := ledger.New(currency.USD)
	opening := usd(t, 10)
	const attempts = 20
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	wg.Add(attempts)
	for range attempts {
		go func() {
			defer wg.Done()
			_, err := l.AddCustomer("alice", opening)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var created int
	for err := range errs {
		if err == nil {
			created++
		} else {
			require.ErrorIs(err, ledger.ErrCustomerAlreadyExists)
		}
	}
	require.Equal(1, created, "name uniqueness must hold under concurrent creation")
	require.Len(l.Customers(), 1)
}
