package customer

import (
	"time"

	"github.com/ederelias/bank-service/pkg/domain/account"
)

// OpenAccountRequest is the body for POST /customers.
type OpenAccountRequest struct {
	Name           string  `json:"name" validate:"required,min=1,max=255"`
	OpeningBalance float64 `json:"opening_balance" validate:"gte=0"`
}

// AmountRequest is the body for deposit and withdraw endpoints.
type AmountRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0"`
}

// TransferRequest is the body for POST /transfers.
type TransferRequest struct {
	SenderID    string  `json:"sender_id" validate:"required,uuid"`
	RecipientID string  `json:"recipient_id" validate:"required,uuid"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

// AccountResponse is the wire representation of an account.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Balance   float64   `json:"balance"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"created_at"`
}

// BalanceResponse carries a single balance figure.
type BalanceResponse struct {
	Balance  float64 `json:"balance"`
	Currency string  `json:"currency"`
}

func toAccountResponse(a *account.Account) AccountResponse {
	balance := a.Balance()
	return AccountResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Balance:   balance.AmountFloat(),
		Currency:  string(balance.Currency()),
		CreatedAt: a.CreatedAt,
	}
}
