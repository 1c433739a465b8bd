// Package customer provides the HTTP handlers for customer accounts and
// transfers.
package customer

import (
	"github.com/ederelias/bank-service/pkg/service/bank"
	"github.com/ederelias/bank-service/webapi/common"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers the customer and transfer endpoints.
//
// Routes:
//   - POST   /customers              : Open a new customer account.
//   - GET    /customers/:id          : Retrieve account details.
//   - GET    /customers/:id/balance  : Retrieve the current balance.
//   - POST   /customers/:id/deposit  : Deposit funds.
//   - POST   /customers/:id/withdraw : Withdraw funds.
//   - POST   /transfers              : Transfer funds between customers.
//   - GET    /balance                : Bank-wide total balance.
func Routes(app *fiber.App, svc *bank.Service) {
	app.Post("/customers", OpenAccount(svc))
	app.Get("/customers/:id", GetAccount(svc))
	app.Get("/customers/:id/balance", GetBalance(svc))
	app.Post("/customers/:id/deposit", Deposit(svc))
	app.Post("/customers/:id/withdraw", Withdraw(svc))
	app.Post("/transfers", Transfer(svc))
	app.Get("/balance", TotalBalance(svc))
}

// OpenAccount returns a handler creating a new customer account.
// The name must be unused and the opening balance non-negative.
func OpenAccount(svc *bank.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[OpenAccountRequest](c)
		if input == nil {
			return err
		}
		a, err := svc.OpenAccount(c.Context(), input.Name, input.OpeningBalance)
		if err != nil {
			log.Warnf("Failed to open account: %v", err)
			return common.DomainErrorResponseJSON(c, "Failed to open account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", toAccountResponse(a))
	}
}

// GetAccount returns a handler fetching account details by ID.
func GetAccount(svc *bank.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		a, err := svc.GetCustomer(c.Context(), id)
		if err != nil {
			return common.DomainErrorResponseJSON(c, "Failed to get account", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account retrieved", toAccountResponse(a))
	}
}

// GetBalance returns a handler fetching the current balance of an account.
func GetBalance(svc *bank.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		balance, err := svc.Balance(c.Context(), id)
		if err != nil {
			return common.DomainErrorResponseJSON(c, "Failed to get balance", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance retrieved", BalanceResponse{
			Balance:  balance.AmountFloat(),
			Currency: string(balance.Currency()),
		})
	}
}

// Deposit returns a handler depositing funds into an account.
func Deposit(svc *bank.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		balance, err := svc.Deposit(c.Context(), id, input.Amount)
		if err != nil {
			log.Warnf("Deposit failed for account %s: %v", id, err)
			return common.DomainErrorResponseJSON(c, "Deposit failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", BalanceResponse{
			Balance:  balance.AmountFloat(),
			Currency: string(balance.Currency()),
		})
	}
}

// Withdraw returns a handler withdrawing funds from an account.
func Withdraw(svc *bank.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account ID", err.Error())
		}
		input, err := common.BindAndValidate[AmountRequest](c)
		if input == nil {
			return err
		}
		balance, err := svc.Withdraw(c.Context(), id, input.Amount)
		if err != nil {
			log.Warnf("Withdrawal failed for account %s: %v", id, err)
			return common.DomainErrorResponseJSON(c, "Withdrawal failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", BalanceResponse{
			Balance:  balance.AmountFloat(),
			Currency: string(balance.Currency()),
		})
	}
}

// Transfer returns a handler moving funds between two customers.
func Transfer(svc *bank.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		senderID, err := uuid.Parse(input.SenderID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid sender ID", err.Error())
		}
		recipientID, err := uuid.Parse(input.RecipientID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid recipient ID", err.Error())
		}
		if err := svc.Transfer(c.Context(), senderID, recipientID, input.Amount); err != nil {
			log.Warnf("Transfer failed from %s to %s: %v", senderID, recipientID, err)
			return common.DomainErrorResponseJSON(c, "Transfer failed", err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", nil)
	}
}

// TotalBalance returns a handler reporting the bank-wide total balance.
// The figure is a best-effort snapshot, not a linearized one.
func TotalBalance(svc *bank.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		total := svc.TotalBalance(c.Context())
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Total balance retrieved", BalanceResponse{
			Balance:  total.AmountFloat(),
			Currency: string(total.Currency()),
		})
	}
}
