package service_interfaces

import (
	"context"

	"github.com/api-sage/banking-frontend/src/internal/adapter/bankapi"
	"github.com/api-sage/banking-frontend/src/internal/domain"
)

type AccountClient interface {
	CreateAccount(ctx context.Context, req bankapi.CreateAccountRequest) (domain.Account, error)
	Deposit(ctx context.Context, accountNumber, amount domain.Number) (domain.Account, error)
	Withdraw(ctx context.Context, accountNumber, amount domain.Number) (domain.Account, error)
	GetBalance(ctx context.Context, accountNumber domain.Number) (domain.Account, error)
}
