package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

const missingCustomerName = "—"

// Account is the snapshot the banking backend returns for one account.
// Balance is never derived locally.
type Account struct {
	AccountNumber int64           `json:"accountNumber"`
	CustomerName  *string         `json:"customerName,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
}

// Name returns the customer name, or an em dash placeholder when the backend
// sent none. An empty name is shown as is.
func (a Account) Name() string {
	if a.CustomerName == nil {
		return missingCustomerName
	}
	return *a.CustomerName
}

// Display renders the last-result line, e.g. "#1001 · Ada · $500.00".
func (a Account) Display() string {
	return fmt.Sprintf("#%d · %s · $%s", a.AccountNumber, a.Name(), a.Balance.StringFixed(2))
}
