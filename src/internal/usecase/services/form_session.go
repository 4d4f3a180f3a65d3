package services

import (
	"context"
	"strings"
	"sync"

	"github.com/api-sage/banking-frontend/src/internal/adapter/bankapi"
	"github.com/api-sage/banking-frontend/src/internal/adapter/http/models"
	"github.com/api-sage/banking-frontend/src/internal/domain"
	"github.com/api-sage/banking-frontend/src/internal/logger"
	"github.com/api-sage/banking-frontend/src/internal/metrics"
	"github.com/api-sage/banking-frontend/src/internal/usecase/service_interfaces"
)

const (
	ActionCreate   = "create"
	ActionDeposit  = "deposit"
	ActionWithdraw = "withdraw"
	ActionLookup   = "lookup"
)

const (
	msgAccountCreated = "Account created."
	msgDeposited      = "Deposit successful."
	msgWithdrawn      = "Withdrawal successful."
	msgFetched        = "Account fetched."
)

// View is a copy of the session state taken under its lock.
type View struct {
	Busy        bool            `json:"busy"`
	LastAccount *domain.Account `json:"lastAccount,omitempty"`
	Status      *domain.Status  `json:"status,omitempty"`
	Forms       models.Forms    `json:"forms"`
}

// FormSession is the state behind one browser session: a single busy flag
// shared by all four forms, the last-result slot, the status banner and the
// typed form values.
//
// At most one backend request is in flight per session. An action started
// while busy is rejected with domain.ErrBusy and changes nothing.
type FormSession struct {
	client service_interfaces.AccountClient

	mu          sync.Mutex
	busy        bool
	lastAccount *domain.Account
	status      *domain.Status
	forms       models.Forms
}

func NewFormSession(client service_interfaces.AccountClient) *FormSession {
	return &FormSession{client: client}
}

func (s *FormSession) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{Busy: s.busy, Forms: s.forms}
	if s.lastAccount != nil {
		account := *s.lastAccount
		view.LastAccount = &account
	}
	if s.status != nil {
		status := *s.status
		view.Status = &status
	}
	return view
}

func (s *FormSession) CreateAccount(ctx context.Context, form models.CreateAccountForm) (domain.Status, error) {
	return s.run(ctx, ActionCreate, msgAccountCreated,
		func(f *models.Forms) { f.Create = form },
		func(ctx context.Context) (domain.Account, error) {
			return s.client.CreateAccount(ctx, bankapi.CreateAccountRequest{
				AccountNumber: domain.ParseNumber(form.AccountNumber),
				CustomerName:  strings.TrimSpace(form.CustomerName),
				Balance:       domain.ParseNumber(form.Balance),
			})
		})
}

func (s *FormSession) Deposit(ctx context.Context, form models.AmountForm) (domain.Status, error) {
	return s.run(ctx, ActionDeposit, msgDeposited,
		func(f *models.Forms) { f.Deposit = form },
		func(ctx context.Context) (domain.Account, error) {
			return s.client.Deposit(ctx, domain.ParseNumber(form.AccountNumber), domain.ParseNumber(form.Amount))
		})
}

func (s *FormSession) Withdraw(ctx context.Context, form models.AmountForm) (domain.Status, error) {
	return s.run(ctx, ActionWithdraw, msgWithdrawn,
		func(f *models.Forms) { f.Withdraw = form },
		func(ctx context.Context) (domain.Account, error) {
			return s.client.Withdraw(ctx, domain.ParseNumber(form.AccountNumber), domain.ParseNumber(form.Amount))
		})
}

func (s *FormSession) Lookup(ctx context.Context, form models.LookupForm) (domain.Status, error) {
	return s.run(ctx, ActionLookup, msgFetched,
		func(f *models.Forms) { f.Lookup = form },
		func(ctx context.Context) (domain.Account, error) {
			return s.client.GetBalance(ctx, domain.ParseNumber(form.AccountNumber))
		})
}

// run drives idle -> in-flight -> idle. The backend call is detached from
// ctx cancellation: once issued it runs to completion. Call failures become
// an error Status; the only returned error is domain.ErrBusy.
func (s *FormSession) run(
	ctx context.Context,
	action string,
	successMessage string,
	record func(*models.Forms),
	call func(context.Context) (domain.Account, error),
) (domain.Status, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		metrics.RecordBusyRejection(action)
		logger.Warn("form session rejected action while busy", logger.Fields{"action": action})
		return domain.Status{}, domain.ErrBusy
	}
	record(&s.forms)
	s.busy = true
	s.status = nil
	s.mu.Unlock()

	account, err := call(context.WithoutCancel(ctx))

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false

	if err != nil {
		status := domain.ErrorStatus(err.Error())
		s.status = &status
		logger.Info("form session action failed", logger.Fields{
			"action":  action,
			"message": status.Message,
		})
		return status, nil
	}

	s.lastAccount = &account
	status := domain.SuccessStatus(successMessage)
	s.status = &status
	logger.Info("form session action succeeded", logger.Fields{
		"action":        action,
		"accountNumber": account.AccountNumber,
	})
	return status, nil
}
