// Package bankapitest provides an in-memory banking backend that speaks the
// same wire contract as the real one, for use in tests.
package bankapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type account struct {
	number  int64
	name    string
	balance decimal.Decimal
}

// Server is a fake backend. Its policies mirror the real service: account
// numbers are unique, opening balances cannot be negative, amounts must be
// positive, and withdrawals cannot overdraw.
type Server struct {
	*httptest.Server

	beforeHandle func(r *http.Request)

	mu       sync.Mutex
	accounts map[int64]*account
	calls    atomic.Int64
}

type Option func(*Server)

// WithBeforeHandle runs fn before every request is served. Tests use it to
// hold a request in flight.
func WithBeforeHandle(fn func(r *http.Request)) Option {
	return func(s *Server) {
		s.beforeHandle = fn
	}
}

func NewServer(opts ...Option) *Server {
	s := &Server{accounts: make(map[int64]*account)}
	for _, opt := range opts {
		opt(s)
	}

	r := mux.NewRouter()
	r.HandleFunc("/api/accounts", s.create).Methods(http.MethodPost)
	r.HandleFunc("/api/accounts/{number}", s.get).Methods(http.MethodGet)
	r.HandleFunc("/api/accounts/{number}/deposit", s.deposit).Methods(http.MethodPost)
	r.HandleFunc("/api/accounts/{number}/withdraw", s.withdraw).Methods(http.MethodPost)

	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		s.calls.Add(1)
		if s.beforeHandle != nil {
			s.beforeHandle(req)
		}
		r.ServeHTTP(w, req)
	}))

	return s
}

// BaseURL is the value to configure the client with.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Calls reports how many requests the backend has received.
func (s *Server) Calls() int {
	return int(s.calls.Load())
}

// Balance returns the stored balance of an account.
func (s *Server) Balance(number int64) (decimal.Decimal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[number]
	if !ok {
		return decimal.Zero, false
	}
	return a.balance, true
}

type createRequest struct {
	AccountNumber *json.Number `json:"accountNumber"`
	CustomerName  string       `json:"customerName"`
	Balance       *json.Number `json:"balance"`
}

type amountRequest struct {
	Amount *json.Number `json:"amount"`
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AccountNumber == nil {
		writeError(w, http.StatusBadRequest, "accountNumber is required")
		return
	}
	number, err := req.AccountNumber.Int64()
	if err != nil {
		writeError(w, http.StatusBadRequest, "accountNumber must be an integer")
		return
	}
	if req.Balance == nil {
		writeError(w, http.StatusBadRequest, "balance is required")
		return
	}
	balance, err := decimal.NewFromString(req.Balance.String())
	if err != nil || balance.IsNegative() {
		writeError(w, http.StatusBadRequest, "balance cannot be negative")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[number]; exists {
		writeError(w, http.StatusConflict, fmt.Sprintf("Account %d already exists", number))
		return
	}
	a := &account{number: number, name: req.CustomerName, balance: balance}
	s.accounts[number] = a
	writeAccount(w, http.StatusCreated, a)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeAccount(w, http.StatusOK, a)
}

func (s *Server) deposit(w http.ResponseWriter, r *http.Request) {
	amount, ok := readAmount(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	a.balance = a.balance.Add(amount)
	writeAccount(w, http.StatusOK, a)
}

func (s *Server) withdraw(w http.ResponseWriter, r *http.Request) {
	amount, ok := readAmount(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if a.balance.LessThan(amount) {
		writeError(w, http.StatusConflict, "Insufficient funds")
		return
	}
	a.balance = a.balance.Sub(amount)
	writeAccount(w, http.StatusOK, a)
}

// lookup must be called with s.mu held.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (*account, bool) {
	raw := mux.Vars(r)["number"]
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid account number: "+raw)
		return nil, false
	}
	a, ok := s.accounts[number]
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Account not found: %d", number))
		return nil, false
	}
	return a, true
}

func readAmount(w http.ResponseWriter, r *http.Request) (decimal.Decimal, bool) {
	var req amountRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return decimal.Zero, false
	}
	if req.Amount == nil {
		writeError(w, http.StatusBadRequest, "amount is required")
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(req.Amount.String())
	if err != nil || !amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "amount must be greater than zero")
		return decimal.Zero, false
	}
	return amount, true
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

func writeAccount(w http.ResponseWriter, status int, a *account) {
	balance, _ := a.balance.Float64()
	payload := map[string]any{
		"accountNumber": a.number,
		"balance":       balance,
	}
	if a.name != "" {
		payload["customerName"] = a.name
	}
	writeJSON(w, status, payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"status":  status,
		"error":   http.StatusText(status),
		"message": message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
