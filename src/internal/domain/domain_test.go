package domain

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccountDisplay(t *testing.T) {
	name := "Ada"
	account := Account{AccountNumber: 1001, CustomerName: &name, Balance: decimal.NewFromInt(500)}

	if got := account.Display(); got != "#1001 · Ada · $500.00" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestAccountDisplay_MissingName(t *testing.T) {
	account := Account{AccountNumber: 7, Balance: decimal.RequireFromString("12.5")}

	if got := account.Display(); got != "#7 · — · $12.50" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestAccountDisplay_EmptyNameIsKept(t *testing.T) {
	empty := ""
	account := Account{AccountNumber: 7, CustomerName: &empty, Balance: decimal.NewFromInt(1)}

	if got := account.Display(); got != "#7 ·  · $1.00" {
		t.Fatalf("unexpected display %q", got)
	}
}

func TestAccountUnmarshal_AcceptsNumericBalance(t *testing.T) {
	var account Account
	if err := json.Unmarshal([]byte(`{"accountNumber":1001,"balance":750.25}`), &account); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if account.AccountNumber != 1001 {
		t.Fatalf("unexpected account number %d", account.AccountNumber)
	}
	if !account.Balance.Equal(decimal.RequireFromString("750.25")) {
		t.Fatalf("unexpected balance %s", account.Balance)
	}
	if account.CustomerName != nil {
		t.Fatalf("expected absent customer name, got %q", *account.CustomerName)
	}
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		raw   string
		valid bool
		text  string
	}{
		{raw: "1001", valid: true, text: "1001"},
		{raw: "  250.50 ", valid: true, text: "250.5"},
		{raw: "-3", valid: true, text: "-3"},
		{raw: "", valid: false, text: "NaN"},
		{raw: "   ", valid: false, text: "NaN"},
		{raw: "abc", valid: false, text: "NaN"},
		{raw: "Infinity", valid: false, text: "NaN"},
		{raw: "1e10000000", valid: false, text: "NaN"},
		{raw: "-1e400", valid: false, text: "NaN"},
		{raw: "1e-10000000", valid: true, text: "0"},
		{raw: "1.5e3", valid: true, text: "1500"},
	}

	for _, tc := range cases {
		n := ParseNumber(tc.raw)
		if n.Valid() != tc.valid {
			t.Fatalf("ParseNumber(%q).Valid() = %v, want %v", tc.raw, n.Valid(), tc.valid)
		}
		if n.String() != tc.text {
			t.Fatalf("ParseNumber(%q).String() = %q, want %q", tc.raw, n.String(), tc.text)
		}
	}
}

func TestNumberMarshalJSON_OverflowIsNull(t *testing.T) {
	body, err := json.Marshal(map[string]Number{"amount": ParseNumber("1e10000000")})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"amount":null}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestNumberMarshalJSON(t *testing.T) {
	body, err := json.Marshal(map[string]Number{
		"amount":  ParseNumber("250"),
		"missing": ParseNumber(""),
	})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"amount":250,"missing":null}` {
		t.Fatalf("unexpected body %s", body)
	}
}

func TestOperationError_MessageIsVerbatim(t *testing.T) {
	cause := fmt.Errorf("http 409")
	err := &OperationError{Operation: "withdraw", StatusCode: 409, Message: "Insufficient funds", Err: cause}

	if err.Error() != "Insufficient funds" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if err.Unwrap() != cause {
		t.Fatal("expected unwrap to return cause")
	}
}
