package models

import "net/url"

// CreateAccountForm holds the raw text typed into the create-account form.
type CreateAccountForm struct {
	AccountNumber string `json:"accountNumber"`
	CustomerName  string `json:"customerName"`
	Balance       string `json:"balance"`
}

// AmountForm is shared by the deposit and withdraw forms.
type AmountForm struct {
	AccountNumber string `json:"accountNumber"`
	Amount        string `json:"amount"`
}

type LookupForm struct {
	AccountNumber string `json:"accountNumber"`
}

// Forms is the per-form field state kept between submissions.
type Forms struct {
	Create   CreateAccountForm `json:"create"`
	Deposit  AmountForm        `json:"deposit"`
	Withdraw AmountForm        `json:"withdraw"`
	Lookup   LookupForm        `json:"lookup"`
}

func CreateAccountFormFrom(values url.Values) CreateAccountForm {
	return CreateAccountForm{
		AccountNumber: values.Get("accountNumber"),
		CustomerName:  values.Get("customerName"),
		Balance:       values.Get("balance"),
	}
}

func AmountFormFrom(values url.Values) AmountForm {
	return AmountForm{
		AccountNumber: values.Get("accountNumber"),
		Amount:        values.Get("amount"),
	}
}

func LookupFormFrom(values url.Values) LookupForm {
	return LookupForm{AccountNumber: values.Get("accountNumber")}
}
