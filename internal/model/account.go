package model

import (
	"fmt"
	"strings"
	"time"
)

// AccountType classifies an account. Credit Card and Loan accounts carry
// balances owed, which flips the sign convention of their exports.
type AccountType string

// Account types.
const (
	AccountChecking   AccountType = "Checking"
	AccountSavings    AccountType = "Savings"
	AccountCreditCard AccountType = "Credit Card"
	AccountInvestment AccountType = "Investment"
	AccountCash       AccountType = "Cash"
	AccountLoan       AccountType = "Loan"
	AccountOther      AccountType = "Other"
)

// AccountTypes lists every account type in display order.
var AccountTypes = []AccountType{
	AccountChecking,
	AccountSavings,
	AccountCreditCard,
	AccountInvestment,
	AccountCash,
	AccountLoan,
	AccountOther,
}

// ParseAccountType converts user input into an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "checking":
		return AccountChecking, nil
	case "savings":
		return AccountSavings, nil
	case "credit card", "creditcard", "credit":
		return AccountCreditCard, nil
	case "investment":
		return AccountInvestment, nil
	case "cash":
		return AccountCash, nil
	case "loan":
		return AccountLoan, nil
	case "other":
		return AccountOther, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// IsLiability reports whether amounts on this account type are exported
// with charges positive and payments negative.
func (t AccountType) IsLiability() bool {
	return t == AccountCreditCard || t == AccountLoan
}

// Account is a named container of transactions.
type Account struct {
	CreatedAt   time.Time
	Name        string
	Type        AccountType
	Institution string
	Currency    string
	Notes       string
	ID          int64
}
