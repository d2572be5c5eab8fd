package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Entertainment Category = "Entertainment"
	Shopping      Category = "Shopping"
	Housing       Category = "Housing"
	Utilities     Category = "Utilities"
	Health        Category = "Health"
	Education     Category = "Education"
	Personal      Category = "Personal"
	Other         Category = "Other"
	Income        Category = "Income"
)

const (
	Cash         PaymentMethod = "Cash"
	CreditCard   PaymentMethod = "Credit Card"
	DebitCard    PaymentMethod = "Debit Card"
	BankTransfer PaymentMethod = "Bank Transfer"
	UPI          PaymentMethod = "UPI"
	OtherMethod  PaymentMethod = "Other"
)

const (
	Checking          AccountType = "Checking"
	Savings           AccountType = "Savings"
	Investment        AccountType = "Investment"
	CreditCardAccount AccountType = "Credit Card"
	Loan              AccountType = "Loan"
	Mortgage          AccountType = "Mortgage"
	Retirement        AccountType = "Retirement"
	OtherAccount      AccountType = "Other"
)

// DefaultCurrency is used when neither the record nor the configuration names one.
const DefaultCurrency Currency = "$"

type (
	Category      string
	PaymentMethod string
	AccountType   string

	// Currency is a display symbol only. Amounts are never converted.
	Currency string

	Transaction struct {
		ID            string        `json:"id"`
		Date          time.Time     `json:"date"`
		Description   string        `json:"description"`
		Amount        Money         `json:"amount"` // negative = expense, positive = income
		Category      Category      `json:"category"`
		PaymentMethod PaymentMethod `json:"paymentMethod"`
		UserID        string        `json:"userId"`
		Currency      Currency      `json:"currency,omitempty"`
	}

	FinancialAccount struct {
		ID           string      `json:"id"`
		UserID       string      `json:"userId"`
		Name         string      `json:"name"`
		Type         AccountType `json:"type"`
		Balance      Money       `json:"balance"` // magnitude; direction comes from IsAsset
		Currency     Currency    `json:"currency"`
		Institution  *string     `json:"institution,omitempty"`
		InterestRate *float64    `json:"interestRate,omitempty"`
		IsAsset      bool        `json:"isAsset"`
		Notes        *string     `json:"notes,omitempty"`
		LastUpdated  time.Time   `json:"lastUpdated"`
	}

	Budget struct {
		UserID   string   `json:"userId"`
		Category Category `json:"category"`
		Limit    Money    `json:"limit"`
		Spent    Money    `json:"spent"`
	}

	SavingGoal struct {
		ID            string     `json:"id"`
		UserID        string     `json:"userId"`
		Name          string     `json:"name"`
		TargetAmount  Money      `json:"targetAmount"`
		CurrentAmount Money      `json:"currentAmount"`
		TargetDate    *time.Time `json:"targetDate,omitempty"`
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyDescription     = errors.New("empty description")
	ErrEmptyName            = errors.New("empty name")
	ErrZeroDate             = errors.New("date cannot be zero")
	ErrUnknownCategory      = errors.New("unknown category")
	ErrUnknownPaymentMethod = errors.New("unknown payment method")
	ErrUnknownAccountType   = errors.New("unknown account type")
	ErrNegativeBalance      = errors.New("balance must be a non-negative magnitude")
)

var categories = []Category{
	Food, Transport, Entertainment, Shopping, Housing,
	Utilities, Health, Education, Personal, Other, Income,
}

var paymentMethods = []PaymentMethod{Cash, CreditCard, DebitCard, BankTransfer, UPI, OtherMethod}

var accountTypes = []AccountType{
	Checking, Savings, Investment, CreditCardAccount,
	Loan, Mortgage, Retirement, OtherAccount,
}

var currencies = []Currency{"$", "€", "£", "¥", "₹", "₩"}

// Categories returns every category in declaration order.
func Categories() []Category {
	return append([]Category(nil), categories...)
}

// AccountTypes returns every account type in declaration order.
func AccountTypes() []AccountType {
	return append([]AccountType(nil), accountTypes...)
}

// Currencies returns the known display symbols.
func Currencies() []Currency {
	return append([]Currency(nil), currencies...)
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(string(c), s) {
			return c, nil
		}
	}
	return "", ErrUnknownCategory
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

func (p PaymentMethod) Valid() bool {
	for _, known := range paymentMethods {
		if p == known {
			return true
		}
	}
	return false
}

func (t AccountType) Valid() bool {
	for _, known := range accountTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Or returns c, or fallback when c is empty.
func (c Currency) Or(fallback Currency) Currency {
	if strings.TrimSpace(string(c)) == "" {
		return fallback
	}
	return c
}

// IsExpense reports whether the amount is negative. The category plays no part.
func (t Transaction) IsExpense() bool {
	return t.Amount.Cents < 0
}

func (t Transaction) IsIncome() bool {
	return t.Amount.Cents > 0
}

func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if len(strings.TrimSpace(t.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(t.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if !t.Category.Valid() {
		return ErrUnknownCategory
	}
	if t.PaymentMethod != "" && !t.PaymentMethod.Valid() {
		return ErrUnknownPaymentMethod
	}
	return nil
}

func (a FinancialAccount) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return ErrEmptyName
	}
	if !a.Type.Valid() {
		return ErrUnknownAccountType
	}
	if a.Balance.Cents < 0 {
		return ErrNegativeBalance
	}
	return nil
}

func (b Budget) Validate() error {
	if !b.Category.Valid() {
		return ErrUnknownCategory
	}
	if b.Limit.Cents <= 0 {
		return errors.New("budget limit must be positive")
	}
	if b.Spent.Cents < 0 {
		return errors.New("budget spent cannot be negative")
	}
	return nil
}

func (g SavingGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if g.TargetAmount.Cents <= 0 {
		return errors.New("goal target must be positive")
	}
	if g.CurrentAmount.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
