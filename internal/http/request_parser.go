// Package http provides the JSON API over the ledger service.
//
// This file turns request bodies into domain records. Every problem found
// here is a validation error and maps to 422.
package http

import (
	"errors"
	"strings"
	"time"

	"fintrack/internal/core"
)

const dateLayout = "2006-01-02"

type transactionRequest struct {
	Date          string      `json:"date"`
	Description   string      `json:"description"`
	Amount        *core.Money `json:"amount"`
	Category      string      `json:"category"`
	PaymentMethod string      `json:"paymentMethod"`
	UserID        string      `json:"userId"`
	Currency      string      `json:"currency"`
	ID            string      `json:"id,omitempty"`
}

type accountRequest struct {
	Name         string      `json:"name"`
	Type         string      `json:"type"`
	Balance      *core.Money `json:"balance"`
	Currency     string      `json:"currency"`
	Institution  *string     `json:"institution"`
	InterestRate *float64    `json:"interestRate"`
	IsAsset      *bool       `json:"isAsset"`
	Notes        *string     `json:"notes"`
	UserID       string      `json:"userId"`
}

type budgetRequest struct {
	Category string      `json:"category"`
	Limit    *core.Money `json:"limit"`
	UserID   string      `json:"userId"`
}

type classifyRequest struct {
	Description string `json:"description"`
}

// parseDate accepts YYYY-MM-DD or RFC 3339. An empty string means today.
func parseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, invalidf("invalid date %q: use YYYY-MM-DD", s)
}

// parsePaymentMethod matches a payment method case-insensitively. Empty is
// allowed.
func parsePaymentMethod(s string) (core.PaymentMethod, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, pm := range []core.PaymentMethod{core.Cash, core.CreditCard, core.DebitCard, core.BankTransfer, core.UPI, core.OtherMethod} {
		if strings.EqualFold(string(pm), s) {
			return pm, nil
		}
	}
	return "", invalid(core.ErrUnknownPaymentMethod)
}

func parseAccountType(s string) (core.AccountType, error) {
	s = strings.TrimSpace(s)
	for _, t := range core.AccountTypes() {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", invalid(core.ErrUnknownAccountType)
}

// parseOptionalCategory returns "" for an empty input so the service
// classifies the record from its description.
func parseOptionalCategory(s string) (core.Category, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	c, err := core.ParseCategory(s)
	if err != nil {
		return "", invalid(err)
	}
	return c, nil
}

func (req transactionRequest) toTransaction(now time.Time) (core.Transaction, error) {
	if req.Amount == nil {
		return core.Transaction{}, invalid(errors.New("amount is required"))
	}
	date, err := parseDate(req.Date, now)
	if err != nil {
		return core.Transaction{}, err
	}
	category, err := parseOptionalCategory(req.Category)
	if err != nil {
		return core.Transaction{}, err
	}
	method, err := parsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return core.Transaction{}, err
	}
	return core.Transaction{
		ID:            strings.TrimSpace(req.ID),
		Date:          date,
		Description:   sanitizeInput(req.Description),
		Amount:        *req.Amount,
		Category:      category,
		PaymentMethod: method,
		UserID:        strings.TrimSpace(req.UserID),
		Currency:      core.Currency(strings.TrimSpace(req.Currency)),
	}, nil
}

func (req accountRequest) toAccount() (core.FinancialAccount, error) {
	if req.Balance == nil {
		return core.FinancialAccount{}, invalid(errors.New("balance is required"))
	}
	t, err := parseAccountType(req.Type)
	if err != nil {
		return core.FinancialAccount{}, err
	}
	isAsset := true
	if req.IsAsset != nil {
		isAsset = *req.IsAsset
	}
	a := core.FinancialAccount{
		UserID:       strings.TrimSpace(req.UserID),
		Name:         sanitizeInput(req.Name),
		Type:         t,
		Balance:      *req.Balance,
		Currency:     core.Currency(strings.TrimSpace(req.Currency)),
		Institution:  trimmedOrNil(req.Institution),
		InterestRate: req.InterestRate,
		IsAsset:      isAsset,
		Notes:        trimmedOrNil(req.Notes),
	}
	if err := a.Validate(); err != nil {
		return core.FinancialAccount{}, invalid(err)
	}
	return a, nil
}

func (req budgetRequest) toBudget() (core.Budget, error) {
	c, err := core.ParseCategory(req.Category)
	if err != nil {
		return core.Budget{}, invalid(err)
	}
	if req.Limit == nil {
		return core.Budget{}, invalid(errors.New("limit is required"))
	}
	b := core.Budget{
		UserID:   strings.TrimSpace(req.UserID),
		Category: c,
		Limit:    *req.Limit,
	}
	if err := b.Validate(); err != nil {
		return core.Budget{}, invalid(err)
	}
	return b, nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := sanitizeInput(*s)
	if v == "" {
		return nil
	}
	return &v
}
