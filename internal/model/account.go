package model

import (
	"time"

	"github.com/sohakim/gagyebu/internal/common"
)

// AccountSourceType identifies where an account's money lives.
type AccountSourceType string

const (
	// AccountSourceBank is a bank account.
	AccountSourceBank AccountSourceType = "bank"
	// AccountSourceCard is a credit or debit card.
	AccountSourceCard AccountSourceType = "card"
	// AccountSourceCash is cash on hand.
	AccountSourceCash AccountSourceType = "cash"
)

// Valid reports whether the source type is one of the known values.
func (s AccountSourceType) Valid() bool {
	switch s {
	case AccountSourceBank, AccountSourceCard, AccountSourceCash:
		return true
	}
	return false
}

// Account is a money source transactions are recorded against. The
// bank/card specific fields are optional and depend on SourceType.
type Account struct {
	CreatedAt     time.Time         `json:"created_at,omitempty"`
	Name          string            `json:"name"`
	SourceType    AccountSourceType `json:"source_type"`
	AccountNumber string            `json:"account_number,omitempty"`
	BankCode      string            `json:"bank_code,omitempty"`
	AccountType   string            `json:"account_type,omitempty"`
	CardCompany   string            `json:"card_company,omitempty"`
	CardNumber    string            `json:"card_number,omitempty"`
	BillingDay    *int              `json:"billing_day,omitempty"`
	Balance       Amount            `json:"balance"`
	ID            int64             `json:"id"`
}

// Validate checks the fields required to create an account.
func (a *Account) Validate() error {
	if a.Name == "" {
		return common.NewValidationError("name", "is required")
	}
	if !a.SourceType.Valid() {
		return common.NewValidationError("source_type", "must be bank, card, or cash")
	}
	if a.BillingDay != nil && (*a.BillingDay < 1 || *a.BillingDay > 31) {
		return common.NewValidationError("billing_day", "must be between 1 and 31")
	}
	return nil
}
