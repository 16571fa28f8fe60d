package model

import (
	"time"

	"github.com/sohakim/gagyebu/internal/common"
)

// TransactionDirection indicates which way money moved.
type TransactionDirection string

const (
	// DirectionIncome is money coming in.
	DirectionIncome TransactionDirection = "income"
	// DirectionExpense is money going out.
	DirectionExpense TransactionDirection = "expense"
	// DirectionTransfer is money moving between accounts.
	DirectionTransfer TransactionDirection = "transfer"
)

// Valid reports whether the direction is one of the known values.
func (d TransactionDirection) Valid() bool {
	switch d {
	case DirectionIncome, DirectionExpense, DirectionTransfer:
		return true
	}
	return false
}

// Transaction is a single recorded money movement. Method is always a
// plain string: it may match a catalog category name or be free text the
// user typed, and the two are indistinguishable once stored. Tags and the
// method string survive soft deletion of the Tag/Category they came from.
type Transaction struct {
	OccurredAt   time.Time            `json:"occurred_at"`
	CreatedAt    time.Time            `json:"created_at,omitempty"`
	Method       string               `json:"method"`
	Description  string               `json:"description,omitempty"`
	AccountName  string               `json:"account_name,omitempty"`
	Direction    TransactionDirection `json:"direction"`
	Tags         []Tag                `json:"tags,omitempty"`
	Amount       Amount               `json:"amount"`
	BalanceAfter Amount               `json:"balance_after,omitempty"`
	Account      int64                `json:"account"`
	ID           int64                `json:"id"`
}

// Validate checks the fields required to create a transaction.
func (t *Transaction) Validate() error {
	if t.Account == 0 {
		return common.NewValidationError("account", "is required")
	}
	if t.Amount <= 0 {
		return common.NewValidationError("amount", "must be positive")
	}
	if !t.Direction.Valid() {
		return common.NewValidationError("direction", "must be income, expense, or transfer")
	}
	if t.OccurredAt.IsZero() {
		return common.NewValidationError("occurred_at", "is required")
	}
	return nil
}
