package ledger

import (
	"context"
	"fmt"

	"github.com/sohakim/gagyebu/internal/model"
)

// ListAccounts returns all accounts. Accounts have no trash partition.
func (r *Repository) ListAccounts(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.api.Get(ctx, "/accounts/", nil, &accounts); err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateAccount creates a new account.
func (r *Repository) CreateAccount(ctx context.Context, account model.Account) (*model.Account, error) {
	if err := account.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]any{
		"name":        account.Name,
		"source_type": account.SourceType,
		"balance":     account.Balance,
	}
	if account.AccountNumber != "" {
		payload["account_number"] = account.AccountNumber
	}
	if account.BankCode != "" {
		payload["bank_code"] = account.BankCode
	}
	if account.AccountType != "" {
		payload["account_type"] = account.AccountType
	}
	if account.CardCompany != "" {
		payload["card_company"] = account.CardCompany
	}
	if account.CardNumber != "" {
		payload["card_number"] = account.CardNumber
	}
	if account.BillingDay != nil {
		payload["billing_day"] = *account.BillingDay
	}

	var created model.Account
	if err := r.api.Post(ctx, "/accounts/", payload, &created); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &created, nil
}

// DeleteAccount removes an account outright; there is no restore.
func (r *Repository) DeleteAccount(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/accounts/%d/", id)); err != nil {
		return fmt.Errorf("failed to delete account %d: %w", id, err)
	}
	return nil
}
