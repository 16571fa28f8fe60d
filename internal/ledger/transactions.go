package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/sohakim/gagyebu/internal/api"
	"github.com/sohakim/gagyebu/internal/common"
	"github.com/sohakim/gagyebu/internal/model"
)

// TransactionFilter is an independently-optional conjunction of
// predicates. Zero-valued fields impose no constraint; all bounds are
// inclusive.
type TransactionFilter struct {
	StartDate *model.Date
	EndDate   *model.Date
	MinAmount *model.Amount
	MaxAmount *model.Amount
	Account   int64
	Direction model.TransactionDirection
}

func (f TransactionFilter) query() api.Query {
	q := api.Query{}
	if f.Account != 0 {
		q["account"] = fmt.Sprintf("%d", f.Account)
	}
	if f.Direction != "" {
		q["direction"] = string(f.Direction)
	}
	if f.MinAmount != nil {
		q["min_amount"] = f.MinAmount.String()
	}
	if f.MaxAmount != nil {
		q["max_amount"] = f.MaxAmount.String()
	}
	if f.StartDate != nil {
		q["start_date"] = f.StartDate.String()
	}
	if f.EndDate != nil {
		q["end_date"] = f.EndDate.String()
	}
	return q
}

// TransactionInput carries the writable transaction fields. Tags are
// referenced by id; Method is stored verbatim whether it names a catalog
// category or is free text.
type TransactionInput struct {
	OccurredAt  time.Time
	Method      string
	Description string
	Direction   model.TransactionDirection
	Tags        []int64
	Amount      model.Amount
	Account     int64
}

// Validate checks the fields required to create a transaction.
func (in *TransactionInput) Validate() error {
	tx := model.Transaction{
		Account:    in.Account,
		Amount:     in.Amount,
		Direction:  in.Direction,
		OccurredAt: in.OccurredAt,
	}
	return tx.Validate()
}

func (in *TransactionInput) payload() map[string]any {
	payload := map[string]any{
		"account":     in.Account,
		"amount":      in.Amount,
		"direction":   in.Direction,
		"method":      in.Method,
		"occurred_at": in.OccurredAt.Format(time.RFC3339),
	}
	if in.Description != "" {
		payload["description"] = in.Description
	}
	if in.Tags != nil {
		payload["tags"] = in.Tags
	}
	return payload
}

// TransactionPatch describes a partial transaction update. Nil fields are
// left unchanged; a non-nil Tags slice replaces the tag set entirely.
type TransactionPatch struct {
	Amount      *model.Amount
	Direction   *model.TransactionDirection
	Method      *string
	Description *string
	OccurredAt  *time.Time
	Tags        []int64
}

// QueryTransactions lists transactions matching the filter. An empty
// filter returns everything.
func (r *Repository) QueryTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error) {
	var transactions []model.Transaction
	if err := r.api.Get(ctx, "/transactions/", filter.query(), &transactions); err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return transactions, nil
}

// CreateTransaction records a new transaction.
func (r *Repository) CreateTransaction(ctx context.Context, in TransactionInput) (*model.Transaction, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var created model.Transaction
	if err := r.api.Post(ctx, "/transactions/", in.payload(), &created); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	return &created, nil
}

// UpdateTransaction applies a partial update.
func (r *Repository) UpdateTransaction(ctx context.Context, id int64, patch TransactionPatch) (*model.Transaction, error) {
	payload := map[string]any{}
	if patch.Amount != nil {
		if *patch.Amount <= 0 {
			return nil, common.NewValidationError("amount", "must be positive")
		}
		payload["amount"] = *patch.Amount
	}
	if patch.Direction != nil {
		if !patch.Direction.Valid() {
			return nil, common.NewValidationError("direction", "must be income, expense, or transfer")
		}
		payload["direction"] = *patch.Direction
	}
	if patch.Method != nil {
		payload["method"] = *patch.Method
	}
	if patch.Description != nil {
		payload["description"] = *patch.Description
	}
	if patch.OccurredAt != nil {
		payload["occurred_at"] = patch.OccurredAt.Format(time.RFC3339)
	}
	if patch.Tags != nil {
		payload["tags"] = patch.Tags
	}

	if len(payload) == 0 {
		return nil, common.NewValidationError("patch", "no fields to update")
	}

	var updated model.Transaction
	if err := r.api.Patch(ctx, fmt.Sprintf("/transactions/%d/", id), payload, &updated); err != nil {
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteTransaction removes a transaction.
func (r *Repository) DeleteTransaction(ctx context.Context, id int64) error {
	if err := r.api.Delete(ctx, fmt.Sprintf("/transactions/%d/", id)); err != nil {
		return fmt.Errorf("failed to delete transaction %d: %w", id, err)
	}
	return nil
}

// MethodSource says whether a stored method string names a catalog
// category or was free text. The distinction drives UI affordance only;
// the stored value is the same plain string either way.
type MethodSource int

const (
	// MethodCustom means the method does not match any active category.
	MethodCustom MethodSource = iota
	// MethodCatalog means the method names an active catalog category.
	MethodCatalog
)

// ResolveMethod classifies a method string against the active categories.
func ResolveMethod(categories []model.Category, method string) MethodSource {
	for _, c := range categories {
		if c.Name == method {
			return MethodCatalog
		}
	}
	return MethodCustom
}
