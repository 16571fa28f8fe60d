package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/sohakim/gagyebu/internal/cli"
	"github.com/sohakim/gagyebu/internal/ledger"
	"github.com/sohakim/gagyebu/internal/model"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "Record and query transactions",
	}

	cmd.AddCommand(listTransactionsCmd())
	cmd.AddCommand(addTransactionCmd())
	cmd.AddCommand(updateTransactionCmd())
	cmd.AddCommand(deleteTransactionCmd())

	return cmd
}

func listTransactionsCmd() *cobra.Command {
	var (
		account   int64
		direction string
		minAmount float64
		maxAmount float64
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List transactions, optionally filtered. Every filter is optional and
all bounds are inclusive; omitted filters impose no constraint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := newRepository()
			if err != nil {
				return err
			}

			filter := ledger.TransactionFilter{
				Account:   account,
				Direction: model.TransactionDirection(direction),
			}
			if cmd.Flags().Changed("min-amount") {
				v := model.Amount(minAmount)
				filter.MinAmount = &v
			}
			if cmd.Flags().Changed("max-amount") {
				v := model.Amount(maxAmount)
				filter.MaxAmount = &v
			}
			if startDate != "" {
				d, err := model.ParseDate(startDate)
				if err != nil {
					return err
				}
				filter.StartDate = &d
			}
			if endDate != "" {
				d, err := model.ParseDate(endDate)
				if err != nil {
					return err
				}
				filter.EndDate = &d
			}

			transactions, err := repo.QueryTransactions(cmd.Context(), filter)
			if err != nil {
				return err
			}

			if len(transactions) == 0 {
				fmt.Println(cli.InfoStyle.Render("No transactions match."))
				return nil
			}

			// Show whether each method names a catalog category or was
			// free text.
			categories, err := repo.ListCategories(cmd.Context(), ledger.ScopeActive)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Date"),
				cli.HeaderStyle.Render("Account"),
				cli.HeaderStyle.Render("Direction"),
				cli.HeaderStyle.Render("Amount"),
				cli.HeaderStyle.Render("Method"),
				cli.HeaderStyle.Render("Tags"))

			for _, tx := range transactions {
				method := tx.Method
				if ledger.ResolveMethod(categories, tx.Method) == ledger.MethodCustom && method != "" {
					method += cli.SubtleStyle.Render(" (custom)")
				}
				tagNames := make([]string, 0, len(tx.Tags))
				for _, tag := range tx.Tags {
					tagNames = append(tagNames, tag.Name)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
					tx.ID,
					tx.OccurredAt.Format("2006-01-02"),
					tx.AccountName,
					tx.Direction,
					tx.Amount,
					method,
					strings.Join(tagNames, ","))
			}

			return nil
		},
	}

	cmd.Flags().Int64Var(&account, "account", 0, "filter by account id")
	cmd.Flags().StringVar(&direction, "direction", "", "filter by direction (income, expense, transfer)")
	cmd.Flags().Float64Var(&minAmount, "min-amount", 0, "minimum amount, inclusive")
	cmd.Flags().Float64Var(&maxAmount, "max-amount", 0, "maximum amount, inclusive")
	cmd.Flags().StringVar(&startDate, "start", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end", "", "latest date, inclusive (YYYY-MM-DD)")

	return cmd
}

func addTransactionCmd() *cobra.Command {
	var (
		account     int64
		amount      float64
		direction   string
		method      string
		description string
		occurredAt  string
		tagIDs      []int64
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Long: `Record a new transaction. The method may name a catalog category or be
any free text; it is stored verbatim either way.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := newRepository()
			if err != nil {
				return err
			}

			occurred := time.Now()
			if occurredAt != "" {
				occurred, err = time.Parse(time.RFC3339, occurredAt)
				if err != nil {
					d, derr := model.ParseDate(occurredAt)
					if derr != nil {
						return fmt.Errorf("invalid occurred-at %q", occurredAt)
					}
					occurred = d.Time
				}
			}

			input := ledger.TransactionInput{
				Account:     account,
				Amount:      model.Amount(amount),
				Direction:   model.TransactionDirection(direction),
				Method:      method,
				Description: description,
				OccurredAt:  occurred,
				Tags:        tagIDs,
			}

			created, err := repo.CreateTransaction(cmd.Context(), input)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Recorded transaction %d (%s %s)", created.ID, created.Direction, created.Amount)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&account, "account", 0, "account id")
	cmd.Flags().Float64Var(&amount, "amount", 0, "amount (positive)")
	cmd.Flags().StringVar(&direction, "direction", "expense", "income, expense, or transfer")
	cmd.Flags().StringVar(&method, "method", "", "category name or free text")
	cmd.Flags().StringVar(&description, "description", "", "optional description")
	cmd.Flags().StringVar(&occurredAt, "occurred-at", "", "when it happened (RFC3339 or YYYY-MM-DD, default now)")
	cmd.Flags().Int64SliceVar(&tagIDs, "tags", nil, "tag ids to attach")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func updateTransactionCmd() *cobra.Command {
	var (
		amount      float64
		direction   string
		method      string
		description string
		occurredAt  string
		tagIDs      []int64
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			patch := ledger.TransactionPatch{}
			if cmd.Flags().Changed("amount") {
				v := model.Amount(amount)
				patch.Amount = &v
			}
			if cmd.Flags().Changed("direction") {
				d := model.TransactionDirection(direction)
				patch.Direction = &d
			}
			if cmd.Flags().Changed("method") {
				patch.Method = &method
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("tags") {
				patch.Tags = tagIDs
			}
			if occurredAt != "" {
				occurred, err := time.Parse(time.RFC3339, occurredAt)
				if err != nil {
					return fmt.Errorf("invalid occurred-at %q", occurredAt)
				}
				patch.OccurredAt = &occurred
			}

			updated, err := repo.UpdateTransaction(cmd.Context(), id, patch)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated transaction %d", updated.ID)))
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "new amount")
	cmd.Flags().StringVar(&direction, "direction", "", "new direction")
	cmd.Flags().StringVar(&method, "method", "", "new method")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&occurredAt, "occurred-at", "", "new timestamp (RFC3339)")
	cmd.Flags().Int64SliceVar(&tagIDs, "tags", nil, "replacement tag ids")

	return cmd
}

func deleteTransactionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid transaction id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			if err := repo.DeleteTransaction(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Deleted transaction %d", id)))
			return nil
		},
	}
}
