package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sohakim/gagyebu/internal/cli"
	"github.com/sohakim/gagyebu/internal/model"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage money accounts",
	}

	cmd.AddCommand(listAccountsCmd())
	cmd.AddCommand(addAccountCmd())
	cmd.AddCommand(deleteAccountCmd())

	return cmd
}

func listAccountsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := newRepository()
			if err != nil {
				return err
			}

			accounts, err := repo.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}

			if len(accounts) == 0 {
				fmt.Println(cli.InfoStyle.Render("No accounts found. Use 'gagyebu accounts add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Type"),
				cli.HeaderStyle.Render("Balance"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 6),
				strings.Repeat("-", 12))

			for _, acc := range accounts {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", acc.ID, acc.Name, acc.SourceType, acc.Balance)
			}

			return nil
		},
	}
}

func addAccountCmd() *cobra.Command {
	var (
		sourceType    string
		balance       float64
		accountNumber string
		bankCode      string
		accountType   string
		cardCompany   string
		cardNumber    string
		billingDay    int
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := newRepository()
			if err != nil {
				return err
			}

			account := model.Account{
				Name:          args[0],
				SourceType:    model.AccountSourceType(sourceType),
				Balance:       model.Amount(balance),
				AccountNumber: accountNumber,
				BankCode:      bankCode,
				AccountType:   accountType,
				CardCompany:   cardCompany,
				CardNumber:    cardNumber,
			}
			if cmd.Flags().Changed("billing-day") {
				account.BillingDay = &billingDay
			}

			created, err := repo.CreateAccount(cmd.Context(), account)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created account %q (id %d)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceType, "type", "bank", "source type (bank, card, cash)")
	cmd.Flags().Float64Var(&balance, "balance", 0, "starting balance")
	cmd.Flags().StringVar(&accountNumber, "account-number", "", "bank account number")
	cmd.Flags().StringVar(&bankCode, "bank-code", "", "bank code")
	cmd.Flags().StringVar(&accountType, "account-type", "", "bank account type")
	cmd.Flags().StringVar(&cardCompany, "card-company", "", "card issuer")
	cmd.Flags().StringVar(&cardNumber, "card-number", "", "card number")
	cmd.Flags().IntVar(&billingDay, "billing-day", 0, "card billing day (1-31)")

	return cmd
}

func deleteAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account",
		Long:  `Delete an account outright. Accounts have no trash; this cannot be undone.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid account id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			if err := repo.DeleteAccount(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Deleted account %d", id)))
			return nil
		},
	}
}
