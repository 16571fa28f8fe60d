package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sohakim/gagyebu/internal/cli"
	"github.com/sohakim/gagyebu/internal/ledger"
	"github.com/sohakim/gagyebu/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage transaction categories",
		Long:  `List, add, update, trash, and restore the categories transactions are classified under.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(addCategoryCmd())
	cmd.AddCommand(updateCategoryCmd())
	cmd.AddCommand(deleteCategoryCmd())
	cmd.AddCommand(restoreCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	var trash bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories",
		Long:  `Display active categories, or the trash with --trash.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := newRepository()
			if err != nil {
				return err
			}

			scope := ledger.ScopeActive
			if trash {
				scope = ledger.ScopeTrash
			}

			categories, err := repo.ListCategories(cmd.Context(), scope)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Println(cli.InfoStyle.Render("No categories found. Use 'gagyebu categories add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Kind"),
				cli.HeaderStyle.Render("Order"),
				cli.HeaderStyle.Render("Parent"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 8),
				strings.Repeat("-", 5),
				strings.Repeat("-", 6))

			for _, cat := range categories {
				parent := cli.SubtleStyle.Render("(root)")
				if cat.Parent != nil {
					parent = strconv.FormatInt(*cat.Parent, 10)
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", cat.ID, cat.Name, cat.Kind, cat.SortOrder, parent)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&trash, "trash", false, "list trashed categories instead of active ones")

	return cmd
}

func addCategoryCmd() *cobra.Command {
	var (
		kind      string
		sortOrder int
		parent    int64
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := newRepository()
			if err != nil {
				return err
			}

			category := model.Category{
				Name:      args[0],
				Kind:      model.CategoryKind(strings.ToUpper(kind)),
				SortOrder: sortOrder,
			}
			if parent != 0 {
				category.Parent = &parent
			}

			created, err := repo.CreateCategory(cmd.Context(), category)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created category %q (id %d)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "EXPENSE", "category kind (EXPENSE or INCOME)")
	cmd.Flags().IntVar(&sortOrder, "order", 0, "sort order for display")
	cmd.Flags().Int64Var(&parent, "parent", 0, "parent category id")

	return cmd
}

func updateCategoryCmd() *cobra.Command {
	var (
		name       string
		kind       string
		sortOrder  int
		parent     int64
		clearFlags bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a category",
		Long:  `Change a category's name, kind, sort order, or parent. Use --root to move it to the top level.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			patch := ledger.CategoryPatch{ClearParent: clearFlags}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("kind") {
				k := model.CategoryKind(strings.ToUpper(kind))
				patch.Kind = &k
			}
			if cmd.Flags().Changed("order") {
				patch.SortOrder = &sortOrder
			}
			if cmd.Flags().Changed("parent") {
				patch.Parent = &parent
			}

			updated, err := repo.UpdateCategory(cmd.Context(), id, patch)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated category %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&kind, "kind", "", "new kind (EXPENSE or INCOME)")
	cmd.Flags().IntVar(&sortOrder, "order", 0, "new sort order")
	cmd.Flags().Int64Var(&parent, "parent", 0, "new parent category id")
	cmd.Flags().BoolVar(&clearFlags, "root", false, "clear the parent, making this a root category")

	return cmd
}

func deleteCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Move a category to the trash",
		Long:  `Soft-delete a category. Transactions that reference it keep their stored method.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			if err := repo.DeleteCategory(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Moved category %d to the trash", id)))
			return nil
		},
	}
}

func restoreCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a category from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid category id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			if err := repo.RestoreCategory(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Restored category %d", id)))
			return nil
		},
	}
}
