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

func tagsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Manage transaction tags",
		Long:  `List, add, update, trash, and restore free-form tags.`,
	}

	cmd.AddCommand(listTagsCmd())
	cmd.AddCommand(addTagCmd())
	cmd.AddCommand(updateTagCmd())
	cmd.AddCommand(deleteTagCmd())
	cmd.AddCommand(restoreTagCmd())

	return cmd
}

func listTagsCmd() *cobra.Command {
	var trash bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tags",
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := newRepository()
			if err != nil {
				return err
			}

			scope := ledger.ScopeActive
			if trash {
				scope = ledger.ScopeTrash
			}

			tags, err := repo.ListTags(cmd.Context(), scope)
			if err != nil {
				return fmt.Errorf("failed to get tags: %w", err)
			}

			if len(tags) == 0 {
				fmt.Println(cli.InfoStyle.Render("No tags found. Use 'gagyebu tags add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			fmt.Fprintf(w, "%s\t%s\t%s\n",
				cli.HeaderStyle.Render("ID"),
				cli.HeaderStyle.Render("Name"),
				cli.HeaderStyle.Render("Color"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 4),
				strings.Repeat("-", 20),
				strings.Repeat("-", 8))

			for _, tag := range tags {
				color := tag.Color
				if color == "" {
					color = cli.SubtleStyle.Render("(none)")
				}
				fmt.Fprintf(w, "%d\t%s\t%s\n", tag.ID, tag.Name, color)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&trash, "trash", false, "list trashed tags instead of active ones")

	return cmd
}

func addTagCmd() *cobra.Command {
	var color string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a new tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := newRepository()
			if err != nil {
				return err
			}

			created, err := repo.CreateTag(cmd.Context(), model.Tag{Name: args[0], Color: color})
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created tag %q (id %d)", created.Name, created.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&color, "color", "", "display color hint, e.g. #ffb3c7")

	return cmd
}

func updateTagCmd() *cobra.Command {
	var (
		name  string
		color string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tag id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			patch := ledger.TagPatch{}
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("color") {
				patch.Color = &color
			}

			updated, err := repo.UpdateTag(cmd.Context(), id, patch)
			if err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Updated tag %q", updated.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&color, "color", "", "new display color")

	return cmd
}

func deleteTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Move a tag to the trash",
		Long:  `Soft-delete a tag. Transactions carrying the tag are not modified.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tag id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			if err := repo.DeleteTag(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.WarningStyle.Render(fmt.Sprintf("Moved tag %d to the trash", id)))
			return nil
		},
	}
}

func restoreTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <id>",
		Short: "Restore a tag from the trash",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid tag id %q", args[0])
			}

			repo, err := newRepository()
			if err != nil {
				return err
			}

			if err := repo.RestoreTag(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Restored tag %d", id)))
			return nil
		},
	}
}
