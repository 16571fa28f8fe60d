package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sohakim/gagyebu/internal/cli"
	"github.com/sohakim/gagyebu/internal/notify"
)

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Read backend notifications",
	}

	cmd.AddCommand(listNotificationsCmd())
	cmd.AddCommand(readNotificationCmd())

	return cmd
}

func listNotificationsCmd() *cobra.Command {
	var unreadOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, _ []string) error {
			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}
			client := notify.NewClient(apiClient)

			list := client.List
			if unreadOnly {
				list = client.ListUnread
			}

			notifications, err := list(cmd.Context())
			if err != nil {
				return err
			}

			if len(notifications) == 0 {
				fmt.Println(cli.InfoStyle.Render("No notifications."))
				return nil
			}

			for _, n := range notifications {
				marker := cli.SubtleStyle.Render("  ")
				if !n.IsRead {
					marker = cli.WarningStyle.Render("● ")
				}
				fmt.Printf("%s[%d] %s %s\n", marker, n.ID, n.Message,
					cli.SubtleStyle.Render(n.CreatedAt.Format("2006-01-02 15:04")))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&unreadOnly, "unread", false, "only show unread notifications")

	return cmd
}

func readNotificationCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read <id>",
		Short: "Mark a notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid notification id %q", args[0])
			}

			apiClient, err := newAPIClient()
			if err != nil {
				return err
			}

			if err := notify.NewClient(apiClient).MarkRead(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Marked notification %d read", id)))
			return nil
		},
	}
}
