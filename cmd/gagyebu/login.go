package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sohakim/gagyebu/internal/auth"
	"github.com/sohakim/gagyebu/internal/cli"
	"github.com/sohakim/gagyebu/internal/common"
	"github.com/sohakim/gagyebu/internal/session"
)

func loginCmd() *cobra.Command {
	var (
		email    string
		password string
		social   string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the bearer token",
		Long: `Authenticate against the tracker backend with email and password, or
exchange a social provider's access token, and save the bearer token for
later commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client := auth.NewClient(newAnonClient())

			var (
				creds *auth.Credentials
				err   error
			)
			if social != "" {
				provider, _ := cmd.Flags().GetString("provider")
				creds, err = client.ExchangeSocialToken(ctx, provider, social)
			} else {
				creds, err = client.Login(ctx, email, password)
			}
			if err != nil {
				return err
			}

			path, err := tokenFilePath()
			if err != nil {
				return err
			}
			if err := session.SaveToken(path, creds.Token); err != nil {
				return common.NewUserError("logged in, but saving the token failed", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Logged in as %s", creds.User.Email)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&social, "social-token", "", "social provider access token to exchange")
	cmd.Flags().String("provider", "google", "social provider name")

	return cmd
}

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		Aliases: []string{"whoami"},
		Short:   "Show the logged-in user's profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newAPIClient()
			if err != nil {
				return err
			}

			user, err := auth.NewClient(client).Profile(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("%s %s\n", cli.TitleStyle.Render(user.Name), cli.SubtleStyle.Render(user.Email))
			if user.Phone != "" {
				fmt.Printf("  %s\n", user.Phone)
			}
			return nil
		},
	}
}

func signupCmd() *cobra.Command {
	var (
		email    string
		password string
		name     string
		phone    string
	)

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			client := auth.NewClient(newAnonClient())

			creds, err := client.Signup(ctx, email, password, name, phone)
			if err != nil {
				return err
			}

			path, err := tokenFilePath()
			if err != nil {
				return err
			}
			if err := session.SaveToken(path, creds.Token); err != nil {
				return common.NewUserError("signed up, but saving the token failed", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Welcome, %s!", creds.User.Name)))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}
