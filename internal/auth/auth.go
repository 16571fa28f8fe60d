// Package auth implements the account endpoints: signup, login, the
// social token exchange, profile, and logout.
package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/sohakim/gagyebu/internal/api"
	"github.com/sohakim/gagyebu/internal/common"
)

// User is the profile echoed back by signup and login.
type User struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
	ID    int64  `json:"id"`
}

// Credentials bundles the logged-in user with their bearer token.
type Credentials struct {
	User  User
	Token *oauth2.Token
}

// Client performs account operations.
type Client struct {
	api *api.Client
}

// NewClient creates an auth client.
func NewClient(c *api.Client) *Client {
	return &Client{api: c}
}

// Signup registers a new user.
func (c *Client) Signup(ctx context.Context, email, password, name, phone string) (*Credentials, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError("credentials", "email and password are required")
	}

	payload := map[string]string{
		"email":    email,
		"password": password,
		"name":     name,
	}
	if phone != "" {
		payload["phone"] = phone
	}

	var out struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	if err := c.api.PostAnon(ctx, "/users/signup/", payload, &out); err != nil {
		return nil, fmt.Errorf("signup failed: %w", err)
	}
	return &Credentials{User: out.User, Token: &oauth2.Token{AccessToken: out.Token}}, nil
}

// Login exchanges email and password for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*Credentials, error) {
	if email == "" || password == "" {
		return nil, common.NewValidationError("credentials", "email and password are required")
	}

	var out struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	payload := map[string]string{"email": email, "password": password}
	if err := c.api.PostAnon(ctx, "/users/login/", payload, &out); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &Credentials{User: out.User, Token: &oauth2.Token{AccessToken: out.Token}}, nil
}

// ExchangeSocialToken trades a social provider's access token for a
// backend bearer token.
func (c *Client) ExchangeSocialToken(ctx context.Context, provider, accessToken string) (*Credentials, error) {
	if accessToken == "" {
		return nil, common.NewValidationError("access_token", "is required")
	}

	var out struct {
		User  User   `json:"user"`
		Token string `json:"token"`
	}
	payload := map[string]string{"provider": provider, "access_token": accessToken}
	if err := c.api.PostAnon(ctx, "/users/social/token/", payload, &out); err != nil {
		return nil, fmt.Errorf("social token exchange failed: %w", err)
	}
	return &Credentials{User: out.User, Token: &oauth2.Token{AccessToken: out.Token}}, nil
}

// Profile fetches the logged-in user's profile.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.api.Get(ctx, "/users/profile/", nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// Logout invalidates a refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	payload := map[string]string{"refresh": refreshToken}
	if err := c.api.Post(ctx, "/users/logout/", payload, nil); err != nil {
		return fmt.Errorf("logout failed: %w", err)
	}
	return nil
}
