package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sohakim/gagyebu/internal/api"
	"github.com/sohakim/gagyebu/internal/common"
	"github.com/sohakim/gagyebu/internal/session"
)

func newMembersServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()

	mux.HandleFunc("POST /users/login/", func(w http.ResponseWriter, r *http.Request) {
		var in map[string]string
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in["password"] != "hunter2" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid credentials."})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"user":  map[string]any{"id": 7, "email": in["email"], "name": "So-ha"},
			"token": "issued-token",
		})
	})

	mux.HandleFunc("GET /users/profile/", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer issued-token" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 7, "email": "soha@example.com", "name": "So-ha", "phone": "010-1234-5678",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	srv := newMembersServer(t)
	client := NewClient(api.NewClient(srv.URL, session.Static("")))
	ctx := context.Background()

	creds, err := client.Login(ctx, "soha@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "issued-token", creds.Token.AccessToken)
	assert.Equal(t, "So-ha", creds.User.Name)

	_, err = client.Login(ctx, "soha@example.com", "wrong")
	var authErr *common.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid credentials.", authErr.Detail)
}

func TestLogin_MissingCredentials(t *testing.T) {
	client := NewClient(api.NewClient("http://localhost:0", session.Static("")))

	_, err := client.Login(context.Background(), "", "hunter2")
	var vErr *common.ValidationError
	require.ErrorAs(t, err, &vErr)

	_, err = client.ExchangeSocialToken(context.Background(), "google", "")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "access_token", vErr.Field)
}

func TestProfile(t *testing.T) {
	srv := newMembersServer(t)
	ctx := context.Background()

	user, err := NewClient(api.NewClient(srv.URL, session.Static("issued-token"))).Profile(ctx)
	require.NoError(t, err)
	assert.Equal(t, "soha@example.com", user.Email)
	assert.Equal(t, "010-1234-5678", user.Phone)

	_, err = NewClient(api.NewClient(srv.URL, session.Static("stale"))).Profile(ctx)
	var authErr *common.AuthError
	require.ErrorAs(t, err, &authErr)
}
