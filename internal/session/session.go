// Package session supplies the bearer credential attached to every
// authenticated backend call. The credential is passed explicitly rather
// than read from ambient state so callers stay testable.
package session

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/sohakim/gagyebu/internal/common"
)

// Session yields the current bearer credential. Implementations may
// refresh behind the scenes; callers treat every Token call as cheap.
type Session interface {
	Token(ctx context.Context) (string, error)
}

// Static is a fixed bearer token with no refresh hook.
type Static string

// Token implements Session.
func (s Static) Token(_ context.Context) (string, error) {
	if s == "" {
		return "", common.ErrNoCredential
	}
	return string(s), nil
}

// TokenSource adapts an oauth2.TokenSource, so credentials obtained from
// the social login exchange refresh transparently.
type TokenSource struct {
	src oauth2.TokenSource
}

// FromTokenSource wraps an oauth2.TokenSource as a Session.
func FromTokenSource(src oauth2.TokenSource) *TokenSource {
	return &TokenSource{src: src}
}

// FromToken wraps a static oauth2 token as a Session.
func FromToken(tok *oauth2.Token) *TokenSource {
	return &TokenSource{src: oauth2.StaticTokenSource(tok)}
}

// Token implements Session.
func (s *TokenSource) Token(_ context.Context) (string, error) {
	tok, err := s.src.Token()
	if err != nil {
		return "", fmt.Errorf("failed to obtain token: %w", err)
	}
	if tok.AccessToken == "" {
		return "", common.ErrNoCredential
	}
	return tok.AccessToken, nil
}
