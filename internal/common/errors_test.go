package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "backend detail wins",
			err:  fmt.Errorf("failed to create category: %w", &APIError{Detail: "이미 존재하는 카테고리입니다.", StatusCode: 400}),
			want: "이미 존재하는 카테고리입니다.",
		},
		{
			name: "api error without detail",
			err:  &APIError{StatusCode: 500},
			want: "request failed with status 500",
		},
		{
			name: "user error message",
			err:  NewUserError("not logged in (run 'gagyebu login')", errors.New("open token.json: no such file")),
			want: "not logged in (run 'gagyebu login'): open token.json: no such file",
		},
		{
			name: "plain error passes through",
			err:  NewValidationError("amount", "must be positive"),
			want: "amount: must be positive",
		},
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewUserError("saving the token failed", cause)
	assert.ErrorIs(t, err, cause)

	var userErr *UserError
	require.ErrorAs(t, err, &userErr)
	assert.Equal(t, "saving the token failed", userErr.UserMessage)
}

func TestConfigSentinels(t *testing.T) {
	err := fmt.Errorf("%w: api.base_url", ErrMissingConfig)
	assert.ErrorIs(t, err, ErrMissingConfig)

	err = fmt.Errorf("%w: log level %q", ErrInvalidConfig, "loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestTransportErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Err: cause}
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}
